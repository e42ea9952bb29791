// Package needle provides classical needle-direction detection on gauge
// photographs, plus batch evaluation against labelled samples. It is a
// non-learned baseline used to benchmark the trained regressor.
package needle

import (
	"image"
	"math"

	"gocv.io/x/gocv"

	"gauge-reader/pkg/geometry"
)

// Detection is a needle estimate as a center-origin unit vector with a
// non-negative confidence score.
type Detection struct {
	Direction  geometry.Point2D
	Confidence float64
}

// DetectionParams configures the edge/line pipeline.
type DetectionParams struct {
	CLAHEClipLimit float64 // Adaptive histogram equalization clip limit
	CLAHETileSize  int     // Equalization tile grid size
	BlurKernelSize int     // Gaussian smoothing kernel (odd)

	CannyLow  float32 // Hysteresis low threshold (8-bit image)
	CannyHigh float32 // Hysteresis high threshold

	// Annulus mask: keep edges whose radius from center lies in
	// (InnerRadiusRatio*R, OuterRadiusRatio*R). Rejects the center hub
	// and the outer bezel, both sources of spurious segments.
	InnerRadiusRatio float64
	OuterRadiusRatio float64

	HoughVotes         int     // Accumulator vote threshold
	MinLineLengthRatio float64 // Minimum segment length as a fraction of dial radius
	MaxLineGapPx       float32 // Maximum gap bridged within one segment

	// Segment score is length - CenterDistancePenalty * distance from
	// segment midpoint to the dial center. Long lines through the
	// center win; off-center clutter loses.
	CenterDistancePenalty float64
}

// DefaultParams returns the tuned detection parameters.
func DefaultParams() DetectionParams {
	return DetectionParams{
		CLAHEClipLimit:        2.0,
		CLAHETileSize:         8,
		BlurKernelSize:        5,
		CannyLow:              50,
		CannyHigh:             150,
		InnerRadiusRatio:      0.15,
		OuterRadiusRatio:      0.95,
		HoughVotes:            40,
		MinLineLengthRatio:    0.25,
		MaxLineGapPx:          8,
		CenterDistancePenalty: 1.5,
	}
}

// Detect estimates the needle direction in a color image given the dial
// center and approximate radius in pixels. Returns nil when no robust
// line candidate is found. It never panics on degenerate input: an
// empty image or a radius of one pixel or less is simply no detection.
func Detect(img gocv.Mat, center geometry.Point2D, dialRadiusPx float64, params DetectionParams) *Detection {
	if img.Empty() || dialRadiusPx <= 1.0 {
		return nil
	}

	// Normalize local contrast and smooth noise to stabilize edges.
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)

	clahe := gocv.NewCLAHEWithParams(params.CLAHEClipLimit, image.Point{params.CLAHETileSize, params.CLAHETileSize})
	defer clahe.Close()

	enhanced := gocv.NewMat()
	defer enhanced.Close()
	clahe.Apply(gray, &enhanced)

	blurred := gocv.NewMat()
	defer blurred.Close()
	k := params.BlurKernelSize
	gocv.GaussianBlur(enhanced, &blurred, image.Point{k, k}, 0, 0, gocv.BorderDefault)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(blurred, &edges, params.CannyLow, params.CannyHigh)

	masked := maskToAnnulus(edges, center, dialRadiusPx, params)
	defer masked.Close()

	// Probabilistic Hough gives concrete segment endpoints to score.
	lines := gocv.NewMat()
	defer lines.Close()
	gocv.HoughLinesPWithParams(
		masked,
		&lines,
		1,              // 1px radial resolution
		math.Pi/180.0,  // 1 degree angular resolution
		params.HoughVotes,
		float32(params.MinLineLengthRatio*dialRadiusPx),
		params.MaxLineGapPx,
	)
	if lines.Empty() {
		return nil
	}

	bestScore := math.Inf(-1)
	var bestP1, bestP2 geometry.Point2D
	haveBest := false

	for i := 0; i < lines.Rows(); i++ {
		seg := lines.GetVeciAt(i, 0)
		p1 := geometry.NewPoint2D(float64(seg[0]), float64(seg[1]))
		p2 := geometry.NewPoint2D(float64(seg[2]), float64(seg[3]))

		segLen := p1.Distance(p2)
		if segLen <= 1e-6 {
			continue
		}

		midpoint := p1.Add(p2).Scale(0.5)
		score := segLen - params.CenterDistancePenalty*midpoint.Distance(center)
		if score > bestScore {
			bestScore = score
			bestP1, bestP2 = p1, p2
			haveBest = true
		}
	}
	if !haveBest {
		return nil
	}

	// The tip is the endpoint farther from the dial center.
	tip := bestP1
	if bestP2.Distance(center) > bestP1.Distance(center) {
		tip = bestP2
	}

	direction, ok := tip.Sub(center).Unit()
	if !ok {
		return nil
	}

	return &Detection{
		Direction:  direction,
		Confidence: math.Max(bestScore, 0.0),
	}
}

// maskToAnnulus zeroes edge pixels outside the working ring around the
// dial center.
func maskToAnnulus(edges gocv.Mat, center geometry.Point2D, dialRadiusPx float64, params DetectionParams) gocv.Mat {
	inner := params.InnerRadiusRatio * dialRadiusPx
	outer := params.OuterRadiusRatio * dialRadiusPx

	masked := edges.Clone()
	rows, cols := masked.Rows(), masked.Cols()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if masked.GetUCharAt(y, x) == 0 {
				continue
			}
			r := geometry.NewPoint2D(float64(x), float64(y)).Distance(center)
			if r <= inner || r >= outer {
				masked.SetUCharAt(y, x, 0)
			}
		}
	}
	return masked
}
