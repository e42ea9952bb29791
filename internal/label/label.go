// Package label provides annotated-sample types, CVAT export ingestion,
// and annotation-quality auditing for gauge photographs.
package label

import (
	"gauge-reader/pkg/geometry"
)

// Annotation label names produced by the labelling workflow.
const (
	LabelDial   = "temp_dial"
	LabelCenter = "temp_center"
	LabelTip    = "temp_tip"
)

// PointLabel is a named 2D pixel coordinate. Immutable once ingested.
type PointLabel struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

// Point returns the coordinate as a geometry point.
func (p PointLabel) Point() geometry.Point2D {
	return geometry.Point2D{X: p.X, Y: p.Y}
}

// EllipseLabel is a named ellipse describing the dial face extent.
type EllipseLabel struct {
	CX       float64 `json:"cx"`
	CY       float64 `json:"cy"`
	RX       float64 `json:"rx"`
	RY       float64 `json:"ry"`
	Rotation float64 `json:"rotation"`
	Label    string  `json:"label"`
}

// Ellipse returns the shape as a geometry ellipse.
func (e EllipseLabel) Ellipse() geometry.Ellipse {
	return geometry.Ellipse{CX: e.CX, CY: e.CY, RX: e.RX, RY: e.RY, Rotation: e.Rotation}
}

// Sample is one annotated image: the dial ellipse plus the needle
// center and tip points. Ingestion guarantees all three labels are
// present; a Sample missing any of them is never constructed.
type Sample struct {
	ImagePath string       `json:"image_path"`
	Dial      EllipseLabel `json:"dial"`
	Center    PointLabel   `json:"center"`
	Tip       PointLabel   `json:"tip"`
}

// CenterPoint returns the needle pivot in pixel coordinates.
func (s Sample) CenterPoint() geometry.Point2D {
	return s.Center.Point()
}

// TipPoint returns the needle tip in pixel coordinates.
func (s Sample) TipPoint() geometry.Point2D {
	return s.Tip.Point()
}

// DialRadius returns the larger dial radius in pixels, used as the
// working radius for detection and masking.
func (s Sample) DialRadius() float64 {
	return s.Dial.Ellipse().MaxRadius()
}
