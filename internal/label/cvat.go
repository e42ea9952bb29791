package label

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// annotationsFileName is the annotation document inside each CVAT
// "for images 1.1" zip export.
const annotationsFileName = "annotations.xml"

type cvatEllipse struct {
	Label    string `xml:"label,attr"`
	CX       string `xml:"cx,attr"`
	CY       string `xml:"cy,attr"`
	RX       string `xml:"rx,attr"`
	RY       string `xml:"ry,attr"`
	Rotation string `xml:"rotation,attr"`
}

type cvatPoints struct {
	Label  string `xml:"label,attr"`
	Points string `xml:"points,attr"`
}

type cvatImage struct {
	Name     string        `xml:"name,attr"`
	Ellipses []cvatEllipse `xml:"ellipse"`
	Points   []cvatPoints  `xml:"points"`
}

type cvatAnnotations struct {
	XMLName xml.Name    `xml:"annotations"`
	Images  []cvatImage `xml:"image"`
}

func parsePointAttr(points string, labelName string) (PointLabel, error) {
	// CVAT point format is "x,y"
	parts := strings.SplitN(points, ",", 2)
	if len(parts) != 2 {
		return PointLabel{}, fmt.Errorf("malformed points attribute %q", points)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return PointLabel{}, fmt.Errorf("malformed points attribute %q: %w", points, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return PointLabel{}, fmt.Errorf("malformed points attribute %q: %w", points, err)
	}
	return PointLabel{X: x, Y: y, Label: labelName}, nil
}

func parseEllipseAttrs(e cvatEllipse) (EllipseLabel, error) {
	parse := func(name, value string) (float64, error) {
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0, fmt.Errorf("malformed ellipse attribute %s=%q: %w", name, value, err)
		}
		return f, nil
	}

	cx, err := parse("cx", e.CX)
	if err != nil {
		return EllipseLabel{}, err
	}
	cy, err := parse("cy", e.CY)
	if err != nil {
		return EllipseLabel{}, err
	}
	rx, err := parse("rx", e.RX)
	if err != nil {
		return EllipseLabel{}, err
	}
	ry, err := parse("ry", e.RY)
	if err != nil {
		return EllipseLabel{}, err
	}

	rotation := 0.0
	if e.Rotation != "" {
		rotation, err = parse("rotation", e.Rotation)
		if err != nil {
			return EllipseLabel{}, err
		}
	}

	return EllipseLabel{CX: cx, CY: cy, RX: rx, RY: ry, Rotation: rotation, Label: e.Label}, nil
}

// ParseArchive reads one CVAT zip export and returns its samples.
// Image paths are resolved against rawDir. Any image entry missing the
// dial, center, or tip label aborts the whole archive: partial samples
// must never reach the pipeline.
func ParseArchive(zipPath, rawDir string) ([]Sample, error) {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", zipPath, err)
	}
	defer reader.Close()

	var doc cvatAnnotations
	found := false
	for _, file := range reader.File {
		if file.Name != annotationsFileName {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s in %s: %w", annotationsFileName, zipPath, err)
		}
		err = xml.NewDecoder(rc).Decode(&doc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s in %s: %w", annotationsFileName, zipPath, err)
		}
		found = true
		break
	}
	if !found {
		return nil, fmt.Errorf("no %s in archive %s", annotationsFileName, zipPath)
	}

	samples := make([]Sample, 0, len(doc.Images))
	for _, img := range doc.Images {
		var dial *EllipseLabel
		var center, tip *PointLabel

		for _, e := range img.Ellipses {
			if e.Label == LabelDial {
				parsed, err := parseEllipseAttrs(e)
				if err != nil {
					return nil, fmt.Errorf("image %s in %s: %w", img.Name, zipPath, err)
				}
				dial = &parsed
			}
		}

		for _, p := range img.Points {
			switch p.Label {
			case LabelCenter, LabelTip:
				parsed, err := parsePointAttr(p.Points, p.Label)
				if err != nil {
					return nil, fmt.Errorf("image %s in %s: %w", img.Name, zipPath, err)
				}
				if p.Label == LabelCenter {
					center = &parsed
				} else {
					tip = &parsed
				}
			}
		}

		if dial == nil || center == nil || tip == nil {
			return nil, fmt.Errorf("missing labels in %s for image %s", zipPath, img.Name)
		}

		samples = append(samples, Sample{
			ImagePath: filepath.Join(rawDir, img.Name),
			Dial:      *dial,
			Center:    *center,
			Tip:       *tip,
		})
	}

	return samples, nil
}

// ListArchives returns all zip files in the labelled directory, sorted.
func ListArchives(labelledDir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(labelledDir, "*.zip"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// LoadDataset parses every labelled archive and returns the combined
// sample list.
func LoadDataset(labelledDir, rawDir string) ([]Sample, error) {
	archives, err := ListArchives(labelledDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list archives in %s: %w", labelledDir, err)
	}

	var all []Sample
	for _, zipPath := range archives {
		samples, err := ParseArchive(zipPath, rawDir)
		if err != nil {
			return nil, err
		}
		all = append(all, samples...)
	}
	return all, nil
}
