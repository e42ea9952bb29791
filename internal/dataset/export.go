package dataset

import (
	"encoding/json"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/tiff"

	"gauge-reader/pkg/geometry"
)

// ExportOptions configures dataset export for the external trainer.
type ExportOptions struct {
	OutDir      string
	ImageWidth  int
	ImageHeight int
}

// ManifestEntry describes one exported crop.
type ManifestEntry struct {
	File        string           `json:"file"`
	SourceImage string           `json:"source_image"`
	Value       float64          `json:"value"`
	NeedleUnit  geometry.Point2D `json:"needle_unit_xy"`
}

// manifestFileName is written into each part directory.
const manifestFileName = "manifest.json"

// ExportSplit crops every example's photograph to its dial box, resizes
// to the model input size, and writes the crops plus a JSON manifest
// under <OutDir>/{train,val,test}/. Unlike baseline evaluation, export
// is explicit artifact production: any unreadable image fails the
// whole export.
func ExportSplit(split Split, opts ExportOptions) error {
	if opts.ImageWidth <= 0 || opts.ImageHeight <= 0 {
		return fmt.Errorf("export image size must be positive, got %dx%d", opts.ImageWidth, opts.ImageHeight)
	}

	parts := []struct {
		name     string
		examples []Example
	}{
		{"train", split.Train},
		{"val", split.Val},
		{"test", split.Test},
	}

	for _, part := range parts {
		if err := exportPart(part.name, part.examples, opts); err != nil {
			return err
		}
	}
	return nil
}

func exportPart(name string, examples []Example, opts ExportOptions) error {
	partDir := filepath.Join(opts.OutDir, name)
	if err := os.MkdirAll(partDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", partDir, err)
	}

	manifest := make([]ManifestEntry, 0, len(examples))
	for i, ex := range examples {
		src, err := imaging.Open(ex.ImagePath)
		if err != nil {
			return fmt.Errorf("failed to read image %s: %w", ex.ImagePath, err)
		}

		cropped := imaging.Crop(src, clipCropBox(ex.CropBox, src.Bounds()))
		resized := imaging.Resize(cropped, opts.ImageWidth, opts.ImageHeight, imaging.Lanczos)

		fileName := fmt.Sprintf("%s_%04d.png", name, i)
		if err := imaging.Save(resized, filepath.Join(partDir, fileName)); err != nil {
			return fmt.Errorf("failed to save crop for %s: %w", ex.ImagePath, err)
		}

		manifest = append(manifest, ManifestEntry{
			File:        fileName,
			SourceImage: ex.ImagePath,
			Value:       ex.Value,
			NeedleUnit:  ex.NeedleUnit,
		})
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(partDir, manifestFileName), data, 0644)
}

// clipCropBox converts a float xyxy box to integer pixels clipped to
// the image bounds, keeping at least one pixel in each dimension.
func clipCropBox(box [4]float64, bounds image.Rectangle) image.Rectangle {
	x0 := int(math.Floor(box[0]))
	y0 := int(math.Floor(box[1]))
	x1 := int(math.Ceil(box[2]))
	y1 := int(math.Ceil(box[3]))

	x0 = clampCount(x0, bounds.Min.X, bounds.Max.X-1)
	y0 = clampCount(y0, bounds.Min.Y, bounds.Max.Y-1)
	x1 = clampCount(x1, x0+1, bounds.Max.X)
	y1 = clampCount(y1, y0+1, bounds.Max.Y)

	return image.Rect(x0, y0, x1, y1)
}
