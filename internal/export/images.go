package export

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/nfnt/resize"

	"github.com/arcanaland/cardsmith/internal/design"
)

// FileImages exports the pre-rendered artwork referenced by an element's
// image path as PNG files.
type FileImages struct {
	SourceDir string  // base for relative artwork paths, usually the document's directory
	OutDir    string  // where exported PNGs are written
	Scale     float64 // 0 and 1 keep the original size
}

// WriteImage decodes the element's artwork, scales it and writes it to
// OutDir/filename.
func (f *FileImages) WriteImage(el *design.Element, filename string) error {
	if el.Image == "" {
		return fmt.Errorf("element %s has no artwork", el.Name)
	}

	src := el.Image
	if !filepath.IsAbs(src) {
		src = filepath.Join(f.SourceDir, src)
	}

	file, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open artwork: %v", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return fmt.Errorf("failed to decode artwork: %v", err)
	}

	if f.Scale > 0 && f.Scale != 1 {
		width := uint(math.Round(float64(img.Bounds().Dx()) * f.Scale))
		if width == 0 {
			width = 1
		}
		img = resize.Resize(width, 0, img, resize.Lanczos3)
	}

	if err := os.MkdirAll(f.OutDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %v", err)
	}
	out, err := os.Create(filepath.Join(f.OutDir, filename))
	if err != nil {
		return fmt.Errorf("failed to create %s: %v", filename, err)
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("failed to encode %s: %v", filename, err)
	}
	return nil
}
