package wallpaper

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/five82/dreamwall/internal/failure"
)

const jpegQuality = 92

// Save writes image data to path. With fit set, the image is decoded, scaled
// and center-cropped to exactly width x height before being re-encoded; the
// service does not always honour the requested size.
func Save(data []byte, path string, width, height int, fit bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return failure.Wrap(failure.Network, "save image", err)
	}
	if !fit || width <= 0 || height <= 0 {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return failure.Wrap(failure.Network, "save image", err)
		}
		return nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return failure.Wrap(failure.Network, "decode image", err)
	}
	b := img.Bounds()
	if b.Dx() != width || b.Dy() != height {
		img = imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)
	}

	file, err := os.CreateTemp(filepath.Dir(path), ".wallpaper-*.jpg")
	if err != nil {
		return failure.Wrap(failure.Network, "save image", err)
	}
	tmp := file.Name()
	if err := imaging.Encode(file, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		_ = file.Close()
		_ = os.Remove(tmp)
		return failure.Wrap(failure.Network, "save image", fmt.Errorf("encode: %w", err))
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmp)
		return failure.Wrap(failure.Network, "save image", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return failure.Wrap(failure.Network, "save image", err)
	}
	return nil
}
