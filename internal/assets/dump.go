package assets

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"redsands/internal/core"
)

// WritePNG encodes img to path, creating parent directories.
func WritePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// DumpFaces writes cube_face_<n>.png for every province face and
// borders_<n>.png for every overlay, returning the written paths. Either
// slice may be empty.
func DumpFaces(dir string, faces []*core.ColorGrid, overlays []*core.OverlayGrid) ([]string, error) {
	var written []string
	for i, face := range faces {
		if face == nil {
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("cube_face_%d.png", i))
		if err := WritePNG(path, face.Image()); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	for i, overlay := range overlays {
		if overlay == nil {
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("borders_%d.png", i))
		if err := WritePNG(path, overlay.Image()); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
