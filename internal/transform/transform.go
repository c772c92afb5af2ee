// Package transform normalizes an on-disk upload into a second on-disk file
// ready for remote upload. Images are resized and re-encoded; videos pass
// through unchanged. Neither path mutates its input; the caller owns cleanup
// of both files.
package transform

import (
	"fmt"
	"io"
	"os"

	"github.com/disintegration/imaging"

	// Register decoders for the non-stdlib image formats on the allow-list.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	// Images are scaled to fit inside this bounding box. Smaller images are
	// never upscaled.
	maxWidth  = 1920
	maxHeight = 1080

	jpegQuality = 85
)

// Image decodes src, fits it inside the bounding box and re-encodes it as
// JPEG at dst. The output is always JPEG regardless of the source format or
// the dst extension.
func Image(src, dst string) error {
	img, err := imaging.Open(src)
	if err != nil {
		return fmt.Errorf("decode image %q: %w", src, err)
	}
	fitted := imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create processed file %q: %w", dst, err)
	}
	if err := imaging.Encode(out, fitted, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("encode image %q: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("write processed file %q: %w", dst, err)
	}
	return nil
}

// Video copies src to dst byte for byte. No transcoding happens yet; this is
// the placeholder for future compression.
func Video(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open video %q: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create processed file %q: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copy video %q: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("write processed file %q: %w", dst, err)
	}
	return nil
}
