package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"
)

// SourceInfo describes an image file chosen for loading.
type SourceInfo struct {
	// Path is the file the bytes were read from. Empty for inline data.
	Path string `json:"path,omitempty"`

	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoder that recognised the data: "png", "jpeg", "gif".
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the image has an alpha (transparency) channel.
	HasAlpha bool `json:"has_alpha"`

	// SizeBytes is the size of the encoded data.
	SizeBytes int64 `json:"size_bytes"`
}

// ReadSource reads an image file for loading into the editor.
//
// Only the header is decoded here; full decoding happens asynchronously in
// Codec.Decode. The returned bytes are handed to the editor as-is.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the data is not a PNG, JPEG, or GIF image
func ReadSource(path string) ([]byte, *SourceInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open image: %w", err)
	}
	info, err := DescribeSource(data)
	if err != nil {
		return nil, nil, err
	}
	info.Path = path
	if info.Format == "" {
		info.Format = formatFromExt(path)
	}
	return data, info, nil
}

// DescribeSource inspects encoded image data without decoding the pixels.
//
// # Color Depth Detection
//
// Color depth and alpha are taken from the decoder's colour model:
//   - 16-bit models (RGBA64, NRGBA64, Gray16) -> "16-bit"
//   - All other models -> "8-bit"
func DescribeSource(data []byte) (*SourceInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image header: %w", err)
	}

	hasAlpha := false
	colorDepth := "8-bit"
	switch cfg.ColorModel {
	case color.RGBAModel, color.NRGBAModel:
		hasAlpha = true
	case color.RGBA64Model, color.NRGBA64Model:
		hasAlpha = true
		colorDepth = "16-bit"
	case color.Gray16Model:
		colorDepth = "16-bit"
	}

	return &SourceInfo{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Format:     format,
		ColorDepth: colorDepth,
		HasAlpha:   hasAlpha,
		SizeBytes:  int64(len(data)),
	}, nil
}

// formatFromExt is the fallback used when the decoder did not name a format.
func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	}
	return "unknown"
}
