package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-editor-mcp/internal/bitmap"
	"github.com/ironsheep/image-editor-mcp/internal/future"
)

// PNGMimeType is the MIME type of every encoded snapshot.
const PNGMimeType = "image/png"

// Codec decodes image data into snapshots and encodes snapshots as PNG data
// URLs.
//
// Decoding runs on its own goroutine and reports through a future.Signal,
// the same way a browser reports image loading through onload/onerror.
type Codec struct {
	autoOrient bool
}

// NewCodec creates a codec. With autoOrient set, JPEG EXIF orientation is
// applied while decoding.
func NewCodec(autoOrient bool) *Codec {
	return &Codec{autoOrient: autoOrient}
}

// Decode decodes PNG, JPEG or GIF data into a snapshot.
func (c *Codec) Decode(data []byte) *future.Signal[*bitmap.Snapshot] {
	return future.Bridge(func(onSuccess func(*bitmap.Snapshot), onFailure func(error)) {
		go func() {
			snap, err := c.decode(data)
			if err != nil {
				onFailure(err)
				return
			}
			onSuccess(snap)
		}()
	})
}

// DecodeURL decodes a base64 data URL.
func (c *Codec) DecodeURL(url string) *future.Signal[*bitmap.Snapshot] {
	_, data, err := ParseDataURL(url)
	if err != nil {
		return future.Failed[*bitmap.Snapshot](err)
	}
	return c.Decode(data)
}

func (c *Codec) decode(data []byte) (*bitmap.Snapshot, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(c.autoOrient))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	snap, err := bitmap.FromImage(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	return snap, nil
}

// Encode returns the snapshot's committed image as a PNG data URL. PNG is
// lossless, so decoding the URL reproduces the pixels exactly.
func (c *Codec) Encode(s *bitmap.Snapshot) (string, error) {
	data, err := EncodePNG(s.Image())
	if err != nil {
		return "", err
	}
	return DataURL(PNGMimeType, data), nil
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURL builds a base64 data URL.
func DataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURL splits a base64 data URL into its MIME type and payload.
func ParseDataURL(url string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(url, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("data URL has no payload")
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("data URL is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode data URL: %w", err)
	}
	return mimeType, data, nil
}

// SaveFile writes img to path; the format follows the file extension.
func SaveFile(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
