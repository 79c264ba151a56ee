package moderation

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// maxVisionWidth caps the pixel width of images sent to the vision
// model. Anything wider is downscaled before encoding.
const maxVisionWidth = 1024

var mediaClient = resty.New().
	SetTimeout(20 * time.Second).
	SetHeader("User-Agent", "plaza-moderation/1.0")

// FetchImage downloads an image and normalizes it to a JPEG no wider
// than maxVisionWidth. Returns the encoded bytes and their MIME type.
func FetchImage(ctx context.Context, url string) ([]byte, string, error) {
	resp, err := mediaClient.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to fetch image")
	}
	if resp.StatusCode() != 200 {
		return nil, "", fmt.Errorf("unexpected status %d fetching image", resp.StatusCode())
	}

	img, err := imaging.Decode(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to decode image")
	}

	if img.Bounds().Dx() > maxVisionWidth {
		img = imaging.Resize(img, maxVisionWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, "", errors.Wrap(err, "failed to encode image")
	}
	return buf.Bytes(), "image/jpeg", nil
}
