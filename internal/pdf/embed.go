package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/abhisek/tohu/internal/imagegen"
)

// DefaultMaxPixels bounds the longest embedded image side. At 55 mm this is
// still well above print resolution.
const DefaultMaxPixels = 1024

// ErrVectorImage marks SVG data, which the page cannot embed.
var ErrVectorImage = errors.New("vector images cannot be embedded")

// embeddable is image data in a format the PDF writer reads directly.
type embeddable struct {
	kind string // PNG, JPG or GIF
	data []byte
}

// prepare decodes a data URI into something the page can embed. PNG, JPEG
// and GIF within maxPx pass through unchanged. Anything else that decodes,
// or anything too large, is re-encoded as PNG.
func prepare(dataURI string, maxPx int) (*embeddable, error) {
	img, err := imagegen.ParseDataURI(dataURI)
	if err != nil {
		return nil, err
	}
	if strings.Contains(img.MIMEType, "svg") {
		return nil, ErrVectorImage
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(img.Data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", img.MIMEType, err)
	}

	kind := passthroughKind(format)
	if kind != "" && cfg.Width <= maxPx && cfg.Height <= maxPx {
		return &embeddable{kind: kind, data: img.Data}, nil
	}

	src, _, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	src = downscale(src, maxPx)

	var out bytes.Buffer
	if err := png.Encode(&out, src); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return &embeddable{kind: "PNG", data: out.Bytes()}, nil
}

func passthroughKind(format string) string {
	switch format {
	case "png":
		return "PNG"
	case "jpeg":
		return "JPG"
	case "gif":
		return "GIF"
	default:
		return ""
	}
}

// downscale shrinks img so its longest side is at most maxPx.
func downscale(img image.Image, maxPx int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxPx && h <= maxPx {
		return img
	}
	if w >= h {
		h = max(1, h*maxPx/w)
		w = maxPx
	} else {
		w = max(1, w*maxPx/h)
		h = maxPx
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
