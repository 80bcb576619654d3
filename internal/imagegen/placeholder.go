package imagegen

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/abhisek/tohu/internal/prompt"
)

const placeholderSize = 512

// Color is the placeholder background for label, as #rrggbb. The same label
// always gets the same colour.
func Color(label string) string {
	return fmt.Sprintf("#%06x", prompt.Hash(label)%0xFFFFFF)
}

// Placeholder synthesizes a labelled picture in the given format. It never
// fails: a PNG that cannot be rasterized falls back to SVG.
func Placeholder(label, format string) Image {
	if format == FormatPNG {
		if img, err := PlaceholderPNG(label); err == nil {
			return img
		}
	}
	return PlaceholderSVG(label)
}

// PlaceholderSVG draws label centred on its colour as an SVG document.
func PlaceholderSVG(label string) Image {
	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%[1]d" height="%[1]d" viewBox="0 0 %[1]d %[1]d">`+
			`<rect width="100%%" height="100%%" fill="%[2]s"/>`+
			`<text x="50%%" y="50%%" dominant-baseline="middle" text-anchor="middle" `+
			`font-family="Helvetica, Arial, sans-serif" font-size="36" fill="#ffffff">%[3]s</text></svg>`,
		placeholderSize, Color(label), html.EscapeString(label),
	)
	return Image{Data: []byte(svg), MIMEType: "image/svg+xml"}
}

var (
	faceOnce sync.Once
	faceErr  error
	faceFont *truetype.Font
)

func placeholderFace() (font.Face, error) {
	faceOnce.Do(func() {
		faceFont, faceErr = truetype.Parse(goregular.TTF)
	})
	if faceErr != nil {
		return nil, fmt.Errorf("parse placeholder font: %w", faceErr)
	}
	return truetype.NewFace(faceFont, &truetype.Options{
		Size:    40,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}

// PlaceholderPNG rasterizes the same design as PlaceholderSVG so it can be
// embedded where SVG is not supported.
func PlaceholderPNG(label string) (Image, error) {
	face, err := placeholderFace()
	if err != nil {
		return Image{}, err
	}
	defer face.Close()

	dc := gg.NewContext(placeholderSize, placeholderSize)
	dc.SetHexColor(Color(label))
	dc.Clear()

	dc.SetFontFace(face)
	dc.SetRGB(1, 1, 1)
	half := float64(placeholderSize) / 2
	dc.DrawStringWrapped(strings.TrimSpace(label), half, half, 0.5, 0.5, placeholderSize-64, 1.3, gg.AlignCenter)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return Image{}, fmt.Errorf("encode placeholder PNG: %w", err)
	}
	return Image{Data: buf.Bytes(), MIMEType: "image/png"}, nil
}
