// Package pdf lays a learning pack out as a one-page A4 handout: the theme as
// a title, the four pictures in a row, then the NZSL and English sentences.
package pdf

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"

	"github.com/abhisek/tohu/internal/logger"
	"github.com/abhisek/tohu/internal/pack"
)

// Page geometry in millimetres.
const (
	Margin       = 12.0
	ImageHeight  = 55.0
	Gutter       = 4.0
	imagesPerRow = 4
)

// Font sizes in points.
const (
	TitleSize   = 22.0
	NZSLSize    = 28.0
	EnglishSize = 20.0
)

// Handout is the content of one page. Images are data URIs in print order.
type Handout struct {
	Theme   string
	Images  []Image
	NZSL    string
	English string
}

// Image is one picture slot on the page.
type Image struct {
	Key     string
	DataURI string
}

// FromPack picks the handout content out of p.
func FromPack(p *pack.Pack) Handout {
	h := Handout{Theme: p.Theme, NZSL: p.SentenceNZSL, English: p.SentenceEN}
	for _, key := range p.ImageOrder {
		h.Images = append(h.Images, Image{Key: key, DataURI: p.SceneImages[key]})
	}
	return h
}

// Result is a rendered handout. Skipped lists the image keys left blank
// because their data could not be embedded.
type Result struct {
	Bytes   []byte
	Skipped []string
}

// Renderer draws handouts.
type Renderer struct {
	// MaxPixels caps the longest side of embedded images; larger ones are
	// downscaled. Zero means DefaultMaxPixels.
	MaxPixels int

	log *logger.Logger
}

// NewRenderer returns a Renderer with default limits.
func NewRenderer(log *logger.Logger) *Renderer {
	return &Renderer{MaxPixels: DefaultMaxPixels, log: logger.OrNop(log).With("component", "pdf")}
}

// Render draws h. Images that cannot be embedded leave their slot blank;
// only a failure to produce the document itself is an error.
func (r *Renderer) Render(h Handout) (*Result, error) {
	var buf bytes.Buffer
	skipped, err := r.write(&buf, h)
	if err != nil {
		return nil, err
	}
	return &Result{Bytes: buf.Bytes(), Skipped: skipped}, nil
}

func (r *Renderer) write(w io.Writer, h Handout) ([]string, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(Margin, Margin, Margin)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()
	fonts := newFontSet(doc)

	fonts.set(h.Theme, "B", TitleSize)
	doc.CellFormat(0, 12, fonts.text(h.Theme), "", 1, "C", false, 0, "")
	doc.Ln(2)

	pageW, _ := doc.GetPageSize()
	cellW := (pageW - 2*Margin - (imagesPerRow-1)*Gutter) / imagesPerRow
	top := doc.GetY()

	var skipped []string
	maxPx := r.MaxPixels
	if maxPx <= 0 {
		maxPx = DefaultMaxPixels
	}
	for i, img := range h.Images {
		if i == imagesPerRow {
			break
		}
		x := Margin + float64(i)*(cellW+Gutter)
		if err := r.place(doc, img, x, top, cellW, maxPx); err != nil {
			r.log.Warn("image skipped in handout", "key", img.Key, "error", err.Error())
			skipped = append(skipped, img.Key)
		}
	}

	doc.SetY(top + ImageHeight + 10)
	fonts.set(h.NZSL, "B", NZSLSize)
	doc.MultiCell(0, 14, fonts.text(h.NZSL), "", "C", false)
	doc.Ln(2)
	fonts.set(h.English, "", EnglishSize)
	doc.MultiCell(0, 12, fonts.text(h.English), "", "C", false)

	if err := doc.Output(w); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return skipped, nil
}

// place embeds one image, fitted inside the cell and centred.
func (r *Renderer) place(doc *fpdf.Fpdf, img Image, x, y, cellW float64, maxPx int) error {
	emb, err := prepare(img.DataURI, maxPx)
	if err != nil {
		return err
	}

	name := "img-" + img.Key
	opts := fpdf.ImageOptions{ImageType: emb.kind, ReadDpi: false}
	info := doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(emb.data))
	if !doc.Ok() {
		err := doc.Error()
		doc.ClearError()
		return fmt.Errorf("embed %s: %w", emb.kind, err)
	}

	w, h := fit(info.Width(), info.Height(), cellW, ImageHeight)
	doc.ImageOptions(name, x+(cellW-w)/2, y+(ImageHeight-h)/2, w, h, false, opts, 0, "")
	return nil
}

// fit scales a srcW x srcH box to fit inside boxW x boxH, keeping its aspect.
func fit(srcW, srcH, boxW, boxH float64) (float64, float64) {
	if srcW <= 0 || srcH <= 0 {
		return boxW, boxH
	}
	scale := boxW / srcW
	if s := boxH / srcH; s < scale {
		scale = s
	}
	return srcW * scale, srcH * scale
}

// fontSet prints with core Helvetica when a line fits Windows-1252, and with
// an embedded UTF-8 Go font otherwise, so te reo macrons survive.
type fontSet struct {
	doc     *fpdf.Fpdf
	tr      func(string) string
	unicode bool
	loaded  bool
}

func newFontSet(doc *fpdf.Fpdf) *fontSet {
	return &fontSet{doc: doc, tr: doc.UnicodeTranslatorFromDescriptor("")}
}

func (f *fontSet) set(s, style string, size float64) {
	s = norm.NFC.String(s)
	f.unicode = !fitsCP1252(s)
	if !f.unicode {
		f.doc.SetFont("Helvetica", style, size)
		return
	}
	if !f.loaded {
		f.doc.AddUTF8FontFromBytes(unicodeFamily, "", goRegular)
		f.doc.AddUTF8FontFromBytes(unicodeFamily, "B", goBold)
		f.loaded = true
	}
	f.doc.SetFont(unicodeFamily, style, size)
}

// text prepares s for the font chosen by the last set call.
func (f *fontSet) text(s string) string {
	s = norm.NFC.String(s)
	if f.unicode {
		return s
	}
	return f.tr(s)
}

func fitsCP1252(s string) bool {
	_, err := charmap.Windows1252.NewEncoder().String(s)
	return err == nil
}
