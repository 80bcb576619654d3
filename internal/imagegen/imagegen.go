// Package imagegen turns image instructions into embeddable pictures. The
// Client never fails: when the upstream service errors, times out or returns
// no picture, it synthesizes a labelled placeholder instead.
package imagegen

import (
	"context"
	"errors"
)

// Image is one picture and its MIME type.
type Image struct {
	Data     []byte
	MIMEType string
}

// Request describes one picture to generate.
type Request struct {
	Prompt      string
	Seed        int32
	Temperature float64
}

// Generator is a remote image service.
type Generator interface {
	// Generate returns exactly one picture or an error.
	Generate(ctx context.Context, req Request) (*Image, error)

	// ModelID returns the image model identifier.
	ModelID() string
}

// ErrNoImage reports a successful call whose reply carried no picture.
var ErrNoImage = errors.New("image service returned no image")
