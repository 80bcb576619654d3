package imagegen

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// DataURI encodes img as a base64 data URI.
func (img Image) DataURI() string {
	return "data:" + img.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

// ErrBadDataURI reports a string that is not a base64 data URI.
var ErrBadDataURI = errors.New("not a base64 data URI")

// ParseDataURI decodes a "data:<mime>;base64,<payload>" string.
func ParseDataURI(s string) (*Image, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, ErrBadDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, ErrBadDataURI
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok || mime == "" {
		return nil, ErrBadDataURI
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDataURI, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrBadDataURI)
	}
	return &Image{Data: data, MIMEType: strings.ToLower(mime)}, nil
}

func sniffMIME(data []byte) string {
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "image/png"
	}
	return mime
}
