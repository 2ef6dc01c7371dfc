package upload

import (
	"image"
	"io"
	"net/http"

	// Decoders registered for dimension probing.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Probe is the result of inspecting an image stream.
type Probe struct {
	// ContentType is the server-side detected MIME type.
	ContentType string

	// Width and Height are the pixel dimensions, 0 when the stream
	// could not be decoded as a known image format.
	Width  int
	Height int
}

// ProbeImage sniffs the content type and pixel dimensions of the stream
// and rewinds it to the start. A stream that is not a decodable image
// still probes successfully with zero dimensions; only read/seek
// failures are errors.
func ProbeImage(r io.ReadSeeker) (*Probe, error) {
	head := make([]byte, 512)
	n, err := r.Read(head)
	if err != nil && err != io.EOF {
		return nil, err
	}
	probe := &Probe{ContentType: http.DetectContentType(head[:n])}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	if cfg, _, err := image.DecodeConfig(r); err == nil {
		probe.Width = cfg.Width
		probe.Height = cfg.Height
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return probe, nil
}
