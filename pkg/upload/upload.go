package upload

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
)

// ErrNotFound is returned when a stored image doesn't exist.
var ErrNotFound = errors.New("upload: image not found")

// ErrTooLarge is returned when an image exceeds the size limit.
var ErrTooLarge = errors.New("upload: image too large")

// ErrUnsupportedType is returned when the detected content type is not
// an allowed image type.
var ErrUnsupportedType = errors.New("upload: unsupported content type")

// Store is the interface for image storage backends.
type Store interface {
	// Save stores the image bytes and returns its descriptor.
	Save(filename string, contentType string, size int64, r io.Reader) (*Image, error)

	// Open returns a reader over a stored image.
	Open(id string) (io.ReadCloser, error)

	// Delete removes a stored image.
	Delete(id string) error
}

// Image describes a stored image.
type Image struct {
	// ID is the storage key of the image.
	ID string `json:"id"`

	// Filename is the original filename from the client.
	Filename string `json:"filename"`

	// ContentType is the detected MIME type.
	ContentType string `json:"contentType"`

	// Size is the stored size in bytes.
	Size int64 `json:"size"`

	// URL is where the image is served from.
	URL string `json:"url"`

	// Width and Height are the probed pixel dimensions, 0 when the
	// image could not be decoded.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

// Config holds configuration for the upload handler.
type Config struct {
	// MaxFileSize is the maximum allowed image size in bytes.
	// Default: 10MB.
	MaxFileSize int64

	// AllowedTypes lists the accepted MIME types. Empty means the
	// built-in image types (png, jpeg, gif, webp).
	AllowedTypes []string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxFileSize: 10 * 1024 * 1024, // 10MB
	}
}

// defaultAllowedTypes are the image types EditKit accepts out of the box.
var defaultAllowedTypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp"}

func (c *Config) allowed(contentType string) bool {
	types := c.AllowedTypes
	if len(types) == 0 {
		types = defaultAllowedTypes
	}
	for _, t := range types {
		if t == contentType {
			return true
		}
	}
	return false
}

// Handler returns an http.Handler for image uploads with defaults.
// Mount it on your router: r.Post("/v1/upload", upload.Handler(store))
//
// The handler expects a multipart form with a "file" field and responds
// with the stored Image as JSON.
func Handler(store Store) http.Handler {
	return HandlerWithConfig(store, DefaultConfig())
}

// HandlerWithConfig returns an upload handler with custom configuration.
func HandlerWithConfig(store Store, config *Config) http.Handler {
	logger := slog.Default().With("component", "upload")
	maxSize := config.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultConfig().MaxFileSize
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		// Limit request body size BEFORE parsing to prevent abuse.
		r.Body = http.MaxBytesReader(w, r.Body, maxSize)

		if err := r.ParseMultipartForm(32 << 20); err != nil {
			if err.Error() == "http: request body too large" {
				http.Error(w, "Image too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "Failed to parse form", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "No file provided", http.StatusBadRequest)
			return
		}
		defer file.Close()

		// Probe sniffs the content type and dimensions, then rewinds.
		probe, err := ProbeImage(file)
		if err != nil {
			http.Error(w, "Unreadable image", http.StatusBadRequest)
			return
		}
		if !config.allowed(probe.ContentType) {
			http.Error(w, "Unsupported image type", http.StatusUnsupportedMediaType)
			return
		}

		img, err := store.Save(header.Filename, probe.ContentType, header.Size, file)
		if err != nil {
			if errors.Is(err, ErrTooLarge) {
				http.Error(w, "Image too large", http.StatusRequestEntityTooLarge)
				return
			}
			logger.Error("save failed", "filename", header.Filename, "error", err)
			http.Error(w, "Upload failed", http.StatusInternalServerError)
			return
		}
		img.Width = probe.Width
		img.Height = probe.Height

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(img); err != nil {
			logger.Error("encode response", "error", err)
		}
	})
}
