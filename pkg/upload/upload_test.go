package upload

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// pngBytes encodes a blank PNG of the given size.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestProbeImage(t *testing.T) {
	data := pngBytes(t, 320, 240)
	probe, err := ProbeImage(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ProbeImage: %v", err)
	}
	if probe.ContentType != "image/png" {
		t.Errorf("ContentType = %q, want image/png", probe.ContentType)
	}
	if probe.Width != 320 || probe.Height != 240 {
		t.Errorf("dimensions = %dx%d, want 320x240", probe.Width, probe.Height)
	}
}

func TestProbeImageRewinds(t *testing.T) {
	data := pngBytes(t, 10, 10)
	r := bytes.NewReader(data)
	if _, err := ProbeImage(r); err != nil {
		t.Fatalf("ProbeImage: %v", err)
	}
	rest, _ := io.ReadAll(r)
	if !bytes.Equal(rest, data) {
		t.Error("stream not rewound to start after probing")
	}
}

func TestProbeImageUndecodable(t *testing.T) {
	probe, err := ProbeImage(strings.NewReader("plain text, not an image"))
	if err != nil {
		t.Fatalf("ProbeImage: %v", err)
	}
	if probe.Width != 0 || probe.Height != 0 {
		t.Errorf("dimensions = %dx%d, want 0x0", probe.Width, probe.Height)
	}
	if probe.ContentType == "" {
		t.Error("ContentType empty")
	}
}

func TestDiskStoreSaveOpenDelete(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "/images", 0)
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	data := pngBytes(t, 4, 4)

	img, err := store.Save("a.png", "image/png", int64(len(data)), bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if img.ID == "" || img.URL != "/images/"+img.ID {
		t.Errorf("descriptor = %+v", img)
	}
	if img.Size != int64(len(data)) {
		t.Errorf("Size = %d, want %d", img.Size, len(data))
	}

	rc, err := store.Open(img.ID)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	stored, _ := io.ReadAll(rc)
	rc.Close()
	if !bytes.Equal(stored, data) {
		t.Error("stored bytes differ from input")
	}

	if err := store.Delete(img.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Open(img.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Open after Delete = %v, want ErrNotFound", err)
	}
}

func TestDiskStoreSizeLimit(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "/images", 16)
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	data := pngBytes(t, 64, 64)

	// Declared size over the limit.
	if _, err := store.Save("a.png", "image/png", int64(len(data)), bytes.NewReader(data)); !errors.Is(err, ErrTooLarge) {
		t.Errorf("Save = %v, want ErrTooLarge", err)
	}
	// Understated size must still be caught by the copy limit.
	if _, err := store.Save("a.png", "image/png", 1, bytes.NewReader(data)); !errors.Is(err, ErrTooLarge) {
		t.Errorf("Save with understated size = %v, want ErrTooLarge", err)
	}
}

// multipartBody builds a multipart request body with a single file field.
func multipartBody(t *testing.T, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	fw.Write(data)
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestHandlerUpload(t *testing.T) {
	store, _ := NewDiskStore(t.TempDir(), "/images", 0)
	handler := Handler(store)

	body, contentType := multipartBody(t, "pic.png", pngBytes(t, 320, 240))
	req := httptest.NewRequest(http.MethodPost, "/v1/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var img Image
	if err := json.Unmarshal(rec.Body.Bytes(), &img); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if img.ContentType != "image/png" {
		t.Errorf("ContentType = %q", img.ContentType)
	}
	if img.Width != 320 || img.Height != 240 {
		t.Errorf("dimensions = %dx%d, want 320x240", img.Width, img.Height)
	}
	if img.Filename != "pic.png" {
		t.Errorf("Filename = %q", img.Filename)
	}
}

func TestHandlerRejectsNonImage(t *testing.T) {
	store, _ := NewDiskStore(t.TempDir(), "/images", 0)
	handler := Handler(store)

	body, contentType := multipartBody(t, "doc.txt", []byte("just text"))
	req := httptest.NewRequest(http.MethodPost, "/v1/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnsupportedMediaType)
	}
}

func TestHandlerMethodNotAllowed(t *testing.T) {
	store, _ := NewDiskStore(t.TempDir(), "/images", 0)
	req := httptest.NewRequest(http.MethodGet, "/v1/upload", nil)
	rec := httptest.NewRecorder()

	Handler(store).ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
