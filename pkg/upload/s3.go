package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Store stores images in AWS S3.
//
// Example usage:
//
//	cfg, _ := config.LoadDefaultConfig(context.Background())
//	store := upload.NewS3Store(s3.NewFromConfig(cfg), "my-bucket", "images/", "https://cdn.example.com", 10<<20)
//
//	r.Post("/v1/upload", upload.Handler(store))
type S3Store struct {
	client  *s3.Client
	bucket  string
	prefix  string
	baseURL string
	maxSize int64
	timeout time.Duration
}

// NewS3Store creates an S3 upload store.
//
// Parameters:
//   - client: AWS S3 client from aws-sdk-go-v2
//   - bucket: S3 bucket name
//   - prefix: key prefix for images (e.g. "images/")
//   - baseURL: public URL base the bucket is served from
//   - maxSize: maximum image size in bytes (0 = no limit)
func NewS3Store(client *s3.Client, bucket, prefix, baseURL string, maxSize int64) *S3Store {
	return &S3Store{
		client:  client,
		bucket:  bucket,
		prefix:  prefix,
		baseURL: baseURL,
		maxSize: maxSize,
		timeout: 30 * time.Second,
	}
}

// WithTimeout sets the per-operation timeout.
func (s *S3Store) WithTimeout(d time.Duration) *S3Store {
	s.timeout = d
	return s
}

// Save implements Store.
func (s *S3Store) Save(filename, contentType string, size int64, r io.Reader) (*Image, error) {
	if s.maxSize > 0 && size > s.maxSize {
		return nil, ErrTooLarge
	}

	id := generateID()
	key := s.prefix + id

	// Buffer the image; uploads are bounded by maxSize so this stays
	// small. Multipart upload is not worth it at these sizes.
	var buf bytes.Buffer
	if s.maxSize > 0 {
		limited := io.LimitReader(r, s.maxSize+1)
		n, err := io.Copy(&buf, limited)
		if err != nil {
			return nil, err
		}
		if n > s.maxSize {
			return nil, ErrTooLarge
		}
	} else {
		if _, err := io.Copy(&buf, r); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"original-filename": filename,
			"upload-time":       time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("s3 upload failed: %w", err)
	}

	return &Image{
		ID:          id,
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(buf.Len()),
		URL:         s.baseURL + "/" + key,
	}, nil
}

// Open implements Store.
func (s *S3Store) Open(id string) (io.ReadCloser, error) {
	// The response body streams to the caller after Open returns, so
	// the request context must outlive this call.
	out, err := s.client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.prefix + id),
	})
	if err != nil {
		var notFound *types.NoSuchKey
		if errors.As(err, &notFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("s3 get failed: %w", err)
	}
	return out.Body, nil
}

// Delete implements Store.
func (s *S3Store) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.prefix + id),
	})
	if err != nil {
		return fmt.Errorf("s3 delete failed: %w", err)
	}
	return nil
}
