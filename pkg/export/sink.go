package export

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/rivulet-dev/rivulet/internal/errors"
)

// ObjectPutter is the slice of the S3 client the sink needs. *s3.Client
// satisfies it; tests provide a fake.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink accumulates rendered output and uploads it as one S3 object on
// Commit. Flush is a no-op so a streaming renderer can flush section
// boundaries without splitting the export into multiple objects.
type S3Sink struct {
	client      ObjectPutter
	bucket      string
	key         string
	contentType string

	mu        sync.Mutex
	buf       bytes.Buffer
	committed bool
}

// S3SinkOption configures an S3Sink.
type S3SinkOption func(*S3Sink)

// WithContentType overrides the Content-Type of the uploaded object.
// The default is "text/html; charset=utf-8".
func WithContentType(ct string) S3SinkOption {
	return func(s *S3Sink) {
		s.contentType = ct
	}
}

// NewS3Sink creates a sink that uploads to the given bucket and key.
func NewS3Sink(client ObjectPutter, bucket, key string, opts ...S3SinkOption) *S3Sink {
	s := &S3Sink{
		client:      client,
		bucket:      bucket,
		key:         key,
		contentType: "text/html; charset=utf-8",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *S3Sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.committed {
		return 0, errors.New("E041")
	}
	return s.buf.Write(p)
}

func (s *S3Sink) WriteString(str string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.committed {
		return 0, errors.New("E041")
	}
	return s.buf.WriteString(str)
}

// Flush is a no-op. Content leaves the sink only on Commit.
func (s *S3Sink) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.committed {
		return errors.New("E041")
	}
	return ctx.Err()
}

// Buffered reports how many bytes are waiting to be committed.
func (s *S3Sink) Buffered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Len()
}

// Commit uploads the accumulated content. A sink can be committed once;
// further writes or commits return an error.
func (s *S3Sink) Commit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.committed {
		return errors.New("E041").WithDetail(fmt.Sprintf("key %q", s.key))
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(s.buf.Bytes()),
		ContentType: aws.String(s.contentType),
		Metadata: map[string]string{
			"export-time": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return fmt.Errorf("s3 upload failed: %w", err)
	}

	s.committed = true
	s.buf.Reset()
	return nil
}
