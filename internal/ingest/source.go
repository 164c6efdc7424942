package ingest

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pageza/recipe-explorer/backend/config"
)

const s3Scheme = "s3"

// ObjectGetter is the part of the S3 client used to read a source object.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Source is a local path or an s3://bucket/key location.
type Source struct {
	Path   string
	Bucket string
	Key    string
}

// ParseSource interprets raw as an S3 URL when it uses the s3 scheme and as a
// filesystem path otherwise.
func ParseSource(raw string) (Source, error) {
	if !strings.HasPrefix(raw, s3Scheme+"://") {
		if raw == "" {
			return Source{}, fmt.Errorf("empty source")
		}
		return Source{Path: raw}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Source{}, fmt.Errorf("invalid S3 source %q: %w", raw, err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return Source{}, fmt.Errorf("invalid S3 source %q: want s3://bucket/key", raw)
	}
	return Source{Bucket: u.Host, Key: key}, nil
}

// IsS3 reports whether the source lives in object storage.
func (s Source) IsS3() bool {
	return s.Bucket != ""
}

func (s Source) String() string {
	if s.IsS3() {
		return fmt.Sprintf("%s://%s/%s", s3Scheme, s.Bucket, s.Key)
	}
	return s.Path
}

// Open returns a reader over the source. objects is only used for S3 sources.
func (s Source) Open(ctx context.Context, objects ObjectGetter) (io.ReadCloser, error) {
	if !s.IsS3() {
		f, err := os.Open(s.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open source: %w", err)
		}
		return f, nil
	}

	if objects == nil {
		return nil, fmt.Errorf("no S3 client configured for %s", s)
	}
	out, err := objects.GetObject(ctx, config.GetObjectInput(s.Bucket, s.Key))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", s, err)
	}
	return out.Body, nil
}
