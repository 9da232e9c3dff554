package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/bryanwahyu/feedback-analyzer/internal/domain/feedback"
	"github.com/bryanwahyu/feedback-analyzer/internal/infra/source"
)

// maxObjectBytes caps a single dataset object; larger objects are rejected.
const maxObjectBytes int64 = 200 << 20

type opener func(ctx context.Context, key string) (io.ReadCloser, error)

// Store reads datasets from one MinIO/S3 bucket. It never writes.
type Store struct {
	client     *minio.Client
	bucketName string
	region     string
	open       opener
	maxBytes   int64
}

// New buat koneksi MinIO dan pastikan bucket dataset ada
func New(ctx context.Context, endpoint, region, bucket, accessKey, secretKey string, useSSL bool) (*Store, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, err
	}

	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("bucket %q does not exist", bucket)
	}

	s := &Store{client: cli, bucketName: bucket, region: region, maxBytes: maxObjectBytes}
	s.open = s.getObject
	return s, nil
}

// Load implementasi feedback.Source untuk object key
func (s *Store) Load(ctx context.Context, ref feedback.DatasetRef) (*feedback.Table, error) {
	key := strings.TrimPrefix(ref.Key, "/")
	if !ValidKey(key) {
		return nil, &feedback.InputError{Op: "load object", Err: feedback.ErrInvalidReference, Detail: ref.Key}
	}

	rc, err := s.open(ctx, key)
	if err != nil {
		return nil, s.mapErr(key, err)
	}
	defer rc.Close()

	tbl, err := source.Parse(path.Base(key), &limitedReader{r: rc, n: s.maxBytes})
	if err != nil {
		if errors.Is(err, errTooLarge) {
			return nil, &feedback.InputError{Op: "load object", Err: feedback.ErrUnreadable, Detail: err.Error()}
		}
		// error dari minio baru muncul saat read pertama
		var resp minio.ErrorResponse
		if errors.As(err, &resp) {
			return nil, s.mapErr(key, resp)
		}
		return nil, err
	}
	return tbl, nil
}

// Ping cek bucket masih bisa diakses (untuk health check)
func (s *Store) Ping(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %q not found", s.bucketName)
	}
	return nil
}

func (s *Store) getObject(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

func (s *Store) mapErr(key string, err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return &feedback.InputError{Op: "load object", Err: feedback.ErrDatasetNotFound, Detail: key}
	}
	return fmt.Errorf("get object %s/%s: %w", s.bucketName, key, err)
}

// ValidKey accepts relative object keys without parent references.
func ValidKey(key string) bool {
	if key == "" || len(key) > 1024 || strings.HasPrefix(key, "/") {
		return false
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return !strings.ContainsAny(key, "\x00\\")
}

var errTooLarge = errors.New("dataset object exceeds size limit")

type limitedReader struct {
	r io.Reader
	n int64
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.n <= 0 {
		return 0, errTooLarge
	}
	if int64(len(p)) > l.n {
		p = p[:l.n]
	}
	n, err := l.r.Read(p)
	l.n -= int64(n)
	return n, err
}
