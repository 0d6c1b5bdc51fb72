// Package objectstore reads a CSV export of the price table from
// S3-compatible storage.
package objectstore

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/couchcryptid/market-prices-dashboard/internal/domain"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config holds the connection settings for the object store.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
	Bucket    string
	Object    string
}

// Source implements dataset.Source by decoding a CSV object.
type Source struct {
	client *minio.Client
	bucket string
	object string
	logger *slog.Logger
}

// NewSource creates an object-store source. No request is made until Fetch.
func NewSource(cfg Config, logger *slog.Logger) (*Source, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &Source{client: client, bucket: cfg.Bucket, object: cfg.Object, logger: logger}, nil
}

// Fetch downloads and decodes the CSV object.
func (s *Source) Fetch(ctx context.Context) ([]domain.PriceRecord, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, classify(err)
	}
	defer obj.Close()

	info, err := obj.Stat()
	if err != nil {
		return nil, classify(err)
	}
	s.logger.Debug("fetching price export", "bucket", s.bucket, "object", s.object, "size", info.Size)

	records, err := domain.ReadCSV(obj)
	if err != nil {
		return nil, fmt.Errorf("decode s3://%s/%s: %w", s.bucket, s.object, err)
	}
	return records, nil
}

// classify maps S3 errors onto the domain error kinds. A missing bucket or
// object means the table is absent. Transport failures and 5xx replies mean
// the store is unreachable. Other replies, such as rejected credentials, keep
// no domain kind.
func classify(err error) error {
	resp := minio.ToErrorResponse(err)
	switch {
	case resp.Code == "NoSuchBucket", resp.Code == "NoSuchKey":
		return fmt.Errorf("%w: %w", domain.ErrSchema, err)
	case resp.Code == "", resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %w", domain.ErrConnection, err)
	}
	return fmt.Errorf("object store: %w", err)
}
