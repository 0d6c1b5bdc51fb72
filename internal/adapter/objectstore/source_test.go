package objectstore

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/couchcryptid/market-prices-dashboard/internal/domain"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = "county,market,Commodity,unit,kg,price,year,month\nNairobi City,Wakulima,Maize,Bag,90,55,2023,June\n"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSource(t *testing.T, handler http.HandlerFunc) *Source {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	src, err := NewSource(Config{
		Endpoint:  strings.TrimPrefix(srv.URL, "http://"),
		AccessKey: "minio",
		SecretKey: "minio123",
		Region:    "us-east-1",
		Bucket:    "prices",
		Object:    "prices.csv",
	}, discardLogger())
	require.NoError(t, err)
	return src
}

func TestFetch_DecodesCSV(t *testing.T) {
	src := testSource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/prices/prices.csv", r.URL.Path)
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Last-Modified", "Mon, 03 Jun 2024 08:00:00 GMT")
		w.Header().Set("ETag", `"abc"`)
		_, _ = io.WriteString(w, testCSV)
	})

	records, err := src.Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "Nairobi City", records[0].County)
	assert.Equal(t, 55.0, records[0].Price)
}

func TestFetch_MissingObjectIsSchemaError(t *testing.T) {
	src := testSource(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message><Key>prices.csv</Key><BucketName>prices</BucketName></Error>`)
	})

	_, err := src.Fetch(context.Background())
	require.ErrorIs(t, err, domain.ErrSchema)
}

func TestFetch_AccessDeniedIsNotConnectionError(t *testing.T) {
	src := testSource(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>InvalidAccessKeyId</Code><Message>The access key does not exist.</Message><Key>prices.csv</Key><BucketName>prices</BucketName></Error>`)
	})

	_, err := src.Fetch(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrConnection)
	assert.NotErrorIs(t, err, domain.ErrSchema)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		connection bool
		schema     bool
	}{
		{"no such key", minio.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound}, false, true},
		{"no such bucket", minio.ErrorResponse{Code: "NoSuchBucket", StatusCode: http.StatusNotFound}, false, true},
		{"access denied", minio.ErrorResponse{Code: "AccessDenied", StatusCode: http.StatusForbidden}, false, false},
		{"bad signature", minio.ErrorResponse{Code: "SignatureDoesNotMatch", StatusCode: http.StatusForbidden}, false, false},
		{"server unavailable", minio.ErrorResponse{Code: "ServiceUnavailable", StatusCode: http.StatusServiceUnavailable}, true, false},
		{"transport", errors.New("dial tcp: connection refused"), true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify(tt.err)
			assert.Equal(t, tt.connection, errors.Is(err, domain.ErrConnection))
			assert.Equal(t, tt.schema, errors.Is(err, domain.ErrSchema))
		})
	}
}
