package dataset

import (
	"context"
	"io"
	"os"

	"cloud.google.com/go/storage"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

type gcpStore struct {
	logger zerolog.Logger
	bucket string
	client *storage.Client
}

func NewGCPStore(logger zerolog.Logger, client *storage.Client, bucket string) *gcpStore {
	return &gcpStore{
		logger: logger,
		bucket: bucket,
		client: client,
	}
}

// NewGCPStoreFromEnv builds a GCS store from application default
// credentials.
func NewGCPStoreFromEnv(ctx context.Context, logger zerolog.Logger, bucket string) (*gcpStore, error) {
	creds, err := google.FindDefaultCredentials(ctx, storage.ScopeReadOnly)
	if err != nil {
		return nil, errors.Wrap(err, "error finding GCP credentials")
	}
	client, err := storage.NewClient(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, errors.Wrap(err, "error creating GCS client")
	}
	return NewGCPStore(logger, client, bucket), nil
}

func (s *gcpStore) Reader(ctx context.Context, key string) (io.ReadCloser, error) {
	s.logger.Debug().Str("bucket", s.bucket).Str("key", key).Msgf("fetching gcs object")
	r, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			return nil, errors.Mark(err, os.ErrNotExist)
		}
		return nil, err
	}
	return r, nil
}

func (s *gcpStore) Close() error {
	return s.client.Close()
}
