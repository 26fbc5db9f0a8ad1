package dataset

import (
	"context"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// Store serves dataset files by key.
type Store interface {
	Reader(ctx context.Context, key string) (io.ReadCloser, error)
	Close() error
}

// NewStore returns the store which serves loc.
func NewStore(ctx context.Context, logger zerolog.Logger, loc Location) (Store, error) {
	switch loc.Scheme {
	case SchemeLocal:
		return NewLocalStore(logger), nil
	case SchemeS3:
		s, err := NewS3StoreFromEnv(logger, loc.Bucket)
		if err != nil {
			return nil, err
		}
		return s, nil
	case SchemeGCS:
		s, err := NewGCPStoreFromEnv(ctx, logger, loc.Bucket)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, errors.AssertionFailedf("unknown scheme %q", loc.Scheme)
}

type localStore struct {
	logger zerolog.Logger
}

func NewLocalStore(logger zerolog.Logger) *localStore {
	return &localStore{logger: logger}
}

func (l *localStore) Reader(ctx context.Context, key string) (io.ReadCloser, error) {
	l.logger.Debug().Str("path", key).Msgf("opening file")
	return os.Open(key)
}

func (l *localStore) Close() error {
	return nil
}
