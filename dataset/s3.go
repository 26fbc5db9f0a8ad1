package dataset

import (
	"context"
	"io"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

type s3Store struct {
	logger zerolog.Logger
	bucket string
	client s3iface.S3API
}

func NewS3Store(logger zerolog.Logger, client s3iface.S3API, bucket string) *s3Store {
	return &s3Store{
		logger: logger,
		bucket: bucket,
		client: client,
	}
}

// NewS3StoreFromEnv builds an S3 store using the shared AWS config
// (environment, ~/.aws).
func NewS3StoreFromEnv(logger zerolog.Logger, bucket string) (*s3Store, error) {
	sess, err := session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error creating AWS session")
	}
	return NewS3Store(logger, s3.New(sess), bucket), nil
}

func (s *s3Store) Reader(ctx context.Context, key string) (io.ReadCloser, error) {
	s.logger.Debug().Str("bucket", s.bucket).Str("key", key).Msgf("fetching s3 object")
	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && (aerr.Code() == s3.ErrCodeNoSuchKey || aerr.Code() == s3.ErrCodeNoSuchBucket) {
			return nil, errors.Mark(err, os.ErrNotExist)
		}
		return nil, err
	}
	return out.Body, nil
}

func (s *s3Store) Close() error {
	return nil
}
