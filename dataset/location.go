package dataset

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
)

type Scheme string

const (
	SchemeLocal Scheme = "file"
	SchemeS3    Scheme = "s3"
	SchemeGCS   Scheme = "gs"
)

// Location identifies a dataset file. Bucket is empty for local files.
type Location struct {
	Scheme Scheme
	Bucket string
	Key    string
}

func (l Location) String() string {
	if l.Scheme == SchemeLocal {
		return l.Key
	}
	return fmt.Sprintf("%s://%s/%s", l.Scheme, l.Bucket, l.Key)
}

// ParseLocation parses s3://bucket/key, gs://bucket/key, file://path or a
// plain filesystem path.
func ParseLocation(raw string) (Location, error) {
	if raw == "" {
		return Location{}, errors.Newf("empty dataset location")
	}
	idx := strings.Index(raw, "://")
	if idx < 0 {
		return Location{Scheme: SchemeLocal, Key: raw}, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, errors.Wrapf(err, "error parsing dataset location")
	}
	switch Scheme(u.Scheme) {
	case SchemeLocal:
		p := u.Path
		if u.Host != "" {
			p = u.Host + p
		}
		return Location{Scheme: SchemeLocal, Key: p}, nil
	case SchemeS3, SchemeGCS:
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return Location{}, errors.Newf("location %q must be of the form %s://bucket/key", raw, u.Scheme)
		}
		return Location{Scheme: Scheme(u.Scheme), Bucket: u.Host, Key: key}, nil
	default:
		return Location{}, errors.Newf("unsupported dataset location scheme %q", u.Scheme)
	}
}
