package dataset

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"cloud.google.com/go/storage"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

// newFakeGCSServer serves objects by path. Both the XML (/bucket/key) and the
// JSON (/storage/v1/b/bucket/o/key) read paths end in bucket and key.
func newFakeGCSServer(t *testing.T, objects map[string]string) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for name, body := range objects {
			if strings.HasSuffix(r.URL.Path, name) {
				w.Header().Set("Content-Type", "text/csv")
				w.Header().Set("Content-Length", fmt.Sprintf("%d", len(body)))
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(body))
				return
			}
		}
		http.Error(w, "not found", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGCPStore_Reader(t *testing.T) {
	ctx := context.Background()
	srv := newFakeGCSServer(t, map[string]string{"nangs/asdf/train.csv": "A,B\n1,2\n"})
	client, err := storage.NewClient(
		ctx,
		option.WithEndpoint(srv.URL+"/storage/v1/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	store := NewGCPStore(zerolog.New(os.Stderr), client, "nangs")
	defer func() { require.NoError(t, store.Close()) }()

	t.Run("found", func(t *testing.T) {
		rc, err := store.Reader(ctx, "asdf/train.csv")
		require.NoError(t, err)
		tbl, err := Read(rc, DefaultReadOptions())
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		require.Equal(t, []string{"A", "B"}, tbl.Columns)
		require.Equal(t, 1, tbl.NumRows())
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := store.Reader(ctx, "asdf/test.csv")
		require.Error(t, err)
		require.True(t, errors.Is(err, os.ErrNotExist))
		require.True(t, errors.Is(err, storage.ErrObjectNotExist))
	})
}
