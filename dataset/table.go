// Package dataset reads the delimited files produced by ingestion into
// in-memory tables.
package dataset

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

const DefaultDelimiter = ','

// Table is an in-memory dataset. Rows are positionally aligned with
// Columns.
type Table struct {
	Columns []string
	Rows    [][]string
}

func (t *Table) NumRows() int {
	return len(t.Rows)
}

// ColumnSet returns the set of column names in the table.
func (t *Table) ColumnSet() map[string]struct{} {
	ret := make(map[string]struct{}, len(t.Columns))
	for _, c := range t.Columns {
		ret[c] = struct{}{}
	}
	return ret
}

type ReadOptions struct {
	Delimiter rune
}

func DefaultReadOptions() ReadOptions {
	return ReadOptions{Delimiter: DefaultDelimiter}
}

// Read parses delimited data whose first record is the header.
func Read(in io.Reader, opts ReadOptions) (*Table, error) {
	r := csv.NewReader(in)
	if opts.Delimiter != 0 {
		r.Comma = opts.Delimiter
	}
	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.Newf("no columns to parse from file")
		}
		return nil, errors.Wrap(err, "error reading header")
	}
	t := &Table{Columns: make([]string, len(header))}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		t.Columns[i] = strings.TrimSpace(h)
	}
	for {
		record, err := r.Read()
		if err != nil {
			if err == io.EOF {
				return t, nil
			}
			return nil, errors.Wrapf(err, "error reading row %d", len(t.Rows)+1)
		}
		t.Rows = append(t.Rows, record)
	}
}

// Load reads the table stored at loc.
func Load(ctx context.Context, logger zerolog.Logger, loc Location, opts ReadOptions) (*Table, error) {
	store, err := NewStore(ctx, logger, loc)
	if err != nil {
		return nil, err
	}
	t, err := func() (*Table, error) {
		rc, err := store.Reader(ctx, loc.Key)
		if err != nil {
			return nil, err
		}
		t, err := Read(rc, opts)
		if err != nil {
			return nil, errors.CombineErrors(err, rc.Close())
		}
		return t, rc.Close()
	}()
	if err != nil {
		return nil, errors.CombineErrors(errors.Wrapf(err, "error loading %s", loc), store.Close())
	}
	logger.Debug().
		Str("location", loc.String()).
		Int("num_columns", len(t.Columns)).
		Int("num_rows", t.NumRows()).
		Msgf("loaded table")
	return t, store.Close()
}
