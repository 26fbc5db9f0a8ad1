package report

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLogReporter(t *testing.T) {
	for _, tc := range []struct {
		desc     string
		obj      ReportableObject
		expected string
	}{
		{
			desc:     "column count mismatch",
			obj:      ColumnCountMismatch{Dataset: Training, Expected: 3, Actual: 4},
			expected: `{"level":"warn","dataset":"training","expected_columns":3,"actual_columns":4,"message":"column count mismatch"}` + "\n",
		},
		{
			desc:     "missing columns",
			obj:      MissingColumns{Dataset: Testing, Columns: []string{"C", "D"}},
			expected: `{"level":"warn","dataset":"testing","missing_columns":["C","D"],"message":"missing columns"}` + "\n",
		},
		{
			desc:     "status",
			obj:      StatusReport{Info: "data validation complete"},
			expected: `{"level":"info","message":"data validation complete"}` + "\n",
		},
		{
			desc:     "unknown",
			obj:      42,
			expected: `{"level":"error","type":"int","message":"unknown object type"}` + "\n",
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			var buf bytes.Buffer
			r := LogReporter{Logger: zerolog.New(&buf)}
			r.Report(tc.obj)
			r.Close()
			require.Equal(t, tc.expected, buf.String())
		})
	}
}

func TestCombinedReporter(t *testing.T) {
	var a, b CollectingReporter
	r := CombinedReporter{Reporters: []Reporter{&a, &b}}
	objs := []ReportableObject{
		StatusReport{Info: "starting"},
		MissingColumns{Dataset: Training, Columns: []string{"C"}},
	}
	for _, obj := range objs {
		r.Report(obj)
	}
	r.Close()
	require.Equal(t, objs, a.Objects)
	require.Equal(t, objs, b.Objects)
}
