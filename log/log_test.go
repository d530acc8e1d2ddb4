package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	type testCase struct {
		in      string
		want    LogLevel
		wantErr bool
	}

	testCases := []testCase{
		{in: "info", want: Info},
		{in: " Warning ", want: Warning},
		{in: "warn", want: Warning},
		{in: "debug", want: Verbose1},
		{in: "verbose3", want: Verbose3},
		{in: "error", want: Error},
		{in: "loud", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseLevel(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLoggerLevelsAndNamespaces(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	l := NewLogger(Info).WithNamespaceAppended("chart").WithNamespaceAppended("zoom")
	l.Verbose1f("not shown")
	l.Infof("zoomed to %s", "weeks")

	out := buf.String()
	assert.NotContains(t, out, "not shown")
	assert.Contains(t, out, "[chart/zoom] zoomed to weeks\n")

	// A nil logger is usable and logs at Info and above.
	buf.Reset()
	var nilLogger *Logger
	nilLogger.Verbose2f("hidden")
	nilLogger.Warnf("careful")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "careful\n")
}
