package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectTimeLayout(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"2024-03-10", "2006-01-02"},
		{"2024-03-10 15:04", "2006-01-02 15:04"},
		{"2024-03-10T15:04", "2006-01-02T15:04"},
		{"2024-03-10T15:04:05+02:00", "2006-01-02T15:04:05Z07:00"},
		{"Mar  9 2024", "Jan _2 2006"},
		{"Mar 10 2024", "Jan _2 2006"},
		{"10-Mar-2024", "02-Jan-2006"},
		{"2024/03/10", "2006/01/02"},
		{"yesterday", ""},
		{"2024-03-10 extra", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectTimeLayout(tc.in))
		})
	}
}

func TestParseTimeOrOffset(t *testing.T) {
	nyc := mustLoadLocation(t, "America/New_York")

	type timeOrOffsetTestCase struct {
		in      string
		want    TimeOrOffset
		wantStr string
		wantErr bool
	}

	testCases := []timeOrOffsetTestCase{
		{in: "", want: TimeOrOffset{}, wantStr: "now"},
		{in: "now", want: TimeOrOffset{}, wantStr: "now"},
		{in: "-3d", want: TimeOrOffset{Days: -3}, wantStr: "-3d"},
		{in: "+2w", want: TimeOrOffset{Days: 14}, wantStr: "2w"},
		{in: "-36h", want: TimeOrOffset{Dur: -36 * time.Hour}, wantStr: "-36h0m0s"},
		{
			in:      "2024-03-10",
			want:    TimeOrOffset{Time: time.Date(2024, time.March, 10, 0, 0, 0, 0, nyc)},
			wantStr: "2024-03-10",
		},
		{
			in:      "2024-03-10 15:04",
			want:    TimeOrOffset{Time: time.Date(2024, time.March, 10, 15, 4, 0, 0, nyc)},
			wantStr: "2024-03-10 15:04",
		},
		{
			in:      "/Date(2024,2,10,5)/",
			want:    TimeOrOffset{Time: time.Date(2024, time.March, 10, 5, 0, 0, 0, nyc)},
			wantStr: "2024-03-10 05:00",
		},
		{in: "/Date(2024,2,40)/", wantErr: true},
		{in: "someday", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseTimeOrOffset(tc.in, nyc)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want.Days, got.Days)
			assert.Equal(t, tc.want.Dur, got.Dur)
			assert.True(t, tc.want.Time.Equal(got.Time), "want %s, got %s", tc.want.Time, got.Time)
			assert.Equal(t, tc.wantStr, got.String())
		})
	}
}

func TestTimeOrOffsetAbsoluteTime(t *testing.T) {
	nyc := mustLoadLocation(t, "America/New_York")
	now := time.Date(2024, time.March, 9, 12, 0, 0, 0, nyc)

	// Calendar days keep the wall clock time even across DST.
	got := TimeOrOffset{Days: 2}.AbsoluteTime(now)
	assert.Equal(t, time.Date(2024, time.March, 11, 12, 0, 0, 0, nyc), got)

	got = TimeOrOffset{Dur: 48 * time.Hour}.AbsoluteTime(now)
	assert.Equal(t, time.Date(2024, time.March, 11, 13, 0, 0, 0, nyc), got.In(nyc))

	abs := time.Date(2020, time.January, 1, 0, 0, 0, 0, nyc)
	assert.Equal(t, abs, TimeOrOffset{Time: abs}.AbsoluteTime(now))

	assert.Panics(t, func() {
		TimeOrOffset{}.AbsoluteTime(time.Time{})
	})
}
