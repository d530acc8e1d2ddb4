package core

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dimonomid/gantt/calendar"
	"github.com/juju/errors"
)

// knownTimeLayouts are the layouts which ParseTimeOrOffset understands, in
// addition to the "/Date(...)/" strings.
var knownTimeLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"Jan _2 2006",
	"Jan _2 2006 15:04",
	"02-Jan-2006",
	"2006/01/02",
}

// DetectTimeLayout returns the first of the known layouts which parses the
// whole string s, or an empty string if there is no such layout.
func DetectTimeLayout(s string) string {
	for _, layout := range knownTimeLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return layout
		}
	}

	return ""
}

// TimeOrOffset is either an absolute point in time, or an offset relative to
// some other time (usually "now"). The zero value is the zero offset, i.e.
// "now" itself.
type TimeOrOffset struct {
	Time time.Time

	// Days is a calendar offset: adding a day always gets to the same wall
	// clock time of the next day, regardless of DST. Dur is added after Days.
	Days int
	Dur  time.Duration
}

func (t TimeOrOffset) IsZero() bool {
	return t.Time.IsZero() && t.Days == 0 && t.Dur == 0
}

func (t TimeOrOffset) IsAbsolute() bool {
	return !t.Time.IsZero()
}

// AbsoluteTime returns the exact point in time, either relative to the
// provided relativeTo, or if it represents an absolute point in time already,
// then just returns it (and then relativeTo is ignored).
//
// If relativeTo is zero, AbsoluteTime panics.
func (t TimeOrOffset) AbsoluteTime(relativeTo time.Time) time.Time {
	if relativeTo.IsZero() {
		panic("relativeTo can't be zero")
	}

	if !t.Time.IsZero() {
		return t.Time
	}

	return calendar.AddDays(relativeTo, t.Days).Add(t.Dur)
}

func (t TimeOrOffset) String() string {
	if !t.Time.IsZero() {
		if t.Time.Hour() == 0 && t.Time.Minute() == 0 {
			return t.Time.Format(knownTimeLayouts[0])
		}

		return t.Time.Format(knownTimeLayouts[1])
	}

	if t.IsZero() {
		return "now"
	}

	var sb strings.Builder
	if t.Days != 0 {
		if t.Days%7 == 0 {
			sb.WriteString(strconv.Itoa(t.Days/7) + "w")
		} else {
			sb.WriteString(strconv.Itoa(t.Days) + "d")
		}
	}
	if t.Dur != 0 {
		sb.WriteString(t.Dur.String())
	}

	return sb.String()
}

var calendarOffsetRe = regexp.MustCompile(`^([+-]?\d+)([dw])$`)

// ParseTimeOrOffset parses a string as one of:
//
//   - "now" (or an empty string), which is the zero offset;
//   - a calendar offset like "-3d" or "+2w";
//   - a duration like "-36h" (see time.ParseDuration);
//   - a date string like "/Date(2024,2,10)/", see ParseDateString;
//   - an absolute time in one of the known layouts, like "2024-03-10" or
//     "2024-03-10 15:04"; it's interpreted in loc.
func ParseTimeOrOffset(s string, loc *time.Location) (TimeOrOffset, error) {
	s = strings.TrimSpace(s)

	if s == "" || s == "now" {
		return TimeOrOffset{}, nil
	}

	if m := calendarOffsetRe.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return TimeOrOffset{}, errors.Trace(err)
		}

		if m[2] == "w" {
			n *= 7
		}

		return TimeOrOffset{Days: n}, nil
	}

	if dur, err := time.ParseDuration(s); err == nil {
		return TimeOrOffset{Dur: dur}, nil
	}

	if strings.HasPrefix(s, "/Date(") {
		t, err := ParseDateString(s, loc)
		if err != nil {
			return TimeOrOffset{}, errors.Trace(err)
		}

		return TimeOrOffset{Time: t}, nil
	}

	layout := DetectTimeLayout(s)
	if layout == "" {
		return TimeOrOffset{}, errors.Errorf(
			"invalid time %q; try something like 2024-03-10, 2024-03-10 15:04, -3d or now", s,
		)
	}

	t, err := time.ParseInLocation(layout, s, loc)
	if err != nil {
		return TimeOrOffset{}, errors.Trace(err)
	}

	return TimeOrOffset{Time: t}, nil
}
