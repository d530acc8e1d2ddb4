package core

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/juju/errors"
)

// Entry is a single row of the chart.
type Entry struct {
	// ID is an opaque row identifier, passed to the OnAddClick hook.
	ID string

	Name     string
	Desc     string
	CSSClass string

	Bars []Bar
}

// Bar is a date range drawn inside a row. Both From and To are inclusive in
// terms of columns: a bar which starts and ends in the same column takes one
// column.
type Bar struct {
	From time.Time
	To   time.Time

	Label       string
	Desc        string
	CustomClass string

	// Payload is an opaque value passed to the OnItemClick hook as is.
	Payload json.RawMessage
}

// dateStringRe matches strings like "/Date(1320192000000)/" or
// "/Date(2024,2,10,5,30)/".
var dateStringRe = regexp.MustCompile(`^/Date\(\s*(-?\d+(?:\s*,\s*-?\d+)*)\s*\)/$`)

// ParseDateString parses a date string in one of two forms:
//
//   - "/Date(<ms>)/", where ms is milliseconds since the unix epoch;
//   - "/Date(<year>,<month>[,<day>[,<hour>[,<minute>]]])/", where month is
//     zero-based, like in the Date constructor call which this format mimics.
//
// In both cases the value is interpreted as UTC, and then the resulting
// numeric fields (year, month, day, hour and minute; seconds are dropped)
// are used as-is to build the wall-clock time in loc. So "/Date(0)/" is
// always midnight of Jan 1, 1970, in whatever location.
func ParseDateString(s string, loc *time.Location) (time.Time, error) {
	m := dateStringRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return time.Time{}, errors.Errorf("invalid date string %q, expected something like /Date(1320192000000)/", s)
	}

	parts := strings.Split(m[1], ",")
	nums := make([]int64, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return time.Time{}, errors.Annotatef(err, "parsing %q", s)
		}
		nums = append(nums, n)
	}

	if len(nums) == 1 {
		u := time.UnixMilli(nums[0]).UTC()
		return time.Date(u.Year(), u.Month(), u.Day(), u.Hour(), u.Minute(), 0, 0, loc), nil
	}

	if len(nums) > 5 {
		return time.Time{}, errors.Errorf("invalid date string %q: at most 5 fields are supported", s)
	}

	// Defaults for day, hour and minute.
	fields := []int64{0, 0, 1, 0, 0}
	copy(fields, nums)

	limits := []struct {
		name     string
		min, max int64
	}{
		{"year", 1, 9999},
		{"month", 0, 11},
		{"day", 1, 31},
		{"hour", 0, 23},
		{"minute", 0, 59},
	}
	for i, lim := range limits {
		if fields[i] < lim.min || fields[i] > lim.max {
			return time.Time{}, errors.Errorf(
				"invalid date string %q: %s %d is out of range [%d, %d]",
				s, lim.name, fields[i], lim.min, lim.max,
			)
		}
	}

	t := time.Date(
		int(fields[0]), time.Month(fields[1]+1), int(fields[2]),
		int(fields[3]), int(fields[4]), 0, 0, loc,
	)
	if t.Day() != int(fields[2]) {
		return time.Time{}, errors.Errorf("invalid date string %q: no such day in the month", s)
	}

	return t, nil
}

// FormatDateString is the inverse of ParseDateString: it formats the
// wall-clock fields of t as "/Date(<ms>)/".
func FormatDateString(t time.Time) string {
	u := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
	return "/Date(" + strconv.FormatInt(u.UnixMilli(), 10) + ")/"
}

type jsonEntry struct {
	ID       json.RawMessage `json:"id,omitempty"`
	Name     string          `json:"name"`
	Desc     string          `json:"desc,omitempty"`
	CSSClass string          `json:"cssClass,omitempty"`
	Values   []jsonBar       `json:"values"`
}

type jsonBar struct {
	From        string          `json:"from"`
	To          string          `json:"to"`
	Label       string          `json:"label,omitempty"`
	Desc        string          `json:"desc,omitempty"`
	CustomClass string          `json:"customClass,omitempty"`
	DataObj     json.RawMessage `json:"dataObj,omitempty"`
}

// ParseEntries parses the JSON data: an array of entries like
//
//	{"name": "...", "desc": "...", "id": 1, "values": [
//	  {"from": "/Date(1320192000000)/", "to": "/Date(1322401600000)/",
//	   "label": "...", "customClass": "...", "dataObj": {...}}
//	]}
//
// All dates are interpreted in loc, see ParseDateString.
func ParseEntries(data []byte, loc *time.Location) ([]Entry, error) {
	var jsEntries []jsonEntry
	if err := json.Unmarshal(data, &jsEntries); err != nil {
		return nil, errors.Annotatef(err, "unmarshaling entries")
	}

	entries := make([]Entry, 0, len(jsEntries))
	for i, jse := range jsEntries {
		entry := Entry{
			ID:       rawID(jse.ID),
			Name:     jse.Name,
			Desc:     jse.Desc,
			CSSClass: jse.CSSClass,
			Bars:     make([]Bar, 0, len(jse.Values)),
		}

		for j, jsb := range jse.Values {
			from, err := ParseDateString(jsb.From, loc)
			if err != nil {
				return nil, errors.Annotatef(err, "entry #%d (%s), value #%d, from", i, jse.Name, j)
			}

			to, err := ParseDateString(jsb.To, loc)
			if err != nil {
				return nil, errors.Annotatef(err, "entry #%d (%s), value #%d, to", i, jse.Name, j)
			}

			entry.Bars = append(entry.Bars, Bar{
				From:        from,
				To:          to,
				Label:       jsb.Label,
				Desc:        jsb.Desc,
				CustomClass: jsb.CustomClass,
				Payload:     jsb.DataObj,
			})
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// rawID returns the string value of a JSON id, which can be either a string
// or any other JSON value (usually a number).
func rawID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	return string(raw)
}

// LoadEntriesFromFile reads and parses the JSON data file, see ParseEntries.
func LoadEntriesFromFile(path string, loc *time.Location) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Annotatef(err, "opening data file: %s", path)
	}
	defer file.Close()

	data, err := ioutil.ReadAll(file)
	if err != nil {
		return nil, errors.Annotatef(err, "reading data file %s", path)
	}

	entries, err := ParseEntries(data, loc)
	if err != nil {
		return nil, errors.Annotatef(err, "parsing data file %s", path)
	}

	return entries, nil
}

// EncodeEntries is the inverse of ParseEntries.
func EncodeEntries(entries []Entry) ([]byte, error) {
	jsEntries := make([]jsonEntry, 0, len(entries))
	for _, entry := range entries {
		jse := jsonEntry{
			Name:     entry.Name,
			Desc:     entry.Desc,
			CSSClass: entry.CSSClass,
			Values:   make([]jsonBar, 0, len(entry.Bars)),
		}

		if entry.ID != "" {
			id, err := json.Marshal(entry.ID)
			if err != nil {
				return nil, errors.Trace(err)
			}
			jse.ID = id
		}

		for _, bar := range entry.Bars {
			jse.Values = append(jse.Values, jsonBar{
				From:        FormatDateString(bar.From),
				To:          FormatDateString(bar.To),
				Label:       bar.Label,
				Desc:        bar.Desc,
				CustomClass: bar.CustomClass,
				DataObj:     bar.Payload,
			})
		}

		jsEntries = append(jsEntries, jse)
	}

	data, err := json.MarshalIndent(jsEntries, "", "  ")
	if err != nil {
		return nil, errors.Trace(err)
	}

	return data, nil
}

// FilterEntries returns only the entries whose names match at least one of
// the comma-separated glob patterns, like "build-*,deploy-?". An empty
// pattern matches everything.
func FilterEntries(entries []Entry, patterns string) ([]Entry, error) {
	if strings.TrimSpace(patterns) == "" {
		return entries, nil
	}

	var matchers []glob.Glob
	for _, part := range strings.Split(patterns, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		matcher, err := glob.Compile(part)
		if err != nil {
			return nil, errors.Annotatef(err, "parsing %q as a glob pattern", part)
		}

		matchers = append(matchers, matcher)
	}

	var ret []Entry
	for _, entry := range entries {
		for _, matcher := range matchers {
			if matcher.Match(entry.Name) {
				ret = append(ret, entry)
				break
			}
		}
	}

	return ret, nil
}
