package core

import (
	"fmt"
	"strings"

	"github.com/juju/errors"
	"gopkg.in/yaml.v2"
)

// Scale is the granularity of the chart grid. Scales are ordered from the
// finest to the coarsest, so they can be compared with < and >.
type Scale int

const (
	ScaleHours Scale = iota
	ScaleDays
	ScaleWeeks
	ScaleMonths
)

var allScales = []Scale{ScaleHours, ScaleDays, ScaleWeeks, ScaleMonths}

var scaleNames = map[Scale]string{
	ScaleHours:  "hours",
	ScaleDays:   "days",
	ScaleWeeks:  "weeks",
	ScaleMonths: "months",
}

func (s Scale) String() string {
	if name, ok := scaleNames[s]; ok {
		return name
	}

	return fmt.Sprintf("Scale(%d)", int(s))
}

// IsValid returns whether s is one of the known scales.
func (s Scale) IsValid() bool {
	_, ok := scaleNames[s]
	return ok
}

// ParseScale parses a scale name like "hours" or "weeks" (case-insensitive).
func ParseScale(s string) (Scale, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, scale := range allScales {
		if scaleNames[scale] == s {
			return scale, nil
		}
	}

	names := make([]string, 0, len(allScales))
	for _, scale := range allScales {
		names = append(names, scaleNames[scale])
	}

	return 0, errors.Errorf("invalid scale %q, valid options are: %s", s, strings.Join(names, ", "))
}

var _ yaml.Unmarshaler = new(Scale)

func (s *Scale) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var str string
	if err := unmarshal(&str); err != nil {
		return errors.Trace(err)
	}

	scale, err := ParseScale(str)
	if err != nil {
		return errors.Trace(err)
	}

	*s = scale
	return nil
}

func (s Scale) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// Nominal hour step factors; only the hours one is ever used for bucketing,
// the other ones are kept so that zooming from any scale has a well defined
// starting point.
const (
	defaultHoursStep = 1
	maxHoursStep     = 12
	zoomStepDelta    = 3
)

// ScaleStep is the scale together with the step factor. The step factor is
// the number of hours coalesced into one column, and it's only meaningful
// for ScaleHours; for the other scales it's always 0.
type ScaleStep struct {
	Scale Scale
	Step  int
}

// NewScaleStep returns a ScaleStep for the given scale with the default step
// factor.
func NewScaleStep(scale Scale) ScaleStep {
	if scale == ScaleHours {
		return ScaleStep{Scale: ScaleHours, Step: defaultHoursStep}
	}

	return ScaleStep{Scale: scale}
}

// hourStep returns the step factor to use for hour bucketing, which is
// never less than 1.
func (ss ScaleStep) hourStep() int {
	if ss.Step < 1 {
		return 1
	}

	return ss.Step
}

func (ss ScaleStep) String() string {
	if ss.Scale == ScaleHours {
		return fmt.Sprintf("%s/%d", ss.Scale, ss.hourStep())
	}

	return ss.Scale.String()
}
