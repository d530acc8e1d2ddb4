package core

import (
	"fmt"
	"io/ioutil"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/juju/errors"
	"gopkg.in/yaml.v2"
)

// HolidayFormat is the format of holidays in the config file and in the
// "holidays" option.
const HolidayFormat = "2006-01-02"

const (
	DefaultItemsPerPage = 7
	DefaultCellSize     = 24
	DefaultBarMargin    = 4

	// DefaultViewportWidth is only used until the actual viewport width is
	// known.
	DefaultViewportWidth = 800

	// startPosColumnsFromLeft is how many columns are to the left of the
	// startPos column, after the initial scroll.
	startPosColumnsFromLeft = 2
)

var defaultMonths = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var defaultDOW = []string{"S", "M", "T", "W", "T", "F", "S"}

// Options is the chart configuration.
type Options struct {
	// Scale is the initial scale; MinScale and MaxScale limit zooming.
	Scale    Scale
	MinScale Scale
	MaxScale Scale

	// ItemsPerPage is how many rows are shown at once.
	ItemsPerPage int

	// Holidays are the days to flag in the header; only the calendar day
	// matters, not the time or location.
	Holidays []time.Time

	// If ScrollToToday is true, the chart is initially scrolled so that
	// StartPos is near the left edge. StartPos is relative to "now" unless
	// it's absolute; so the zero value means "now".
	ScrollToToday bool
	StartPos      TimeOrOffset

	// Months contains 12 month names, DOW contains 7 day-of-week labels
	// starting from Sunday.
	Months []string
	DOW    []string

	CellSize      int
	BarMargin     int
	ViewportWidth int

	// Location is where all the calendar math happens; data dates are
	// interpreted in it too.
	Location *time.Location
}

// DefaultOptions returns options with all the defaults set.
func DefaultOptions() Options {
	return Options{
		Scale:         ScaleDays,
		MinScale:      ScaleHours,
		MaxScale:      ScaleMonths,
		ItemsPerPage:  DefaultItemsPerPage,
		ScrollToToday: true,
		Months:        append([]string(nil), defaultMonths...),
		DOW:           append([]string(nil), defaultDOW...),
		CellSize:      DefaultCellSize,
		BarMargin:     DefaultBarMargin,
		ViewportWidth: DefaultViewportWidth,
		Location:      time.Local,
	}
}

// Validate returns a ConfigurationError if options are inconsistent.
func (o *Options) Validate() error {
	for _, s := range []Scale{o.Scale, o.MinScale, o.MaxScale} {
		if !s.IsValid() {
			return newConfigurationError("invalid scale %s", s)
		}
	}

	if o.MinScale > o.MaxScale {
		return newConfigurationError("min scale %s is coarser than max scale %s", o.MinScale, o.MaxScale)
	}

	if o.Scale < o.MinScale || o.Scale > o.MaxScale {
		return newConfigurationError(
			"scale %s is outside of the allowed range [%s, %s]", o.Scale, o.MinScale, o.MaxScale,
		)
	}

	if o.ItemsPerPage < 1 {
		return newConfigurationError("items per page must be at least 1, got %d", o.ItemsPerPage)
	}

	if len(o.Months) != 12 {
		return newConfigurationError("need exactly 12 month names, got %d", len(o.Months))
	}

	if len(o.DOW) != 7 {
		return newConfigurationError("need exactly 7 day-of-week labels, got %d", len(o.DOW))
	}

	if o.CellSize < 1 {
		return newConfigurationError("cell size must be positive, got %d", o.CellSize)
	}

	if o.BarMargin < 0 || o.BarMargin >= o.CellSize {
		return newConfigurationError("bar margin must be in [0, %d), got %d", o.CellSize, o.BarMargin)
	}

	if o.ViewportWidth < 0 {
		return newConfigurationError("viewport width can't be negative, got %d", o.ViewportWidth)
	}

	if o.Location == nil {
		return newConfigurationError("location is not set")
	}

	return nil
}

func (o *Options) geometry() Geometry {
	return Geometry{
		CellSize:  o.CellSize,
		BarMargin: o.BarMargin,
	}
}

// ConfigFile is the yaml config file. All fields are optional; the ones
// which are set override the defaults.
type ConfigFile struct {
	Scale         *Scale   `yaml:"scale"`
	MinScale      *Scale   `yaml:"min_scale"`
	MaxScale      *Scale   `yaml:"max_scale"`
	ItemsPerPage  *int     `yaml:"items_per_page"`
	Holidays      []string `yaml:"holidays"`
	ScrollToToday *bool    `yaml:"scroll_to_today"`
	StartPos      string   `yaml:"start_pos"`
	Months        []string `yaml:"months"`
	DOW           []string `yaml:"dow"`
	CellSize      *int     `yaml:"cell_size"`
	BarMargin     *int     `yaml:"bar_margin"`
	ViewportWidth *int     `yaml:"viewport_width"`
	Location      string   `yaml:"location"`
}

// LoadConfigFromFile reads and parses the yaml config file. It doesn't
// validate the values against each other, it only happens in Apply.
func LoadConfigFromFile(path string) (*ConfigFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Annotatef(err, "opening config file: %s", path)
	}
	defer file.Close()

	data, err := ioutil.ReadAll(file)
	if err != nil {
		return nil, errors.Annotatef(err, "reading config file %s", path)
	}

	var cfg ConfigFile
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, errors.Annotatef(err, "unmarshaling yaml from %s", path)
	}

	return &cfg, nil
}

// Apply overrides the options with the values set in the config file, and
// validates the result.
func (cfg *ConfigFile) Apply(o *Options) error {
	if cfg.Location != "" {
		if err := AllOptions["location"].Set(o, cfg.Location); err != nil {
			return errors.Annotatef(err, "location")
		}
	}

	if cfg.Scale != nil {
		o.Scale = *cfg.Scale
	}
	if cfg.MinScale != nil {
		o.MinScale = *cfg.MinScale
	}
	if cfg.MaxScale != nil {
		o.MaxScale = *cfg.MaxScale
	}
	if cfg.ItemsPerPage != nil {
		o.ItemsPerPage = *cfg.ItemsPerPage
	}
	if cfg.ScrollToToday != nil {
		o.ScrollToToday = *cfg.ScrollToToday
	}
	if cfg.CellSize != nil {
		o.CellSize = *cfg.CellSize
	}
	if cfg.BarMargin != nil {
		o.BarMargin = *cfg.BarMargin
	}
	if cfg.ViewportWidth != nil {
		o.ViewportWidth = *cfg.ViewportWidth
	}
	if cfg.Months != nil {
		o.Months = cfg.Months
	}
	if cfg.DOW != nil {
		o.DOW = cfg.DOW
	}

	if cfg.Holidays != nil {
		holidays, err := parseHolidays(cfg.Holidays, o.Location)
		if err != nil {
			return errors.Trace(err)
		}
		o.Holidays = holidays
	}

	if cfg.StartPos != "" {
		if err := AllOptions["start_pos"].Set(o, cfg.StartPos); err != nil {
			return errors.Annotatef(err, "start_pos")
		}
	}

	return errors.Trace(o.Validate())
}

func parseHolidays(strs []string, loc *time.Location) ([]time.Time, error) {
	ret := make([]time.Time, 0, len(strs))
	for _, s := range strs {
		t, err := time.ParseInLocation(HolidayFormat, strings.TrimSpace(s), loc)
		if err != nil {
			return nil, errors.Annotatef(err, "parsing holiday %q", s)
		}
		ret = append(ret, t)
	}

	return ret, nil
}

type OptionMeta struct {
	// If AliasOf is non-empty, all the other fields are ignored.
	AliasOf string

	Get  func(o *Options) string
	Set  func(o *Options, value string) error
	Help string

	// StartupOnly options can be set in the config file or from the command
	// line, but not on a chart which is already built: the entries and
	// holidays are parsed with them.
	StartupOnly bool
}

func scaleOption(field func(o *Options) *Scale, help string) *OptionMeta {
	return &OptionMeta{
		Get: func(o *Options) string {
			return field(o).String()
		},
		Set: func(o *Options, value string) error {
			scale, err := ParseScale(value)
			if err != nil {
				return errors.Trace(err)
			}

			*field(o) = scale
			return nil
		},
		Help: help,
	}
}

func intOption(field func(o *Options) *int, min int, help string) *OptionMeta {
	return &OptionMeta{
		Get: func(o *Options) string {
			return fmt.Sprint(*field(o))
		},
		Set: func(o *Options, value string) error {
			v, err := strconv.Atoi(value)
			if err != nil {
				return errors.Trace(err)
			}

			if v < min {
				return errors.Errorf("must be at least %d", min)
			}

			*field(o) = v
			return nil
		},
		Help: help,
	}
}

func labelsOption(field func(o *Options) *[]string, num int, help string) *OptionMeta {
	return &OptionMeta{
		Get: func(o *Options) string {
			return strings.Join(*field(o), ",")
		},
		Set: func(o *Options, value string) error {
			labels := strings.Split(value, ",")
			if len(labels) != num {
				return errors.Errorf("need exactly %d comma-separated labels, got %d", num, len(labels))
			}

			*field(o) = labels
			return nil
		},
		Help: help,
	}
}

var AllOptions = map[string]*OptionMeta{
	"scale": scaleOption(
		func(o *Options) *Scale { return &o.Scale },
		"Initial scale: hours, days, weeks or months",
	),
	"min_scale": scaleOption(
		func(o *Options) *Scale { return &o.MinScale },
		"The finest scale the chart can be zoomed in to",
	),
	"minscale": {
		AliasOf: "min_scale",
	},
	"max_scale": scaleOption(
		func(o *Options) *Scale { return &o.MaxScale },
		"The coarsest scale the chart can be zoomed out to",
	),
	"maxscale": {
		AliasOf: "max_scale",
	},
	"items_per_page": intOption(
		func(o *Options) *int { return &o.ItemsPerPage }, 1,
		"How many rows to show at once",
	),
	"ipp": {
		AliasOf: "items_per_page",
	},
	"cell_size": intOption(
		func(o *Options) *int { return &o.CellSize }, 1,
		"Width of a single column, in pixels",
	),
	"bar_margin": intOption(
		func(o *Options) *int { return &o.BarMargin }, 0,
		"How many pixels to subtract from the width of every bar",
	),
	"viewport_width": intOption(
		func(o *Options) *int { return &o.ViewportWidth }, 0,
		"Width of the visible part of the grid, in pixels",
	),
	"months": labelsOption(
		func(o *Options) *[]string { return &o.Months }, 12,
		"Comma-separated month names, starting from January",
	),
	"dow": labelsOption(
		func(o *Options) *[]string { return &o.DOW }, 7,
		"Comma-separated day-of-week labels, starting from Sunday",
	),
	"scroll_to_today": { // {{{
		Get: func(o *Options) string {
			return strconv.FormatBool(o.ScrollToToday)
		},
		Set: func(o *Options, value string) error {
			v, err := strconv.ParseBool(value)
			if err != nil {
				return errors.Trace(err)
			}

			o.ScrollToToday = v
			return nil
		},
		Help: "Whether to initially scroll to the start position",
	}, // }}}
	"start_pos": { // {{{
		Get: func(o *Options) string {
			return o.StartPos.String()
		},
		Set: func(o *Options, value string) error {
			t, err := ParseTimeOrOffset(value, o.Location)
			if err != nil {
				return errors.Trace(err)
			}

			o.StartPos = t
			return nil
		},
		Help: "Position to initially scroll to, like 2024-03-10 or -2w; \"now\" by default",
	}, // }}}
	"holidays": { // {{{
		Get: func(o *Options) string {
			strs := make([]string, 0, len(o.Holidays))
			for _, h := range o.Holidays {
				strs = append(strs, h.Format(HolidayFormat))
			}
			sort.Strings(strs)

			return strings.Join(strs, ",")
		},
		Set: func(o *Options, value string) error {
			if value == "" {
				o.Holidays = nil
				return nil
			}

			holidays, err := parseHolidays(strings.Split(value, ","), o.Location)
			if err != nil {
				return errors.Trace(err)
			}

			o.Holidays = holidays
			return nil
		},
		Help: "Comma-separated holidays, like 2024-12-25,2025-01-01",
	}, // }}}
	"location": { // {{{
		Get: func(o *Options) string {
			return o.Location.String()
		},
		Set: func(o *Options, value string) error {
			loc, err := time.LoadLocation(value)
			if err != nil {
				return errors.Trace(err)
			}

			o.Location = loc
			return nil
		},
		Help:        "Timezone where all the calendar math happens, like America/New_York; can't be changed at runtime",
		StartupOnly: true,
	},
	"timezone": {
		AliasOf: "location",
	}, // }}}
}

func OptionMetaByName(name string) *OptionMeta {
	meta, ok := AllOptions[name]
	if !ok {
		return nil
	}

	if meta.AliasOf != "" {
		var ok bool
		aliasOf := meta.AliasOf
		meta, ok = AllOptions[aliasOf]
		if !ok {
			// This one would mean a programmer error, so we panic here.
			panic(fmt.Sprintf("option %s is defined as an alias of non-existing option %s", name, aliasOf))
		}
	}

	if meta.AliasOf != "" {
		panic(fmt.Sprintf("option %s is defined as an alias of another alias %s", name, meta.AliasOf))
	}

	return meta
}

// ParseOptionKV parses a "key=value" string, and returns the option name,
// its meta (resolved if the name is an alias) and the value.
func ParseOptionKV(kv string) (name string, meta *OptionMeta, value string, err error) {
	parts := strings.SplitN(kv, "=", 2)
	if len(parts) != 2 {
		return "", nil, "", errors.Errorf("invalid option %q, expected key=value", kv)
	}

	name = strings.TrimSpace(parts[0])
	meta = OptionMetaByName(name)
	if meta == nil {
		return "", nil, "", errors.Errorf("unknown option %q", name)
	}

	return name, meta, strings.TrimSpace(parts[1]), nil
}

// SetOption parses a "key=value" string and sets the option accordingly.
func SetOption(o *Options, kv string) error {
	name, meta, value, err := ParseOptionKV(kv)
	if err != nil {
		return errors.Trace(err)
	}

	if err := meta.Set(o, value); err != nil {
		return errors.Annotatef(err, "setting %s", name)
	}

	return nil
}
