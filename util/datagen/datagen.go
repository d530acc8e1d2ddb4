package datagen

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"math/rand"
	"time"

	"github.com/juju/errors"

	"github.com/dimonomid/gantt/calendar"
	"github.com/dimonomid/gantt/core"
)

var rowNames = []string{
	"build", "deploy", "review", "design", "qa", "docs", "release",
	"infra", "migration", "research", "support", "audit",
}

var barLabels = []string{
	"Planning",
	"Prototype",
	"Implementation",
	"Code review",
	"Testing",
	"Staging rollout",
	"Production rollout",
	"Retrospective",
	"Bugfixing",
	"Load testing",
	"Security review",
	"Handover",
}

var barClasses = []string{"ganttRed", "ganttGreen", "ganttBlue", "ganttOrange"}

type Params struct {
	// StartTime is where the first bar of every row may start; bars are
	// generated in the location of StartTime.
	StartTime time.Time

	NumRows int

	// Every row gets from 1 to MaxBarsPerRow bars, each from 1 to MaxBarDays
	// days long, separated by gaps from 0 to MaxGapDays days.
	MaxBarsPerRow int
	MaxBarDays    int
	MaxGapDays    int

	// If HourPrecision is true, bars start and end at random hours instead of
	// midnight.
	HourPrecision bool

	RandomSeed int64
}

type payload struct {
	Row int    `json:"row"`
	Bar int    `json:"bar"`
	URL string `json:"url"`
}

// GenerateEntries returns random but deterministic (for the same params)
// entries.
func GenerateEntries(params Params) ([]core.Entry, error) {
	if params.NumRows < 1 {
		return nil, errors.Errorf("need at least 1 row, got %d", params.NumRows)
	}

	if params.MaxBarsPerRow < 1 || params.MaxBarDays < 1 || params.MaxGapDays < 0 {
		return nil, errors.Errorf(
			"invalid bar params: max bars per row %d, max bar days %d, max gap days %d",
			params.MaxBarsPerRow, params.MaxBarDays, params.MaxGapDays,
		)
	}

	if params.StartTime.IsZero() {
		return nil, errors.Errorf("start time is not set")
	}

	rnd := rand.New(rand.NewSource(params.RandomSeed))
	start := calendar.Midnight(params.StartTime)

	entries := make([]core.Entry, 0, params.NumRows)
	for i := 0; i < params.NumRows; i++ {
		entry := core.Entry{
			ID:   fmt.Sprintf("row-%d", i+1),
			Name: fmt.Sprintf("%s-%02d", rowNames[i%len(rowNames)], i+1),
			Desc: fmt.Sprintf("Generated row #%d", i+1),
		}

		cur := calendar.AddDays(start, rnd.Intn(params.MaxGapDays+1))
		numBars := rnd.Intn(params.MaxBarsPerRow) + 1

		for j := 0; j < numBars; j++ {
			from := cur
			to := calendar.AddDays(from, rnd.Intn(params.MaxBarDays))

			if params.HourPrecision {
				from = from.Add(time.Duration(rnd.Intn(24)) * time.Hour)
				to = to.Add(time.Duration(rnd.Intn(24)) * time.Hour)
				if to.Before(from) {
					from, to = to, from
				}
			}

			p, err := json.Marshal(payload{
				Row: i + 1,
				Bar: j + 1,
				URL: fmt.Sprintf("https://example.com/tasks/%d/%d", i+1, j+1),
			})
			if err != nil {
				return nil, errors.Trace(err)
			}

			entry.Bars = append(entry.Bars, core.Bar{
				From:        from,
				To:          to,
				Label:       barLabels[rnd.Intn(len(barLabels))],
				CustomClass: barClasses[rnd.Intn(len(barClasses))],
				Payload:     p,
			})

			cur = calendar.AddDays(calendar.Midnight(to), 1+rnd.Intn(params.MaxGapDays+1))
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// GenerateFile generates entries and writes them as JSON to the given file.
func GenerateFile(params Params, filename string) error {
	entries, err := GenerateEntries(params)
	if err != nil {
		return errors.Trace(err)
	}

	data, err := core.EncodeEntries(entries)
	if err != nil {
		return errors.Trace(err)
	}

	if err := ioutil.WriteFile(filename, data, 0644); err != nil {
		return errors.Annotatef(err, "writing %s", filename)
	}

	return nil
}
