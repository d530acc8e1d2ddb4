package main

import (
	"fmt"
	"os"
	"time"

	"github.com/juju/errors"
	"github.com/spf13/pflag"

	"github.com/dimonomid/gantt/util/datagen"
)

func main() {
	if err := main2(); err != nil {
		fmt.Println("error:", err.Error())
		os.Exit(1)
	}
}

func main2() error {
	var (
		flagOutput   = pflag.StringP("output", "o", "gantt_data.json", "File to write the generated data to")
		flagStart    = pflag.String("start", "2024-03-01", "Date where the bars start, as YYYY-MM-DD")
		flagRows     = pflag.IntP("rows", "n", 20, "Number of rows to generate")
		flagMaxBars  = pflag.Int("max-bars", 4, "Max number of bars in a row")
		flagMaxDays  = pflag.Int("max-days", 10, "Max length of a bar in days")
		flagMaxGap   = pflag.Int("max-gap", 5, "Max gap between bars in days")
		flagHours    = pflag.Bool("hours", false, "Start and end bars at random hours, not only at midnight")
		flagSeed     = pflag.Int64("seed", 123, "Random seed; the same seed generates the same data")
		flagLocation = pflag.String("location", "UTC", "Timezone of the generated dates, like America/New_York")
	)

	pflag.Parse()

	loc, err := time.LoadLocation(*flagLocation)
	if err != nil {
		return errors.Annotatef(err, "loading location %q", *flagLocation)
	}

	start, err := time.ParseInLocation("2006-01-02", *flagStart, loc)
	if err != nil {
		return errors.Annotatef(err, "parsing --start")
	}

	err = datagen.GenerateFile(datagen.Params{
		StartTime: start,

		NumRows:       *flagRows,
		MaxBarsPerRow: *flagMaxBars,
		MaxBarDays:    *flagMaxDays,
		MaxGapDays:    *flagMaxGap,
		HourPrecision: *flagHours,

		RandomSeed: *flagSeed,
	}, *flagOutput)
	if err != nil {
		return errors.Trace(err)
	}

	fmt.Printf("Generated %d rows to %s\n", *flagRows, *flagOutput)

	return nil
}
