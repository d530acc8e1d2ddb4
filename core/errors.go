package core

import (
	"fmt"
	"time"

	"github.com/dimonomid/gantt/calendar"
	"github.com/juju/errors"
)

// ErrBusy is returned by the Chart when a request arrives while another one
// is still being computed; such a request is dropped.
var ErrBusy = errors.New("chart is busy")

// ConfigurationError means that the chart can't be built with the given
// options or data: e.g. there's no data at all, or the scale bounds are
// inconsistent.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Msg
}

func newConfigurationError(format string, a ...interface{}) error {
	return errors.Trace(&ConfigurationError{Msg: fmt.Sprintf(format, a...)})
}

// DataRangeError means that a bar can't be placed on the grid: one of its
// ends doesn't belong to any column, or it ends before it starts.
type DataRangeError struct {
	EntryIdx int
	BarIdx   int

	From time.Time
	To   time.Time

	Msg string
}

func (e *DataRangeError) Error() string {
	return fmt.Sprintf(
		"entry #%d, bar #%d (%s - %s): %s",
		e.EntryIdx, e.BarIdx,
		e.From.Format(time.RFC3339), e.To.Format(time.RFC3339),
		e.Msg,
	)
}

// LogicError is the panic value used when grid stepping can't move forward.
// It's never returned as an error.
type LogicError = calendar.NoProgressError

// IsConfigurationError returns whether the cause of err is a
// *ConfigurationError.
func IsConfigurationError(err error) bool {
	_, ok := errors.Cause(err).(*ConfigurationError)
	return ok
}

// IsDataRangeError returns whether the cause of err is a *DataRangeError.
func IsDataRangeError(err error) bool {
	_, ok := errors.Cause(err).(*DataRangeError)
	return ok
}
