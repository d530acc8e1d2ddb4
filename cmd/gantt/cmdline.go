package main

import (
	"fmt"
	"io/ioutil"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/juju/errors"

	"github.com/dimonomid/gantt/core"
	"github.com/dimonomid/gantt/version"
)

const keysHelp = `Keys:
  h, j, k, l, arrows   Move the cursor (scrolls when needed)
  H, L                 Scroll by a week of cells
  J, K, PgDn, PgUp     Next / previous page of rows
  +, -                 Zoom in / out
  g, G, t              Scroll to the beginning / end / now
  Alt+Left, Alt+Right  Back / forward through the view history
  Enter                Click the cell under the cursor

Commands:
  :set key=value       Set an option; :set key shows the value; :set shows all
  :goto <time>         Move the cursor to the time, like 2024-03-10 or -3d
  :rows <patterns>     Only show rows matching the comma-separated globs
  :page <n>            Go to the page n
  :scroll <cells>      Scroll by the number of cells
  :w [filename]        Write the rows to a JSON file
  :version             Show version info
  :q                   Quit`

// NOTE: handleCmd is always called from the tview's event loop, so it's safe
// to use all UI primitives.
func (app *ganttApp) handleCmd(cmd string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	cv := app.chartView

	switch parts[0] {
	case "h", "help":
		app.showMessagebox("help", "Help", keysHelp)

	case "zi", "zoomin":
		ok, err := app.chart.ZoomIn()
		app.handleResult(ok, err, "Can't zoom in any further")
		cv.CursorToViewport()

	case "zo", "zoomout":
		ok, err := app.chart.ZoomOut()
		app.handleResult(ok, err, "Can't zoom out any further")
		cv.CursorToViewport()

	case "np", "nextpage":
		ok, err := app.chart.NavigatePage(1)
		app.handleResult(ok, err, "This is the last page")

	case "pp", "prevpage":
		ok, err := app.chart.NavigatePage(-1)
		app.handleResult(ok, err, "This is the first page")

	case "page":
		if len(parts) < 2 {
			app.printMsg("page requires an argument: the page number", msgLevelErr)
			return
		}

		n, err := strconv.Atoi(parts[1])
		if err != nil {
			app.printMsg(fmt.Sprintf("Invalid page number %q", parts[1]), msgLevelErr)
			return
		}

		ok, err := app.chart.NavigatePage(n - 1 - app.chart.Layout().Page.Num)
		app.handleResult(ok, err, fmt.Sprintf("No page %d", n))

	case "begin":
		app.navigate(core.NavTarget{Kind: core.NavBegin}, "")

	case "end":
		app.navigate(core.NavTarget{Kind: core.NavEnd}, "")

	case "now", "today":
		app.navigate(core.NavTarget{Kind: core.NavNow}, "Now is not on the chart")

	case "scroll":
		if len(parts) < 2 {
			app.printMsg("scroll requires an argument: the number of cells", msgLevelErr)
			return
		}

		cells, err := strconv.Atoi(parts[1])
		if err != nil {
			app.printMsg(fmt.Sprintf("Invalid number of cells %q", parts[1]), msgLevelErr)
			return
		}

		l := app.chart.Layout()
		app.navigate(core.NavTarget{Kind: core.NavRelative, Delta: cells * l.Geometry.CellSize}, "")

	case "goto":
		if err := app.gotoTime(strings.Join(parts[1:], " ")); err != nil {
			app.printMsg(capitalizeFirstRune(err.Error()), msgLevelErr)
		}

	case "back", "bac", "bck", "prev":
		ok, err := app.chart.Back()
		app.handleResult(ok, err, "No more history items")
		cv.CursorToViewport()

	case "fwd", "forward", "next":
		ok, err := app.chart.Forward()
		app.handleResult(ok, err, "No more history items")
		cv.CursorToViewport()

	case "set":
		if len(parts) < 2 {
			app.showMessagebox("options", "Options", formatAllOptions(app.chart.Options()))
			return
		}

		arg := strings.Join(parts[1:], " ")
		if !strings.Contains(arg, "=") {
			meta := core.OptionMetaByName(arg)
			if meta == nil {
				app.printMsg(fmt.Sprintf("Unknown option %q", arg), msgLevelErr)
				return
			}

			opts := app.chart.Options()
			app.printMsg(fmt.Sprintf("%s is %s", arg, meta.Get(&opts)), msgLevelInfo)
			return
		}

		if _, err := app.chart.SetOption(arg); err != nil {
			app.handleErr(err)
			return
		}
		cv.CursorToViewport()

	case "rows":
		patterns := strings.Join(parts[1:], " ")
		entries, err := core.FilterEntries(app.params.allEntries, patterns)
		if err != nil {
			app.handleErr(err)
			return
		}

		if len(entries) == 0 {
			app.printMsg(fmt.Sprintf("No rows match %q", patterns), msgLevelErr)
			return
		}

		app.handleErr(app.chart.SetEntries(entries))

	case "w", "write":
		fname := "gantt_rows.json"
		if len(parts) >= 2 {
			fname = parts[1]
		}

		if err := writeEntries(fname, app.chart.Entries()); err != nil {
			app.printMsg(capitalizeFirstRune(err.Error()), msgLevelErr)
			return
		}

		app.printMsg(fmt.Sprintf("Saved to %s", fname), msgLevelInfo)

	case "version", "about":
		app.showMessagebox("version", "Version", version.VersionFullDescr())

	case "q", "quit":
		app.tviewApp.Stop()

	default:
		app.printMsg(fmt.Sprintf("Unknown command %q", parts[0]), msgLevelErr)
	}
}

func (app *ganttApp) navigate(target core.NavTarget, noopMsg string) {
	ok, err := app.chart.NavigateTo(target)
	app.handleResult(ok, err, noopMsg)
	app.chartView.CursorToViewport()
}

// gotoTime moves the cursor to the column containing the given time, which
// is parsed by core.ParseTimeOrOffset relative to now.
func (app *ganttApp) gotoTime(s string) error {
	opts := app.chart.Options()

	tod, err := core.ParseTimeOrOffset(s, opts.Location)
	if err != nil {
		return errors.Trace(err)
	}

	at := tod.AbsoluteTime(app.now().In(opts.Location))

	l := app.chart.Layout()
	col := l.Columns.Lookup(at)
	if col == nil {
		return errors.Errorf("%s is not on the chart", at.Format("2006-01-02 15:04"))
	}

	return errors.Trace(app.chartView.SetCursorCol(col.Index))
}

func writeEntries(fname string, entries []core.Entry) error {
	data, err := core.EncodeEntries(entries)
	if err != nil {
		return errors.Trace(err)
	}

	if err := ioutil.WriteFile(fname, data, 0644); err != nil {
		return errors.Annotatef(err, "writing %s", fname)
	}

	return nil
}

// formatAllOptions returns all the options with their current values and
// help, sorted by name; aliases are skipped.
func formatAllOptions(opts core.Options) string {
	names := make([]string, 0, len(core.AllOptions))
	for name, meta := range core.AllOptions {
		if meta.AliasOf == "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var sb strings.Builder
	for i, name := range names {
		if i > 0 {
			sb.WriteString("\n")
		}

		meta := core.AllOptions[name]
		sb.WriteString(fmt.Sprintf("%s=%s\n    %s", name, meta.Get(&opts), meta.Help))
	}

	return sb.String()
}

func capitalizeFirstRune(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
