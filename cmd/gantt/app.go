package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/juju/errors"
	"github.com/rivo/tview"

	"github.com/dimonomid/gantt/clhistory"
	"github.com/dimonomid/gantt/clipboard"
	"github.com/dimonomid/gantt/core"
	"github.com/dimonomid/gantt/log"
)

const pageNameMessage = "message"

var (
	cmdLineCommand = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	cmdLineMsgInfo = tcell.StyleDefault.Foreground(tcell.ColorLightGreen)
	cmdLineMsgErr  = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

type msgLevel string

const (
	msgLevelInfo msgLevel = "info"
	msgLevelErr  msgLevel = "err"
)

type ganttAppParams struct {
	chartParams core.ChartParams

	// allEntries are all the loaded entries, before filtering by the row
	// patterns; chartParams.Entries are the filtered ones.
	allEntries []core.Entry

	cmdHistory *clhistory.CLHistory
	logger     *log.Logger
}

type ganttApp struct {
	params ganttAppParams
	logger *log.Logger

	// tviewApp is the TUI application. NOTE: once TUI exits, tviewApp is reset
	// to nil.
	tviewApp *tview.Application

	chart     *core.Chart
	chartView *ChartView

	rootPages  *tview.Pages
	statusLine *tview.TextView
	cmdInput   *tview.InputField

	focusedBeforeCmd tview.Primitive
	modalsFocusStack []tview.Primitive
}

func newGanttApp(params ganttAppParams) (*ganttApp, error) {
	app := &ganttApp{
		params:   params,
		logger:   params.logger.WithNamespaceAppended("app"),
		tviewApp: tview.NewApplication(),
	}

	app.statusLine = tview.NewTextView()
	app.statusLine.SetDynamicColors(true)

	chartParams := params.chartParams
	chartParams.Hooks = core.Hooks{
		OnItemClick: app.onItemClick,
		OnAddClick:  app.onAddClick,
		OnRender: func(l *core.Layout) {
			app.updateStatusLine(l)
		},
		OnWait: func(show bool) {
			app.logger.Verbose2f("Computing layout: %v", show)
		},
	}

	chart, err := core.NewChart(chartParams)
	if err != nil {
		return nil, errors.Trace(err)
	}
	app.chart = chart

	app.chartView = NewChartView(chart, func(width int) {
		if _, err := app.chart.Resize(width); err != nil {
			app.logger.Errorf("Resize to %d: %s", width, err.Error())
		}
	})
	app.chartView.SetBorder(true)
	app.chartView.SetInputCapture(app.handleChartKey)

	app.cmdInput = tview.NewInputField()
	app.cmdInput.SetFieldStyle(cmdLineCommand)
	app.cmdInput.SetChangedFunc(func(text string) {
		if text == "" && app.focusedBeforeCmd != nil {
			app.tviewApp.SetFocus(app.focusedBeforeCmd)
		}
	})
	app.cmdInput.SetInputCapture(app.handleCmdLineKey)
	app.cmdInput.SetDoneFunc(app.handleCmdLineDone)

	mainFlex := tview.NewFlex().SetDirection(tview.FlexRow)
	mainFlex.AddItem(app.chartView, 0, 1, true)
	mainFlex.AddItem(app.statusLine, 1, 0, false)
	mainFlex.AddItem(app.cmdInput, 1, 0, false)

	app.rootPages = tview.NewPages()
	app.rootPages.AddPage("mainFlex", mainFlex, true, true)

	app.updateStatusLine(chart.Layout())

	return app, nil
}

func (app *ganttApp) runTViewApp() error {
	err := app.tviewApp.SetRoot(app.rootPages, true).Run()

	// Now that TUI app has finished, remember that by resetting it to nil.
	app.tviewApp = nil

	return err
}

func (app *ganttApp) updateStatusLine(l *core.Layout) {
	app.statusLine.SetText(fmt.Sprintf(
		"[yellow]%s[-] | offset %d/%d | :help for keys", layoutSummary(l), -l.State.Offset, l.MaxScroll(),
	))
}

func (app *ganttApp) onItemClick(payload []byte) {
	if len(payload) == 0 {
		app.printMsg("The bar has no payload", msgLevelInfo)
		return
	}

	if clipboard.InitErr != nil {
		app.showMessagebox("payload", "Bar payload", string(payload))
		return
	}

	clipboard.WriteText(payload)
	app.printMsg(fmt.Sprintf("Copied payload to clipboard: %s", payload), msgLevelInfo)
}

func (app *ganttApp) onAddClick(at time.Time, rowID string) {
	app.printMsg(fmt.Sprintf("Add to row %q at %s", rowID, at.Format("2006-01-02 15:04 MST")), msgLevelInfo)
}

// handleErr prints the error from a chart operation, if any. ErrBusy is not
// an error from the user's point of view, so it's only logged.
func (app *ganttApp) handleErr(err error) {
	if err == nil {
		return
	}

	if errors.Cause(err) == core.ErrBusy {
		app.logger.Infof("Request dropped: %s", err.Error())
		return
	}

	app.printMsg(capitalizeFirstRune(err.Error()), msgLevelErr)
}

// handleResult is like handleErr, but also lets the user know that nothing
// has changed.
func (app *ganttApp) handleResult(ok bool, err error, noopMsg string) {
	if err != nil {
		app.handleErr(err)
		return
	}

	if !ok && noopMsg != "" {
		app.printMsg(noopMsg, msgLevelInfo)
	}
}

func (app *ganttApp) handleChartKey(event *tcell.EventKey) *tcell.EventKey {
	cv := app.chartView

	switch event.Key() {
	case tcell.KeyLeft:
		if event.Modifiers()&tcell.ModAlt != 0 {
			app.handleCmd("back")
		} else {
			app.handleErr(cv.MoveCursor(0, -1))
		}
		return nil

	case tcell.KeyRight:
		if event.Modifiers()&tcell.ModAlt != 0 {
			app.handleCmd("fwd")
		} else {
			app.handleErr(cv.MoveCursor(0, 1))
		}
		return nil

	case tcell.KeyUp:
		app.handleErr(cv.MoveCursor(-1, 0))
		return nil

	case tcell.KeyDown:
		app.handleErr(cv.MoveCursor(1, 0))
		return nil

	case tcell.KeyPgUp:
		app.handleCmd("prevpage")
		return nil

	case tcell.KeyPgDn:
		app.handleCmd("nextpage")
		return nil

	case tcell.KeyHome:
		app.handleCmd("begin")
		return nil

	case tcell.KeyEnd:
		app.handleCmd("end")
		return nil

	case tcell.KeyEnter:
		app.handleErr(cv.Click())
		return nil

	case tcell.KeyRune:
		switch event.Rune() {
		case ':':
			app.focusCmdline()
		case '+', '=':
			app.handleCmd("zoomin")
		case '-':
			app.handleCmd("zoomout")
		case 'h':
			app.handleErr(cv.MoveCursor(0, -1))
		case 'l':
			app.handleErr(cv.MoveCursor(0, 1))
		case 'k':
			app.handleErr(cv.MoveCursor(-1, 0))
		case 'j':
			app.handleErr(cv.MoveCursor(1, 0))
		case 'H':
			app.handleCmd("scroll -7")
		case 'L':
			app.handleCmd("scroll 7")
		case 'K':
			app.handleCmd("prevpage")
		case 'J':
			app.handleCmd("nextpage")
		case 'g':
			app.handleCmd("begin")
		case 'G':
			app.handleCmd("end")
		case 't':
			app.handleCmd("now")
		default:
			return event
		}
		return nil
	}

	return event
}

func (app *ganttApp) focusCmdline() {
	app.cmdInput.SetFieldStyle(cmdLineCommand)
	app.cmdInput.SetText(":")
	app.focusedBeforeCmd = app.tviewApp.GetFocus()
	app.tviewApp.SetFocus(app.cmdInput)
}

func (app *ganttApp) handleCmdLineKey(event *tcell.EventKey) *tcell.EventKey {
	// Remove the ":" prefix
	cmd := strings.TrimPrefix(app.cmdInput.GetText(), ":")

	switch event.Key() {
	case tcell.KeyCtrlP, tcell.KeyUp:
		item, _ := app.params.cmdHistory.Prev(cmd)
		app.cmdInput.SetText(":" + item.Str)
		return nil

	case tcell.KeyCtrlN, tcell.KeyDown:
		item, _ := app.params.cmdHistory.Next(cmd)
		app.cmdInput.SetText(":" + item.Str)
		return nil
	}

	app.params.cmdHistory.Reset()

	return event
}

func (app *ganttApp) handleCmdLineDone(key tcell.Key) {
	switch key {
	case tcell.KeyEnter:
		cmd := strings.TrimPrefix(app.cmdInput.GetText(), ":")

		app.cmdInput.SetText("")
		app.tviewApp.SetFocus(app.chartView)

		if cmd != "" {
			if err := app.params.cmdHistory.Add(cmd); err != nil {
				app.logger.Errorf("Failed to add to cmd history: %s", err.Error())
			}
			app.handleCmd(cmd)
		}

	case tcell.KeyEsc:
		app.cmdInput.SetText("")
		app.tviewApp.SetFocus(app.chartView)
	}

	app.params.cmdHistory.Reset()
}

// printMsg prints a message over the command line, sort of like in Vim.
// If the command line is focused atm, the message will not be printed.
func (app *ganttApp) printMsg(s string, level msgLevel) {
	if app.cmdInput.HasFocus() {
		return
	}

	style := cmdLineMsgInfo
	if level == msgLevelErr {
		style = cmdLineMsgErr
	}

	app.cmdInput.SetFieldStyle(style)
	app.cmdInput.SetText(s)
}

func (app *ganttApp) showMessagebox(id, title, message string) {
	var msgv *MessageView
	msgv = NewMessageView(app, &MessageViewParams{
		MessageID: id,
		Title:     title,
		Message:   message,
		Buttons:   []string{"OK"},
		OnButtonPressed: func(label string, idx int) {
			msgv.Hide()
		},
		OnEsc: func() {
			msgv.Hide()
		},
	})
	msgv.Show()
}

func (app *ganttApp) showModal(name string, primitive tview.Primitive, width, height int) {
	app.modalsFocusStack = append(app.modalsFocusStack, app.tviewApp.GetFocus())

	modal := tview.NewGrid().
		SetColumns(0, width, 0).
		SetRows(0, height, 0).
		AddItem(primitive, 1, 1, 1, 1, 0, 0, true)

	app.rootPages.AddPage(name, modal, true, true)
	app.tviewApp.SetFocus(primitive)
}

func (app *ganttApp) hideModal(name string) {
	app.rootPages.RemovePage(name)

	l := len(app.modalsFocusStack)
	app.tviewApp.SetFocus(app.modalsFocusStack[l-1])
	app.modalsFocusStack = app.modalsFocusStack[:l-1]
}

// screenWidth returns the width of the whole UI.
func (app *ganttApp) screenWidth() int {
	_, _, width, _ := app.rootPages.GetRect()
	return width
}

func (app *ganttApp) now() time.Time {
	if app.params.chartParams.Now != nil {
		return app.params.chartParams.Now()
	}

	return time.Now()
}
