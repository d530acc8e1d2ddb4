package main

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"
)

type MessageViewParams struct {
	MessageID       string
	Title           string
	Message         string
	Buttons         []string
	OnButtonPressed func(label string, idx int)
	OnEsc           func()

	// Width and Height are calculated to fit the message by default.
	Width, Height int
}

type MessageView struct {
	params MessageViewParams
	app    *ganttApp

	frame *tview.Frame
}

const (
	// msgExtraWidth covers padding and border
	msgExtraWidth = 4
	// msgExtraHeight covers padding, border and buttons
	msgExtraHeight = 6
)

// getMaxLineWidth returns the width of the widest line in the given string.
func getMaxLineWidth(s string) int {
	maxWidth := 0
	for _, line := range strings.Split(s, "\n") {
		if w := runewidth.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}

	return maxWidth
}

// getNumLines returns the number of lines that are needed to draw the given
// text on a screen of the given width.
func getNumLines(s string, screenWidth int) int {
	if screenWidth <= 0 {
		return 0
	}

	numLines := 0
	for _, line := range strings.Split(s, "\n") {
		lineWidth := runewidth.StringWidth(line)
		if lineWidth == 0 {
			numLines++
			continue
		}

		// Divide line width by screen width and round up
		numLines += (lineWidth + screenWidth - 1) / screenWidth
	}

	return numLines
}

// getOptimalMessageViewSize returns the size of the message box which fits
// the text on the screen of the given width.
func getOptimalMessageViewSize(screenWidth, extraWidth, extraHeight int, text string) (int, int) {
	width := getMaxLineWidth(text) + extraWidth
	if width > screenWidth {
		width = screenWidth
	}

	return width, extraHeight + getNumLines(text, width-extraWidth)
}

func NewMessageView(app *ganttApp, params *MessageViewParams) *MessageView {
	msgv := &MessageView{
		params: *params,
		app:    app,
	}

	optWidth, optHeight := getOptimalMessageViewSize(
		app.screenWidth(), msgExtraWidth, msgExtraHeight, params.Message,
	)

	if msgv.params.Width == 0 {
		msgv.params.Width = optWidth
	}

	if msgv.params.Height == 0 {
		msgv.params.Height = optHeight
	}

	msgboxFlex := tview.NewFlex().SetDirection(tview.FlexRow)

	textView := tview.NewTextView()
	textView.SetText(params.Message)
	msgboxFlex.AddItem(textView, 0, 1, len(params.Buttons) == 0)

	buttonsFlex := tview.NewFlex().SetDirection(tview.FlexColumn)
	msgboxFlex.AddItem(buttonsFlex, 1, 1, len(params.Buttons) != 0)

	// Spacers at both sides make the buttons centered.
	buttonsFlex.AddItem(nil, 0, 1, false)

	for i := 0; i < len(params.Buttons); i++ {
		btnLabel := params.Buttons[i]
		btnIdx := i
		btn := tview.NewButton(btnLabel).SetSelectedFunc(func() {
			params.OnButtonPressed(btnLabel, btnIdx)
		})
		btn.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
			if event.Key() == tcell.KeyEsc && params.OnEsc != nil {
				params.OnEsc()
				return nil
			}

			return event
		})

		if i > 0 {
			buttonsFlex.AddItem(nil, 1, 0, false)
		}

		// Spacing of 2 chars at each side, and min 10 chars total.
		buttonSize := len(btnLabel) + 2*2
		if buttonSize < 10 {
			buttonSize = 10
		}
		buttonsFlex.AddItem(btn, buttonSize, 0, i == 0)
	}

	buttonsFlex.AddItem(nil, 0, 1, false)

	msgv.frame = tview.NewFrame(msgboxFlex).SetBorders(0, 0, 0, 0, 0, 0)
	msgv.frame.SetBorder(true).SetBorderPadding(1, 1, 1, 1)
	msgv.frame.SetTitle(params.Title)
	msgv.frame.SetBackgroundColor(tcell.ColorDarkBlue)

	return msgv
}

func (msgv *MessageView) Show() {
	msgv.app.showModal(
		pageNameMessage+msgv.params.MessageID, msgv.frame,
		msgv.params.Width,
		msgv.params.Height,
	)
}

func (msgv *MessageView) Hide() {
	msgv.app.hideModal(pageNameMessage + msgv.params.MessageID)
}
