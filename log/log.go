package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/juju/errors"
)

type LogLevel int

const (
	Verbose3 LogLevel = iota
	Verbose2
	Verbose1
	Info
	Warning
	Error
)

var levelNames = map[LogLevel]string{
	Verbose3: "verbose3",
	Verbose2: "verbose2",
	Verbose1: "verbose1",
	Info:     "info",
	Warning:  "warning",
	Error:    "error",
}

func (l LogLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}

	return fmt.Sprintf("LogLevel(%d)", int(l))
}

// ParseLevel parses a level name like "info" or "verbose1"; "warn" and
// "debug" (which is the same as "verbose1") are accepted too.
func ParseLevel(s string) (LogLevel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "warn":
		return Warning, nil
	case "debug":
		return Verbose1, nil
	}

	for level, name := range levelNames {
		if name == s {
			return level, nil
		}
	}

	return 0, errors.Errorf("invalid log level %q", s)
}

// LogFilename is the file which the log is written to unless SetOutput is
// called; relative to the home directory.
const LogFilename = ".gantt.log"

var output io.Writer
var outputMtx sync.Mutex

// SetOutput sets the writer to write logs to, instead of the default
// ~/.gantt.log.
func SetOutput(w io.Writer) {
	outputMtx.Lock()
	defer outputMtx.Unlock()

	output = w
}

// printf prints a formatted message to the log output
func printf(format string, a ...interface{}) {
	outputMtx.Lock()
	defer outputMtx.Unlock()

	w := writer()

	fmt.Fprintf(w, "%s: ", time.Now().Format("2006-01-02T15:04:05.999"))

	if !strings.HasSuffix(format, "\n") {
		format += "\n"
	}

	fmt.Fprintf(w, format, a...)
}

// writer must be called with outputMtx locked.
func writer() io.Writer {
	if output == nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			panic(err.Error())
		}

		fname := filepath.Join(homeDir, LogFilename)

		logFile, err := os.OpenFile(fname, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			panic(err.Error())
		}

		output = logFile
	}

	return output
}

type Logger struct {
	minLevel LogLevel

	namespace string
}

func NewLogger(minLevel LogLevel) *Logger {
	return &Logger{
		minLevel: minLevel,
	}
}

func (l *Logger) thisOrDefault() *Logger {
	if l != nil {
		return l
	}

	return &Logger{
		minLevel: Info,
	}
}

func (l *Logger) WithNamespaceAppended(n string) *Logger {
	l = l.thisOrDefault()

	ns := l.namespace
	if ns != "" {
		ns += "/"
	}
	ns += n

	newLogger := *l
	newLogger.namespace = ns
	return &newLogger
}

func (l *Logger) Verbose3f(format string, a ...interface{}) {
	l.Printf(Verbose3, format, a...)
}

func (l *Logger) Verbose2f(format string, a ...interface{}) {
	l.Printf(Verbose2, format, a...)
}

func (l *Logger) Verbose1f(format string, a ...interface{}) {
	l.Printf(Verbose1, format, a...)
}

func (l *Logger) Infof(format string, a ...interface{}) {
	l.Printf(Info, format, a...)
}

func (l *Logger) Warnf(format string, a ...interface{}) {
	l.Printf(Warning, format, a...)
}

func (l *Logger) Errorf(format string, a ...interface{}) {
	l.Printf(Error, format, a...)
}

func (l *Logger) Printf(level LogLevel, format string, a ...interface{}) {
	l = l.thisOrDefault()

	if level < l.minLevel {
		return
	}

	if l.namespace != "" {
		printf("[%s] %s", l.namespace, fmt.Sprintf(format, a...))
	} else {
		printf("%s", fmt.Sprintf(format, a...))
	}
}
