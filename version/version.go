package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/dimonomid/gantt/clipboard"
)

// These are being replaced with the actual values using ldflags, like:
//
//	go build -ldflags "-X github.com/dimonomid/gantt/version.version=v1.2.3"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// VersionFullDescr returns the full version description, printed at
// --version and in the TUI help
func VersionFullDescr() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Gantt %s\n", version))
	sb.WriteString(fmt.Sprintf("Commit: %s\n", commit))
	sb.WriteString(fmt.Sprintf("Build time: %s\n", date))
	sb.WriteString(fmt.Sprintf("Built by: %s\n", builtBy))
	sb.WriteString(fmt.Sprintf("GOOS: %s\n", runtime.GOOS))
	if cgoEnabled {
		sb.WriteString("CGO: enabled\n")
	} else {
		sb.WriteString("CGO: disabled\n")
	}
	if clipboard.InitErr == nil {
		sb.WriteString("Bar payload copying: yes\n")
	} else {
		sb.WriteString(fmt.Sprintf("Bar payload copying: no (%s)\n", clipboard.InitErr.Error()))
	}

	return sb.String()
}
