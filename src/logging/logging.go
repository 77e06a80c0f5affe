package logging

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

// Init sets up apex/log with a custom handler and a level from the
// SHEETGRADER_LOG env variable (default info).
func Init() {
	level := strings.ToLower(os.Getenv("SHEETGRADER_LOG"))
	if level == "" {
		level = "info"
	}
	log.SetHandler(&handler{})
	log.SetLevelFromString(level)
}

// handler formats log entries and writes them to stdout.
type handler struct{}

func (h *handler) HandleLog(e *log.Entry) error {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	level := strings.ToUpper(e.Level.String())

	var fields strings.Builder
	for _, f := range e.Fields.Names() {
		fmt.Fprintf(&fields, " %s=%v", f, e.Fields.Get(f))
	}

	fmt.Fprintf(os.Stdout, "%s %.1s %s%s\n", timestamp, level, e.Message, fields.String())
	return nil
}
