// Package log configures apex/log for the s3util CLI.
package log

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

// InitLogger sets up apex with a compact handler and a log level from the
// AWS_UTILS_LOG env variable. The default level is error so library output
// stays clean unless asked for.
func InitLogger() {
	envLevel := strings.ToLower(os.Getenv("AWS_UTILS_LOG"))
	if envLevel == "" {
		envLevel = "error"
	}
	var apexLevel log.Level
	switch envLevel {
	case "debug":
		apexLevel = log.DebugLevel
	case "info":
		apexLevel = log.InfoLevel
	case "warn":
		apexLevel = log.WarnLevel
	case "error":
		apexLevel = log.ErrorLevel
	case "fatal":
		apexLevel = log.FatalLevel
	default:
		apexLevel = log.ErrorLevel
	}
	log.SetHandler(&CompactHandler{})
	log.SetLevel(apexLevel)
}

// CompactHandler formats log messages and writes them to stderr.
type CompactHandler struct{}

// HandleLog implements the log.Handler interface.
func (h *CompactHandler) HandleLog(e *log.Entry) error {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	level := "?"
	switch e.Level {
	case log.DebugLevel:
		level = "D"
	case log.InfoLevel:
		level = "I"
	case log.WarnLevel:
		level = "W"
	case log.ErrorLevel:
		level = "E"
	case log.FatalLevel:
		level = "F"
	}

	var fields string
	for _, f := range e.Fields.Names() {
		fields += fmt.Sprintf(" %s=%v", f, e.Fields.Get(f))
	}

	fmt.Fprintf(os.Stderr, "%s %s %s%s\n", timestamp, level, e.Message, fields)
	return nil
}
