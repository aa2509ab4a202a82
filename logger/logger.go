package logger

import (
	"fmt"
	"log"
	"strings"
)

// Logger takes a message followed by alternating key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var LoggerEnabled = true

type DefaultLogger struct {
	name string
}

func NewDefaultLogger(name string) *DefaultLogger {
	return &DefaultLogger{name: name}
}

func (d *DefaultLogger) Debug(msg string, args ...any) {
	d.print("DEBUG", msg, args)
}

func (d *DefaultLogger) Info(msg string, args ...any) {
	d.print("INFO", msg, args)
}

func (d *DefaultLogger) Warn(msg string, args ...any) {
	d.print("WARN", msg, args)
}

func (d *DefaultLogger) Error(msg string, args ...any) {
	d.print("ERROR", msg, args)
}

func (d *DefaultLogger) print(level, msg string, args []any) {
	if !LoggerEnabled {
		return
	}
	log.Printf("[%s] %s | %s%s\n", level, d.name, msg, formatPairs(args))
}

// formatPairs renders key/value args as " k=v k=v". A trailing key without a
// value is rendered with the value "<missing>".
func formatPairs(args []any) string {
	if len(args) == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < len(args); i += 2 {
		var value any = "<missing>"
		if i+1 < len(args) {
			value = args[i+1]
		}
		fmt.Fprintf(&b, " %v=%v", args[i], value)
	}
	return b.String()
}

type nop struct{}

// Nop discards everything.
func Nop() Logger { return nop{} }

func (nop) Debug(string, ...any) {}
func (nop) Info(string, ...any)  {}
func (nop) Warn(string, ...any)  {}
func (nop) Error(string, ...any) {}
