package logger

import (
	"io"
	"log"
	"os"

	"github.com/fatih/color"
)

var (
	infoPrefix  = color.New(color.FgBlue).Sprint("[INFO] ")
	warnPrefix  = color.New(color.FgYellow).Sprint("[WARN] ")
	errorPrefix = color.New(color.FgRed).Sprint("[ERROR] ")
)

type Logger struct {
	info  *log.Logger
	warn  *log.Logger
	error *log.Logger
}

func NewLogger() *Logger {
	return New(os.Stdout)
}

// New returns a Logger writing to w. Each level owns its own log.Logger so
// concurrent callers never race on the prefix.
func New(w io.Writer) *Logger {
	return &Logger{
		info:  log.New(w, infoPrefix, log.LstdFlags),
		warn:  log.New(w, warnPrefix, log.LstdFlags),
		error: log.New(w, errorPrefix, log.LstdFlags),
	}
}

func (l *Logger) Info(v ...interface{}) {
	l.info.Println(v...)
}

func (l *Logger) Infof(format string, v ...interface{}) {
	l.info.Printf(format, v...)
}

func (l *Logger) Warn(v ...interface{}) {
	l.warn.Println(v...)
}

func (l *Logger) Warnf(format string, v ...interface{}) {
	l.warn.Printf(format, v...)
}

func (l *Logger) Error(v ...interface{}) {
	l.error.Println(v...)
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	l.error.Printf(format, v...)
}
