package logger

import (
	"fmt"
	"time"
)

// Color codes for terminal output
const (
	ColorReset  = "\033[0m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorRed    = "\033[31m"
)

type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

var GlobalLogLevel = LogLevelInfo

// SetGlobalLevel sets the level used by loggers created afterwards.
func SetGlobalLevel(level string) {
	switch level {
	case "debug":
		GlobalLogLevel = LogLevelDebug
	case "warn":
		GlobalLogLevel = LogLevelWarn
	case "error":
		GlobalLogLevel = LogLevelError
	default:
		GlobalLogLevel = LogLevelInfo
	}
}

type Log struct {
	level LogLevel
	err   error
}

func New() *Log {
	return &Log{level: GlobalLogLevel}
}

func (l *Log) SetLevel(level LogLevel) {
	l.level = level
}

func (l *Log) WithError(err error) *Log {
	return &Log{level: l.level, err: err}
}

func (l *Log) timestamp() string {
	return time.Now().Format("15:04:05")
}

func (l *Log) Debug(msg string) {
	if l.level > LogLevelDebug {
		return
	}
	fmt.Printf("%s[%s]%s DEBUG %s%s\n", ColorCyan, l.timestamp(), ColorReset, msg, ColorReset)
}

func (l *Log) Info(msg string) {
	if l.level > LogLevelInfo {
		return
	}
	fmt.Printf("%s[%s]%s INFO  %s%s\n", ColorBlue, l.timestamp(), ColorReset, msg, ColorReset)
}

func (l *Log) Warn(msg string) {
	if l.level > LogLevelWarn {
		return
	}
	if l.err != nil {
		fmt.Printf("%s[%s]%s WARN  %s: %v%s\n", ColorYellow, l.timestamp(), ColorReset, msg, l.err, ColorReset)
		return
	}
	fmt.Printf("%s[%s]%s WARN  %s%s\n", ColorYellow, l.timestamp(), ColorReset, msg, ColorReset)
}

func (l *Log) Error(msg string) {
	if l.err != nil {
		fmt.Printf("%s[%s]%s ERROR %s: %v%s\n", ColorRed, l.timestamp(), ColorReset, msg, l.err, ColorReset)
		return
	}
	fmt.Printf("%s[%s]%s ERROR %s%s\n", ColorRed, l.timestamp(), ColorReset, msg, ColorReset)
}
