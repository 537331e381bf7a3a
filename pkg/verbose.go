package dupescan

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	logMutex           sync.RWMutex
	globalVerboseLevel int
	debugFlags         map[string]bool
	logger             = newLogger(os.Stderr, 0, false)
)

// QuietLevel silences every log line, including per-file errors
const QuietLevel = -1

func newLogger(w io.Writer, level int, quiet bool) zerolog.Logger {
	console := zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05"}
	return zerolog.New(console).Level(zerologLevel(level, quiet)).With().Timestamp().Logger()
}

// zerologLevel maps verbose levels: quiet disables, 0 errors only,
// 1 info, 2 debug, 3 trace
func zerologLevel(level int, quiet bool) zerolog.Level {
	switch {
	case quiet || level < 0:
		return zerolog.Disabled
	case level == 0:
		return zerolog.ErrorLevel
	case level == 1:
		return zerolog.InfoLevel
	case level == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// SetVerboseLevel sets the global verbose level; QuietLevel disables logging
func SetVerboseLevel(level int) {
	logMutex.Lock()
	defer logMutex.Unlock()
	globalVerboseLevel = level
	logger = logger.Level(zerologLevel(level, false))
}

// SetLogOutput redirects log output, mainly for tests
func SetLogOutput(w io.Writer) {
	logMutex.Lock()
	defer logMutex.Unlock()
	logger = newLogger(w, globalVerboseLevel, false)
}

// GetVerboseLevel returns the current verbose level
func GetVerboseLevel() int {
	logMutex.RLock()
	defer logMutex.RUnlock()
	return globalVerboseLevel
}

func currentLogger() zerolog.Logger {
	logMutex.RLock()
	defer logMutex.RUnlock()
	return logger
}

// VerboseEnter logs function entry at level 3+ and returns a defer function for exit logging
func VerboseEnter() func() {
	if GetVerboseLevel() < 3 {
		return func() {}
	}

	pc, _, _, ok := runtime.Caller(1)
	if !ok {
		return func() {}
	}

	funcName := runtime.FuncForPC(pc).Name()
	if idx := strings.LastIndex(funcName, "."); idx != -1 {
		funcName = funcName[idx+1:]
	}

	l := currentLogger()
	l.Trace().Str("func", funcName).Msg("enter")
	return func() {
		l.Trace().Str("func", funcName).Msg("exit")
	}
}

// VerboseLog logs a message at the specified verbose level
func VerboseLog(level int, format string, args ...interface{}) {
	l := currentLogger()
	var event *zerolog.Event
	switch {
	case level <= 1:
		event = l.Info()
	case level == 2:
		event = l.Debug()
	default:
		event = l.Trace()
	}
	event.Msg(strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"))
}

// LogError reports a per-entry failure. Scans never abort on these.
func LogError(err error, format string, args ...interface{}) {
	l := currentLogger()
	l.Error().Err(err).Msg(fmt.Sprintf(format, args...))
}

// SetDebugFlags sets the debug flags from a comma-separated string
// Supports both simple flags ("scan,dedupe") and key:value format ("scan:true,dedupe:false")
func SetDebugFlags(flagsStr string) {
	flags := make(map[string]bool)
	for _, flag := range strings.Split(flagsStr, ",") {
		flag = strings.TrimSpace(flag)
		if flag == "" {
			continue
		}

		parts := strings.SplitN(flag, ":", 2)
		flagName := strings.ToLower(parts[0])
		flagValue := true

		if len(parts) > 1 {
			switch strings.ToLower(parts[1]) {
			case "false", "0", "no", "off":
				flagValue = false
			}
		}

		flags[flagName] = flagValue
	}

	logMutex.Lock()
	debugFlags = flags
	logMutex.Unlock()
}

// IsDebugEnabled returns true if the specified debug flag is enabled
func IsDebugEnabled(flag string) bool {
	logMutex.RLock()
	defer logMutex.RUnlock()
	if debugFlags == nil {
		return false
	}
	return debugFlags[strings.ToLower(flag)]
}
