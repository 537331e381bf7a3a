package dupescan

import (
	"io"
	"sort"
	"strings"
)

// InitLogging configures the package logger for a command-line run
func InitLogging(w io.Writer, level int, debugFlags string) {
	SetLogOutput(w)
	SetVerboseLevel(level)
	InitDebugFlags(debugFlags)
	LogDebugFlags()
}

// InitDebugFlags initialises debug flags - for CLI compatibility
func InitDebugFlags(flagsStr string) {
	if flagsStr != "" {
		SetDebugFlags(flagsStr)
	}
}

// LogDebugFlags logs which debug flags are enabled
func LogDebugFlags() {
	enabled := EnabledDebugFlags()
	if len(enabled) > 0 {
		VerboseLog(2, "debug flags: %s", strings.Join(enabled, ","))
	}
}

// EnabledDebugFlags returns the enabled debug flags in sorted order
func EnabledDebugFlags() []string {
	logMutex.RLock()
	defer logMutex.RUnlock()

	var enabled []string
	for flag, on := range debugFlags {
		if on {
			enabled = append(enabled, flag)
		}
	}
	sort.Strings(enabled)
	return enabled
}
