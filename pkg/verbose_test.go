package dupescan

import (
	"bytes"
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"
)

func TestSetDebugFlags(t *testing.T) {
	defer SetDebugFlags("")

	testCases := []struct {
		name     string
		input    string
		enabled  []string
		disabled []string
	}{
		{"simple", "scan,dedupe", []string{"scan", "dedupe"}, []string{"filter", "disk"}},
		{"key value", "scan:true,dedupe:false", []string{"scan"}, []string{"dedupe"}},
		{"case and spaces", " SCAN , Filter:on ", []string{"scan", "filter"}, []string{"disk"}},
		{"off values", "disk:off,filter:0,scan:no", nil, []string{"disk", "filter", "scan"}},
		{"empty", "", nil, []string{"scan", "filter", "dedupe", "disk"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			SetDebugFlags(tc.input)
			for _, flag := range tc.enabled {
				if !IsDebugEnabled(flag) {
					t.Errorf("Expected %s to be enabled", flag)
				}
			}
			for _, flag := range tc.disabled {
				if IsDebugEnabled(flag) {
					t.Errorf("Expected %s to be disabled", flag)
				}
			}
		})
	}
}

func TestEnabledDebugFlags(t *testing.T) {
	defer SetDebugFlags("")

	SetDebugFlags("scan,disk,filter:false,dedupe")
	expected := []string{"dedupe", "disk", "scan"}
	if got := EnabledDebugFlags(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestLogLevels(t *testing.T) {
	defer func() {
		SetVerboseLevel(0)
		SetLogOutput(os.Stderr)
	}()

	var buf bytes.Buffer
	SetVerboseLevel(0)
	SetLogOutput(&buf)

	VerboseLog(1, "hidden info")
	LogError(errors.New("boom"), "couldn't read %s", "somefile")
	output := buf.String()
	if strings.Contains(output, "hidden info") {
		t.Errorf("Expected info to be suppressed at level 0, got %q", output)
	}
	if !strings.Contains(output, "couldn't read somefile") || !strings.Contains(output, "boom") {
		t.Errorf("Expected error line with cause, got %q", output)
	}

	buf.Reset()
	SetVerboseLevel(2)
	VerboseLog(1, "visible info")
	VerboseLog(2, "visible debug")
	VerboseLog(3, "hidden trace")
	output = buf.String()
	if !strings.Contains(output, "visible info") || !strings.Contains(output, "visible debug") {
		t.Errorf("Expected info and debug at level 2, got %q", output)
	}
	if strings.Contains(output, "hidden trace") {
		t.Errorf("Expected trace to be suppressed at level 2, got %q", output)
	}

	buf.Reset()
	SetVerboseLevel(QuietLevel)
	LogError(errors.New("boom"), "silenced")
	if buf.Len() != 0 {
		t.Errorf("Expected no output when quiet, got %q", buf.String())
	}
}

func TestInitLogging(t *testing.T) {
	defer func() {
		SetVerboseLevel(0)
		SetDebugFlags("")
		SetLogOutput(os.Stderr)
	}()

	var buf bytes.Buffer
	InitLogging(&buf, 2, "dedupe")

	if GetVerboseLevel() != 2 {
		t.Errorf("Expected verbose level 2, got %d", GetVerboseLevel())
	}
	if !IsDebugEnabled(DebugDedupe) {
		t.Error("Expected dedupe debugging to be enabled")
	}
	if !strings.Contains(buf.String(), "debug flags: dedupe") {
		t.Errorf("Expected enabled flags to be logged, got %q", buf.String())
	}
}
