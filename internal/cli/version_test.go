package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestResolveVersionInfo_LdflagsOverride(t *testing.T) {
	original := version
	defer func() { version = original }()

	version = "1.2.3"
	v, _, _ := resolveVersionInfo()
	if v != "1.2.3" {
		t.Errorf("expected ldflags version '1.2.3', got %q", v)
	}
}

func TestResolveVersionInfo_DevFallback(t *testing.T) {
	origV, origC, origD := version, commit, date
	defer func() { version, commit, date = origV, origC, origD }()

	version, commit, date = "dev", "unknown", "unknown"
	v, c, d := resolveVersionInfo()

	if v == "" {
		t.Error("version should not be empty")
	}
	// In a test binary, ReadBuildInfo returns test module info.
	t.Logf("resolved: version=%s commit=%s date=%s", v, c, d)
}

func TestPrintVersionInfo(t *testing.T) {
	original := version
	defer func() { version = original }()
	version = "0.4.0"

	var buf bytes.Buffer
	printVersionInfo(&buf)
	if !strings.HasPrefix(buf.String(), "synclean 0.4.0 (") {
		t.Errorf("unexpected version line %q", buf.String())
	}
}
