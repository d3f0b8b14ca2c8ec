package version

import (
	"encoding/json"
	"runtime/debug"
	"strings"
	"testing"
)

func TestFillFromBuildInfo(t *testing.T) {
	info := Info{Version: "0.0.0", Branch: "unknown", Revision: "unknown", BuiltAt: "unknown"}
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v1.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2024-05-01T10:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	fillFromBuildInfo(&info, bi)

	if info.Version != "v1.4.0" {
		t.Errorf("Version = %q", info.Version)
	}
	if info.Revision != "0123456" {
		t.Errorf("Revision = %q", info.Revision)
	}
	if info.BuiltAt != "2024-05-01T10:00:00Z" {
		t.Errorf("BuiltAt = %q", info.BuiltAt)
	}
	if !info.Modified {
		t.Error("Modified should be true")
	}
}

func TestFillKeepsLinkerValues(t *testing.T) {
	info := Info{Version: "2.0.0", Branch: "main", Revision: "abc123", BuiltAt: "yesterday"}
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "ffffffffffff"},
			{Key: "vcs.time", Value: "2024-05-01T10:00:00Z"},
		},
	}

	fillFromBuildInfo(&info, bi)

	if info.Version != "2.0.0" || info.Revision != "abc123" || info.BuiltAt != "yesterday" {
		t.Errorf("linker values overwritten: %+v", info)
	}
}

func TestInfoFormats(t *testing.T) {
	info := Info{Version: "1.0.0", Branch: "main", Revision: "abc", BuiltAt: "now", GoVersion: "go1.24"}

	if s := info.String(); !strings.Contains(s, "Version: 1.0.0") || !strings.Contains(s, "Go Version: go1.24") {
		t.Errorf("unexpected String(): %q", s)
	}

	out, err := info.JSON()
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var back Info
	if err := json.Unmarshal([]byte(out), &back); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if back != info {
		t.Errorf("round trip mismatch: %+v", back)
	}
}
