package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
)

// runCmd executes the root command with a temp config dir and sqlite path.
func runCmd(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	color.NoColor = true
	t.Setenv("NINEGRID_SOUND", "false")
	t.Setenv("NINEGRID_NAVIGATE_DELAY", "1ms")
	t.Setenv("NINEGRID_MODAL_DELAY", "1ms")

	var buf bytes.Buffer
	root := RootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(append([]string{"--config", dir, "--db", filepath.Join(dir, "ninegrid.db")}, args...))

	err := root.Execute()
	return buf.String(), err
}

func TestTilesCmd(t *testing.T) {
	output, err := runCmd(t, t.TempDir(), "tiles")
	if err != nil {
		t.Fatalf("tiles failed: %v\n%s", err, output)
	}
	for _, want := range []string{"execution", "pages/execution.html", "pages/contact.html"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestOpenStatusLogReset(t *testing.T) {
	dir := t.TempDir()

	output, err := runCmd(t, dir, "open", "execution")
	if err != nil {
		t.Fatalf("open failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "execution complete (1/9)") {
		t.Errorf("unexpected open output:\n%s", output)
	}

	output, err = runCmd(t, dir, "status")
	if err != nil {
		t.Fatalf("status failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Progress: 1/9 tiles") {
		t.Errorf("expected progress to persist:\n%s", output)
	}

	output, err = runCmd(t, dir, "log")
	if err != nil {
		t.Fatalf("log failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "complete_tile") {
		t.Errorf("expected activity entry:\n%s", output)
	}

	if output, err = runCmd(t, dir, "reset"); err != nil {
		t.Fatalf("reset failed: %v\n%s", err, output)
	}

	output, err = runCmd(t, dir, "status")
	if err != nil {
		t.Fatalf("status failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Progress: 0/9 tiles") {
		t.Errorf("expected empty progress after reset:\n%s", output)
	}
}

func TestOpenUnknownTile(t *testing.T) {
	if _, err := runCmd(t, t.TempDir(), "open", "lobby"); err == nil {
		t.Error("expected error for unknown tile")
	}
}

func TestProfileFlagIsolatesProgress(t *testing.T) {
	dir := t.TempDir()

	if output, err := runCmd(t, dir, "--profile", "alice", "open", "tools"); err != nil {
		t.Fatalf("open failed: %v\n%s", err, output)
	}

	output, err := runCmd(t, dir, "--profile", "bob", "status")
	if err != nil {
		t.Fatalf("status failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Progress: 0/9 tiles") {
		t.Errorf("bob should not see alice's progress:\n%s", output)
	}
}

func TestStoreFlagValidation(t *testing.T) {
	if _, err := runCmd(t, t.TempDir(), "--store", "etcd", "status"); err == nil {
		t.Error("expected error for unknown store")
	}
}

func TestConfigCmds(t *testing.T) {
	dir := t.TempDir()

	output, err := runCmd(t, dir, "config", "init")
	if err != nil {
		t.Fatalf("config init failed: %v\n%s", err, output)
	}
	if _, err := runCmd(t, dir, "config", "init"); err == nil {
		t.Error("expected second init to refuse overwriting")
	}

	output, err = runCmd(t, dir, "--profile", "carol", "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, `"profile": "carol"`) {
		t.Errorf("expected flag override in resolved config:\n%s", output)
	}
	if !strings.Contains(output, `"navigate_delay": "1ms"`) {
		t.Errorf("expected env override in resolved config:\n%s", output)
	}
}

func TestDevSeed(t *testing.T) {
	dir := t.TempDir()

	if output, err := runCmd(t, dir, "dev", "seed"); err != nil {
		t.Fatalf("dev seed failed: %v\n%s", err, output)
	}

	output, err := runCmd(t, dir, "--profile", "demo", "status")
	if err != nil {
		t.Fatalf("status failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Progress: 4/9 tiles") {
		t.Errorf("expected seeded progress:\n%s", output)
	}
}
