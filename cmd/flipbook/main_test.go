package main

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"flipbook/internal/config"
	"flipbook/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.ExportDir = filepath.Join(base, "export")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Logging.Format = "console"
	cfgVal.Logging.Level = "error"

	configPath := filepath.Join(base, "config.toml")
	payload, err := toml.Marshal(cfgVal)
	if err != nil {
		t.Fatalf("marshal test config: %v", err)
	}
	if err := os.WriteFile(configPath, payload, 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}

	return &cliTestEnv{cfg: &cfgVal, configPath: configPath, baseDir: base}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func writeFixtureImage(t *testing.T, env *cliTestEnv, name string, fill color.RGBA) string {
	t.Helper()
	path := filepath.Join(env.baseDir, name)
	if err := os.WriteFile(path, testsupport.PNGBytes(t, 160, 120, fill), 0o644); err != nil {
		t.Fatalf("write fixture image: %v", err)
	}
	return path
}

func TestProjectLifecycle(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "project", "create", "Cats")
	if err != nil {
		t.Fatalf("project create: %v", err)
	}
	requireContains(t, out, `Created project "Cats"`)

	// Duplicate names are rejected after trim and case folding.
	if _, _, err := runCLI(t, env, "project", "create", "  cats  "); err == nil {
		t.Fatal("expected duplicate create to fail")
	}

	out, _, err = runCLI(t, env, "project", "list")
	if err != nil {
		t.Fatalf("project list: %v", err)
	}
	requireContains(t, out, "Cats")

	out, _, err = runCLI(t, env, "project", "delete", "Cats")
	if err != nil {
		t.Fatalf("project delete: %v", err)
	}
	requireContains(t, out, `Deleted project "Cats"`)

	out, _, err = runCLI(t, env, "project", "list")
	if err != nil {
		t.Fatalf("project list: %v", err)
	}
	requireContains(t, out, "No projects yet")
}

func TestCaptureAndExport(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, env, "project", "create", "Cats"); err != nil {
		t.Fatalf("project create: %v", err)
	}

	red := writeFixtureImage(t, env, "red.png", color.RGBA{R: 255, A: 255})
	green := writeFixtureImage(t, env, "green.png", color.RGBA{G: 255, A: 255})

	out, _, err := runCLI(t, env, "capture", "Cats", red, green)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	requireContains(t, out, "frame 1")
	requireContains(t, out, "frame 2")

	out, _, err = runCLI(t, env, "project", "show", "Cats")
	if err != nil {
		t.Fatalf("project show: %v", err)
	}
	requireContains(t, out, "Frames:  2")

	out, _, err = runCLI(t, env, "export", "Cats", "--delay", "150")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	requireContains(t, out, "2 frames")

	exported := filepath.Join(env.cfg.Paths.ExportDir, "Cats.gif")
	data, err := os.ReadFile(exported)
	if err != nil {
		t.Fatalf("read exported animation: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("GIF8")) {
		t.Fatalf("expected GIF output, got %q", data[:min(8, len(data))])
	}
}

func TestExportRejectsEmptyProjectAndBadDelay(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, env, "project", "create", "Cats"); err != nil {
		t.Fatalf("project create: %v", err)
	}

	if _, _, err := runCLI(t, env, "export", "Cats"); err == nil {
		t.Fatal("expected export of empty project to fail")
	}

	frame := writeFixtureImage(t, env, "frame.png", color.RGBA{B: 255, A: 255})
	if _, _, err := runCLI(t, env, "capture", "Cats", frame); err != nil {
		t.Fatalf("capture: %v", err)
	}

	if _, _, err := runCLI(t, env, "export", "Cats", "--delay", "0"); err == nil {
		t.Fatal("expected zero delay to be rejected")
	}
	if _, _, err := runCLI(t, env, "export", "Cats", "--delay", "10001"); err == nil {
		t.Fatal("expected over-limit delay to be rejected")
	}
}

func TestCaptureUnknownProjectFails(t *testing.T) {
	env := setupCLITestEnv(t)

	frame := writeFixtureImage(t, env, "frame.png", color.RGBA{R: 128, A: 255})
	if _, _, err := runCLI(t, env, "capture", "Nope", frame); err == nil {
		t.Fatal("expected capture into unknown project to fail")
	}
}
