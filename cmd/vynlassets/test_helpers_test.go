package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	musicRoot  string
	publicDir  string
	stateDir   string
	configPath string
}

func (e *cliTestEnv) graphicsPath(name string) string {
	return filepath.Join(e.musicRoot, "graphics", name)
}

func setupCLITestEnv(t *testing.T, extra string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("VYNL_MUSIC_ROOT", "")
	t.Setenv("VYNL_PUBLIC_DIR", "")

	env := &cliTestEnv{
		baseDir:    base,
		musicRoot:  filepath.Join(base, "music"),
		publicDir:  filepath.Join(base, "public"),
		stateDir:   filepath.Join(base, "state"),
		configPath: filepath.Join(base, "vynlassets.toml"),
	}
	writeTestConfig(t, env, extra)
	return env
}

func writeTestConfig(t *testing.T, env *cliTestEnv, extra string) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\nmusic_root = %q\npublic_dir = %q\nstate_dir = %q\nlog_dir = %q\n\n[friends]\nimages = [\"a.png\", \"b.png\"]\n%s",
		env.musicRoot,
		env.publicDir,
		env.stateDir,
		filepath.Join(env.baseDir, "logs"),
		extra,
	)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func writeSource(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
