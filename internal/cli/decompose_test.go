package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDecomposeCommand(t *testing.T) {
	dir := t.TempDir()
	links := writeFile(t, dir, "links.tsv", strings.Join([]string{
		"a + b - 100 25 3",
		"b + c - 100 25 3",
		"c + d - 100 25 3",
	}, "\n"))
	out := filepath.Join(dir, "pairs.tsv")

	cmd := newDecomposeCmd()
	cmd.SetArgs([]string{"-l", links, "-o", out})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("decompose failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "b\tc\tb\tc\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestDecomposeRequiresLinks(t *testing.T) {
	cmd := newDecomposeCmd()
	cmd.SetArgs([]string{})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error without a link file")
	}
}

func TestDecomposeConfigFile(t *testing.T) {
	dir := t.TempDir()
	links := writeFile(t, dir, "links.tsv", "a + b - 100 25 3\n")
	out := filepath.Join(dir, "pairs.tsv")
	cfg := writeFile(t, dir, "run.toml",
		"links = "+quote(links)+"\noutput = "+quote(out)+"\n")

	cmd := newDecomposeCmd()
	cmd.SetArgs([]string{"--config", cfg})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("decompose failed: %v", err)
	}

	if _, err := os.Stat(out); err != nil {
		t.Errorf("config output path was not used: %v", err)
	}
}

func TestDecomposeFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	links := writeFile(t, dir, "links.tsv", "a + b - 100 25 3\n")
	cfgOut := filepath.Join(dir, "from-config.tsv")
	flagOut := filepath.Join(dir, "from-flag.tsv")
	cfg := writeFile(t, dir, "run.toml",
		"links = "+quote(links)+"\noutput = "+quote(cfgOut)+"\n")

	cmd := newDecomposeCmd()
	cmd.SetArgs([]string{"--config", cfg, "-o", flagOut})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("decompose failed: %v", err)
	}

	if _, err := os.Stat(flagOut); err != nil {
		t.Errorf("flag output path should win over config: %v", err)
	}
	if _, err := os.Stat(cfgOut); err == nil {
		t.Error("config output path should not be used when the flag is set")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

// quote wraps a path in TOML double quotes, escaping backslashes.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `\`, `\\`) + `"`
}
