package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mgpai22/subwatch/internal/player"
	"github.com/mgpai22/subwatch/internal/subtitle"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const sampleSRT = `1
00:00:01,000 --> 00:00:03,000
Hello <i>there</i>

2
00:00:02,500 --> bad
Broken

3
00:00:04,000 --> 00:00:05,000
Bye
`

func writeSample(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

// execute runs the root command with fresh flag values, since the commands
// are package globals shared by every test.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	for _, c := range rootCmd.Commands() {
		resetFlags(c)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestInspectSummary(t *testing.T) {
	path := writeSample(t, "movie.srt", sampleSRT)

	out, err := execute(t, "inspect", path)
	if err != nil {
		t.Fatalf("inspect failed: %v\n%s", err, out)
	}

	for _, want := range []string{
		"Format: srt",
		"Cues: 2",
		"Duration: 00:00:05:000",
		"Skipped: 1",
		"line 5:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Active at") {
		t.Errorf("active cues printed without --at:\n%s", out)
	}
}

func TestInspectList(t *testing.T) {
	path := writeSample(t, "movie.srt", sampleSRT)

	out, err := execute(t, "inspect", path, "--list")
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if !strings.Contains(out, "#1 00:00:01:000 --> 00:00:03:000  Hello there") {
		t.Errorf("cue listing missing:\n%s", out)
	}
	if !strings.Contains(out, "#2 00:00:04:000 --> 00:00:05:000  Bye") {
		t.Errorf("cue listing missing:\n%s", out)
	}
}

func TestInspectAt(t *testing.T) {
	path := writeSample(t, "movie.srt", sampleSRT)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"active", []string{"--at", "00:00:01:500"}, "Hello there"},
		{"between cues", []string{"--at", "3.5s"}, "(none)"},
		{"end is exclusive", []string{"--at", "00:00:03:000"}, "(none)"},
		{"offset", []string{"--at", "3s", "--offset", "1s"}, "Bye"},
		{"negative offset clamps", []string{"--at", "1s", "--offset", "-10s"}, "position 00:00:00:000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"inspect", path}, tt.args...)...)
			if err != nil {
				t.Fatalf("inspect failed: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestInspectOffsetFromEnv(t *testing.T) {
	path := writeSample(t, "movie.srt", sampleSRT)
	t.Setenv("SUBWATCH_OFFSET", "-1s")

	out, err := execute(t, "inspect", path, "--at", "2.5s")
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if !strings.Contains(out, "position 00:00:01:500") {
		t.Errorf("env offset not applied:\n%s", out)
	}

	// the flag wins over the environment
	out, err = execute(t, "inspect", path, "--at", "2.5s", "--offset", "0s")
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if !strings.Contains(out, "position 00:00:02:500") {
		t.Errorf("flag did not override env offset:\n%s", out)
	}
}

func TestInspectErrors(t *testing.T) {
	dir := t.TempDir()
	empty := writeSample(t, "empty.srt", "1\n00:00:02,000 --> 00:00:01,000\nbackwards\n")

	_, err := execute(t, "inspect", filepath.Join(dir, "missing.srt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: expected os.ErrNotExist, got %v", err)
	}

	_, err = execute(t, "inspect", empty)
	if !errors.Is(err, subtitle.ErrEmptyOrUnparsable) {
		t.Errorf("no usable cues: expected ErrEmptyOrUnparsable, got %v", err)
	}

	garbage := writeSample(t, "notes.txt", "just some text")
	_, err = execute(t, "inspect", garbage)
	var parseErr *subtitle.ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("unknown content: expected ParseError, got %v", err)
	}

	path := writeSample(t, "movie.srt", sampleSRT)
	if _, err := execute(t, "inspect", path, "--at", "soon"); err == nil {
		t.Error("expected error for invalid --at")
	}
	if _, err := execute(t, "inspect", path, "--format", "sub"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestExportWithOffset(t *testing.T) {
	path := writeSample(t, "movie.srt", sampleSRT)
	output := filepath.Join(t.TempDir(), "out", "movie.vtt")

	out, err := execute(t, "export", path, "-f", "vtt", "-o", output, "--offset", "1s")
	if err != nil {
		t.Fatalf("export failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Entries: 2") {
		t.Errorf("unexpected summary:\n%s", out)
	}

	result, err := subtitle.LoadFile(output)
	if err != nil {
		t.Fatalf("failed to reload export: %v", err)
	}
	if result.Format != subtitle.FormatVTT {
		t.Errorf("exported format = %s, want vtt", result.Format)
	}

	type span struct {
		Start, End time.Duration
		Text       string
	}
	var got []span
	for _, c := range result.Cues.Cues() {
		got = append(got, span{c.Start, c.End, c.Text})
	}
	want := []span{
		{0, 2 * time.Second, "Hello there"},
		{3 * time.Second, 4 * time.Second, "Bye"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("exported cues mismatch (-want +got):\n%s", diff)
	}
}

func TestExportDefaultOutput(t *testing.T) {
	path := writeSample(t, "movie.srt", sampleSRT)

	if _, err := execute(t, "export", path); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	want := strings.TrimSuffix(path, ".srt") + ".export.srt"
	if _, err := os.Stat(want); err != nil {
		t.Errorf("expected default output %s: %v", want, err)
	}
}

func TestExportDropsCuesBeforeZero(t *testing.T) {
	path := writeSample(t, "movie.srt", sampleSRT)
	output := filepath.Join(t.TempDir(), "late.ass")

	out, err := execute(t, "export", path, "-o", output, "-f", "ass", "--offset", "00:00:03:500")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(out, "Entries: 1") {
		t.Errorf("expected one surviving cue:\n%s", out)
	}

	result, err := subtitle.LoadFile(output)
	if err != nil {
		t.Fatalf("failed to reload export: %v", err)
	}
	cue := result.Cues.At(0)
	if cue.Start != 500*time.Millisecond || cue.Text != "Bye" {
		t.Errorf("unexpected cue %+v", cue)
	}
}

func TestTickFromFlags(t *testing.T) {
	resetFlags(watchCmd)
	t.Cleanup(func() {
		resetFlags(watchCmd)
		env = envConfig{}
	})

	env = envConfig{}
	got, err := tickFromFlags(watchCmd)
	if err != nil || got != player.DefaultInterval {
		t.Errorf("default tick = %v, %v", got, err)
	}

	t.Setenv("SUBWATCH_TICK", "40ms")
	env, err = loadEnv()
	if err != nil {
		t.Fatalf("loadEnv failed: %v", err)
	}
	got, err = tickFromFlags(watchCmd)
	if err != nil || got != 40*time.Millisecond {
		t.Errorf("env tick = %v, %v", got, err)
	}

	if err := watchCmd.Flags().Set("tick", "25ms"); err != nil {
		t.Fatal(err)
	}
	got, err = tickFromFlags(watchCmd)
	if err != nil || got != 25*time.Millisecond {
		t.Errorf("flag tick = %v, %v", got, err)
	}

	for _, bad := range []string{"0s", "-5ms", "fast"} {
		if err := watchCmd.Flags().Set("tick", bad); err != nil {
			t.Fatal(err)
		}
		if _, err := tickFromFlags(watchCmd); err == nil {
			t.Errorf("tick %q: expected error", bad)
		}
	}
}

func TestLoadEnvReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	content := "SUBWATCH_OFFSET=00:00:02:000\nSUBWATCH_LOG_FILE=watch.log\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	chdirForTest(t, dir)

	// registered so the cleanup unsets what .env loads
	t.Setenv("SUBWATCH_OFFSET", "")
	t.Setenv("SUBWATCH_LOG_FILE", "")
	os.Unsetenv("SUBWATCH_OFFSET")
	os.Unsetenv("SUBWATCH_LOG_FILE")
	t.Setenv("SUBWATCH_TICK", "20ms")

	cfg, err := loadEnv()
	if err != nil {
		t.Fatalf("loadEnv failed: %v", err)
	}
	want := envConfig{Offset: "00:00:02:000", Tick: "20ms", LogFile: "watch.log"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("env config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvWithoutDotEnv(t *testing.T) {
	chdirForTest(t, t.TempDir())
	t.Setenv("SUBWATCH_OFFSET", "-500ms")

	cfg, err := loadEnv()
	if err != nil {
		t.Fatalf("loadEnv failed: %v", err)
	}
	if cfg.Offset != "-500ms" {
		t.Errorf("Offset = %q", cfg.Offset)
	}
}

func TestLicense(t *testing.T) {
	out, err := execute(t, "license")
	if err != nil {
		t.Fatalf("license failed: %v", err)
	}
	if !strings.Contains(out, "MIT License") {
		t.Errorf("unexpected license text:\n%s", out)
	}
}

// chdirForTest mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
