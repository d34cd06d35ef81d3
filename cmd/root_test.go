package cmd

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/xll-gen/bin2hdr/internal/converter"
	"github.com/xll-gen/bin2hdr/internal/ui"
)

// execute runs rootCmd with args and returns the status output and error.
// Flag state is reset first because cobra keeps it between executions.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	rootCmd.Flags().VisitAll(reset)
	rootCmd.PersistentFlags().VisitAll(reset)
	verifyCmd.Flags().VisitAll(reset)

	prevOut, prevErr := ui.Out, ui.Err
	var out bytes.Buffer
	ui.Out, ui.Err = &out, &out
	defer func() { ui.Out, ui.Err = prevOut, prevErr }()

	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "doorbell-two.mp3")
	out := filepath.Join(dir, "doorbell_audio.h")
	if err := os.WriteFile(in, []byte{0xff, 0xfb, 0x90, 0x64}, 0644); err != nil {
		t.Fatal(err)
	}

	status, err := execute(t, in, out)
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	for _, want := range []string{"Created", out, "Variable", "doorbell_two", "4 bytes"} {
		if !strings.Contains(status, want) {
			t.Errorf("status output missing %q:\n%s", want, status)
		}
	}

	content, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "const unsigned char doorbell_two[] PROGMEM = {\n  0xff, 0xfb, 0x90, 0x64,\n};") {
		t.Errorf("unexpected header:\n%s", content)
	}
}

func TestConvertCommand_Flags(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "9 lives.bin")
	out := filepath.Join(dir, "lives.h")
	if err := os.WriteFile(in, bytes.Repeat([]byte{0x42}, 10), 0644); err != nil {
		t.Fatal(err)
	}

	status, err := execute(t, "--dialect", "portable", "--strict", "--row-width", "4", "--quiet", in, out)
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if status != "" {
		t.Errorf("--quiet should suppress status output, got %q", status)
	}

	content, _ := os.ReadFile(out)
	text := string(content)
	if strings.Contains(text, "PROGMEM") {
		t.Error("portable dialect emitted PROGMEM")
	}
	if !strings.Contains(text, "const unsigned char _9_lives[] = {\n  0x42, 0x42, 0x42, 0x42,\n") {
		t.Errorf("unexpected header:\n%s", text)
	}
}

func TestConvertCommand_InvalidFlag(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.bin")
	out := filepath.Join(dir, "a.h")
	if err := os.WriteFile(in, []byte{1}, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := execute(t, "--dialect", "far", in, out)
	if err == nil || !strings.Contains(err.Error(), "invalid dialect") {
		t.Fatalf("expected invalid dialect error, got %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("output must not be created when options are invalid")
	}
}

func TestConvertCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.bin")
	out := filepath.Join(dir, "a.h")
	cfgPath := filepath.Join(dir, "bin2hdr.yaml")
	if err := os.WriteFile(in, []byte{1, 2}, 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfgPath, []byte("output:\n  dialect: portable\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "--config", cfgPath, in, out); err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	content, _ := os.ReadFile(out)
	if strings.Contains(string(content), "PROGMEM") {
		t.Error("config dialect was ignored")
	}

	// Flags override the file.
	if _, err := execute(t, "--config", cfgPath, "--dialect", "progmem", in, out); err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	content, _ = os.ReadFile(out)
	if !strings.Contains(string(content), "PROGMEM") {
		t.Error("--dialect flag did not override config")
	}

	if _, err := execute(t, "--config", filepath.Join(dir, "absent.yaml"), in, out); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestConvertCommand_Usage(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.h")

	for _, args := range [][]string{{}, {out}, {out, out, out}} {
		_, err := execute(t, args...)

		var usageErr *converter.UsageError
		if !errors.As(err, &usageErr) {
			t.Fatalf("args %q: expected *UsageError, got %v", args, err)
		}
		if usageErr.Error() != "Usage: bin2hdr <input-file> <output-file>" {
			t.Errorf("args %q: usage = %q", args, usageErr.Error())
		}
	}

	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("usage error must not create the output file")
	}
}

func TestConvertCommand_ReadError(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, filepath.Join(dir, "missing.mp3"), filepath.Join(dir, "out.h"))

	var readErr *converter.ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("expected *ReadError, got %T: %v", err, err)
	}
}

// TestHelperProcess is not a real test. It runs Execute in a subprocess so
// exit codes can be observed.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("BIN2HDR_HELPER_PROCESS") != "1" {
		return
	}
	args := strings.Split(os.Getenv("BIN2HDR_HELPER_ARGS"), "\n")
	if len(args) == 1 && args[0] == "" {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	Execute()
	os.Exit(0)
}

func runHelper(t *testing.T, args ...string) (string, int) {
	t.Helper()
	cmd := exec.Command(os.Args[0], "-test.run=^TestHelperProcess$")
	cmd.Env = append(os.Environ(),
		"BIN2HDR_HELPER_PROCESS=1",
		"BIN2HDR_HELPER_ARGS="+strings.Join(args, "\n"),
		"NO_COLOR=1",
	)
	out, err := cmd.CombinedOutput()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return string(out), exitErr.ExitCode()
	}
	if err != nil {
		t.Fatalf("helper process failed: %v", err)
	}
	return string(out), 0
}

func TestExecute_ExitCodes(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.bin")
	out := filepath.Join(dir, "a.h")
	if err := os.WriteFile(in, []byte{7}, 0644); err != nil {
		t.Fatal(err)
	}

	output, code := runHelper(t, in)
	if code != 1 {
		t.Errorf("one argument: exit code %d, want 1", code)
	}
	if !strings.Contains(output, "Usage: bin2hdr <input-file> <output-file>") {
		t.Errorf("one argument: missing usage message:\n%s", output)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("usage error created the output file")
	}

	_, code = runHelper(t, in, out)
	if code != 0 {
		t.Errorf("valid invocation: exit code %d, want 0", code)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output not created: %v", err)
	}
}

func TestConvertCommand_LaxIdentifierWarning(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "01.intro.wav")
	out := filepath.Join(dir, "intro.h")
	if err := os.WriteFile(in, []byte{0}, 0644); err != nil {
		t.Fatal(err)
	}

	status, err := execute(t, in, out)
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if !strings.Contains(status, `"01.intro" is not a valid C symbol`) {
		t.Errorf("expected lax identifier warning:\n%s", status)
	}
}

func TestConvertCommand_RowWidthLimits(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.bin")
	out := filepath.Join(dir, "a.hex")
	if err := os.WriteFile(in, bytes.Repeat([]byte{0x5a}, 600), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := execute(t, "--format", "ihex", "--row-width", "255", in, out)
	if err == nil || !strings.Contains(err.Error(), "for ihex") {
		t.Fatalf("expected ihex row width error, got %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("output must not be created for an oversized ihex record")
	}

	_, err = execute(t, "--row-width", "0", in, filepath.Join(dir, "a.h"))
	if err == nil || !strings.Contains(err.Error(), "invalid --row-width: 0") {
		t.Errorf("expected explicit zero row width to be rejected, got %v", err)
	}

	if _, err := execute(t, "--format", "ihex", "--row-width", "251", in, out); err != nil {
		t.Fatalf("convert at record limit failed: %v", err)
	}
	if _, err := execute(t, "verify", in, out); err != nil {
		t.Errorf("verify at record limit failed: %v", err)
	}
}

func TestConvertCommand_SuccessLogLevel(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.bin")
	if err := os.WriteFile(in, []byte{1, 2}, 0644); err != nil {
		t.Fatal(err)
	}

	infoLog := filepath.Join(dir, "info.log")
	if _, err := execute(t, "--log-file", infoLog, in, filepath.Join(dir, "a.h")); err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	content, _ := os.ReadFile(infoLog)
	if strings.Contains(string(content), "msg=converted") {
		t.Errorf("success should not be logged at info level:\n%s", content)
	}

	debugLog := filepath.Join(dir, "debug.log")
	if _, err := execute(t, "--log-level", "debug", "--log-file", debugLog, in, filepath.Join(dir, "b.h")); err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	content, _ = os.ReadFile(debugLog)
	if !strings.Contains(string(content), "msg=converted") {
		t.Errorf("expected debug success log:\n%s", content)
	}
}
