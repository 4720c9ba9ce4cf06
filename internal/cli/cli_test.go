// Package cli_test provides tests for the CLI package.
package cli_test

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/acoconv/internal/cli"
	"github.com/jmylchreest/acoconv/internal/version"
)

type testSwatch struct {
	r, g, b uint16
	name    string
}

// writeSwatchFile writes a version 1 block followed by a version 2 block with names.
func writeSwatchFile(t *testing.T, path string, swatches ...testSwatch) string {
	t.Helper()

	var buf bytes.Buffer
	put := func(v any) {
		if err := binary.Write(&buf, binary.BigEndian, v); err != nil {
			t.Fatal(err)
		}
	}

	for _, version := range []int16{1, 2} {
		put(version)
		put(uint16(len(swatches)))
		for _, s := range swatches {
			put(int16(0)) // RGB
			put([4]uint16{s.r, s.g, s.b, 0})
			if version == 2 {
				units := append(utf16.Encode([]rune(s.name)), 0)
				put(int32(len(units)))
				put(units)
			}
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// clearEnv unsets ACOCONV_* variables for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"FORMAT", "PREVIEW", "SORT", "LOG_LEVEL", "WORKERS", "PRODUCER", "TEMPLATE_DIR"} {
		t.Setenv("ACOCONV_"+key, "")
		os.Unsetenv("ACOCONV_" + key)
	}
}

// run executes the CLI with a clean environment and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	clearEnv(t)

	var outBuf, errBuf bytes.Buffer
	rootCmd := cli.NewRootCmd()
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return outBuf.String(), err
}

func primaries(t *testing.T, dir string) string {
	return writeSwatchFile(t, filepath.Join(dir, "primaries.aco"),
		testSwatch{65535, 0, 0, "Red"},
		testSwatch{0, 65535, 0, "Green"},
		testSwatch{0, 0, 65535, ""},
	)
}

func TestShowFormats(t *testing.T) {
	path := primaries(t, t.TempDir())

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "hex",
			args: []string{"show", "--preview", "never", path},
			want: "#ff0000  Red\n#00ff00  Green\n#0000ff\n",
		},
		{
			name: "preview value in equals form",
			args: []string{"show", "--preview=never", path},
			want: "#ff0000  Red\n#00ff00  Green\n#0000ff\n",
		},
		{
			name: "root command with preview value",
			args: []string{"--preview", "auto", path},
			want: "#ff0000  Red\n#00ff00  Green\n#0000ff\n",
		},
		{
			name: "rgb",
			args: []string{"show", "-f", "rgb", path},
			want: "rgb(255, 0, 0)  Red\nrgb(0, 255, 0)  Green\nrgb(0, 0, 255)\n",
		},
		{
			name: "root command shows a file",
			args: []string{path},
			want: "#ff0000  Red\n#00ff00  Green\n#0000ff\n",
		},
		{
			name: "sorted by lightness",
			args: []string{"show", "--sort", "lightness", path},
			want: "#0000ff\n#ff0000  Red\n#00ff00  Green\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestShowJSON(t *testing.T) {
	path := primaries(t, t.TempDir())

	got, err := run(t, "show", "--format", "json", path)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var listing struct {
		Source   string `json:"source"`
		Count    int    `json:"count"`
		Named    int    `json:"named"`
		Swatches []struct {
			Hex  string `json:"hex"`
			Name string `json:"name"`
		} `json:"swatches"`
	}
	if err := json.Unmarshal([]byte(got), &listing); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, got)
	}

	if listing.Source != path || listing.Count != 3 || listing.Named != 2 {
		t.Errorf("listing header = %q/%d/%d", listing.Source, listing.Count, listing.Named)
	}
	if listing.Swatches[0].Hex != "#ff0000" || listing.Swatches[0].Name != "Red" || listing.Swatches[2].Name != "" {
		t.Errorf("unexpected swatches: %+v", listing.Swatches)
	}
}

func TestShowNames(t *testing.T) {
	path := primaries(t, t.TempDir())

	got, err := run(t, "show", "-f", "names", path)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header, separator and 3 rows, got:\n%s", got)
	}
	for _, header := range []string{"#", "Hex", "RGB", "Name", "Nearest"} {
		if !strings.Contains(lines[0], header) {
			t.Errorf("header %q missing from %q", header, lines[0])
		}
	}
	if !strings.Contains(lines[2], "Red") || !strings.Contains(lines[4], "  -  ") {
		t.Errorf("unexpected rows:\n%s", got)
	}
}

func TestShowPreviewAlways(t *testing.T) {
	path := primaries(t, t.TempDir())

	got, err := run(t, "show", "--preview", "always", path)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(got, "\x1b[48;2;255;0;0m") {
		t.Errorf("expected ANSI preview in output, got %q", got)
	}
}

func TestShowOutputFile(t *testing.T) {
	dir := t.TempDir()
	path := primaries(t, dir)
	out := filepath.Join(dir, "listing", "colours.txt")

	stdout, err := run(t, "show", "-o", out, path)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout should be empty when writing a file, got %q", stdout)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	// Auto preview is off for files.
	if string(data) != "#ff0000  Red\n#00ff00  Green\n#0000ff\n" {
		t.Errorf("file content = %q", data)
	}
}

func TestShowEnvironment(t *testing.T) {
	path := primaries(t, t.TempDir())

	clearEnv(t)
	t.Setenv("ACOCONV_FORMAT", "rgb")

	var outBuf bytes.Buffer
	rootCmd := cli.NewRootCmd()
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"show", path})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(outBuf.String(), "rgb(255, 0, 0)") {
		t.Errorf("ACOCONV_FORMAT=rgb not applied: %q", outBuf.String())
	}

	// Explicit flags win over the environment.
	outBuf.Reset()
	rootCmd = cli.NewRootCmd()
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"show", "-f", "hex", path})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(outBuf.String(), "#ff0000") {
		t.Errorf("--format hex did not override environment: %q", outBuf.String())
	}
}

func TestShowErrors(t *testing.T) {
	dir := t.TempDir()
	path := primaries(t, dir)
	empty := filepath.Join(dir, "empty.aco")
	if err := os.WriteFile(empty, []byte{0, 1, 0, 0}, 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "invalid format", args: []string{"show", "-f", "xml", path}, wantErr: "invalid format"},
		{name: "invalid sort", args: []string{"show", "--sort", "chroma", path}, wantErr: "invalid sort key"},
		{name: "invalid preview", args: []string{"show", "--preview=maybe", path}, wantErr: "invalid preview mode"},
		{name: "missing file", args: []string{"show", filepath.Join(dir, "nope.aco")}, wantErr: "failed to decode"},
		{name: "empty file", args: []string{"show", empty}, wantErr: "no colours"},
		{name: "no argument", args: []string{"show"}, wantErr: "accepts 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Execute() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	path := primaries(t, dir)

	got, err := run(t, "export", "--producer", "test", path)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := filepath.Join(dir, "primaries.txt")
	if strings.TrimSpace(got) != want {
		t.Errorf("printed paths = %q, want %q", got, want)
	}

	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatal(err)
	}
	wantContent := "; Adobe® Photoshop® Color Swatch file converted to Paint.NET by test.\nFFFF0000\nFF00FF00\nFF0000FF\n"
	if diff := cmp.Diff(wantContent, string(data)); diff != "" {
		t.Errorf("palette mismatch (-want +got):\n%s", diff)
	}
}

func TestExportManyFiles(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "palettes")

	big := make([]testSwatch, 100)
	for i := range big {
		big[i] = testSwatch{uint16(i) * 257, 0, 0, ""}
	}
	inputs := []string{
		primaries(t, dir),
		writeSwatchFile(t, filepath.Join(dir, "big.aco"), big...),
	}

	got, err := run(t, "export", "--dir", outDir, "-w", "2", inputs[0], inputs[1])
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := []string{
		filepath.Join(outDir, "primaries.txt"),
		filepath.Join(outDir, "big.txt"),
		filepath.Join(outDir, "big#2.txt"),
	}
	if diff := cmp.Diff(want, strings.Fields(got)); diff != "" {
		t.Errorf("printed paths mismatch (-want +got):\n%s", diff)
	}
	for _, p := range want {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected %s to exist: %v", p, err)
		}
	}
}

func TestExportPartialFailure(t *testing.T) {
	dir := t.TempDir()
	good := primaries(t, dir)
	bad := filepath.Join(dir, "bad.aco")
	if err := os.WriteFile(bad, []byte{0, 3, 0, 1}, 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := run(t, "export", bad, good)
	if err == nil || !strings.Contains(err.Error(), "1 of 2 files failed") {
		t.Fatalf("Execute() error = %v, want partial failure", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "primaries.txt")); statErr != nil {
		t.Errorf("good file should still be exported: %v", statErr)
	}
}

func TestExportArguments(t *testing.T) {
	dir := t.TempDir()
	path := primaries(t, dir)

	if _, err := run(t, "export", "-o", filepath.Join(dir, "x.txt"), path, path); err == nil {
		t.Error("--output with two inputs should fail")
	}
	if _, err := run(t, "export"); err == nil {
		t.Error("export without inputs should fail")
	}
	if _, err := run(t, "export", "-o", "a.txt", "-d", dir, path); err == nil {
		t.Error("--output and --dir together should fail")
	}

	other := filepath.Join(t.TempDir(), "primaries.aco.gz")
	if _, err := run(t, "export", "--dir", dir, path, other); err == nil || !strings.Contains(err.Error(), "would both be written") {
		t.Errorf("clashing outputs error = %v", err)
	}
}

func TestExportDumpTemplate(t *testing.T) {
	templateDir := t.TempDir()

	got, err := run(t, "export", "--dump-template", "--template-dir", templateDir)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := filepath.Join(templateDir, "paintdotnet", "paintdotnet.txt.tmpl")
	if strings.TrimSpace(got) != want {
		t.Errorf("printed path = %q, want %q", got, want)
	}

	// A custom template is used for later exports.
	if err := os.WriteFile(want, []byte("{{ range .Colors }}{{ argb . }} {{ end }}"), 0o644); err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	path := primaries(t, dir)
	if _, err := run(t, "export", "--template-dir", templateDir, path); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "primaries.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "FFFF0000 FF00FF00 FF0000FF " {
		t.Errorf("custom template output = %q", data)
	}
}

func TestVersionCommand(t *testing.T) {
	got, err := run(t, "version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(got, "acoconv version ") {
		t.Errorf("version output = %q", got)
	}

	got, err = run(t, "version", "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	var info version.Info
	if err := json.Unmarshal([]byte(got), &info); err != nil {
		t.Fatalf("version --json output is not JSON: %v\n%s", err, got)
	}
	if info.Version == "" || info.Platform == "" {
		t.Errorf("version --json = %+v, want version and platform", info)
	}
}
