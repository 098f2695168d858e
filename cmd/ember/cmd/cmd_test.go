package cmd

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newCLI returns a runner that captures output and shares one cache
// directory across calls.
func newCLI(t *testing.T) func(args ...string) (string, error) {
	t.Helper()
	cacheDir := t.TempDir()
	old := stdout
	t.Cleanup(func() { stdout = old })
	return func(args ...string) (string, error) {
		var buf bytes.Buffer
		stdout = &buf
		err := Run(append([]string{"--cache-dir", cacheDir}, args...))
		return buf.String(), err
	}
}

// writeProject writes an ember.yaml and the given files into a new directory.
func writeProject(t *testing.T, emberYAML string, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	files["ember.yaml"] = emberYAML
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func decodePNG(t *testing.T, path string) (width, height int, at func(x, y int) color.RGBA) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), func(x, y int) color.RGBA {
		return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
	}
}

func TestRun_HelpVersionUnknown(t *testing.T) {
	run := newCLI(t)

	out, err := run()
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Commands:", "render", "tree", "theme", "init", "status", "clean"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in help:\n%s", want, out)
		}
	}

	out, err = run("--version")
	if err != nil || !strings.HasPrefix(out, "ember version "+Version) {
		t.Errorf("unexpected version output %q, %v", out, err)
	}

	out, err = run("render", "--help")
	if err != nil || !strings.Contains(out, "ember render [flags] <screen.ember>") {
		t.Errorf("expected command usage, got %q, %v", out, err)
	}

	if _, err := run("paint"); err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("expected unknown command error, got %v", err)
	}
	if _, err := run("--cache-dir"); err == nil {
		t.Error("expected --cache-dir without a value to fail")
	}
}

func TestRender_PNG(t *testing.T) {
	run := newCLI(t)
	dir := writeProject(t, "", map[string]string{"screen.ember": `label "hi"`})
	screen := filepath.Join(dir, "screen.ember")

	out, err := run("render", "--size", "100x60", screen)
	if err != nil {
		t.Fatal(err)
	}
	png := filepath.Join(dir, "screen.png")
	if !strings.Contains(out, "Rendered "+png+" at 100x60") || strings.Contains(out, "cached") {
		t.Errorf("unexpected output %q", out)
	}
	w, h, at := decodePNG(t, png)
	if w != 100 || h != 60 {
		t.Fatalf("expected 100x60 image, got %dx%d", w, h)
	}
	if got := at(99, 59); got != (color.RGBA{0xF5, 0xF5, 0xF5, 0xFF}) {
		t.Errorf("expected default background in the corner, got %v", got)
	}

	out, err = run("render", "--size=100x60", screen)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "(cached)") {
		t.Errorf("expected second render to hit the cache, got %q", out)
	}

	out, err = run("render", "--size=100x60", "--no-cache", screen)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "(cached)") {
		t.Errorf("expected --no-cache to render, got %q", out)
	}
}

func TestRender_CacheInvalidatedByEdits(t *testing.T) {
	run := newCLI(t)
	dir := writeProject(t, "", map[string]string{"screen.ember": `label "a"`})
	screen := filepath.Join(dir, "screen.ember")

	if _, err := run("render", screen); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(screen, []byte(`label "b"`), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run("render", screen)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "(cached)") {
		t.Errorf("expected an edited screen to re-render, got %q", out)
	}
}

func TestRender_DarkAndTheme(t *testing.T) {
	run := newCLI(t)
	dir := writeProject(t, "", map[string]string{
		"screen.ember": `label "hi"`,
		"warm.toml":    "version = \"1.0.0\"\nname = \"warm\"\n\n[palette]\nbackground = \"#FFEEDD\"\n",
	})
	screen := filepath.Join(dir, "screen.ember")

	dark := filepath.Join(dir, "dark.png")
	if _, err := run("render", "--dark", "--out", dark, screen); err != nil {
		t.Fatal(err)
	}
	_, _, at := decodePNG(t, dark)
	if got := at(300, 200); got != (color.RGBA{0x12, 0x12, 0x12, 0xFF}) {
		t.Errorf("expected dark background, got %v", got)
	}

	warm := filepath.Join(dir, "warm.png")
	if _, err := run("render", "--theme", filepath.Join(dir, "warm.toml"), "--out", warm, screen); err != nil {
		t.Fatal(err)
	}
	_, _, at = decodePNG(t, warm)
	if got := at(300, 200); got != (color.RGBA{0xFF, 0xEE, 0xDD, 0xFF}) {
		t.Errorf("expected themed background, got %v", got)
	}
}

func TestRender_ProjectDefaults(t *testing.T) {
	run := newCLI(t)
	dir := writeProject(t, "output: out\nviewport: {width: 64, height: 32}\n", map[string]string{
		"screens/home.ember": `row { button "Go" }`,
	})

	if _, err := run("render", filepath.Join(dir, "screens", "home.ember")); err != nil {
		t.Fatal(err)
	}
	w, h, _ := decodePNG(t, filepath.Join(dir, "out", "home.png"))
	if w != 64 || h != 32 {
		t.Errorf("expected viewport from ember.yaml, got %dx%d", w, h)
	}
}

func TestRender_PDF(t *testing.T) {
	run := newCLI(t)
	dir := writeProject(t, "", map[string]string{"screen.ember": `column { label "pdf"; gauge 0.5 label }`})
	out := filepath.Join(dir, "screen.pdf")

	if _, err := run("render", "--out", out, filepath.Join(dir, "screen.ember")); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("expected a PDF document, got %q", data[:min(len(data), 16)])
	}
}

func TestRender_TapChangesFrame(t *testing.T) {
	run := newCLI(t)
	dir := writeProject(t, "", map[string]string{"screen.ember": `column { toggle #wifi "Wi-Fi" }`})
	screen := filepath.Join(dir, "screen.ember")
	before := filepath.Join(dir, "before.png")
	after := filepath.Join(dir, "after.png")

	if _, err := run("render", "--out", before, screen); err != nil {
		t.Fatal(err)
	}
	if _, err := run("render", "--tap", "wifi", "--out", after, screen); err != nil {
		t.Fatal(err)
	}
	a, _ := os.ReadFile(before)
	b, _ := os.ReadFile(after)
	if bytes.Equal(a, b) {
		t.Error("expected tapping the toggle to change the frame")
	}
}

func TestRender_Trace(t *testing.T) {
	run := newCLI(t)
	dir := writeProject(t, "", map[string]string{"screen.ember": `label "x"`})

	out, err := run("render", "--trace", filepath.Join(dir, "screen.ember"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"samples"`, `"frameMs"`, `"nodeCount": 1`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in trace output:\n%s", want, out)
		}
	}
}

func TestRender_Errors(t *testing.T) {
	run := newCLI(t)
	dir := writeProject(t, "", map[string]string{
		"screen.ember": `label "x"`,
		"broken.ember": `row { widget }`,
	})
	screen := filepath.Join(dir, "screen.ember")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no screen", []string{"render"}, "screen file is required"},
		{"two screens", []string{"render", screen, screen}, "expected one screen file"},
		{"bad format", []string{"render", "--out", "x.gif", screen}, "unsupported output format"},
		{"bad size", []string{"render", "--size", "wide", screen}, "invalid size"},
		{"missing value", []string{"render", screen, "--out"}, "--out requires a value"},
		{"unknown flag", []string{"render", "--fast", screen}, "unknown flag --fast"},
		{"tree has no out", []string{"tree", "--out", "a.png", screen}, "unknown flag --out"},
		{"theme and dark", []string{"render", "--dark", "--theme", "a.yaml", screen}, "mutually exclusive"},
		{"unknown key", []string{"render", "--press", "warp", screen}, "unknown key"},
		{"unknown widget", []string{"render", "--tap", "nope", screen}, `no widget named "nope"`},
		{"missing file", []string{"render", filepath.Join(dir, "none.ember")}, "none.ember"},
		{"bad markup", []string{"render", filepath.Join(dir, "broken.ember")}, "widget"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestTree(t *testing.T) {
	run := newCLI(t)
	dir := writeProject(t, "", map[string]string{"screen.ember": `row {
		button #ok "OK" width=50
		toggle #wifi "Wi-Fi" hidden
	}`})
	screen := filepath.Join(dir, "screen.ember")

	out, err := run("tree", "--size", "100x20", screen)
	if err != nil {
		t.Fatal(err)
	}
	want := "flex [0,0 100x20]\n  button#ok [0,0 50x20]\n  toggle#wifi "
	if !strings.HasPrefix(out, want) {
		t.Errorf("unexpected outline:\n%s", out)
	}
	if !strings.Contains(out, " hidden\n") {
		t.Errorf("expected hidden marker:\n%s", out)
	}
	if strings.Contains(out, "focused:") {
		t.Errorf("expected no focus before key presses:\n%s", out)
	}

	out, err = run("tree", "--size", "100x20", "--press", "tab", screen)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(out, "focused: ok\n") {
		t.Errorf("expected tab to focus the button:\n%s", out)
	}
}

func TestTheme(t *testing.T) {
	run := newCLI(t)
	dir := writeProject(t, "", map[string]string{
		"good.yaml": "name: good\npalette:\n  accent: \"#FF0000\"\n",
		"bad.yaml":  "version: v9.0.0\n",
	})

	out, err := run("theme", "validate", filepath.Join(dir, "good.yaml"))
	if err != nil || !strings.Contains(out, "ok   ") || !strings.Contains(out, "(good, v1.0.0)") {
		t.Errorf("unexpected validate output %q, %v", out, err)
	}
	out, err = run("theme", "validate", filepath.Join(dir, "good.yaml"), filepath.Join(dir, "bad.yaml"))
	if err == nil || !strings.Contains(out, "FAIL "+filepath.Join(dir, "bad.yaml")) {
		t.Errorf("expected bad.yaml to fail, got %q, %v", out, err)
	}

	out, err = run("theme", "fingerprint", "default", "dark")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || lines[0][:16] == lines[1][:16] {
		t.Errorf("expected two distinct fingerprints, got %q", out)
	}

	for _, format := range []string{"--yaml", "--toml"} {
		exported, err := run("theme", "export", "dark", format)
		if err != nil {
			t.Fatal(err)
		}
		path := filepath.Join(dir, "exported"+strings.Replace(format, "--", ".", 1))
		if err := os.WriteFile(path, []byte(exported), 0o644); err != nil {
			t.Fatal(err)
		}
		out, err := run("theme", "fingerprint", path)
		if err != nil {
			t.Fatal(err)
		}
		if out[:16] != lines[1][:16] {
			t.Errorf("%s: expected exported style to keep its fingerprint, got %q want %q", format, out[:16], lines[1][:16])
		}
	}

	if _, err := run("theme"); err == nil {
		t.Error("expected missing subcommand to fail")
	}
	if _, err := run("theme", "paint"); err == nil {
		t.Error("expected unknown subcommand to fail")
	}
	if _, err := run("theme", "export", "a", "b"); err == nil {
		t.Error("expected two styles to fail")
	}
}

func TestStatusAndClean(t *testing.T) {
	run := newCLI(t)
	dir := writeProject(t, "name: kiosk\nqueue: {capacity: 16, policy: oldest}\n", map[string]string{})

	out, err := run("status", dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Project:  kiosk", "Viewport: 320x240", "Queue:    16 (drop-oldest)", "Theme:    (built-in default)", "button"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in status:\n%s", want, out)
		}
	}
	if _, err := run("status", filepath.Join(dir, "missing")); err == nil {
		t.Error("expected a missing directory to fail")
	}

	out, err = run("clean")
	if err != nil || !strings.Contains(out, "Render cache cleared") {
		t.Errorf("unexpected clean output %q, %v", out, err)
	}
}
