package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestValidateDirectory(t *testing.T) {
	type tc struct {
		name    string
		dir     string
		wantErr bool
	}
	tests := []tc{
		{"simple name", "kiosk", false},
		{"relative path", "screens/kiosk", false},
		{"dot-slash relative", "./screens/kiosk", false},

		{"empty", "", true},
		{"root slash", "/", true},
		{"dot", ".", true},
		{"dotdot", "..", true},
	}

	if runtime.GOOS == "windows" {
		tests = append(tests,
			tc{"drive root", `C:\`, true},
			tc{"root-level C:\\Users", `C:\Users`, true},
			tc{"nested windows path", `C:\Users\me\kiosk`, false},
		)
	} else {
		tests = append(tests,
			tc{"absolute nested", "/home/user/screens/kiosk", false},
			tc{"root-level /etc", "/etc", true},
			tc{"root-level /tmp", "/tmp", true},
		)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDirectory(tt.dir)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateDirectory(%q) error = %v, wantErr %v", tt.dir, err, tt.wantErr)
			}
		})
	}
}

func TestValidateProjectName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"simple", "kiosk", ""},
		{"with digits and separators", "panel_2-b", ""},
		{"empty", "", "cannot be empty"},
		{"hidden", ".kiosk", "cannot start with a dot"},
		{"flag-like", "-kiosk", "cannot start with a hyphen"},
		{"leading digit", "2kiosk", "must start with a letter"},
		{"space", "my kiosk", "must start with a letter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateProjectName(tt.input)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("validateProjectName(%q) unexpected error %v", tt.input, err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("validateProjectName(%q) error = %v, want %q", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestInit_ScaffoldsRenderableProject(t *testing.T) {
	run := newCLI(t)
	dir := filepath.Join(t.TempDir(), "kiosk")

	out, err := run("init", dir, "--dark", "--size", "120x80")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"ember.yaml", "screen.ember", "theme.yaml"} {
		if !strings.Contains(out, "Created "+name) {
			t.Errorf("expected %s in output:\n%s", name, out)
		}
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s on disk: %v", name, err)
		}
	}

	out, err = run("render", filepath.Join(dir, "screen.ember"))
	if err != nil {
		t.Fatal(err)
	}
	png := filepath.Join(dir, "out", "screen.png")
	if !strings.Contains(out, png) {
		t.Errorf("expected render into the project output dir, got %q", out)
	}
	w, h, at := decodePNG(t, png)
	if w != 120 || h != 80 {
		t.Errorf("expected scaffolded viewport 120x80, got %dx%d", w, h)
	}
	if got := at(119, 79); got.R != 0x12 || got.G != 0x12 || got.B != 0x12 {
		t.Errorf("expected the scaffolded dark background, got %v", got)
	}

	out, err = run("status", dir)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Project:  kiosk") || !strings.Contains(out, filepath.Join(dir, "theme.yaml")) {
		t.Errorf("unexpected status:\n%s", out)
	}

	if _, err := run("init", dir); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("expected existing directory to fail, got %v", err)
	}
}

func TestInit_Errors(t *testing.T) {
	run := newCLI(t)
	base := t.TempDir()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no directory", []string{"init"}, "directory is required"},
		{"tilde", []string{"init", "~/kiosk"}, "tilde"},
		{"bad name", []string{"init", filepath.Join(base, "2fast")}, "invalid project name"},
		{"bad size", []string{"init", filepath.Join(base, "a"), "--size", "0x10"}, "invalid size"},
		{"unknown flag", []string{"init", filepath.Join(base, "b"), "--light"}, "unknown flag"},
		{"two dirs", []string{"init", "a", "b"}, "unexpected argument"},
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
