package templates

import (
	"strings"
	"testing"

	"github.com/go-drift/ember/pkg/markup"
	"github.com/go-drift/ember/pkg/theme"
)

func TestInitFiles(t *testing.T) {
	files, err := InitFiles()
	if err != nil {
		t.Fatal(err)
	}
	got := map[string]string{}
	for _, f := range files {
		got[f.Dest] = f.Template
	}
	for _, want := range []string{"ember.yaml", "screen.ember", "theme.yaml"} {
		if got[want] != "init/"+want+".tmpl" {
			t.Errorf("expected %s from init/%s.tmpl, got %q", want, want, got[want])
		}
	}
}

func TestScreenTemplate_Builds(t *testing.T) {
	src, err := Render("init/screen.ember.tmpl", &TemplateData{Name: `my "app"`})
	if err != nil {
		t.Fatal(err)
	}
	root, err := markup.Build(src)
	if err != nil {
		t.Fatalf("scaffolded screen does not build: %v\n%s", err, src)
	}
	if root.Base().Name() != "home" {
		t.Errorf("expected #home root, got %q", root.Base().Name())
	}
	if !strings.Contains(markup.Outline(root), "gauge#load") {
		t.Errorf("expected gauge in outline:\n%s", markup.Outline(root))
	}
}

func TestThemeTemplate_Parses(t *testing.T) {
	for _, dark := range []bool{false, true} {
		src, err := Render("init/theme.yaml.tmpl", &TemplateData{Name: "kiosk", Dark: dark})
		if err != nil {
			t.Fatal(err)
		}
		s, err := theme.Parse([]byte(src), theme.FormatYAML)
		if err != nil {
			t.Fatalf("dark=%v: scaffolded theme invalid: %v\n%s", dark, err, src)
		}
		want := theme.BrightnessLight
		if dark {
			want = theme.BrightnessDark
		}
		if s.Name != "kiosk" || s.Brightness != want {
			t.Errorf("dark=%v: unexpected style %q/%q", dark, s.Name, s.Brightness)
		}
	}
}

func TestProcessTemplate_MissingKey(t *testing.T) {
	if _, err := ProcessTemplate("{{.Nope}}", &TemplateData{}); err == nil {
		t.Error("expected unknown field to fail")
	}
}
