package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-drift/ember/cmd/ember/internal/cache"
	"github.com/go-drift/ember/pkg/markup"
)

func init() {
	RegisterCommand(&Command{
		Name:  "status",
		Short: "Show project configuration",
		Long: `Show the resolved configuration of the ember project containing the
given directory (default: the current directory), the render cache location
and the widget kinds available to markup.`,
		Usage: "ember status [directory]",
		Run:   runStatus,
	})
	RegisterCommand(&Command{
		Name:  "clean",
		Short: "Remove cached renders",
		Long: `Remove every cached render. Renders are cached per CLI version under
<cache-dir>/renders and reused while a screen, its style and the render
flags are unchanged.`,
		Usage: "ember clean",
		Run:   runClean,
	})
}

func runStatus(args []string) error {
	dir := "."
	switch len(args) {
	case 0:
	case 1:
		dir = args[0]
	default:
		return fmt.Errorf("expected at most one directory\n\nUsage: ember status [directory]")
	}
	if _, err := os.Stat(dir); err != nil {
		return err
	}
	cfg, err := projectFor(dir)
	if err != nil {
		return err
	}
	renders, err := cache.RenderDir()
	if err != nil {
		return err
	}

	theme := cfg.ThemePath
	if theme == "" {
		theme = "(built-in default)"
	}
	w := stdout
	fmt.Fprintf(w, "Project:  %s\n", cfg.Name)
	fmt.Fprintf(w, "Root:     %s\n", cfg.Root)
	fmt.Fprintf(w, "Viewport: %s\n", cfg.Viewport)
	fmt.Fprintf(w, "Theme:    %s\n", theme)
	fmt.Fprintf(w, "Output:   %s\n", cfg.OutputDir)
	fmt.Fprintf(w, "Debug:    %v\n", cfg.Debug)
	fmt.Fprintf(w, "Queue:    %d (%s)\n", cfg.QueueCapacity, cfg.Policy)
	fmt.Fprintf(w, "Cache:    %s\n", renders)
	fmt.Fprintf(w, "Version:  %s\n", cache.Version())
	fmt.Fprintf(w, "Widgets:  %s\n", strings.Join(markup.Default().Kinds(), ", "))
	return nil
}

func runClean(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("clean takes no arguments")
	}
	if err := cache.Clean(); err != nil {
		return fmt.Errorf("failed to clean cache: %w", err)
	}
	fmt.Fprintln(stdout, "Render cache cleared")
	return nil
}
