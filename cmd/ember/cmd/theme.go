package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-drift/ember/pkg/theme"
)

func init() {
	RegisterCommand(&Command{
		Name:  "theme",
		Short: "Validate, fingerprint and export styles",
		Long: `Work with style files.

Subcommands:
  validate FILE...          Check that style files load
  fingerprint STYLE...      Print the render fingerprint of each style
  export [STYLE] [--toml]   Print a style in YAML (default) or TOML
  watch FILE                Print the fingerprint whenever FILE changes

STYLE is a .yaml or .toml file, or one of the built-in names "default" and
"dark". Styles with equal fingerprints render identically.`,
		Usage: "ember theme <validate|fingerprint|export|watch> [args]",
		Run:   runTheme,
	})
}

func runTheme(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("subcommand is required\n\nUsage: ember theme <validate|fingerprint|export|watch> [args]")
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "validate":
		return themeValidate(rest)
	case "fingerprint":
		return themeFingerprint(rest)
	case "export":
		return themeExport(rest)
	case "watch":
		return themeWatch(rest)
	default:
		return fmt.Errorf("unknown theme subcommand %q", sub)
	}
}

// loadStyle resolves a built-in style name or loads a style file.
func loadStyle(ref string) (*theme.Style, error) {
	switch ref {
	case "default":
		return theme.Default(), nil
	case "dark":
		return theme.Dark(), nil
	}
	return theme.Load(ref)
}

func themeValidate(paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("at least one style file is required")
	}
	var errs []error
	for _, p := range paths {
		s, err := theme.Load(p)
		if err != nil {
			fmt.Fprintf(stdout, "FAIL %s\n", p)
			errs = append(errs, err)
			continue
		}
		fmt.Fprintf(stdout, "ok   %s (%s, %s)\n", p, s.Name, s.Version)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func themeFingerprint(refs []string) error {
	if len(refs) == 0 {
		refs = []string{"default"}
	}
	for _, ref := range refs {
		s, err := loadStyle(ref)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%016x  %s\n", s.Fingerprint(), ref)
	}
	return nil
}

func themeExport(args []string) error {
	format := theme.FormatYAML
	ref := "default"
	var positional []string
	for _, a := range args {
		switch a {
		case "--toml":
			format = theme.FormatTOML
		case "--yaml":
			format = theme.FormatYAML
		default:
			if strings.HasPrefix(a, "--") {
				return fmt.Errorf("unknown flag %s", a)
			}
			positional = append(positional, a)
		}
	}
	switch len(positional) {
	case 0:
	case 1:
		ref = positional[0]
	default:
		return fmt.Errorf("expected at most one style, got %d", len(positional))
	}

	s, err := loadStyle(ref)
	if err != nil {
		return err
	}
	data, err := s.Encode(format)
	if err != nil {
		return err
	}
	_, err = stdout.Write(data)
	return err
}

func themeWatch(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("exactly one style file is required")
	}
	path := args[0]
	if err := themeFingerprint(args); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err := theme.Watch(ctx, path, func(s *theme.Style, err error) {
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Fprintf(stdout, "%016x  %s\n", s.Fingerprint(), path)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
