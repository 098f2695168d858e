package cmd

import (
	"fmt"

	"github.com/go-drift/ember/pkg/markup"
)

func init() {
	RegisterCommand(&Command{
		Name:  "tree",
		Short: "Print the laid-out widget tree",
		Long: `Lay out a screen and print one line per widget with its kind, name
and rectangle. Hidden widgets are marked.

Flags:
  --size WxH       Viewport size in pixels
  --theme FILE     Style file (.yaml or .toml)
  --dark           Use the built-in dark style
  --tap NAME       Tap the named widget first (repeatable)
  --press KEY      Press a key first (repeatable)

When a widget holds focus after the scripted steps it is reported last.`,
		Usage: "ember tree [flags] <screen.ember>",
		Run:   runTree,
	})
}

func runTree(args []string) error {
	opts, err := parseScreenArgs(args)
	if err != nil {
		return fmt.Errorf("%w\n\nUsage: ember tree [flags] <screen.ember>", err)
	}
	in, err := loadInputs(opts)
	if err != nil {
		return err
	}
	ctx, err := in.mount(opts)
	if err != nil {
		return err
	}

	fmt.Fprint(stdout, markup.Outline(ctx.Root()))
	if id := ctx.Focused(); id != 0 {
		label := fmt.Sprintf("#%d", id)
		if name := ctx.Find(id).Base().Name(); name != "" {
			label = name
		}
		fmt.Fprintf(stdout, "focused: %s\n", label)
	}
	return nil
}
