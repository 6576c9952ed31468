package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/seripap/Intellitip/internal/lookup"
)

const (
	formatHTML     = "html"
	formatMarkdown = "markdown"
	formatText     = "text"
)

// openURL is replaced in tests.
var openURL = browser.OpenURL

type lookupCmd struct {
	scope     string
	syntax    string
	preceding string
	format    string
	open      bool
	out       io.Writer
}

func (c *lookupCmd) register() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup [WORD]",
		Short: "Look up documentation for an identifier and print the tooltip",
		Example: `
# Documentation for abs in a Python buffer
intellitip lookup --scope source.python abs

# What the tooltip shows with the cursor after "math.sin("
intellitip lookup --scope source.python --line "y = math.sin(" --format markdown

# Resolve the language from a syntax definition and open the docs
intellitip lookup --syntax Packages/PHP/PHP.sublime-syntax strlen --open`,
		Args: cobra.MaximumNArgs(1),
	}

	cmd.Flags().StringVar(&c.scope, "scope", "", "Scope string at the cursor, e.g. source.python")
	cmd.Flags().StringVar(&c.syntax, "syntax", "", "Path of the syntax definition file in use")
	cmd.Flags().StringVar(&c.preceding, "line", "", "Text of the current line up to the cursor")
	cmd.Flags().StringVar(&c.format, "format", formatText, "Output format: html, markdown or text")
	cmd.Flags().BoolVar(&c.open, "open", false, "Open the documentation link in a browser")

	return cmd
}

func (c *lookupCmd) run(ctx context.Context, args []string) error {
	out := c.out
	if out == nil {
		out = os.Stdout
	}
	switch c.format {
	case formatHTML, formatMarkdown, formatText:
	default:
		return fmt.Errorf("unknown format %q (want html, markdown or text)", c.format)
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	ev := lookup.Event{
		Surface:        "cli",
		ScopeAtCursor:  c.scope,
		SyntaxFilePath: c.syntax,
		PrecedingText:  c.preceding,
	}
	if len(args) > 0 {
		ev.CurrentWord = args[0]
	}

	res, err := a.service.Lookup(ctx, ev)
	if err != nil {
		if miss, ok := lookup.AsError(err); ok {
			warn := color.New(color.FgYellow)
			if !isTerminal(out) {
				warn.DisableColor()
			}
			_, _ = warn.Fprintln(out, miss.Status())
		}
		return err
	}

	switch c.format {
	case formatHTML:
		_, err = fmt.Fprintln(out, a.renderer.Render(res.Record))
	case formatMarkdown:
		var md string
		md, err = a.renderer.Markdown(res.Record)
		if err == nil {
			_, err = fmt.Fprintln(out, md)
		}
	default:
		header := color.New(color.FgCyan, color.Bold)
		if !isTerminal(out) {
			header.DisableColor()
		}
		_, _ = header.Fprintf(out, "%s :: %s\n", res.Language, res.Record.Name)
		_, err = fmt.Fprintln(out, a.renderer.PlainText(res.Record))
	}
	if err != nil {
		return err
	}

	if c.open {
		u, ok := a.renderer.HelpURL(res.Record)
		if !ok {
			return fmt.Errorf("no help link configured for %s (path %q)", res.Record.Name, res.Record.Path)
		}
		return openURL(u)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
