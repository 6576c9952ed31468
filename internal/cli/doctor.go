package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

type doctorCmd struct {
	out io.Writer
}

func (c *doctorCmd) register() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Print diagnostic information about the intellitip setup, for filing bug reports",
		Args:  cobra.NoArgs,
	}
}

func (c *doctorCmd) run(ctx context.Context, _ []string) error {
	out := c.out
	if out == nil {
		out = os.Stdout
	}

	fmt.Fprintf(out, "intellitip: %s\n", buildStamp())
	fmt.Fprintf(out, "System: %s-%s\n", runtime.GOOS, runtime.GOARCH)

	a, err := newApp(ctx)
	if err != nil {
		printField(out, "Settings", nil, err)
		return nil
	}

	settingsFile := a.settingsFile
	if settingsFile == "" {
		settingsFile = "[defaults]"
	}

	fmt.Fprintln(out, "---")
	printField(out, "Settings", settingsFile, nil)
	printField(out, "Extension root", a.rootName, nil)
	_, cssErr := a.settings.Stylesheet(a.root)
	printField(out, "Stylesheet", a.settings.CSSFile, cssErr)
	printField(out, "Docs rules", len(a.settings.Docs), nil)
	printField(out, "Help links", len(a.settings.HelpLinks), nil)

	langs, err := a.service.Store().Languages()
	printField(out, "Languages", langs, err)

	return nil
}

func buildStamp() string {
	if commit == "" {
		return version
	}
	return fmt.Sprintf("%s (%s)", version, commit)
}

func printField(out io.Writer, name string, v interface{}, err error) {
	if err != nil {
		fmt.Fprintf(out, "%s: Error: %v\n", name, err)
	} else {
		fmt.Fprintf(out, "%s: %v\n", name, v)
	}
}
