package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type languagesCmd struct {
	out io.Writer
}

func (c *languagesCmd) register() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the languages with documentation and how many identifiers each documents",
		Args:  cobra.NoArgs,
	}
}

func (c *languagesCmd) run(ctx context.Context, _ []string) error {
	out := c.out
	if out == nil {
		out = os.Stdout
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	store := a.service.Store()
	langs, err := store.Languages()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "LANGUAGE\tIDENTIFIERS")
	for _, lang := range langs {
		fmt.Fprintf(w, "%s\t%d\n", lang, store.DocSet(lang).Len())
	}
	return w.Flush()
}
