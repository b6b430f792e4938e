package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sells-group/shipdata/internal/geartype"
)

var geartypeTagged bool

var geartypeCmd = &cobra.Command{
	Use:   "geartype",
	Short: "Resolve gear type tags against the ship type taxonomy",
}

var geartypeResolveCmd = &cobra.Command{
	Use:   "resolve [tags...]",
	Short: "Reduce conflicting gear tags to the most specific consistent answer",
	Long:  "Resolves the tags given as arguments (or one per stdin line). With --tagged each tag carries a confidence level prefix, e.g. 3-trawlers.",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := initResolver(cfg.Taxonomy)
		if err != nil {
			return err
		}
		tags, err := inputLines(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		return runResolve(cmd.OutOrStdout(), r, tags, geartypeTagged)
	},
}

var geartypeFishingCmd = &cobra.Command{
	Use:   "fishing <expression>",
	Short: "Report whether a gear expression is fishing, non-fishing or mixed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := initResolver(cfg.Taxonomy)
		if err != nil {
			return err
		}
		return runFishing(cmd.OutOrStdout(), r, args[0])
	},
}

func runResolve(w io.Writer, r *geartype.Resolver, tags []string, tagged bool) error {
	res := r.Resolve(tags)
	if tagged {
		res = r.ResolveWithConfidence(tags)
	}
	_, err := fmt.Fprintln(w, res.OrElse(""))
	return err
}

func runFishing(w io.Writer, r *geartype.Resolver, expr string) error {
	answer := "unknown"
	if fishing, ok := r.IsFishing(expr).Get(); ok {
		answer = "non_fishing"
		if fishing {
			answer = "fishing"
		}
	}
	_, err := fmt.Fprintln(w, answer)
	return err
}

func init() {
	geartypeResolveCmd.Flags().BoolVar(&geartypeTagged, "tagged", false, "tags carry a <level>- confidence prefix")
	geartypeCmd.AddCommand(geartypeResolveCmd, geartypeFishingCmd)
	rootCmd.AddCommand(geartypeCmd)
}
