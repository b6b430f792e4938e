package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sells-group/shipdata/internal/canon"
	"github.com/sells-group/shipdata/internal/model"
	"github.com/sells-group/shipdata/internal/standardize"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Canonicalize vessel identifiers",
	Long:  "Prints the canonical form of each argument, or of each stdin line when no arguments are given. Values with no canonical form print as an empty line.",
}

// normalizers maps subcommand names to their canonicalizer.
var normalizers = map[string]struct {
	short string
	fn    func(string) model.Optional[string]
}{
	"name":     {"Canonicalize vessel names", canon.NormalizeName},
	"callsign": {"Canonicalize radio call signs", canon.NormalizeCallsign},
	"imo":      {"Validate IMO numbers", func(s string) model.Optional[string] { return standardize.IMO(model.String(s)) }},
	"owner":    {"Canonicalize owner names", standardize.Owner},
}

func runNormalize(w io.Writer, fn func(string) model.Optional[string], values []string) error {
	for _, v := range values {
		if _, err := fmt.Fprintln(w, fn(v).OrElse("")); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	for _, kind := range []string{"name", "callsign", "imo", "owner"} {
		n := normalizers[kind]
		normalizeCmd.AddCommand(&cobra.Command{
			Use:   kind + " [values...]",
			Short: n.short,
			RunE: func(cmd *cobra.Command, args []string) error {
				values, err := inputLines(args, cmd.InOrStdin())
				if err != nil {
					return err
				}
				return runNormalize(cmd.OutOrStdout(), n.fn, values)
			},
		})
	}
	rootCmd.AddCommand(normalizeCmd)
}
