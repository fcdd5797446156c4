package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/tychoish/lazy"
)

type FillCmd struct{ app *app }

func NewFillCmd(a *app) *FillCmd {
	return &FillCmd{app: a}
}

func (c *FillCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Replace missing cells with the last value seen in the same column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.app
			columns := a.conf.GetStringSlice("column")
			if len(columns) == 0 {
				return fmt.Errorf("at least one --column is required")
			}
			mark := a.conf.GetString("missing")

			in, err := a.openInput()
			if err != nil {
				return err
			}
			defer in.Close()

			st := in.Rows()
			for _, ref := range columns {
				idx, err := in.Column(ref)
				if err != nil {
					return err
				}

				st, err = lazy.FillForwardStream(st,
					func(row []string) bool { return row[idx] == mark },
					func(current, seed []string) []string {
						out := slices.Clone(current)
						out[idx] = seed[idx]
						return out
					},
				)
				if err != nil {
					return fmt.Errorf("failed to fill column %s: %w", ref, err)
				}
				a.log.Debug("filling column", "column", ref, "index", idx, "missing", mark)
			}

			w, err := a.newWriter(in.header)
			if err != nil {
				return err
			}

			return a.emit(cmd.Context(), "fill", st, w)
		},
	}

	cmd.Flags().StringSliceP("column", "c", nil, "column to fill, by index or header name (repeatable)")
	cmd.Flags().StringP("missing", "m", "", "cell value that marks a missing value")

	return cmd
}
