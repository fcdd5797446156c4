package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tychoish/lazy"
	"github.com/tychoish/lazy/order"
)

type GroupCmd struct{ app *app }

func NewGroupCmd(a *app) *GroupCmd {
	return &GroupCmd{app: a}
}

func (c *GroupCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Summarize each run of adjacent rows that share a key",
		Long: `Summarize each run of adjacent rows that share a key.

Each output row holds the key, the number of rows in the run, and the
values of the first column other than the key, joined by spaces. A key
that recurs after a different key starts a new run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.app
			ref := a.conf.GetString("key")
			if ref == "" {
				return fmt.Errorf("--key is required")
			}
			countOnly := a.conf.GetBool("count")

			in, err := a.openInput()
			if err != nil {
				return err
			}
			defer in.Close()

			key, err := in.Column(ref)
			if err != nil {
				return err
			}
			value := 0
			if key == 0 {
				value = 1
			}

			groups, err := lazy.GroupAdjacentStream(in.Rows(),
				func(row []string) string { return row[key] },
				func(row []string) string {
					if value < len(row) {
						return row[value]
					}
					return ""
				},
				order.Equal[string],
			)
			if err != nil {
				return fmt.Errorf("failed to group rows: %w", err)
			}
			a.log.Debug("grouping rows", "key", ref, "index", key, "count", countOnly)

			var header []string
			if in.header != nil {
				header = []string{"key", "size"}
				if !countOnly {
					header = append(header, "values")
				}
			}

			w, err := a.newWriter(header)
			if err != nil {
				return err
			}

			return a.emit(cmd.Context(), "group", summarize(groups, countOnly), w)
		},
	}

	cmd.Flags().StringP("key", "k", "", "key column, by index or header name")
	cmd.Flags().Bool("count", false, "only report the key and size of each run")

	return cmd
}

func summarize(groups *lazy.Stream[lazy.Group[string, string]], countOnly bool) *lazy.Stream[[]string] {
	return lazy.Converter(func(g lazy.Group[string, string]) []string {
		row := []string{g.Key(), strconv.Itoa(g.Len())}
		if !countOnly {
			row = append(row, strings.Join(g.Slice(), " "))
		}
		return row
	}).Stream(groups)
}
