package cli

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tychoish/lazy"
	"github.com/tychoish/lazy/order"
)

type RankCmd struct{ app *app }

func NewRankCmd(a *app) *RankCmd {
	return &RankCmd{app: a}
}

// rankRow is an input row with its key parsed ahead of ranking, so
// that malformed numbers are reported as stream errors.
type rankRow struct {
	row    []string
	number float64
}

func (c *RankCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Prepend the rank of each row by a key column, keeping input order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.app
			ref := a.conf.GetString("key")
			if ref == "" {
				return fmt.Errorf("--key is required")
			}
			numeric := a.conf.GetBool("numeric")

			dir, err := order.ParseDirection(a.conf.GetString("direction"))
			if err != nil {
				return err
			}
			if a.conf.GetBool("desc") {
				dir = order.Descending
			}
			opts := []lazy.RankOption{lazy.RankDirection(dir)}
			if a.conf.GetBool("dense") {
				opts = append(opts, lazy.RankDense())
			}

			in, err := a.openInput()
			if err != nil {
				return err
			}
			defer in.Close()

			key, err := in.Column(ref)
			if err != nil {
				return err
			}

			compare := func(x, y rankRow) int { return cmp.Compare(x.row[key], y.row[key]) }
			if numeric {
				compare = func(x, y rankRow) int { return cmp.Compare(x.number, y.number) }
			}

			ranked, err := lazy.RankByStream(parseKeys(in.Rows(), key, numeric), identityRow, compare, opts...)
			if err != nil {
				return fmt.Errorf("failed to rank rows: %w", err)
			}
			a.log.Debug("ranking rows", "key", ref, "index", key, "numeric", numeric, "direction", dir)

			var header []string
			if in.header != nil {
				header = append([]string{"rank"}, in.header...)
			}

			w, err := a.newWriter(header)
			if err != nil {
				return err
			}

			return a.emit(cmd.Context(), "rank", withRank(ranked), w)
		},
	}

	cmd.Flags().StringP("key", "k", "", "key column, by index or header name")
	cmd.Flags().Bool("numeric", false, "compare keys as numbers")
	cmd.Flags().String("direction", order.Ascending.String(), "sort direction (ascending, descending)")
	cmd.Flags().Bool("desc", false, "rank the largest key first; shorthand for --direction=descending")
	cmd.Flags().Bool("dense", false, "assign consecutive ranks to distinct keys")

	return cmd
}

func identityRow(r rankRow) rankRow { return r }

func parseKeys(rows *lazy.Stream[[]string], key int, numeric bool) *lazy.Stream[rankRow] {
	return lazy.ConverterErr(func(row []string) (rankRow, error) {
		if !numeric {
			return rankRow{row: row}, nil
		}

		num, err := strconv.ParseFloat(strings.TrimSpace(row[key]), 64)
		if err != nil {
			return rankRow{}, fmt.Errorf("key %q is not a number: %w", row[key], err)
		}
		return rankRow{row: row, number: num}, nil
	}).Stream(rows)
}

func withRank(ranked *lazy.Stream[lazy.Ranked[rankRow]]) *lazy.Stream[[]string] {
	return lazy.Converter(func(r lazy.Ranked[rankRow]) []string {
		return append([]string{strconv.Itoa(r.Rank)}, r.Item.row...)
	}).Stream(ranked)
}
