package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvknap/knapsack"
)

// newGenerateCmd creates the generate command
func newGenerateCmd(a *app) *cobra.Command {
	var (
		out     string
		format  string
		count   int
		seed    int64
		items   int
		integer bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write random instances as JSON or YAML",
		Long: `Write random instances drawn from the configured generator.

With --count above one, --out must contain a %d verb that receives the
instance number; without --out all documents go to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := a.cfg.Generator
			if cmd.Flags().Changed("seed") {
				opts.Seed = seed
			}
			if cmd.Flags().Changed("items") {
				opts.Items = knapsack.Range{Lo: float64(items), Hi: float64(items + 1)}
			}
			if cmd.Flags().Changed("integer") {
				opts.Integer = integer
			}
			gen, err := knapsack.NewGenerator(opts)
			if err != nil {
				return err
			}
			if count < 1 {
				return fmt.Errorf("cli: --count must be at least 1, got %d", count)
			}
			if count > 1 && out != "" && !strings.Contains(out, "%d") {
				return fmt.Errorf("cli: --out %q needs a %%d verb when --count is %d", out, count)
			}

			var f knapsack.Format
			switch strings.ToLower(format) {
			case "json":
				f = knapsack.JSON
			case "yaml", "yml":
				f = knapsack.YAML
			default:
				return fmt.Errorf("%w: %q", knapsack.ErrUnknownFormat, format)
			}

			for i := 0; i < count; i++ {
				g := gen
				if count > 1 {
					g = gen.Derive(uint64(i))
				}
				inst, err := g.Generate()
				if err != nil {
					return err
				}

				if out == "" {
					if err = knapsack.Encode(cmd.OutOrStdout(), inst, f); err != nil {
						return err
					}
					continue
				}

				path := out
				if count > 1 {
					path = fmt.Sprintf(out, i)
				}
				if err = knapsack.SaveFile(path, inst); err != nil {
					return err
				}
				a.log.Info("instance written", "path", path, "items", inst.N(), "capacity", inst.Capacity())
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file; the extension selects the format")
	cmd.Flags().StringVar(&format, "format", "json", "stdout format: json or yaml")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of instances")
	cmd.Flags().Int64Var(&seed, "seed", 0, "generator seed (overrides the configuration)")
	cmd.Flags().IntVar(&items, "items", 0, "exact item count (overrides the configuration)")
	cmd.Flags().BoolVar(&integer, "integer", true, "integer weights and values")

	return cmd
}
