package cli

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvknap/bnb"
	"github.com/katalvlaran/lvknap/exhaustive"
	"github.com/katalvlaran/lvknap/knapsack"
)

// ErrNoInstance is returned by solve when neither a file nor --random is given.
var ErrNoInstance = errors.New("cli: no instance; pass a file or --random")

// ErrMismatch is returned when verification disagrees with the search.
var ErrMismatch = errors.New("cli: branch-and-bound disagrees with exhaustive search")

// newSolveCmd creates the solve command
func newSolveCmd(a *app) *cobra.Command {
	var (
		random  bool
		seed    int64
		verbose bool
		verify  bool
	)

	cmd := &cobra.Command{
		Use:   "solve [instance.json|instance.yaml]",
		Short: "Solve one instance read from a file or drawn at random",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				inst *knapsack.Instance
				err  error
			)
			switch {
			case len(args) == 1:
				inst, err = knapsack.LoadFile(args[0])
			case random:
				opts := a.cfg.Generator
				if cmd.Flags().Changed("seed") {
					opts.Seed = seed
				}
				var gen *knapsack.Generator
				if gen, err = knapsack.NewGenerator(opts); err == nil {
					inst, err = gen.Generate()
				}
			default:
				return ErrNoInstance
			}
			if err != nil {
				return err
			}
			a.log.Debug("instance ready", "items", inst.N(), "capacity", inst.Capacity())

			opts := append(a.cfg.EngineOptions(), bnb.WithVerbose(verbose), bnb.WithLogger(a.log))
			e, err := bnb.NewEngine(opts...)
			if err != nil {
				return err
			}
			best, err := e.Run(inst)
			if err != nil {
				return err
			}

			rows := []row{
				{"items", strconv.Itoa(inst.N())},
				{"capacity", fmtFloat(inst.Capacity())},
			}
			rows = append(rows, solutionRows(inst, best)...)
			rows = append(rows, statsRows(e.Stats())...)

			st := newStyles(cmd.OutOrStdout())
			if verify {
				ref, verr := exhaustive.Solve(inst)
				if verr != nil {
					return verr
				}
				var got float64
				if best != nil {
					got = best.Value()
				}
				ok := math.Abs(ref.Value-got) <= a.cfg.Search.DominanceTol+1e-9
				verdict := st.good.Render("ok")
				if !ok {
					verdict = st.bad.Render("mismatch (exhaustive " + fmtFloat(ref.Value) + ")")
				}
				rows = append(rows, row{"verify", verdict})
				if err = st.report(cmd.OutOrStdout(), "solution", rows); err != nil {
					return err
				}
				if !ok {
					return ErrMismatch
				}
				return nil
			}

			return st.report(cmd.OutOrStdout(), "solution", rows)
		},
	}

	cmd.Flags().BoolVar(&random, "random", false, "draw a random instance from the configured generator")
	cmd.Flags().Int64Var(&seed, "seed", 0, "generator seed (overrides the configuration)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "trace the search on the log")
	cmd.Flags().BoolVar(&verify, "verify", false, "check the result against exhaustive search")

	return cmd
}

func solutionRows(inst *knapsack.Instance, best *bnb.Node) []row {
	if best == nil {
		return []row{{"value", "none"}}
	}
	x := best.Solution()
	w, _ := inst.Weight(x)

	return []row{
		{"value", fmtFloat(best.Value())},
		{"weight", fmtFloat(w)},
		{"selected", fmt.Sprint(best.Selected())},
	}
}

func statsRows(s bnb.Stats) []row {
	return []row{
		{"nodes", strconv.Itoa(s.Created)},
		{"popped", strconv.Itoa(s.Popped)},
		{"pruned", strconv.Itoa(s.Pruned)},
		{"infeasible", strconv.Itoa(s.Infeasible)},
		{"incumbents", strconv.Itoa(s.IncumbentUpdates)},
		{"cutoff", strconv.FormatBool(s.Cutoff)},
	}
}

func fmtFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
