package cli

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvknap/bnb"
	"github.com/katalvlaran/lvknap/exhaustive"
	"github.com/katalvlaran/lvknap/knapsack"
)

// benchResult is the outcome of one benchmark instance.
type benchResult struct {
	items    int
	stats    bnb.Stats
	value    float64
	verified bool // false when verification was skipped
	mismatch bool
}

// newBenchCmd creates the bench command
func newBenchCmd(a *app) *cobra.Command {
	var (
		instances   int
		concurrency int
		verify      bool
		seed        int64
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Solve many random instances concurrently and summarise the search",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bc := a.cfg.Bench
			if cmd.Flags().Changed("instances") {
				bc.Instances = instances
			}
			if cmd.Flags().Changed("concurrency") {
				bc.Concurrency = concurrency
			}
			if cmd.Flags().Changed("verify") {
				bc.Verify = verify
			}
			if bc.Instances < 0 {
				return fmt.Errorf("cli: --instances must not be negative, got %d", bc.Instances)
			}
			if bc.Concurrency < 1 {
				return fmt.Errorf("cli: --concurrency must be at least 1, got %d", bc.Concurrency)
			}

			opts := a.cfg.Generator
			if cmd.Flags().Changed("seed") {
				opts.Seed = seed
			}
			gen, err := knapsack.NewGenerator(opts)
			if err != nil {
				return err
			}

			start := time.Now()
			results, err := a.runBench(cmd.Context(), gen, bc.Instances, bc.Concurrency, bc.Verify)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			st := newStyles(cmd.OutOrStdout())
			rows, mismatches := summarise(st, results)
			rows = append(rows, row{"elapsed", elapsed.Round(time.Millisecond).String()})
			if err = st.report(cmd.OutOrStdout(), "bench", rows); err != nil {
				return err
			}
			if mismatches > 0 {
				return fmt.Errorf("%w: %d instance(s)", ErrMismatch, mismatches)
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&instances, "instances", "n", 0, "number of instances (default from configuration)")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 0, "parallel solves (default from configuration)")
	cmd.Flags().BoolVar(&verify, "verify", false, "check every result against exhaustive search")
	cmd.Flags().Int64Var(&seed, "seed", 0, "generator seed (overrides the configuration)")

	return cmd
}

// runBench solves count instances with at most limit goroutines. Instance i
// comes from the generator stream derived with id i, so results do not depend
// on scheduling.
func (a *app) runBench(ctx context.Context, gen *knapsack.Generator, count, limit int, verify bool) ([]benchResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]benchResult, count)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := 0; i < count; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			inst, err := gen.Derive(uint64(i)).Generate()
			if err != nil {
				return err
			}
			e, err := bnb.NewEngine(a.cfg.EngineOptions()...)
			if err != nil {
				return err
			}
			best, err := e.Run(inst)
			if err != nil {
				return fmt.Errorf("instance %d: %w", i, err)
			}

			r := benchResult{items: inst.N(), stats: e.Stats()}
			if best != nil {
				r.value = best.Value()
			}
			if verify {
				ref, err := exhaustive.Solve(inst)
				switch {
				case errors.Is(err, exhaustive.ErrTooManyItems):
					a.log.Debug("verification skipped", "instance", i, "items", inst.N())
				case err != nil:
					return err
				default:
					r.verified = true
					r.mismatch = math.Abs(ref.Value-r.value) > a.cfg.Search.DominanceTol+1e-9
					if r.mismatch {
						a.log.Warn("verification mismatch", "instance", i, "bnb", r.value, "exhaustive", ref.Value)
					}
				}
			}
			results[i] = r

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func summarise(st styles, results []benchResult) ([]row, int) {
	var (
		nodes, popped, maxNodes, items int
		cutoffs, verified, mismatches  int
	)
	for _, r := range results {
		items += r.items
		nodes += r.stats.Created
		popped += r.stats.Popped
		maxNodes = max(maxNodes, r.stats.Created)
		if r.stats.Cutoff {
			cutoffs++
		}
		if r.verified {
			verified++
		}
		if r.mismatch {
			mismatches++
		}
	}

	mean := func(total int) string {
		if len(results) == 0 {
			return "0"
		}
		return strconv.FormatFloat(float64(total)/float64(len(results)), 'f', 2, 64)
	}

	check := st.good.Render(fmt.Sprintf("%d/%d ok", verified-mismatches, verified))
	if mismatches > 0 {
		check = st.bad.Render(fmt.Sprintf("%d/%d mismatched", mismatches, verified))
	}

	return []row{
		{"instances", strconv.Itoa(len(results))},
		{"mean items", mean(items)},
		{"mean nodes", mean(nodes)},
		{"mean popped", mean(popped)},
		{"max nodes", strconv.Itoa(maxNodes)},
		{"cutoffs", strconv.Itoa(cutoffs)},
		{"verified", check},
	}, mismatches
}
