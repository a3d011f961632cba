package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdroz/sitewise/internal/config"
	"github.com/pdroz/sitewise/internal/evolve"
	"github.com/pdroz/sitewise/internal/graph"
	"github.com/pdroz/sitewise/internal/ledger"
	"github.com/pdroz/sitewise/internal/load"
	"github.com/pdroz/sitewise/internal/mode"
	"github.com/pdroz/sitewise/internal/optimizer"
	"github.com/pdroz/sitewise/internal/reporter"
	"github.com/pdroz/sitewise/internal/task"
	"github.com/pdroz/sitewise/internal/ui"
)

var (
	flagInput      string
	flagConfig     string
	flagPopulation int
	flagGens       int
	flagMutation   float64
	flagMaxCost    float64
	flagMode       string
	flagSeed       int64
	flagWorkers    int
	flagJSON       bool
	flagOutput     string
	flagQuiet      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sitewise",
		Short: "Multi-objective construction schedule optimizer",
		Long: `Sitewise searches for construction schedules that balance project
duration, monetary cost, and carbon footprint using a population-based
evolutionary algorithm with Pareto-dominance selection.`,
	}

	rootCmd.AddCommand(optimizeCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(ratesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func optimizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Optimize a construction schedule from a task file",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := load.File(flagInput)
			if err != nil {
				return err
			}

			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}

			if !flagQuiet && !flagJSON {
				cfg.Progress = func(s evolve.GenerationStats) {
					fmt.Fprintln(os.Stderr, reporter.ProgressLine(s))
				}
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			result, err := optimizer.Run(ctx, tasks, cfg)
			if err != nil {
				return err
			}

			rep := reporter.New(result)
			if flagJSON {
				data, err := rep.JSON()
				if err != nil {
					return err
				}
				return writeOutput(append(data, '\n'))
			}
			if flagOutput != "" {
				data, err := rep.JSON()
				if err != nil {
					return err
				}
				if err := os.WriteFile(flagOutput, append(data, '\n'), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", flagOutput, err)
				}
			}
			rep.Print(os.Stdout)
			return nil
		},
	}

	cmd.Flags().StringVar(&flagInput, "input", "", "Task file (.json or .csv)")
	cmd.Flags().StringVar(&flagConfig, "config", "", "Run configuration YAML file")
	cmd.Flags().IntVar(&flagPopulation, "population-size", 50, "Population size")
	cmd.Flags().IntVar(&flagGens, "generations", 100, "Number of generations")
	cmd.Flags().Float64Var(&flagMutation, "mutation-rate", 0.1, "Per-gene mutation probability")
	cmd.Flags().Float64Var(&flagMaxCost, "max-cost", 0, "Soft cost ceiling (0 = none)")
	cmd.Flags().StringVar(&flagMode, "mode", "", "Optimization mode: eco, standard, or performance")
	cmd.Flags().Int64Var(&flagSeed, "seed", 0, "Random seed for reproducible runs")
	cmd.Flags().IntVar(&flagWorkers, "workers", 0, "Concurrent fitness evaluations (0 = NumCPU)")
	cmd.Flags().BoolVar(&flagJSON, "json", false, "Machine-readable JSON output")
	cmd.Flags().StringVar(&flagOutput, "output", "", "Also write JSON result to a file")
	cmd.Flags().BoolVar(&flagQuiet, "quiet", false, "Suppress per-generation progress")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// buildConfig layers the run configuration: defaults, then the YAML
// file, then any flag the user set explicitly.
func buildConfig(cmd *cobra.Command) (optimizer.Config, error) {
	run, err := config.Load(flagConfig)
	if err != nil {
		return optimizer.Config{}, err
	}

	if cmd.Flags().Changed("population-size") {
		run.PopulationSize = flagPopulation
	}
	if cmd.Flags().Changed("generations") {
		run.Generations = flagGens
	}
	if cmd.Flags().Changed("mutation-rate") {
		run.MutationRate = flagMutation
	}
	if cmd.Flags().Changed("mode") {
		run.Mode = flagMode
	}
	if cmd.Flags().Changed("max-cost") {
		run.MaxCost = &flagMaxCost
	}
	if cmd.Flags().Changed("seed") {
		run.Seed = &flagSeed
	}
	if cmd.Flags().Changed("workers") {
		run.Workers = flagWorkers
	}

	return optimizer.Config{
		PopulationSize: run.PopulationSize,
		Generations:    run.Generations,
		MutationRate:   run.MutationRate,
		MaxCost:        run.MaxCost,
		Mode:           run.Mode,
		Seed:           run.Seed,
		Workers:        run.Workers,
		RateOverrides:  run.RateOverrides(),
	}, nil
}

func writeOutput(data []byte) error {
	if flagOutput != "" {
		if err := os.WriteFile(flagOutput, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", flagOutput, err)
		}
		return nil
	}
	_, err := os.Stdout.Write(data)
	return err
}

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a task file without running the optimizer",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := load.File(flagInput)
			if err != nil {
				return err
			}

			if err := validateTasks(tasks); err != nil {
				return err
			}

			profile, err := mode.Parse(flagMode)
			if err != nil {
				return err
			}

			g, _ := graph.Build(tasks) // validateTasks already vetted the graph
			durations := make([]int, len(tasks))
			for i, t := range tasks {
				durations[i] = evolve.AdjustedDuration(t.Duration, profile)
			}

			fmt.Printf("%s %d tasks, dependency graph acyclic\n", ui.BoldGreen("✓"), len(tasks))
			fmt.Printf("  critical path lower bound: %s\n", ui.Bold(fmt.Sprintf("%d days", g.CriticalPathLength(durations))))
			if types := task.ResourceTypes(tasks); len(types) > 0 {
				fmt.Printf("  resource types: %s\n", ui.Dim(fmt.Sprintf("%v", types)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flagInput, "input", "", "Task file (.json or .csv)")
	cmd.Flags().StringVar(&flagMode, "mode", "", "Mode used for duration adjustment")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func validateTasks(tasks []task.Task) error {
	if err := task.Validate(tasks); err != nil {
		return err
	}
	_, err := graph.Build(tasks)
	return err
}

func ratesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Print the effective resource rate table for a mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := mode.Parse(flagMode)
			if err != nil {
				return err
			}

			table := ledger.DefaultTable(profile)
			samples := []string{"crane", "workers", "team", "laborers", "equipment"}
			sort.Strings(samples)

			fmt.Printf("%s (%s mode)\n", ui.BoldCyan("Resource rates per unit per day"), profile.Name)
			for _, name := range samples {
				rate := table.For(name)
				fmt.Printf("  %-12s $%-8.2f %.2f kg CO2\n", name, rate.Cost, rate.Carbon)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flagMode, "mode", "", "Optimization mode: eco, standard, or performance")
	return cmd
}
