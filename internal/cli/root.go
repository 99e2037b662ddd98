// Package cli implements the fairsub command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/fairmatroid/algorithm"
	"github.com/katalvlaran/fairmatroid/config"
	"github.com/katalvlaran/fairmatroid/experiment"
	"github.com/katalvlaran/fairmatroid/rng"
)

type flags struct {
	verbose    bool
	configPath string
	repeats    int
	seed       int64
	solutions  bool
}

// Execute runs the command line with args.
func Execute(ctx context.Context, version string, args []string) error {
	root := NewRootCommand(ctx, version, os.Stdout)
	root.SetArgs(args)
	return root.Execute()
}

// NewRootCommand builds the command tree writing results to out.
func NewRootCommand(ctx context.Context, version string, out io.Writer) *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:          "fairsub",
		Short:        "Fair submodular maximization under matroid constraints",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if f.verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	root.SetOut(out)
	root.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().StringVarP(&f.configPath, "config", "c", "", "path to the instance YAML file")
	_ = root.MarkPersistentFlagRequired("config")

	root.AddCommand(newRunCommand(ctx, f), newCheckCommand(ctx, f))
	return root
}

func newRunCommand(ctx context.Context, f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every configured algorithm and print a result table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(f.configPath)
			if err != nil {
				return err
			}
			seed, repeats := cfg.Seed, cfg.Repeats
			if cmd.Flags().Changed("seed") {
				seed = f.seed
			}
			if cmd.Flags().Changed("repeats") {
				repeats = f.repeats
			}
			if repeats == 0 {
				repeats = experiment.DefaultRepeats
			}

			logger := log.StandardLogger()
			src := rng.New(seed)
			inst, algs, err := cfg.Build(src, algorithm.WithLogger(logger))
			if err != nil {
				return err
			}
			runner, err := experiment.NewRunner(src,
				experiment.WithContext(ctx),
				experiment.WithSeed(seed),
				experiment.WithRepeats(repeats),
				experiment.WithSolutions(f.solutions),
				experiment.WithLogger(logger),
			)
			if err != nil {
				return err
			}
			log.WithFields(log.Fields{
				"instance":   inst.Label,
				"algorithms": len(algs),
				"seed":       seed,
			}).Debug("starting run")

			results, runErr := runner.Run(inst, algs)
			if err := experiment.WriteTable(cmd.OutOrStdout(), results); err != nil {
				return err
			}
			if f.solutions {
				if err := experiment.WriteSolutions(cmd.OutOrStdout(), results); err != nil {
					return err
				}
			}
			return runErr
		},
	}
	cmd.Flags().IntVarP(&f.repeats, "repeats", "r", 0, "runs per randomized algorithm (overrides the file)")
	cmd.Flags().Int64VarP(&f.seed, "seed", "s", 0, "seed applied before every algorithm (overrides the file)")
	cmd.Flags().BoolVar(&f.solutions, "solutions", false, "print every solution set")
	return cmd
}

func newCheckCommand(ctx context.Context, f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report whether the instance admits a fair solution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(f.configPath)
			if err != nil {
				return err
			}
			inst, _, err := cfg.Build(rng.New(cfg.Seed))
			if err != nil {
				return err
			}
			runner, err := experiment.NewRunner(nil, experiment.WithContext(ctx))
			if err != nil {
				return err
			}
			ok, err := runner.FeasibleSolutionExists(inst.Matroid, inst.Fairness, inst.Oracle.Universe())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: feasible=%t\n", inst.Label, ok)
			if !ok {
				return experiment.ErrInfeasibleInstance
			}
			return nil
		},
	}
}
