package main

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/muscat-guide/places-cli/internal/stage"
	"github.com/muscat-guide/places-cli/internal/store"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run the place enrichment pipeline",
	Long:  "Commands for running the staged enrichment pipeline over the files in the pipeline tmp dir.",
}

// -- pipeline run --

var pipelineRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every enrichment stage in order",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		runner := stage.NewRunner()
		for _, s := range stage.Pipeline(cfg.Paths.TmpDir, cfg.Dedupe.ProximityDegrees) {
			res, err := runner.Run(s)
			if err != nil {
				return err
			}
			if err := recordRun(ctx, st, s, res); err != nil {
				return err
			}
		}
		return nil
	},
}

// -- pipeline stage --

var pipelineStageCmd = &cobra.Command{
	Use:   "stage <name>",
	Short: "Run a single enrichment stage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		stages := stage.Pipeline(cfg.Paths.TmpDir, cfg.Dedupe.ProximityDegrees)
		s, ok := stage.Find(stages, args[0])
		if !ok {
			return eris.Errorf("unknown stage: %s", args[0])
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		res, err := stage.NewRunner().Run(s)
		if err != nil {
			return err
		}
		return recordRun(ctx, st, s, res)
	},
}

func init() {
	pipelineCmd.AddCommand(pipelineRunCmd)
	pipelineCmd.AddCommand(pipelineStageCmd)
	rootCmd.AddCommand(pipelineCmd)
}

func recordRun(ctx context.Context, st store.Store, s stage.Stage, res stage.Result) error {
	run := store.StageRun{
		Stage:      res.Stage,
		InputPath:  s.InputPath,
		OutputPath: s.OutputPath,
		RecordsIn:  res.RecordsIn,
		RecordsOut: res.RecordsOut,
		InputFound: res.InputFound,
	}
	if err := st.RecordStageRun(ctx, run); err != nil {
		return eris.Wrapf(err, "record stage run %s", res.Stage)
	}
	return nil
}
