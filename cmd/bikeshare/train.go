package main

//
// Train
//

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/bikeshare/metrics"
	"github.com/YuminosukeSato/bikeshare/train"
)

// trainSubcommand returns the train subcommand.
func trainSubcommand(g *globalFlags, stdout io.Writer) *cobra.Command {
	var dataFile, plotFile string
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Fits the pipeline on the training data and saves it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			if dataFile != "" {
				cfg.App.TrainingDataFile = dataFile
			}
			res, err := train.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "version %s: %d rows (%d dropped)\n", res.Version, res.Rows, len(res.Dropped))
			fmt.Fprintf(stdout, "train R2=%.4f RMSE=%.4f\n", res.Train.R2, res.Train.RMSE)
			fmt.Fprintf(stdout, "test  R2=%.4f RMSE=%.4f\n", res.Test.R2, res.Test.RMSE)
			if plotFile != "" {
				title := fmt.Sprintf("bikeshare %s test split (R2 %.3f)", res.Version, res.Test.R2)
				if err := metrics.PlotPredictions(res.TestTarget, res.TestPredictions, title, plotFile); err != nil {
					return err
				}
				fmt.Fprintf(stdout, "plot written to %s\n", plotFile)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dataFile, "data", "", "Training CSV, overrides app.training_data_file")
	cmd.Flags().StringVar(&plotFile, "plot", "", "Write an actual vs predicted plot of the test split (.png, .svg, .pdf)")
	return cmd
}
