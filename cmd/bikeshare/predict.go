package main

//
// Predict
//

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/bikeshare/modelstore"
	"github.com/YuminosukeSato/bikeshare/pkg/errors"
	"github.com/YuminosukeSato/bikeshare/predict"
)

// predictSubcommand returns the predict subcommand. The input is JSON: a
// single record object, an array of records, or an object of column arrays.
func predictSubcommand(g *globalFlags, stdin io.Reader, stdout io.Writer) *cobra.Command {
	var inputFile string
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predicts hire counts for JSON input read from stdin or --input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			in := stdin
			if inputFile != "" {
				f, err := os.Open(inputFile)
				if err != nil {
					return errors.Wrapf(err, "open input %s", inputFile)
				}
				defer f.Close()
				in = f
			}

			store, err := modelstore.Open(cfg.App)
			if err != nil {
				return err
			}
			defer store.Close()
			p, err := predict.Load(store, cfg.Model)
			if err != nil {
				return err
			}

			res, err := runPrediction(p, in)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
	cmd.Flags().StringVar(&inputFile, "input", "", "JSON input file (default stdin)")
	return cmd
}

// runPrediction decodes in and dispatches on its shape.
func runPrediction(p *predict.Predictor, in io.Reader) (*predict.Result, error) {
	var raw interface{}
	if err := json.NewDecoder(in).Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "decode JSON input")
	}

	switch v := raw.(type) {
	case []interface{}:
		records := make([]map[string]interface{}, len(v))
		for i, item := range v {
			rec, ok := item.(map[string]interface{})
			if !ok {
				return nil, errors.NewValidationError("input", "array items must be objects", i)
			}
			records[i] = rec
		}
		return p.PredictRecords(records)
	case map[string]interface{}:
		if columns, ok := asColumns(v); ok {
			return p.PredictColumns(columns)
		}
		return p.PredictRecords([]map[string]interface{}{v})
	default:
		return nil, errors.NewValidationError("input", "must be a JSON object or array", raw)
	}
}

// asColumns reports whether every value of obj is an array.
func asColumns(obj map[string]interface{}) (map[string][]interface{}, bool) {
	if len(obj) == 0 {
		return nil, false
	}
	out := make(map[string][]interface{}, len(obj))
	for k, v := range obj {
		arr, ok := v.([]interface{})
		if !ok {
			return nil, false
		}
		out[k] = arr
	}
	return out, true
}
