package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/playdash/internal/cli"
	"github.com/Veraticus/playdash/internal/model"
	"github.com/Veraticus/playdash/internal/predict"
	"github.com/spf13/cobra"
)

var numericFlagUsage = map[string]string{
	predict.InputReviews:  "number of reviews",
	predict.InputSizeKB:   "app size in KB",
	predict.InputInstalls: "number of installs",
	predict.InputPrice:    "price in USD",
	predict.InputAge:      "app age in years",
}

func predictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict an app's rating with the trained model",
		Long: `Predict the rating of an app from its category, type, content rating, primary
genre and five numeric features. Categorical values must appear in the encoding table
(see 'playdash encodings show'). Omitted numeric values count as 0.`,
		Example: `  playdash predict --category GAME --type Free --content-rating Everyone \
    --genre Action --reviews 5000 --size-kb 20480 --installs 1000000 --age 2.5`,
		RunE: runPredict,
	}

	for _, c := range predict.CategoricalInputs {
		cmd.Flags().String(c.Key, "", c.Field.Label())
		_ = cmd.MarkFlagRequired(c.Key)
	}
	for _, k := range predict.NumericInputs {
		cmd.Flags().String(k, "0", numericFlagUsage[k])
	}
	cmd.Flags().StringP("format", "f", formatText, "output format (text, json)")
	cmd.Flags().Bool("explain", false, "also print the encoded feature vector")

	return cmd
}

type predictionOutput struct {
	Features map[string]float64 `json:"features"`
	Model    string             `json:"model"`
	Label    string             `json:"label"`
	Rating   float64            `json:"rating"`
}

func runPredict(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format, formatText, formatJSON); err != nil {
		return err
	}
	explain, _ := cmd.Flags().GetBool("explain")

	raw := make(map[string]string)
	for _, c := range predict.CategoricalInputs {
		raw[c.Key], _ = cmd.Flags().GetString(c.Key)
	}
	for _, k := range predict.NumericInputs {
		raw[k], _ = cmd.Flags().GetString(k)
	}

	req, err := predict.ParseRequest(raw)
	if err != nil {
		return err
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	store, err := loadStore(cmd.Context(), settings)
	if err != nil {
		return err
	}
	predictor, err := loadPredictor(settings, store)
	if err != nil {
		return err
	}
	defer predictor.Close()

	p, err := predictor.Predict(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == formatJSON {
		return writeJSON(out, predictionOutput{
			Model:    p.Model,
			Rating:   p.Rating,
			Label:    p.Label(),
			Features: p.Vector.Named(),
		})
	}

	lines := []string{cli.FormatSuccess(cli.StarIcon + " Predicted App Rating: " + p.Label())}
	if explain {
		lines = append(lines,
			cli.SubtleStyle.Render("model: "+p.Model),
			cli.RenderBox("Encoded features", renderVector(p.Vector)),
		)
	}
	_, err = fmt.Fprintln(out, strings.Join(lines, "\n"))
	return err
}

func renderVector(v model.FeatureVector) string {
	rows := make([][]string, 0, model.FeatureCount)
	for i, name := range model.FeatureNames {
		rows = append(rows, []string{name, fmt.Sprintf("%g", v[i])})
	}
	return cli.RenderTable([]string{"Feature", "Value"}, rows)
}
