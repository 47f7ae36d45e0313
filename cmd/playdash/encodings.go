package main

import (
	"fmt"
	"strconv"

	"github.com/Veraticus/playdash/internal/cli"
	"github.com/Veraticus/playdash/internal/encoding"
	"github.com/Veraticus/playdash/internal/model"
	"github.com/spf13/cobra"
)

func encodingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encodings",
		Short: "Inspect or export the categorical encoding table",
		Long: `The encoding table maps each categorical value to the integer code the model
was trained with. It comes from the model artifact when it embeds one, otherwise from
encodings.path, otherwise it is derived from the dataset (sorted distinct values).`,
	}

	cmd.AddCommand(encodingsShowCmd())
	cmd.AddCommand(encodingsExportCmd())

	return cmd
}

func encodingsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the encoding table",
		RunE:  runEncodingsShow,
	}
	cmd.Flags().String("field", "", "only show one field (Category, Type, Content Rating, Primary_Genre)")
	return cmd
}

func encodingsExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the encoding table as YAML or JSON",
		Example: `  playdash encodings export --out encodings.yaml
  playdash encodings export --format json`,
		RunE: runEncodingsExport,
	}
	cmd.Flags().StringP("out", "o", "", "output file (format from extension); stdout when empty")
	cmd.Flags().StringP("format", "f", formatYAML, "stdout format (yaml, json)")
	return cmd
}

func currentEncodingTable(cmd *cobra.Command) (*encoding.Table, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}
	store, err := loadStore(cmd.Context(), settings)
	if err != nil {
		return nil, err
	}
	art, err := loadArtifact(settings, true)
	if err != nil {
		return nil, err
	}
	return loadEncodingTable(art, settings, store)
}

func runEncodingsShow(cmd *cobra.Command, _ []string) error {
	fields := model.EncodedFields
	if name, _ := cmd.Flags().GetString("field"); name != "" {
		f, err := model.ParseField(name)
		if err != nil {
			return err
		}
		fields = []model.Field{f}
	}

	table, err := currentEncodingTable(cmd)
	if err != nil {
		return err
	}

	var rows [][]string
	for _, f := range fields {
		for _, v := range table.Values(f) {
			code, err := table.Encode(f, v)
			if err != nil {
				return err
			}
			rows = append(rows, []string{string(f), v, strconv.Itoa(code)})
		}
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n",
		cli.FormatInfo("source: "+table.Source()),
		cli.RenderTable([]string{"Field", "Value", "Code"}, rows))
	return err
}

func runEncodingsExport(cmd *cobra.Command, _ []string) error {
	out, _ := cmd.Flags().GetString("out")
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format, formatYAML, formatJSON); err != nil {
		return err
	}

	table, err := currentEncodingTable(cmd)
	if err != nil {
		return err
	}

	if out == "" {
		return table.Write(cmd.OutOrStdout(), format)
	}

	if err := table.Save(out); err != nil {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess("Wrote encoding table to "+out))
	return nil
}
