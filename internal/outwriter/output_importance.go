package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/churnlens/internal/contract"
	"github.com/huangsam/churnlens/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteImportanceResults outputs global feature importance, dispatching based on the output format configured.
func WriteImportanceResults(importance []schema.FeatureImportance, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeImportanceJSON(w, importance)
		}, "Wrote JSON")
	case schema.CSVOut:
		header := []string{"rank", "feature", "importance"}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				for i, imp := range importance {
					rec := []string{
						strconv.Itoa(i + 1),
						imp.Feature,
						fmtFloat(imp.Importance),
					}
					if err := csvWriter.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeImportanceTable(importance, fmtFloat, w)
		}, "Wrote table")
	}
}

// writeImportanceJSON adds ranks to the importance entries before encoding.
func writeImportanceJSON(w io.Writer, importance []schema.FeatureImportance) error {
	type JSONImportance struct {
		Rank int `json:"rank"`
		schema.FeatureImportance
	}

	output := make([]JSONImportance, len(importance))
	for i, imp := range importance {
		output[i] = JSONImportance{
			Rank:              i + 1,
			FeatureImportance: imp,
		}
	}

	return writeJSON(w, output)
}

// writeImportanceTable generates and writes the human-readable table.
func writeImportanceTable(importance []schema.FeatureImportance, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Feature", "Importance"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, imp := range importance {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			imp.Feature,
			fmtFloat(imp.Importance),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Ranked %d features by weight magnitude\n", len(importance))
	return err
}
