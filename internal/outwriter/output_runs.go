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

// runTimeFormat is the display format for run timestamps.
const runTimeFormat = "2006-01-02 15:04:05"

// WriteRunRecords outputs recorded scoring runs, dispatching based on the output format configured.
func WriteRunRecords(records []schema.RunRecord, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, records)
		}, "Wrote JSON")
	case schema.CSVOut:
		header := []string{"run_id", "start_time", "end_time", "duration_ms", "total_rows", "valid_rows", "predicted_churners", "churn_rate"}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				for _, record := range records {
					rec := []string{
						strconv.FormatInt(record.RunID, 10),
						record.StartTime.Format(runTimeFormat),
						formatEndTime(&record),
						formatDuration(&record),
						strconv.Itoa(int(record.TotalRows)),
						strconv.Itoa(int(record.ValidRows)),
						strconv.Itoa(int(record.PredictedChurners)),
						fmtFloat(record.ChurnRate),
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
			return writeRunsTable(records, fmtFloat, w)
		}, "Wrote table")
	}
}

// writeRunsTable generates and writes the human-readable table.
func writeRunsTable(records []schema.RunRecord, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Run", "Started", "Duration", "Rows", "Valid", "Churners", "Rate"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i := range records {
		record := &records[i]
		data = append(data, []string{
			strconv.FormatInt(record.RunID, 10),
			record.StartTime.Format(runTimeFormat),
			formatDuration(record),
			strconv.Itoa(int(record.TotalRows)),
			strconv.Itoa(int(record.ValidRows)),
			strconv.Itoa(int(record.PredictedChurners)),
			fmtFloat(record.ChurnRate),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Showing %d recorded runs\n", len(records))
	return err
}

// formatEndTime renders a nullable end time.
func formatEndTime(record *schema.RunRecord) string {
	if record.EndTime == nil {
		return ""
	}
	return record.EndTime.Format(runTimeFormat)
}

// formatDuration renders a nullable duration in milliseconds.
func formatDuration(record *schema.RunRecord) string {
	if record.RunDurationMs == nil {
		return "-"
	}
	return fmt.Sprintf("%dms", *record.RunDurationMs)
}
