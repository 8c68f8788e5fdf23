package export

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/noah-isme/shift-scheduler/internal/scheduler"
	"github.com/noah-isme/shift-scheduler/pkg/export"
)

// Format selects the rendering used by ScheduleExporter.Render.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// ScheduleExporter renders a solved Output's day-by-person matrix as CSV or
// PDF, grounded on original_source/server/app.py's export endpoint and
// reusing pkg/export's Dataset/CSVExporter/PDFExporter (spec §12
// "export the solved schedule").
type ScheduleExporter struct {
	csv *export.CSVExporter
	pdf *export.PDFExporter
}

// NewScheduleExporter builds a ScheduleExporter.
func NewScheduleExporter() *ScheduleExporter {
	return &ScheduleExporter{csv: export.NewCSVExporter(), pdf: export.NewPDFExporter()}
}

// Dataset converts the Output's matrix into a tabular Dataset with one row
// per day and one column per person, in PeopleOrder.
func Dataset(out scheduler.Output) export.Dataset {
	headers := append([]string{"date"}, out.PeopleOrder...)

	rows := make([]map[string]string, 0, len(out.Matrix))
	for _, day := range out.Matrix {
		row := map[string]string{"date": strconv.Itoa(day.Date)}
		for _, id := range out.PeopleOrder {
			row[id] = day.Shifts[id]
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		di, _ := strconv.Atoi(rows[i]["date"])
		dj, _ := strconv.Atoi(rows[j]["date"])
		return di < dj
	})

	return export.Dataset{Headers: headers, Rows: rows}
}

// Render renders the Output's matrix in the requested format.
func (e *ScheduleExporter) Render(out scheduler.Output, format Format) ([]byte, string, error) {
	if out.Infeasible || out.Error != nil {
		return nil, "", fmt.Errorf("cannot export a schedule that did not solve")
	}

	data := Dataset(out)
	switch format {
	case FormatCSV:
		b, err := e.csv.Render(data)
		return b, "text/csv", err
	case FormatPDF:
		b, err := e.pdf.Render(data, "monthly shift schedule")
		return b, "application/pdf", err
	default:
		return nil, "", fmt.Errorf("unsupported export format %q", format)
	}
}

// Filename builds a deterministic output filename for the given format.
func Filename(format Format) string {
	switch format {
	case FormatPDF:
		return "schedule.pdf"
	default:
		return "schedule.csv"
	}
}
