package aggregations

import (
	"encoding/csv"
	"io"

	surveytypes "github.com/ondrovic/survey-test-form-sub004/pkg/types/survey"
)

// WriteCSV writes all series into one flat CSV with a row per value.
func WriteCSV(w io.Writer, seriesList []surveytypes.AggregatedSeries) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(exportHeader); err != nil {
		return err
	}

	for _, series := range seriesList {
		for _, row := range seriesRows(series) {
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}
