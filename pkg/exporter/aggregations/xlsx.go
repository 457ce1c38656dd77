package aggregations

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	surveytypes "github.com/ondrovic/survey-test-form-sub004/pkg/types/survey"
)

const maxSheetNameLength = 31

// WriteXLSX writes the series into an xlsx workbook with one sheet per
// section. Series without a section title end up on a "General" sheet.
func WriteXLSX(filename string, seriesList []surveytypes.AggregatedSeries) error {
	file := excelize.NewFile()
	defer file.Close()

	sheetRows := map[string]int{}
	sheetOrder := []string{}

	for _, series := range seriesList {
		sheetName := sheetNameForSection(series.Section)

		row, ok := sheetRows[sheetName]
		if !ok {
			if _, err := file.NewSheet(sheetName); err != nil {
				return err
			}
			cell, _ := excelize.CoordinatesToCellName(1, 1)
			if err := file.SetSheetRow(sheetName, cell, &exportHeader); err != nil {
				return err
			}
			row = 2
			sheetOrder = append(sheetOrder, sheetName)
		}

		for _, values := range seriesRows(series) {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			rowValues := make([]interface{}, len(values))
			for i, v := range values {
				if i == len(values)-1 {
					// count column as a number, everything else as text
					count, _ := strconv.Atoi(v)
					rowValues[i] = count
					continue
				}
				rowValues[i] = v
			}
			if err := file.SetSheetRow(sheetName, cell, &rowValues); err != nil {
				return err
			}
			row++
		}
		sheetRows[sheetName] = row
	}

	if len(sheetOrder) > 0 {
		if err := file.DeleteSheet("Sheet1"); err != nil {
			return err
		}
	}

	return file.SaveAs(filename)
}

// sheetNameForSection turns a section title into a valid sheet name, excel
// forbids a handful of characters and caps names at 31 runes.
func sheetNameForSection(section string) string {
	name := strings.TrimSpace(section)
	if name == "" {
		name = "General"
	}
	for _, forbidden := range []string{":", "\\", "/", "?", "*", "[", "]"} {
		name = strings.ReplaceAll(name, forbidden, " ")
	}
	runes := []rune(name)
	if len(runes) > maxSheetNameLength {
		name = string(runes[:maxSheetNameLength])
	}
	return name
}
