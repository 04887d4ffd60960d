package steps

import (
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"
)

// getCellValue returns the cell of row under the named header column
func getCellValue(table *godog.Table, row *messages.PickleTableRow, columnName string) (string, error) {
	if len(table.Rows) == 0 {
		return "", fmt.Errorf("table has no header row")
	}
	for i, cell := range table.Rows[0].Cells {
		if cell.Value == columnName && i < len(row.Cells) {
			return row.Cells[i].Value, nil
		}
	}
	return "", fmt.Errorf("column %q not found", columnName)
}

// getIntCell parses the named column of row as an integer
func getIntCell(table *godog.Table, row *messages.PickleTableRow, columnName string) (int, error) {
	raw, err := getCellValue(table, row, columnName)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", columnName, err)
	}
	return v, nil
}

// dataRows returns the rows below the header
func dataRows(table *godog.Table) []*messages.PickleTableRow {
	if len(table.Rows) <= 1 {
		return nil
	}
	return table.Rows[1:]
}
