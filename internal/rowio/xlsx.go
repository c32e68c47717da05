package rowio

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// readWorkbook reads all rows from one sheet of an .xlsx workbook. An empty
// opts.Sheet selects the first sheet. Excelize already delivers cells as
// strings, so rows flow to the core unchanged.
func readWorkbook(path string, opts Options) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, fmt.Errorf("%w: %s has no sheets", ErrUnsupportedFormat, path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: reading sheet %q of %s: %v", ErrUnsupportedFormat, sheet, path, err)
	}
	return rows, nil
}
