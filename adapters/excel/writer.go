// Package excel exports sampled results to xlsx workbooks.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"symrand/domain/expr"
	"symrand/internal"
)

// SheetName is the sheet results are written to
const SheetName = "Sheet1"

// Writer lays a result out on a sheet: a scalar in A1, a flat list across
// the first row, a list of flat lists as a grid. Deeper structures put each
// row's leaves in InputForm.
type Writer struct {
	logger *internal.Logger
}

// NewWriter creates a writer
func NewWriter(logger *internal.Logger) *Writer {
	if logger == nil {
		logger = internal.NewDiscardLogger()
	}
	return &Writer{logger: logger.Named("excel")}
}

// Workbook builds a workbook holding result.
func (w *Writer) Workbook(result expr.Expr) (*excelize.File, error) {
	f := excelize.NewFile()

	rows := layout(result)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	w.logger.Debug("laid out %d rows", len(rows))
	return f, nil
}

// Save writes result to an xlsx file at path.
func (w *Writer) Save(result expr.Expr, path string) error {
	f, err := w.Workbook(result)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	w.logger.Info("wrote %s", path)
	return nil
}

func layout(result expr.Expr) [][]any {
	leaves, ok := expr.AsList(result)
	if !ok {
		return [][]any{{cellValue(result)}}
	}

	if flat(leaves) {
		return [][]any{cells(leaves)}
	}

	rows := make([][]any, len(leaves))
	for i, leaf := range leaves {
		if inner, ok := expr.AsList(leaf); ok {
			if flat(inner) {
				rows[i] = cells(inner)
			} else {
				rows[i] = inputForms(inner)
			}
			continue
		}
		rows[i] = []any{cellValue(leaf)}
	}
	return rows
}

func flat(leaves []expr.Expr) bool {
	for _, l := range leaves {
		if _, ok := expr.AsList(l); ok {
			return false
		}
	}
	return true
}

func cells(leaves []expr.Expr) []any {
	row := make([]any, len(leaves))
	for i, l := range leaves {
		row[i] = cellValue(l)
	}
	return row
}

func inputForms(leaves []expr.Expr) []any {
	row := make([]any, len(leaves))
	for i, l := range leaves {
		row[i] = l.String()
	}
	return row
}

// cellValue keeps machine numbers numeric and writes everything else as text.
func cellValue(e expr.Expr) any {
	switch x := e.(type) {
	case expr.Integer:
		if v, ok := x.Int64(); ok {
			return v
		}
	case expr.Real:
		return x.Float64()
	case expr.String:
		return x.Value()
	}
	return e.String()
}
