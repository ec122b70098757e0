// Package export writes the department hierarchy to an Excel workbook.
package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/frahmantamala/orgtree/internal/department"
	"github.com/xuri/excelize/v2"
)

const SheetName = "Departments"

var header = []interface{}{"ID", "Parent ID", "Level", "Employees", "Path"}

// WriteHeader sizes the columns of sheet and writes its bold header row.
func WriteHeader(f *excelize.File, sheet string) error {
	if err := f.SetColWidth(sheet, "A", "D", 12); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(sheet, "E", "E", 32); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "E1", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	return nil
}

// TreeWorkbook renders one row per department in depth-first order, parents
// before children.
func TreeWorkbook(forest []*department.TreeNode) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	if err := WriteHeader(f, SheetName); err != nil {
		return nil, err
	}

	row := 2
	var path []string
	var writeErr error
	department.Walk(forest, func(node *department.TreeNode, depth int) {
		if writeErr != nil {
			return
		}
		path = append(path[:depth-1], strconv.FormatInt(node.ID, 10))

		var parent interface{}
		if node.ParentID != nil {
			parent = *node.ParentID
		}
		values := []interface{}{node.ID, parent, depth, node.EmployeeCount, strings.Join(path, " / ")}

		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			writeErr = err
			return
		}
		writeErr = f.SetSheetRow(SheetName, cell, &values)
		row++
	})
	if writeErr != nil {
		return nil, fmt.Errorf("write rows: %w", writeErr)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}
