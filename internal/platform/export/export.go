// Package export builds the Excel workbooks served by the download
// endpoints. Builders take flat row types so domain packages map their own
// models in; nothing here touches the database.
package export

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
)

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Send streams the workbook to the client as an attachment and closes it.
func Send(c echo.Context, f *excelize.File, filename string) error {
	defer f.Close()
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Response().Header().Set(echo.HeaderContentType, contentTypeXLSX)
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response().Writer)
}

// sheet writes a header row plus data rows onto the named sheet, creating it
// if missing. Row 1 is the header.
func sheet(f *excelize.File, name string, headers []string, rows [][]interface{}) error {
	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return err
	}
	if idx < 0 {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}
	head := make([]interface{}, len(headers))
	for i, h := range headers {
		head[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &head); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// single builds a one-sheet workbook, renaming the default sheet.
func single(name string, headers []string, rows [][]interface{}) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", name); err != nil {
		f.Close()
		return nil, err
	}
	if err := sheet(f, name, headers, rows); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}
