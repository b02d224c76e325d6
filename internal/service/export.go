package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/deppfellow/docker-crm/internal/model"
)

const (
	exportSheet = "Customers"

	// ExportContentType is the MIME type of the workbook ExportCustomers builds.
	ExportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ExportFilename    = "customers.xlsx"
)

var exportHeaders = []any{"ID", "Name", "Email", "Phone", "Notes"}

// ExportCustomers renders every customer into an XLSX workbook, one row per
// customer in id order under a header row.
func (s *CustomerService) ExportCustomers(ctx context.Context) ([]byte, error) {
	customers, err := s.GetAllCustomers(ctx)
	if err != nil {
		return nil, err
	}

	data, err := buildCustomerWorkbook(customers)
	if err != nil {
		return nil, err
	}

	log := s.logger(ctx)
	log.Info().Int("rows", len(customers)).Int("size_bytes", len(data)).Msg("customers exported")

	return data, nil
}

func buildCustomerWorkbook(customers []model.Customer) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeaders); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetRowStyle(exportSheet, 1, 1, headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, c := range customers {
		notes := ""
		if c.Notes != nil {
			notes = *c.Notes
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}

		row := []any{c.ID, c.Name, c.Email, c.Phone, notes}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write customer %d: %w", c.ID, err)
		}
	}

	if err := f.SetColWidth(exportSheet, "B", "E", 28); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
