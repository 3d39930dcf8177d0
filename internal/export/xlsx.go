// Package export writes the session ledger to an xlsx workbook.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"rentas/internal/core"
)

const (
	ContractsSheet = "Contracts"
	BuildingSheet  = "Building"
)

type column struct {
	Header string
	Value  func(core.ContractSummary) any
}

var contractColumns = []column{
	{"Tenant", func(s core.ContractSummary) any { return s.Tenant }},
	{"Unit", func(s core.ContractSummary) any { return s.Unit }},
	{"Contract type", func(s core.ContractSummary) any { return s.Description }},
	{"Monthly rent", func(s core.ContractSummary) any { return s.MonthlyRent.InexactFloat64() }},
	{"Months paid", func(s core.ContractSummary) any { return s.MonthsPaid.Round(2).InexactFloat64() }},
	{"Amount paid", func(s core.ContractSummary) any { return s.AmountPaid.InexactFloat64() }},
	{"Due to date", func(s core.ContractSummary) any { return s.ExpectedDue.InexactFloat64() }},
	{"Debt", func(s core.ContractSummary) any { return s.Debt.InexactFloat64() }},
	{"Credit", func(s core.ContractSummary) any { return s.Credit.InexactFloat64() }},
	{"Standing", func(s core.ContractSummary) any { return s.Standing.String() }},
}

// Workbook builds the workbook in memory. The caller closes it.
func Workbook(summaries []core.ContractSummary, totals core.BuildingTotals) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), ContractsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	_ = f.SetDocProps(&excelize.DocProperties{
		Creator: "rentas",
		Title:   fmt.Sprintf("Rent report %d-%02d", totals.Year, totals.Month),
	})

	for i, col := range contractColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(ContractsSheet, cell, col.Header); err != nil {
			f.Close()
			return nil, fmt.Errorf("write header: %w", err)
		}
	}
	for rowIdx, s := range summaries {
		for colIdx, col := range contractColumns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(ContractsSheet, cell, col.Value(s)); err != nil {
				f.Close()
				return nil, fmt.Errorf("write row %d: %w", rowIdx+2, err)
			}
		}
	}

	if _, err := f.NewSheet(BuildingSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("create building sheet: %w", err)
	}
	rows := [][2]any{
		{"Year", totals.Year},
		{"Month", totals.Month},
		{"Registered contracts", totals.Contracts},
		{"Total collected", totals.TotalCollected.InexactFloat64()},
		{"Contracts in debt", totals.InDebt},
		{"Contracts in credit", totals.InCredit},
		{"Contracts up to date", totals.AtPar},
	}
	for i, row := range rows {
		if err := f.SetSheetRow(BuildingSheet, fmt.Sprintf("A%d", i+1), &[]any{row[0], row[1]}); err != nil {
			f.Close()
			return nil, fmt.Errorf("write building row: %w", err)
		}
	}

	return f, nil
}

// WriteFile saves the workbook under dir with a unique name and returns the
// file path.
func WriteFile(ctx context.Context, dir string, summaries []core.ContractSummary, totals core.BuildingTotals) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to ensure export dir %q: %w", dir, err)
	}

	f, err := Workbook(summaries, totals)
	if err != nil {
		return "", err
	}
	defer f.Close()

	name := fmt.Sprintf("rent-report-%d-%02d-%s.xlsx", totals.Year, totals.Month, uuid.NewString())
	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return path, nil
}
