// Package report renders contract summaries and building totals as plain text.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"rentas/internal/core"
)

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// WriteContract prints the summary of one contract for the session period.
func WriteContract(w io.Writer, year, month int, s core.ContractSummary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\nSummary for %s (unit: %s)\n", s.Tenant, s.Unit)
	fmt.Fprintf(&b, "  Contract type: %s\n", s.Description)
	fmt.Fprintf(&b, "  Monthly rent: %s\n", money(s.MonthlyRent))
	fmt.Fprintf(&b, "  Months elapsed in %d: %d\n", year, month)
	fmt.Fprintf(&b, "  Months paid in %d: %s\n", year, s.MonthsPaid.StringFixed(2))
	fmt.Fprintf(&b, "  Amount paid in %d: %s\n", year, money(s.AmountPaid))
	fmt.Fprintf(&b, "  Due to date: %s\n", money(s.ExpectedDue))
	switch s.Standing {
	case core.InDebt:
		fmt.Fprintf(&b, "  * Current debt: %s\n", money(s.Debt))
	case core.InCredit:
		fmt.Fprintf(&b, "  * Credit balance: %s\n", money(s.Credit))
	default:
		b.WriteString("  * Up to date\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteTotals prints the building-level totals and statistics.
func WriteTotals(w io.Writer, t core.BuildingTotals) error {
	rule := strings.Repeat("=", 45)
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\nTOTAL COLLECTED IN %d: %s\n%s\n", rule, t.Year, money(t.TotalCollected), rule)
	b.WriteString("\nBuilding statistics:\n")
	fmt.Fprintf(&b, "  Registered contracts: %d\n", t.Contracts)
	fmt.Fprintf(&b, "  Contracts in debt: %d\n", t.InDebt)
	fmt.Fprintf(&b, "  Contracts in credit: %d\n", t.InCredit)
	fmt.Fprintf(&b, "  Contracts up to date: %d\n", t.AtPar)
	_, err := io.WriteString(w, b.String())
	return err
}
