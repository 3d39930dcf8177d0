// Package services provides business logic and orchestration services.
package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"rentas/internal/core"
)

// BuildingManager owns the contracts registered during one session and
// aggregates them for the session's year and month.
type BuildingManager struct {
	year      int
	month     int
	contracts []*core.Contract
}

func NewBuildingManager(year, month int) (*BuildingManager, error) {
	if !core.ValidMonth(month) {
		return nil, fmt.Errorf("%w (got %d)", core.ErrInvalidMonth, month)
	}
	return &BuildingManager{year: year, month: month}, nil
}

func (m *BuildingManager) Year() int  { return m.year }
func (m *BuildingManager) Month() int { return m.month }
func (m *BuildingManager) Len() int   { return len(m.contracts) }

// RegisterContract builds the variant for in.StartYear, captures its payment
// and appends it. Only construction errors are returned, in which case
// nothing is stored.
func (m *BuildingManager) RegisterContract(in core.ContractInput) (*core.Contract, error) {
	c, err := core.NewContract(in)
	if err != nil {
		return nil, fmt.Errorf("register contract for unit %q: %w", in.Unit, err)
	}
	if err := c.CapturePayment(core.Payment{MonthsPaid: in.MonthsPaid, AmountPaid: in.AmountPaid}); err != nil {
		return nil, fmt.Errorf("capture payment for unit %q: %w", in.Unit, err)
	}
	m.contracts = append(m.contracts, c)
	return c, nil
}

// Contracts returns the registered contracts in registration order.
func (m *BuildingManager) Contracts() []*core.Contract {
	return append([]*core.Contract(nil), m.contracts...)
}

// TotalCollected sums the amount paid by every registered contract.
func (m *BuildingManager) TotalCollected() decimal.Decimal {
	total := decimal.Zero
	for _, c := range m.contracts {
		total = total.Add(c.Payment().AmountPaid)
	}
	return total
}

// Classify partitions the contracts by their standing at the session month.
func (m *BuildingManager) Classify() core.Classification {
	return m.ClassifyAt(m.month)
}

func (m *BuildingManager) ClassifyAt(month int) core.Classification {
	var out core.Classification
	for _, c := range m.contracts {
		switch c.Balance(month).Standing() {
		case core.InDebt:
			out.InDebt++
		case core.InCredit:
			out.InCredit++
		default:
			out.AtPar++
		}
	}
	return out
}

// Summaries returns one summary per contract at the session month.
func (m *BuildingManager) Summaries() []core.ContractSummary {
	out := make([]core.ContractSummary, 0, len(m.contracts))
	for _, c := range m.contracts {
		out = append(out, c.Summary(m.month))
	}
	return out
}

func (m *BuildingManager) Totals() core.BuildingTotals {
	return core.BuildingTotals{
		Year:           m.year,
		Month:          m.month,
		Contracts:      len(m.contracts),
		TotalCollected: m.TotalCollected(),
		Classification: m.Classify(),
	}
}
