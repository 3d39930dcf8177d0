package core

import "github.com/shopspring/decimal"

// ContractSummary is what a renderer needs to show one contract.
type ContractSummary struct {
	Tenant      string
	Unit        string
	Kind        ContractKind
	Description string
	MonthlyRent decimal.Decimal
	MonthsPaid  decimal.Decimal
	AmountPaid  decimal.Decimal
	ExpectedDue decimal.Decimal
	Debt        decimal.Decimal
	Credit      decimal.Decimal
	Standing    Standing
}

// Classification counts contracts by standing.
type Classification struct {
	InDebt   int
	InCredit int
	AtPar    int
}

// Total is the number of classified contracts.
func (c Classification) Total() int {
	return c.InDebt + c.InCredit + c.AtPar
}

// BuildingTotals is a compact building-level summary for a specific
// year+month.
type BuildingTotals struct {
	Year           int
	Month          int // 1-12
	Contracts      int
	TotalCollected decimal.Decimal
	Classification
}
