package core

import "github.com/shopspring/decimal"

const (
	AtPar Standing = iota
	InDebt
	InCredit
)

type (
	Standing int

	// Balance is the state of a contract at a given month. At most one of
	// Debt and Credit is non-zero.
	Balance struct {
		ExpectedDue decimal.Decimal
		Debt        decimal.Decimal
		Credit      decimal.Decimal
	}
)

func (s Standing) String() string {
	switch s {
	case InDebt:
		return "in_debt"
	case InCredit:
		return "in_credit"
	default:
		return "at_par"
	}
}

// Standing classifies the balance; an exact zero difference is at par.
func (b Balance) Standing() Standing {
	switch {
	case b.Debt.IsPositive():
		return InDebt
	case b.Credit.IsPositive():
		return InCredit
	default:
		return AtPar
	}
}

// ExpectedDue is one full month of rent for every month from January through
// currentMonth. The start date of the contract is not taken into account and
// currentMonth is trusted to be in [1,12].
func (c *Contract) ExpectedDue(currentMonth int) decimal.Decimal {
	return decimal.NewFromInt(int64(currentMonth)).Mul(c.monthlyRent)
}

// InferMissing derives whichever of months/amount was left at zero from the
// other one. Pairs where both are zero or both are set pass through as-is.
func (c *Contract) InferMissing(p Payment) Payment {
	switch {
	case p.MonthsPaid.IsZero() && p.AmountPaid.IsPositive() && c.monthlyRent.IsPositive():
		p.MonthsPaid = p.AmountPaid.Div(c.monthlyRent)
	case p.AmountPaid.IsZero() && p.MonthsPaid.IsPositive():
		p.AmountPaid = p.MonthsPaid.Mul(c.monthlyRent)
	}
	return p
}

// CapturePayment stores the inferred payment. It can only happen once per
// contract.
func (c *Contract) CapturePayment(p Payment) error {
	if c.captured {
		return ErrPaymentCaptured
	}
	c.payment = c.InferMissing(p)
	c.captured = true
	return nil
}

// Captured reports whether the payment step already ran.
func (c *Contract) Captured() bool {
	return c.captured
}

func (c *Contract) Balance(currentMonth int) Balance {
	due := c.ExpectedDue(currentMonth)
	diff := c.payment.AmountPaid.Sub(due)
	if diff.IsNegative() {
		return Balance{ExpectedDue: due, Debt: diff.Neg(), Credit: decimal.Zero}
	}
	return Balance{ExpectedDue: due, Debt: decimal.Zero, Credit: diff}
}

// Summary builds the outbound per-contract tuple at currentMonth.
func (c *Contract) Summary(currentMonth int) ContractSummary {
	b := c.Balance(currentMonth)
	return ContractSummary{
		Tenant:      c.tenant,
		Unit:        c.unit,
		Kind:        c.kind,
		Description: c.Description(),
		MonthlyRent: c.monthlyRent,
		MonthsPaid:  c.payment.MonthsPaid,
		AmountPaid:  c.payment.AmountPaid,
		ExpectedDue: b.ExpectedDue,
		Debt:        b.Debt,
		Credit:      b.Credit,
		Standing:    b.Standing(),
	}
}
