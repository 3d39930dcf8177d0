package log

import "rentas/internal/core"

// Common field names for structured logging
const (
	FieldComponent      = "component"
	FieldError          = "error"
	FieldOperation      = "operation"
	FieldYear           = "year"
	FieldMonth          = "month"
	FieldTenant         = "tenant"
	FieldUnit           = "unit"
	FieldKind           = "contract_kind"
	FieldMonthlyRent    = "monthly_rent"
	FieldMonthsPaid     = "months_paid"
	FieldAmountPaid     = "amount_paid"
	FieldStanding       = "standing"
	FieldContracts      = "contracts"
	FieldCapacity       = "capacity"
	FieldTotalCollected = "total_collected"
	FieldInDebt         = "in_debt"
	FieldInCredit       = "in_credit"
	FieldAtPar          = "at_par"
	FieldPath           = "path"
	FieldLine           = "line"
)

// Components defines standard component names
const (
	ComponentApp    = "app"
	ComponentLedger = "ledger"
	ComponentAMQP   = "amqp"
	ComponentExport = "export"
	ComponentInput  = "input"
	ComponentConfig = "config"
)

// Operations defines standard operation names
const (
	OpRegister = "register"
	OpPublish  = "publish"
	OpReport   = "report"
	OpExport   = "export"
	OpLoad     = "load"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithPeriod adds the session year and month.
func (f LogFields) WithPeriod(year, month int) LogFields {
	f[FieldYear] = year
	f[FieldMonth] = month
	return f
}

// WithContract adds contract-related fields
func (f LogFields) WithContract(s core.ContractSummary) LogFields {
	f[FieldTenant] = s.Tenant
	f[FieldUnit] = s.Unit
	f[FieldKind] = string(s.Kind)
	f[FieldMonthlyRent] = s.MonthlyRent.String()
	f[FieldMonthsPaid] = s.MonthsPaid.String()
	f[FieldAmountPaid] = s.AmountPaid.String()
	f[FieldStanding] = s.Standing.String()
	return f
}

// WithTotals adds building-level totals.
func (f LogFields) WithTotals(t core.BuildingTotals) LogFields {
	f[FieldContracts] = t.Contracts
	f[FieldTotalCollected] = t.TotalCollected.String()
	f[FieldInDebt] = t.InDebt
	f[FieldInCredit] = t.InCredit
	f[FieldAtPar] = t.AtPar
	return f.WithPeriod(t.Year, t.Month)
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
