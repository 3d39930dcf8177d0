package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"rentas/internal/core"
)

// Routing keys, also used as message types.
const (
	TypeContractRegistered = "contract.registered"
	TypeBuildingReport     = "building.report"
)

// ContractRegisteredMessage carries the summary of one registered contract.
// Amounts travel as decimal strings.
type ContractRegisteredMessage struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Year        int       `json:"year"`
	Month       int       `json:"month"`
	Tenant      string    `json:"tenant"`
	Unit        string    `json:"unit"`
	Kind        string    `json:"kind"`
	MonthlyRent string    `json:"monthly_rent"`
	MonthsPaid  string    `json:"months_paid"`
	AmountPaid  string    `json:"amount_paid"`
	ExpectedDue string    `json:"expected_due"`
	Debt        string    `json:"debt"`
	Credit      string    `json:"credit"`
	Timestamp   time.Time `json:"timestamp"`
}

// BuildingReportMessage carries the building totals of a closed session.
type BuildingReportMessage struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	Year           int       `json:"year"`
	Month          int       `json:"month"`
	Contracts      int       `json:"contracts"`
	TotalCollected string    `json:"total_collected"`
	InDebt         int       `json:"in_debt"`
	InCredit       int       `json:"in_credit"`
	AtPar          int       `json:"at_par"`
	Timestamp      time.Time `json:"timestamp"`
}

func NewContractRegisteredMessage(year, month int, s core.ContractSummary) *ContractRegisteredMessage {
	return &ContractRegisteredMessage{
		ID:          uuid.NewString(),
		Type:        TypeContractRegistered,
		Year:        year,
		Month:       month,
		Tenant:      s.Tenant,
		Unit:        s.Unit,
		Kind:        string(s.Kind),
		MonthlyRent: s.MonthlyRent.String(),
		MonthsPaid:  s.MonthsPaid.String(),
		AmountPaid:  s.AmountPaid.String(),
		ExpectedDue: s.ExpectedDue.String(),
		Debt:        s.Debt.String(),
		Credit:      s.Credit.String(),
		Timestamp:   time.Now(),
	}
}

func NewBuildingReportMessage(t core.BuildingTotals) *BuildingReportMessage {
	return &BuildingReportMessage{
		ID:             uuid.NewString(),
		Type:           TypeBuildingReport,
		Year:           t.Year,
		Month:          t.Month,
		Contracts:      t.Contracts,
		TotalCollected: t.TotalCollected.String(),
		InDebt:         t.InDebt,
		InCredit:       t.InCredit,
		AtPar:          t.AtPar,
		Timestamp:      time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ContractRegisteredMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ToJSON converts the message to JSON bytes
func (m *BuildingReportMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
