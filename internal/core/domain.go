package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	Standard ContractKind = "standard"
	Historic ContractKind = "historic"
)

// Standard-rate window, inclusive.
const (
	StandardWindowStart = 2024
	StandardWindowEnd   = 2025
)

var (
	// RateThreeBedrooms and RateFourBedrooms are the monthly rents of a
	// standard contract.
	RateThreeBedrooms = decimal.NewFromInt(7500)
	RateFourBedrooms  = decimal.NewFromInt(8500)
)

type (
	ContractKind string

	// Payment is the current-year payment state of a contract.
	Payment struct {
		MonthsPaid decimal.Decimal
		AmountPaid decimal.Decimal
	}

	// ContractInput carries already validated primitives for one registration.
	ContractInput struct {
		Tenant       string
		Unit         string
		StartMonth   int
		StartYear    int
		Bedrooms     int             // standard contracts only
		HistoricRent decimal.Decimal // historic contracts only
		MonthsPaid   decimal.Decimal
		AmountPaid   decimal.Decimal
	}

	// Contract is one tenant's lease. Kind selects the variant; Bedrooms is
	// only meaningful for standard contracts.
	Contract struct {
		kind        ContractKind
		tenant      string
		unit        string
		startMonth  int
		startYear   int
		bedrooms    int
		monthlyRent decimal.Decimal
		payment     Payment
		captured    bool
	}
)

var (
	ErrInvalidBedroomCount = errors.New("invalid bedroom count: must be 3 or 4")
	ErrInvalidHistoricRent = errors.New("invalid historic rent: must be greater than 0")
	ErrInvalidMonth        = errors.New("invalid month: must be between 1 and 12")
	ErrPaymentCaptured     = errors.New("payment already captured")
)

// KindForYear picks the contract variant for a start year.
func KindForYear(year int) ContractKind {
	if year >= StandardWindowStart && year <= StandardWindowEnd {
		return Standard
	}
	return Historic
}

// StandardRate returns the monthly rent for a bedroom count.
func StandardRate(bedrooms int) (decimal.Decimal, error) {
	switch bedrooms {
	case 3:
		return RateThreeBedrooms, nil
	case 4:
		return RateFourBedrooms, nil
	default:
		return decimal.Zero, fmt.Errorf("%w (got %d)", ErrInvalidBedroomCount, bedrooms)
	}
}

// ValidMonth reports whether m is a calendar month.
func ValidMonth(m int) bool {
	return m >= 1 && m <= 12
}

func NewStandardContract(tenant, unit string, startMonth, startYear, bedrooms int) (*Contract, error) {
	rent, err := StandardRate(bedrooms)
	if err != nil {
		return nil, err
	}
	return &Contract{
		kind:        Standard,
		tenant:      tenant,
		unit:        unit,
		startMonth:  startMonth,
		startYear:   startYear,
		bedrooms:    bedrooms,
		monthlyRent: rent,
	}, nil
}

func NewHistoricContract(tenant, unit string, startMonth, startYear int, rent decimal.Decimal) (*Contract, error) {
	if !rent.IsPositive() {
		return nil, fmt.Errorf("%w (got %s)", ErrInvalidHistoricRent, rent.String())
	}
	return &Contract{
		kind:        Historic,
		tenant:      tenant,
		unit:        unit,
		startMonth:  startMonth,
		startYear:   startYear,
		monthlyRent: rent,
	}, nil
}

// NewContract builds the variant that applies to in.StartYear. Payment fields
// of the input are not captured here.
func NewContract(in ContractInput) (*Contract, error) {
	if KindForYear(in.StartYear) == Standard {
		return NewStandardContract(in.Tenant, in.Unit, in.StartMonth, in.StartYear, in.Bedrooms)
	}
	return NewHistoricContract(in.Tenant, in.Unit, in.StartMonth, in.StartYear, in.HistoricRent)
}

func (c *Contract) Kind() ContractKind           { return c.kind }
func (c *Contract) Tenant() string               { return c.tenant }
func (c *Contract) Unit() string                 { return c.unit }
func (c *Contract) StartMonth() int              { return c.startMonth }
func (c *Contract) StartYear() int               { return c.startYear }
func (c *Contract) MonthlyRent() decimal.Decimal { return c.monthlyRent }
func (c *Contract) Payment() Payment             { return c.payment }

// Bedrooms returns 0 for historic contracts.
func (c *Contract) Bedrooms() int {
	if c.kind != Standard {
		return 0
	}
	return c.bedrooms
}

// Description is the human label of the contract variant.
func (c *Contract) Description() string {
	if c.kind == Standard {
		return fmt.Sprintf("standard %d-%d (%d bedrooms)", StandardWindowStart, StandardWindowEnd, c.bedrooms)
	}
	return fmt.Sprintf("historic (%d)", c.startYear)
}

func (c *Contract) String() string {
	return fmt.Sprintf("%s [%s] %s", strings.TrimSpace(c.tenant), c.unit, c.Description())
}
