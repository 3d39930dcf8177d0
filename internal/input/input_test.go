package input

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentas/internal/core"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParsers(t *testing.T) {
	t.Run("bedrooms", func(t *testing.T) {
		for _, ok := range []string{"3", " 4 "} {
			_, err := ParseBedrooms(ok)
			assert.NoError(t, err, ok)
		}
		for _, bad := range []string{"2", "5", "three", ""} {
			_, err := ParseBedrooms(bad)
			assert.ErrorIs(t, err, ErrInvalidInput, bad)
		}
	})

	t.Run("month", func(t *testing.T) {
		m, err := ParseMonth("12")
		require.NoError(t, err)
		assert.Equal(t, 12, m)
		for _, bad := range []string{"0", "13", "-1", "may"} {
			_, err := ParseMonth(bad)
			assert.ErrorIs(t, err, ErrInvalidInput, bad)
		}
	})

	t.Run("tenant and unit", func(t *testing.T) {
		name, err := ParseTenant("  Ana López ")
		require.NoError(t, err)
		assert.Equal(t, "Ana López", name)
		_, err = ParseTenant("   ")
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = ParseUnit("")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("count allows zero", func(t *testing.T) {
		n, err := ParseCount("0")
		require.NoError(t, err)
		assert.Equal(t, 0, n)
		_, err = ParseCount("-2")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rent must be positive", func(t *testing.T) {
		r, err := ParseRent("5000,50")
		require.NoError(t, err)
		assert.True(t, r.Equal(dec("5000.5")))
		for _, bad := range []string{"0", "-10", "x"} {
			_, err := ParseRent(bad)
			assert.ErrorIs(t, err, ErrInvalidInput, bad)
		}
	})

	t.Run("payments allow zero", func(t *testing.T) {
		m, err := ParseMonthsPaid("1.5")
		require.NoError(t, err)
		assert.True(t, m.Equal(dec("1.5")))
		a, err := ParseAmountPaid("0")
		require.NoError(t, err)
		assert.True(t, a.IsZero())
		_, err = ParseAmountPaid("-1")
		assert.ErrorIs(t, err, ErrInvalidInput)
		_, err = ParseAmountPaid("0.004")
		assert.ErrorIs(t, err, ErrInvalidInput, "fractions of a cent must not be rounded to an unknown amount")
	})
}

func TestAskRetriesUntilValid(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("13\nabc\n7\n"), &out)

	got, err := Ask(context.Background(), p, "Month: ", ParseMonth)
	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.Equal(t, 3, strings.Count(out.String(), "Month: "))
	assert.Equal(t, 2, strings.Count(out.String(), "Error: "))
}

func TestAskAbortsOnEOF(t *testing.T) {
	p := NewPrompter(strings.NewReader("nope\n"), &bytes.Buffer{})
	_, err := Ask(context.Background(), p, "Month: ", ParseMonth)
	assert.ErrorIs(t, err, ErrAborted)
}

func TestAskAbortsOnCancelledContext(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	p := NewPrompter(r, &bytes.Buffer{})
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := p.CaptureCount(ctx)
		errc <- err
	}()

	cancel()
	select {
	case err := <-errc:
		assert.ErrorIs(t, err, ErrAborted)
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("prompt still waiting after the context was cancelled")
	}
}

func TestCaptureContractStandard(t *testing.T) {
	answers := strings.Join([]string{
		"Ana",  // tenant
		"D101", // unit
		"5",    // bad bedrooms
		"4",    // bedrooms
		"3",    // start month
		"2024", // start year
		"2",    // months paid
		"0",    // amount paid
	}, "\n") + "\n"
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(answers), &out)

	in, err := p.CaptureContract(context.Background(), 1, 2025)
	require.NoError(t, err)
	assert.Equal(t, "Ana", in.Tenant)
	assert.Equal(t, "D101", in.Unit)
	assert.Equal(t, 4, in.Bedrooms)
	assert.Equal(t, 2024, in.StartYear)
	assert.True(t, in.HistoricRent.IsZero())
	assert.True(t, in.MonthsPaid.Equal(dec("2")))
	assert.NotContains(t, out.String(), "Monthly rent stated in the contract")
	assert.Contains(t, out.String(), "Registration #1")
}

func TestCaptureContractHistoric(t *testing.T) {
	answers := "Luis\nD202\n3\n7\n2019\n0\n5000\n0\n22000\n"
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(answers), &out)

	in, err := p.CaptureContract(context.Background(), 2, 2025)
	require.NoError(t, err)
	assert.Equal(t, 2019, in.StartYear)
	assert.True(t, in.HistoricRent.Equal(dec("5000")), "zero rent must be re-asked")
	assert.True(t, in.AmountPaid.Equal(dec("22000")))
	assert.Contains(t, out.String(), "Monthly rent stated in the contract")
}

func TestReadContracts(t *testing.T) {
	data := `# tenant|unit|bedrooms|month|year|rent|months|amount
Ana|D101|3|1|2024||0|37500
Luis|D202||7|2019|5000|0|22000

Bad|D303|5|1|2025||1|0
Short|D304|3
Neg|D305|4|2|2024||-1|0
`
	inputs, errs, err := ReadContracts(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, inputs, 2)
	assert.Equal(t, "D101", inputs[0].Unit)
	assert.Equal(t, 3, inputs[0].Bedrooms)
	assert.True(t, inputs[0].AmountPaid.Equal(dec("37500")))
	assert.Equal(t, core.Historic, core.KindForYear(inputs[1].StartYear))
	assert.True(t, inputs[1].HistoricRent.Equal(dec("5000")))

	require.Len(t, errs, 3)
	var lineErr *LineError
	require.True(t, errors.As(errs[0], &lineErr))
	assert.Equal(t, 5, lineErr.Line)
	assert.ErrorIs(t, errs[0], ErrInvalidInput)
	assert.Contains(t, errs[1].Error(), "line 6")
	assert.Contains(t, errs[2].Error(), "line 7")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contracts.txt")
	require.NoError(t, os.WriteFile(path, []byte("Ana|D101|4|1|2025||2|0\n"), 0o644))

	inputs, errs, err := LoadFile(path)
	require.NoError(t, err)
	assert.Empty(t, errs)
	require.Len(t, inputs, 1)
	assert.Equal(t, 4, inputs[0].Bedrooms)

	_, _, err = LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
