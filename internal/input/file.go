package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"rentas/internal/core"
)

const fieldsPerLine = 8

// LineError reports a rejected line of a batch file.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// LoadFile reads contract inputs from path. See ReadContracts for the format.
func LoadFile(path string) ([]core.ContractInput, []error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open contracts file: %w", err)
	}
	defer f.Close()
	return ReadContracts(f)
}

// ReadContracts parses one contract per line:
//
//	tenant|unit|bedrooms|start_month|start_year|historic_rent|months_paid|amount_paid
//
// Blank lines and lines starting with # are skipped. Bad lines are returned
// as *LineError values and do not stop the read; the last error is only set
// when reading itself fails.
func ReadContracts(r io.Reader) ([]core.ContractInput, []error, error) {
	var (
		out  []core.ContractInput
		errs []error
	)
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		in, err := parseLine(line)
		if err != nil {
			errs = append(errs, &LineError{Line: lineNo, Err: err})
			continue
		}
		out = append(out, in)
	}
	if err := sc.Err(); err != nil {
		return out, errs, fmt.Errorf("read contracts: %w", err)
	}
	return out, errs, nil
}

func parseLine(line string) (core.ContractInput, error) {
	var (
		in  core.ContractInput
		err error
	)
	fields := strings.Split(line, "|")
	if len(fields) != fieldsPerLine {
		return in, invalid("expected %d fields, got %d", fieldsPerLine, len(fields))
	}

	if in.Tenant, err = ParseTenant(fields[0]); err != nil {
		return in, err
	}
	if in.Unit, err = ParseUnit(fields[1]); err != nil {
		return in, err
	}
	if in.StartMonth, err = ParseMonth(fields[3]); err != nil {
		return in, err
	}
	if in.StartYear, err = ParseYear(fields[4]); err != nil {
		return in, err
	}

	if core.KindForYear(in.StartYear) == core.Standard {
		if in.Bedrooms, err = ParseBedrooms(fields[2]); err != nil {
			return in, err
		}
	} else if in.HistoricRent, err = ParseRent(fields[5]); err != nil {
		return in, err
	}

	if in.MonthsPaid, err = ParseMonthsPaid(fields[6]); err != nil {
		return in, err
	}
	if in.AmountPaid, err = ParseAmountPaid(fields[7]); err != nil {
		return in, err
	}
	return in, nil
}
