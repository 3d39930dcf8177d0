package input

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"rentas/internal/core"
)

var ErrAborted = errors.New("input aborted")

type answer struct {
	text string
	err  error
}

// Prompter asks questions on out and reads answers line by line from in.
// Lines are read on a background goroutine so a cancelled context ends a
// pending prompt; Close stops that goroutine.
type Prompter struct {
	answers <-chan answer
	done    chan struct{}
	out     io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	answers := make(chan answer)
	done := make(chan struct{})
	go func() {
		defer close(answers)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case answers <- answer{text: sc.Text()}:
			case <-done:
				return
			}
		}
		if err := sc.Err(); err != nil {
			select {
			case answers <- answer{err: err}:
			case <-done:
			}
		}
	}()
	return &Prompter{answers: answers, done: done, out: out}
}

// Close releases the reader goroutine. A read already blocked on in only
// returns once in delivers data or is closed.
func (p *Prompter) Close() {
	select {
	case <-p.done:
	default:
		close(p.done)
	}
}

func (p *Prompter) readLine(ctx context.Context, label string) (string, error) {
	fmt.Fprint(p.out, label)
	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return "", fmt.Errorf("%w: %w", ErrAborted, ctx.Err())
	case a, ok := <-p.answers:
		if !ok {
			return "", ErrAborted
		}
		if a.err != nil {
			return "", fmt.Errorf("read answer: %w", a.err)
		}
		return a.text, nil
	}
}

// Ask keeps asking label until parse accepts the answer. Parse errors are
// shown to the user; only a closed or failing input or a cancelled ctx ends
// the loop.
func Ask[T any](ctx context.Context, p *Prompter, label string, parse func(string) (T, error)) (T, error) {
	for {
		raw, err := p.readLine(ctx, label)
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := parse(raw)
		if err == nil {
			return v, nil
		}
		fmt.Fprintf(p.out, "Error: %v\n", err)
	}
}

// CaptureContract asks for every field of contract number index. The
// historic rent is only asked for when startYear is outside the standard
// window.
func (p *Prompter) CaptureContract(ctx context.Context, index, currentYear int) (core.ContractInput, error) {
	var (
		in  core.ContractInput
		err error
	)
	fmt.Fprintf(p.out, "\n---------------------------------------------\nRegistration #%d\n", index)

	if in.Tenant, err = Ask(ctx, p, "Tenant name: ", ParseTenant); err != nil {
		return in, err
	}
	if in.Unit, err = Ask(ctx, p, "Unit code (e.g. D101, D202): ", ParseUnit); err != nil {
		return in, err
	}
	if in.Bedrooms, err = Ask(ctx, p, "Unit type (3 = three bedrooms, 4 = four bedrooms): ", ParseBedrooms); err != nil {
		return in, err
	}
	if in.StartMonth, err = Ask(ctx, p, "Contract start month (1..12): ", ParseMonth); err != nil {
		return in, err
	}
	if in.StartYear, err = Ask(ctx, p, "Contract start year (YYYY): ", ParseYear); err != nil {
		return in, err
	}

	if core.KindForYear(in.StartYear) == core.Historic {
		fmt.Fprintf(p.out, "Contract outside the %d-%d standard rates.\n", core.StandardWindowStart, core.StandardWindowEnd)
		if in.HistoricRent, err = Ask(ctx, p, "Monthly rent stated in the contract: ", ParseRent); err != nil {
			return in, err
		}
	}

	label := fmt.Sprintf("Months paid in %d (decimals allowed, e.g. 1.5; 0 if unknown): ", currentYear)
	if in.MonthsPaid, err = Ask(ctx, p, label, ParseMonthsPaid); err != nil {
		return in, err
	}
	label = fmt.Sprintf("Amount paid in %d (0 if months were given): ", currentYear)
	if in.AmountPaid, err = Ask(ctx, p, label, ParseAmountPaid); err != nil {
		return in, err
	}

	return in, nil
}

// CaptureCount asks how many contracts will be registered.
func (p *Prompter) CaptureCount(ctx context.Context) (int, error) {
	return Ask(ctx, p, "How many contracts will you register today? ", ParseCount)
}
