package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"gigbook/internal/core"
)

// prompter reads line-oriented answers and re-asks until the input parses.
// It owns all raw-string handling so the services only ever see typed,
// validated values. Once the input hits EOF every loop gives up and
// returns the zero value; the shell checks eof and unwinds.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	eof bool
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

func (p *prompter) line(label string) string {
	if p.eof {
		return ""
	}
	fmt.Fprintf(p.out, "%s: ", label)
	text, err := p.in.ReadString('\n')
	if err != nil && text == "" {
		p.eof = true
		return ""
	}
	return strings.TrimRight(text, "\r\n")
}

// required re-asks until the answer is non-empty.
func (p *prompter) required(label string) string {
	for {
		v := strings.TrimSpace(p.line(label))
		if v != "" || p.eof {
			return v
		}
		fmt.Fprintln(p.out, "Error: this field cannot be empty.")
	}
}

// code reads and canonicalizes an entity code.
func (p *prompter) code(label string) string {
	return core.NormalizeCode(p.required(label))
}

// email re-asks until the answer has a valid shape.
func (p *prompter) email(label string) string {
	for {
		v := strings.TrimSpace(p.line(label))
		if core.ValidateEmail(v) == nil || p.eof {
			return v
		}
		fmt.Fprintln(p.out, "Error: enter a valid email (name@domain.tld).")
	}
}

// money re-asks until the answer is a positive decimal amount.
func (p *prompter) money(label string) core.Money {
	for {
		cents, err := core.ParseDecimalToCents(p.line(label))
		if err == nil || p.eof {
			return core.Money{Cents: cents}
		}
		if errors.Is(err, core.ErrNotPositive) {
			fmt.Fprintln(p.out, "Error: the amount must be greater than zero.")
		} else {
			fmt.Fprintln(p.out, "Error: enter a valid number (digits and an optional decimal point).")
		}
	}
}

// positiveInt re-asks until the answer is a positive whole number.
func (p *prompter) positiveInt(label string) int64 {
	for {
		n, err := core.ParsePositiveInt(p.line(label))
		if err == nil || p.eof {
			return n
		}
		fmt.Fprintln(p.out, "Error: enter a whole number greater than zero.")
	}
}

// duration re-asks until the answer is a positive decimal hour count.
func (p *prompter) duration(label string) int64 {
	for {
		centi, err := core.ParseCentiHours(p.line(label))
		if err == nil || p.eof {
			return centi
		}
		fmt.Fprintln(p.out, "Error: enter the duration in hours, e.g. 2.5.")
	}
}

// list collects entries until an empty line.
func (p *prompter) list(labelFormat string) []string {
	var out []string
	for i := 1; ; i++ {
		v := strings.TrimSpace(p.line(fmt.Sprintf(labelFormat, i)))
		if v == "" {
			return out
		}
		out = append(out, v)
	}
}

// keep returns the current value when the answer is empty, otherwise the
// answer. Used by update flows.
func (p *prompter) keep(label, current string) string {
	v := strings.TrimSpace(p.line(fmt.Sprintf("%s [%s]", label, current)))
	if v == "" {
		return current
	}
	return v
}

// keepMoney is keep for amounts; a non-empty answer must parse.
func (p *prompter) keepMoney(label string, current core.Money) core.Money {
	for {
		v := strings.TrimSpace(p.line(fmt.Sprintf("%s [%s]", label, current.Format())))
		if v == "" {
			return current
		}
		if cents, err := core.ParseDecimalToCents(v); err == nil {
			return core.Money{Cents: cents}
		}
		fmt.Fprintln(p.out, "Error: enter a valid positive amount or leave empty to keep the current value.")
	}
}

// keepPositiveInt is keep for whole numbers; a non-empty answer must parse.
func (p *prompter) keepPositiveInt(label string, current int64) int64 {
	for {
		v := strings.TrimSpace(p.line(fmt.Sprintf("%s [%d]", label, current)))
		if v == "" {
			return current
		}
		if n, err := core.ParsePositiveInt(v); err == nil {
			return n
		}
		fmt.Fprintln(p.out, "Error: enter a whole number greater than zero or leave empty to keep the current value.")
	}
}

// keepEmail is keep for email addresses; a non-empty answer must validate.
func (p *prompter) keepEmail(label, current string) string {
	for {
		v := strings.TrimSpace(p.line(fmt.Sprintf("%s [%s]", label, current)))
		if v == "" {
			return current
		}
		if core.ValidateEmail(v) == nil {
			return v
		}
		fmt.Fprintln(p.out, "Error: enter a valid email or leave empty to keep the current value.")
	}
}
