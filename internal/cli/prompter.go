package cli

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// moneyRe matches a non-negative amount with at most two decimal places.
var moneyRe = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// Prompter reads line-oriented answers from the terminal. Invalid input
// re-prompts the same question; it never fails an operation. Input and
// output are plain io interfaces so tests can script a whole session.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
	eof bool
}

func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(r), out: w}
}

// EOF reports that the input stream ended. The menu loops treat it like
// choosing to exit, so a closed stdin cannot spin forever.
func (p *Prompter) EOF() bool { return p.eof }

func (p *Prompter) read() string {
	if p.eof {
		return ""
	}
	if !p.in.Scan() {
		p.eof = true
		return ""
	}
	return p.in.Text()
}

// Choice reads a numeric menu selection, re-prompting until it gets one.
func (p *Prompter) Choice() int {
	for !p.eof {
		fmt.Fprint(p.out, "Please make your choice: ")
		n, err := strconv.Atoi(strings.TrimSpace(p.read()))
		if err != nil {
			if !p.eof {
				fmt.Fprintln(p.out, "Your input is invalid!")
			}
			continue
		}
		return n
	}
	return 0
}

// Line reads a raw answer, empty allowed.
func (p *Prompter) Line(label string) string {
	fmt.Fprintf(p.out, "Enter %s: ", label)
	return p.read()
}

// NotEmpty re-prompts until the answer is non-empty.
func (p *Prompter) NotEmpty(label string) string {
	for !p.eof {
		fmt.Fprintf(p.out, "Enter %s: ", label)
		if text := p.read(); text != "" {
			return text
		}
		if !p.eof {
			fmt.Fprintln(p.out, "Invalid Input")
		}
	}
	return ""
}

// Numeric re-prompts until the answer looks like a price: digits with up
// to two decimal places.
func (p *Prompter) Numeric(label string) string {
	for !p.eof {
		fmt.Fprintf(p.out, "Enter %s: ", label)
		text := p.read()
		if moneyRe.MatchString(text) {
			return text
		}
		if !p.eof {
			fmt.Fprintln(p.out, "Invalid Input. Try again.")
		}
	}
	return "0"
}

// PositiveInt re-prompts until the answer is an integer greater than zero.
func (p *Prompter) PositiveInt(label string) int {
	for !p.eof {
		fmt.Fprintf(p.out, "Enter %s: ", label)
		n, err := strconv.Atoi(strings.TrimSpace(p.read()))
		if err == nil && n > 0 {
			return n
		}
		if !p.eof {
			fmt.Fprintln(p.out, "Invalid Input. Try again.")
		}
	}
	return 0
}

// YesNo asks a yes/no question; anything other than "yes" counts as no.
func (p *Prompter) YesNo(question string) bool {
	fmt.Fprintf(p.out, "%s (yes/no): ", question)
	return strings.EqualFold(strings.TrimSpace(p.read()), "yes")
}
