// Package prompt implements the two line-based interaction primitives of the
// setup wizard: free text with a default, and yes/no confirmation.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/jfmusicbot/botsetup/pkg/logging"
	"github.com/jfmusicbot/botsetup/pkg/validate"
)

var (
	// ErrInputClosed is returned when input ends before an answer was accepted.
	ErrInputClosed = errors.New("input closed before a valid answer was given")
	// ErrTooManyAttempts is returned when MaxAttempts answers in a row were rejected.
	ErrTooManyAttempts = errors.New("too many invalid answers")
	// ErrInvalidDefault is returned by Confirm for an unknown default answer.
	ErrInvalidDefault = errors.New("invalid default answer")
)

const (
	invalidInputMessage = "Invalid Input. Please try again!"
	yesNoMessage        = "Please respond with 'yes' or 'no' (or 'y' or 'n').\n"
)

// Answer is the pre-selected answer of a yes/no question.
type Answer int

const (
	// NoDefault requires an explicit answer.
	NoDefault Answer = iota
	DefaultYes
	DefaultNo
)

var yesNo = map[string]bool{
	"yes": true,
	"y":   true,
	"ye":  true,
	"no":  false,
	"n":   false,
}

// Prompter reads answers line by line from in and writes prompts to out.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	maxAttempts int
	logger      *log.Logger
}

// Option configures a Prompter.
type Option func(*Prompter)

// WithMaxAttempts bounds how many rejected answers a single question
// tolerates. Zero or less means unbounded.
func WithMaxAttempts(n int) Option {
	return func(p *Prompter) {
		p.maxAttempts = n
	}
}

// WithLogger sets the logger used for debug events.
func WithLogger(l *log.Logger) Option {
	return func(p *Prompter) {
		p.logger = l
	}
}

// New returns a Prompter over in and out.
func New(in io.Reader, out io.Writer, opts ...Option) *Prompter {
	p := &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = logging.OrNop(p.logger)
	return p
}

// Println writes one line of operator-facing text.
func (p *Prompter) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

// AskWithDefault asks until the answer passes validator. Empty input is
// replaced by def before validation. A nil validator accepts anything.
func (p *Prompter) AskWithDefault(ctx context.Context, prompt, def string, validator validate.Func) (string, error) {
	shown := def
	if shown == "" {
		shown = "none"
	}
	for attempt := 1; ; attempt++ {
		fmt.Fprintf(p.out, "%s (Default: %s): ", prompt, shown)
		answer, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		if answer == "" {
			answer = def
		}
		if validator == nil || validator(answer) {
			return answer, nil
		}
		p.logger.Debug("answer rejected", "prompt", prompt, "attempt", attempt)
		fmt.Fprintln(p.out, invalidInputMessage)
		if p.exhausted(attempt) {
			return "", fmt.Errorf("%s: %w", prompt, ErrTooManyAttempts)
		}
	}
}

// Confirm asks a yes/no question. Empty input selects def, or is rejected
// when def is NoDefault.
func (p *Prompter) Confirm(ctx context.Context, question string, def Answer) (bool, error) {
	var suffix string
	switch def {
	case NoDefault:
		suffix = " [y/n]: "
	case DefaultYes:
		suffix = " [Y/n]: "
	case DefaultNo:
		suffix = " [y/N]: "
	default:
		return false, fmt.Errorf("%w: %d", ErrInvalidDefault, def)
	}
	for attempt := 1; ; attempt++ {
		fmt.Fprint(p.out, question+suffix)
		line, err := p.readLine(ctx)
		if err != nil {
			return false, err
		}
		choice := strings.ToLower(line)
		if choice == "" && def != NoDefault {
			return def == DefaultYes, nil
		}
		if v, ok := yesNo[choice]; ok {
			return v, nil
		}
		p.logger.Debug("confirmation rejected", "question", question, "attempt", attempt)
		fmt.Fprint(p.out, yesNoMessage+"\n")
		if p.exhausted(attempt) {
			return false, fmt.Errorf("%s: %w", question, ErrTooManyAttempts)
		}
	}
}

func (p *Prompter) exhausted(attempt int) bool {
	return p.maxAttempts > 0 && attempt >= p.maxAttempts
}

// readLine returns the next line without its line terminator. A last line
// without a newline still counts.
func (p *Prompter) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read answer: %w", err)
		}
		if line == "" {
			return "", ErrInputClosed
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}
