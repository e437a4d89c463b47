package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Prompter asks questions on a terminal.
type Prompter struct {
	reader *NonBlockingReader
	writer io.Writer
}

// NewPrompter creates a prompter reading answers from in and writing prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		reader: NewNonBlockingReader(in),
		writer: out,
	}
}

// Ask prints prompt and returns the trimmed answer.
func (p *Prompter) Ask(ctx context.Context, prompt string) (string, error) {
	if _, err := fmt.Fprint(p.writer, prompt); err != nil {
		return "", err
	}
	return p.reader.ReadLine(ctx)
}

// Confirm asks a yes/no question. Anything but y or yes is a no.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	answer, err := p.Ask(ctx, question+" (y/N): ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
