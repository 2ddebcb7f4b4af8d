package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wslarc/wslarc/internal/messages"
)

// LinePrompter reads answers line by line. It is used when stdin is not a terminal.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter returns a prompter that reads from in and writes to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Confirm asks a yes/no question. defaultYes controls the result of an empty answer.
// EOF without an answer is a "no".
func (p *LinePrompter) Confirm(title string, defaultYes bool) (bool, error) {
	for {
		format := messages.PromptNoDefaultFmt
		if defaultYes {
			format = messages.PromptYesDefaultFmt
		}
		if _, err := fmt.Fprintf(p.out, format, title); err != nil {
			return false, err
		}
		line, err := p.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		response := strings.TrimSpace(line)
		if response == "" {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return defaultYes, nil
		}
		switch strings.ToLower(response) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if errors.Is(err, io.EOF) {
			return false, fmt.Errorf(messages.PromptInvalidResponse, response)
		}
		if _, err := fmt.Fprintln(p.out, messages.PromptRetryYesNo); err != nil {
			return false, err
		}
	}
}

// Select prints a numbered list and reads the chosen number.
func (p *LinePrompter) Select(title string, options []string) (string, error) {
	if len(options) == 0 {
		return "", errors.New(messages.PromptNoOptions)
	}
	if _, err := fmt.Fprintln(p.out, title); err != nil {
		return "", err
	}
	for i, opt := range options {
		if _, err := fmt.Fprintf(p.out, messages.PromptSelectOptionFmt, i+1, opt); err != nil {
			return "", err
		}
	}
	for {
		if _, err := fmt.Fprintf(p.out, messages.PromptSelectChoiceFmt, len(options)); err != nil {
			return "", err
		}
		line, err := p.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		response := strings.TrimSpace(line)
		if response == "" && errors.Is(err, io.EOF) {
			return "", ErrCancelled
		}
		n, convErr := strconv.Atoi(response)
		if convErr == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf(messages.PromptInvalidSelectionFmt, response)
		}
		if _, err := fmt.Fprintf(p.out, messages.PromptRetrySelectFmt+"\n", len(options)); err != nil {
			return "", err
		}
	}
}

// Input reads one line. An empty answer keeps *value.
func (p *LinePrompter) Input(title string, value *string) error {
	var err error
	if *value != "" {
		_, err = fmt.Fprintf(p.out, messages.PromptInputDefaultFmt, title, *value)
	} else {
		_, err = fmt.Fprintf(p.out, messages.PromptInputFmt, title)
	}
	if err != nil {
		return err
	}
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	response := strings.TrimSpace(line)
	if response == "" && errors.Is(err, io.EOF) && *value == "" {
		return ErrCancelled
	}
	if response != "" {
		*value = response
	}
	return nil
}
