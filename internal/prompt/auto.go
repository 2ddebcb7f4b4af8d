package prompt

import (
	"errors"

	"github.com/wslarc/wslarc/internal/messages"
)

// ErrSelectionRequired is returned by AutoYes.Select.
var ErrSelectionRequired = errors.New(messages.PromptSelectNeedsInteraction)

// AutoYes answers every confirmation with yes and keeps every input default.
type AutoYes struct{}

// Confirm always returns true.
func (AutoYes) Confirm(string, bool) (bool, error) {
	return true, nil
}

// Select cannot choose for the operator.
func (AutoYes) Select(string, []string) (string, error) {
	return "", ErrSelectionRequired
}

// Input keeps the default.
func (AutoYes) Input(string, *string) error {
	return nil
}
