package config

import (
	"fmt"
	"strings"

	"github.com/wslarc/wslarc/internal/messages"
)

// RequireVolumePath rejects a config without a VHDX path.
func (c *Config) RequireVolumePath() error {
	if strings.TrimSpace(c.VHDX.Path) == "" {
		return fmt.Errorf("%w: %s", ErrConfigValidation, messages.ConfigVolumePathRequired)
	}
	return nil
}

// RequireUser rejects a config without an account name.
func (c *Config) RequireUser() error {
	if strings.TrimSpace(c.User.Name) == "" {
		return fmt.Errorf("%w: %s", ErrConfigValidation, messages.ConfigUserRequired)
	}
	return nil
}

// RequireUUID rejects a config whose volume has not been formatted yet.
func (c *Config) RequireUUID() error {
	if !c.HasUUID() {
		return fmt.Errorf("%w: %s", ErrConfigValidation, messages.ConfigUUIDRequired)
	}
	return nil
}
