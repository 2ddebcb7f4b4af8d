package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/wslarc/wslarc/internal/messages"
)

const (
	// DefaultPath is the config location on the host.
	DefaultPath = "/etc/wslarc/config.toml"
	// SnapshotRelPath is the config location relative to the @etc subvolume.
	SnapshotRelPath = "wslarc/config.toml"
)

// ResolvePath returns the config path for a --config flag value, expanding a
// leading ~. An empty value selects DefaultPath.
func ResolvePath(flagValue string) (string, error) {
	trimmed := strings.TrimSpace(flagValue)
	if trimmed == "" {
		return DefaultPath, nil
	}
	expanded, err := homedir.Expand(trimmed)
	if err != nil {
		return "", fmt.Errorf(messages.ConfigResolvePathFmt, trimmed, err)
	}
	return expanded, nil
}
