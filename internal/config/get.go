package config

import (
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml"

	"github.com/wslarc/wslarc/internal/messages"
)

// Get looks up a dotted key (e.g. "mount.base" or "subvolumes.backup.@home")
// in raw config TOML and returns its value rendered as text. Tables render as TOML.
func Get(data []byte, source string, key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf(messages.ConfigKeyRequired)
	}
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return "", fmt.Errorf(messages.ConfigParseTreeFmt, source, err)
	}
	value := tree.GetPath(strings.Split(key, "."))
	if value == nil {
		return "", fmt.Errorf(messages.ConfigKeyNotFoundFmt, key)
	}
	switch v := value.(type) {
	case *toml.Tree:
		return v.String(), nil
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, "\n"), nil
	default:
		return fmt.Sprint(v), nil
	}
}
