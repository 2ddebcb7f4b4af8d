// Package wslconf reads and edits the [boot] command in /etc/wsl.conf.
package wslconf

import (
	"bytes"
	"fmt"

	"gopkg.in/ini.v1"
)

const (
	// Path is the WSL distribution config file.
	Path = "/etc/wsl.conf"
	// AttachCommand is registered as the boot command.
	AttachCommand = "/usr/local/bin/wslarc attach"

	bootSection = "boot"
	commandKey  = "command"
)

func load(data []byte) (*ini.File, error) {
	file, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", Path, err)
	}
	return file, nil
}

// BootCommand returns the configured boot command, or "" when none is set.
func BootCommand(data []byte) (string, error) {
	file, err := load(data)
	if err != nil {
		return "", err
	}
	section, err := file.GetSection(bootSection)
	if err != nil {
		return "", nil
	}
	if !section.HasKey(commandKey) {
		return "", nil
	}
	return section.Key(commandKey).String(), nil
}

// SetBootCommand returns data with [boot] command set to cmd. Other sections
// and keys are preserved.
func SetBootCommand(data []byte, cmd string) ([]byte, error) {
	file, err := load(data)
	if err != nil {
		return nil, err
	}
	file.Section(bootSection).Key(commandKey).SetValue(cmd)
	var buf bytes.Buffer
	if _, err := file.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", Path, err)
	}
	return buf.Bytes(), nil
}
