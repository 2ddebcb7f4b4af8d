package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandVariables(t *testing.T) {
	cfg := Default()
	cfg.User.Name = "alice"
	cfg.Subvolumes.Backup["@data"] = Full("/home/$USER/data", "noatime")
	cfg.Subvolumes.Transfer["@containers_user"] = TransferSubvolume{Mount: "/home/$USER/.local/share/containers", NoDataCOW: true}

	ExpandVariables(cfg)

	assert.Equal(t, "/home/alice", cfg.Subvolumes.Backup["@home"].MountTarget())
	assert.Equal(t, "/home/alice/data", cfg.Subvolumes.Backup["@data"].MountTarget())
	assert.Equal(t, "noatime", cfg.Subvolumes.Backup["@data"].Options())
	assert.True(t, cfg.Subvolumes.Backup["@data"].IsFull())
	assert.Equal(t, "/home/alice/.local/share/containers", cfg.Subvolumes.Transfer["@containers_user"].Mount)
	assert.True(t, cfg.Subvolumes.Transfer["@containers_user"].NoDataCOW)
}

func TestExpandVariablesIdempotent(t *testing.T) {
	cfg := Default()
	cfg.User.Name = "alice"

	ExpandVariables(cfg)
	once := cfg.Clone()
	ExpandVariables(cfg)

	assert.Equal(t, once, cfg)
}

func TestExpandVariablesWithoutUserKeepsTemplate(t *testing.T) {
	cfg := Default()

	ExpandVariables(cfg)

	assert.Equal(t, "/home/$USER", cfg.Subvolumes.Backup["@home"].MountTarget())
}

func TestSetUser(t *testing.T) {
	cfg := Default()

	SetUser(cfg, "  bob ")

	assert.Equal(t, "bob", cfg.User.Name)
	assert.Equal(t, "/home/bob", cfg.Subvolumes.Backup["@home"].MountTarget())

	SetUser(cfg, "bob")
	assert.Equal(t, "/home/bob", cfg.Subvolumes.Backup["@home"].MountTarget())
}
