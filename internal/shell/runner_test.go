package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLine(t *testing.T) {
	tests := []struct {
		name string
		cmd  string
		args []string
		want string
	}{
		{name: "plain", cmd: "btrfs", args: []string{"subvolume", "create", "/mnt/btrfs-setup/@home"}, want: "btrfs subvolume create /mnt/btrfs-setup/@home"},
		{name: "no args", cmd: "mount", want: "mount"},
		{name: "spaces", cmd: "systemctl", args: []string{"list-timers", "a b"}, want: "systemctl list-timers 'a b'"},
		{name: "backslashes", cmd: "wsl.exe", args: []string{"--vhd", `C:\wsl\btrfs.vhdx`}, want: `wsl.exe --vhd 'C:\wsl\btrfs.vhdx'`},
		{name: "single quote", cmd: "echo", args: []string{"it's"}, want: `echo 'it'\''s'`},
		{name: "empty arg", cmd: "echo", args: []string{""}, want: "echo ''"},
		{name: "options", cmd: "mount", args: []string{"-o", "compress=zstd:3,noatime,nofail"}, want: "mount -o compress=zstd:3,noatime,nofail"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Line(tt.cmd, tt.args...))
		})
	}
}
