package systemd

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wslarc/wslarc/internal/shell/shelltest"
)

func TestLocalEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "/mnt/btrfs", want: "mnt-btrfs"},
		{in: "/home/alice/.cache", want: "home-alice-.cache"},
		{in: "/var/lib/pacman/", want: "var-lib-pacman"},
		{in: "/", want: "-"},
		{in: "", want: "-"},
		{in: "//usr//local", want: "usr-local"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, LocalEscape(tt.in))
		})
	}
}

func TestCommandEscaperUsesSystemdEscape(t *testing.T) {
	runner := shelltest.New().
		OnOutput("systemd-escape --path /home/alice/.cache", `home-alice-\x2ecache`)
	esc := NewCommandEscaper(runner, nil)

	assert.Equal(t, `home-alice-\x2ecache`, esc.Escape(context.Background(), "/home/alice/.cache"))
	assert.Equal(t, `home-alice-\x2ecache`, esc.Escape(context.Background(), "/home/alice/.cache"))
	assert.Len(t, runner.Calls, 1)
}

func TestCommandEscaperFallsBack(t *testing.T) {
	runner := shelltest.New().
		OnError("systemd-escape --path /var/log", errors.New("not found")).
		OnOutput("systemd-escape --path /opt", "")
	esc := NewCommandEscaper(runner, nil)

	assert.Equal(t, "var-log", esc.Escape(context.Background(), "/var/log"))
	assert.Equal(t, "opt", esc.Escape(context.Background(), "/opt"))
	assert.Equal(t, "usr", esc.Escape(context.Background(), "/usr"))
}

func TestUnitName(t *testing.T) {
	assert.Equal(t, "mnt-btrfs.mount", UnitName(context.Background(), LocalEscaper{}, "/mnt/btrfs"))
}
