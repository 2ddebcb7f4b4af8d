package systemd

import (
	"context"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/wslarc/wslarc/internal/shell"
)

// Escaper maps a mount path to a systemd unit name prefix.
type Escaper interface {
	Escape(ctx context.Context, mountPath string) string
}

// CommandEscaper asks systemd-escape and falls back to LocalEscape when it is
// unavailable. Results are cached so one run always names a path the same way.
type CommandEscaper struct {
	runner shell.Runner
	log    *zap.Logger
	cache  map[string]string
}

// NewCommandEscaper returns an escaper backed by runner.
func NewCommandEscaper(runner shell.Runner, log *zap.Logger) *CommandEscaper {
	if log == nil {
		log = zap.NewNop()
	}
	return &CommandEscaper{
		runner: runner,
		log:    log.With(zap.String("component", "systemd")),
		cache:  map[string]string{},
	}
}

// Escape implements Escaper.
func (e *CommandEscaper) Escape(ctx context.Context, mountPath string) string {
	if name, ok := e.cache[mountPath]; ok {
		return name
	}
	name, err := e.runner.Output(ctx, "systemd-escape", "--path", mountPath)
	if err != nil || name == "" {
		name = LocalEscape(mountPath)
		e.log.Debug("systemd-escape unavailable, using local escaping",
			zap.String("path", mountPath), zap.String("name", name), zap.Error(err))
	}
	e.cache[mountPath] = name
	return name
}

// LocalEscaper escapes without consulting systemd.
type LocalEscaper struct{}

// Escape implements Escaper.
func (LocalEscaper) Escape(_ context.Context, mountPath string) string {
	return LocalEscape(mountPath)
}

// LocalEscape drops the leading slash and joins path components with "-".
// The root path becomes "-". Unlike systemd-escape it does not hex-escape
// dashes or leading dots.
func LocalEscape(mountPath string) string {
	trimmed := strings.Trim(path.Clean("/"+mountPath), "/")
	if trimmed == "" {
		return "-"
	}
	return strings.ReplaceAll(trimmed, "/", "-")
}

// UnitName returns the .mount unit file name for a mount path.
func UnitName(ctx context.Context, esc Escaper, mountPath string) string {
	return esc.Escape(ctx, mountPath) + ".mount"
}
