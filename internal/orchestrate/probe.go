package orchestrate

import (
	"context"
	"strings"
)

// isMounted reports whether target is a mount point. findmnt exits non-zero
// for paths that are not mounted.
func (e *engine) isMounted(ctx context.Context, target string) bool {
	out, err := e.runner.Output(ctx, "findmnt", "-n", "-o", "TARGET", "--mountpoint", target)
	return err == nil && strings.TrimSpace(out) != ""
}

// unitState returns the first word systemctl prints for an is-enabled or
// is-active query. systemctl exits non-zero for disabled or inactive units but
// still prints the state.
func (e *engine) unitState(ctx context.Context, query string, unit string) string {
	out, _ := e.runner.Output(ctx, "systemctl", query, unit)
	out = strings.TrimSpace(out)
	if out == "" {
		return "unknown"
	}
	return strings.Fields(out)[0]
}

func (e *engine) isEnabled(ctx context.Context, unit string) bool {
	return e.unitState(ctx, "is-enabled", unit) == "enabled"
}

// deviceByLabel returns /dev/<name> for the block device carrying label.
func (e *engine) deviceByLabel(ctx context.Context, label string) (string, bool) {
	out, err := e.runner.Output(ctx, "lsblk", "-n", "-o", "NAME,LABEL")
	if err != nil {
		return "", false
	}
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[1] == label {
			return "/dev/" + strings.TrimLeft(fields[0], "├└─│ `|-"), true
		}
	}
	return "", false
}

// diskNames lists whole-disk block device names.
func (e *engine) diskNames(ctx context.Context) ([]string, error) {
	out, err := e.runner.Output(ctx, "lsblk", "-d", "-n", "-o", "NAME")
	if err != nil {
		return nil, err
	}
	return strings.Fields(out), nil
}

// btrfsWithLabel reports whether any block device holds a btrfs filesystem with label.
func (e *engine) btrfsWithLabel(ctx context.Context, label string) bool {
	out, err := e.runner.Output(ctx, "lsblk", "-f", "-n", "-o", "FSTYPE,LABEL")
	if err != nil {
		return false
	}
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[0] == "btrfs" && fields[1] == label {
			return true
		}
	}
	return false
}

// rootUUID returns the UUID of the filesystem mounted at /.
func (e *engine) rootUUID(ctx context.Context) (string, error) {
	out, err := e.runner.Output(ctx, "findmnt", "/", "-o", "UUID", "-n")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
