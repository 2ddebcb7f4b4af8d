package orchestrate

import (
	"context"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/wslarc/wslarc/internal/btrbk"
	"github.com/wslarc/wslarc/internal/config"
	"github.com/wslarc/wslarc/internal/messages"
)

// SnapshotRun takes snapshots now by running btrbk with the installed policy.
func SnapshotRun(ctx context.Context, cfg *config.Config, opts Options) error {
	e, err := newEngine(opts)
	if err != nil {
		return err
	}
	e.report.title(messages.SnapshotRunTitle)
	e.report.info(messages.SnapshotRunning)
	if err := e.runner.Stream(ctx, e.out, "btrbk", "-v", "run"); err != nil {
		return err
	}
	e.report.success(messages.SnapshotCreated)
	e.report.line(messages.SnapshotListHint)
	return nil
}

// SnapshotList prints btrbk's snapshot listing, or the snapshot directory when
// btrbk has nothing to say.
func SnapshotList(ctx context.Context, cfg *config.Config, opts Options) error {
	e, err := newEngine(opts)
	if err != nil {
		return err
	}
	e.report.title(messages.SnapshotListTitle)

	out, err := e.runner.Output(ctx, "btrbk", "list", "snapshots")
	if err == nil && strings.TrimSpace(out) != "" {
		e.report.line("%s", out)
		return nil
	}
	if err != nil {
		e.log.Debug("btrbk list failed, reading snapshot directory")
	}

	e.report.info(messages.SnapshotListingFmt, cfg.SnapshotDir())
	names, err := e.snapshotNames(cfg)
	if err != nil {
		e.report.warn("%v", err)
		return nil
	}
	if len(names) == 0 {
		e.report.line(messages.StatusNoSnapshots)
		return nil
	}

	t := e.report.table(table.Row{"Snapshot", "Subvolume", "Timestamp"})
	for _, name := range names {
		snap, err := btrbk.ParseSnapshot(name)
		if err != nil {
			t.AppendRow(table.Row{name, "?", "?"})
			continue
		}
		t.AppendRow(table.Row{name, snap.Subvolume(), snap.Timestamp})
	}
	t.Render()
	return nil
}
