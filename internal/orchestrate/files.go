package orchestrate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/spf13/afero"

	"github.com/wslarc/wslarc/internal/diffview"
	"github.com/wslarc/wslarc/internal/messages"
	"github.com/wslarc/wslarc/internal/shell"
)

// readOptional returns the file content, or exists=false when it is missing.
func (e *engine) readOptional(p string) ([]byte, bool, error) {
	data, err := afero.ReadFile(e.fs, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf(messages.OrchestrateReadFileFmt, p, err)
	}
	return data, true, nil
}

// writeFile installs content at p. An identical file is left alone; in dry-run
// the change is shown as a unified diff. It reports whether the file changed.
func (e *engine) writeFile(p string, content string, perm os.FileMode) (bool, error) {
	current, exists, err := e.readOptional(p)
	if err != nil {
		return false, err
	}
	if exists && string(current) == content {
		e.report.info(messages.OrchestrateFileUnchangedFmt, p)
		return false, nil
	}
	if e.dryRun() {
		preview := diffview.Build(p, string(current), content, exists, 0)
		shell.PrintDryRun(e.out, "write "+p)
		_, _ = fmt.Fprint(e.out, diffview.Indent(preview.UnifiedDiff, "    "))
		return true, nil
	}
	if err := e.fs.MkdirAll(path.Dir(p), 0o755); err != nil {
		return false, fmt.Errorf(messages.OrchestrateCreateDirFmt, path.Dir(p), err)
	}
	if err := afero.WriteFile(e.fs, p, []byte(content), perm); err != nil {
		return false, fmt.Errorf(messages.OrchestrateWriteFileFmt, p, err)
	}
	if exists {
		e.report.success(messages.OrchestrateFileUpdatedFmt, p)
	} else {
		e.report.success(messages.OrchestrateFileCreatedFmt, p)
	}
	return true, nil
}

// stageFile writes content to staged so it can be checked before it replaces
// live. The dry-run preview diffs against live.
func (e *engine) stageFile(staged string, live string, content string, perm os.FileMode) error {
	if e.dryRun() {
		current, exists, err := e.readOptional(live)
		if err != nil {
			return err
		}
		preview := diffview.Build(live, string(current), content, exists, 0)
		shell.PrintDryRun(e.out, "write "+staged)
		_, _ = fmt.Fprint(e.out, diffview.Indent(preview.UnifiedDiff, "    "))
		return nil
	}
	if err := e.fs.MkdirAll(path.Dir(staged), 0o755); err != nil {
		return fmt.Errorf(messages.OrchestrateCreateDirFmt, path.Dir(staged), err)
	}
	if err := afero.WriteFile(e.fs, staged, []byte(content), perm); err != nil {
		return fmt.Errorf(messages.OrchestrateWriteFileFmt, staged, err)
	}
	return nil
}

// promote moves a checked staged file over live.
func (e *engine) promote(staged string, live string) error {
	_, existed, err := e.readOptional(live)
	if err != nil {
		return err
	}
	if !e.dryRun() {
		if err := e.fs.MkdirAll(path.Dir(live), 0o755); err != nil {
			return fmt.Errorf(messages.OrchestrateCreateDirFmt, path.Dir(live), err)
		}
	}
	if err := e.rename(staged, live); err != nil {
		return err
	}
	if e.dryRun() {
		return nil
	}
	if existed {
		e.report.success(messages.OrchestrateFileUpdatedFmt, live)
	} else {
		e.report.success(messages.OrchestrateFileCreatedFmt, live)
	}
	return nil
}

func (e *engine) removeAll(p string) error {
	if e.dryRun() {
		shell.PrintDryRun(e.out, shell.Line("rm", "-rf", p))
		return nil
	}
	if err := e.fs.RemoveAll(p); err != nil {
		return fmt.Errorf(messages.OrchestrateRemoveFileFmt, p, err)
	}
	return nil
}

func (e *engine) mkdirAll(p string) error {
	if e.dryRun() {
		shell.PrintDryRun(e.out, shell.Line("mkdir", "-p", p))
		return nil
	}
	if err := e.fs.MkdirAll(p, 0o755); err != nil {
		return fmt.Errorf(messages.OrchestrateCreateDirFmt, p, err)
	}
	return nil
}

func (e *engine) removeFile(p string) error {
	if e.dryRun() {
		shell.PrintDryRun(e.out, shell.Line("rm", "-f", p))
		return nil
	}
	if err := e.fs.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf(messages.OrchestrateRemoveFileFmt, p, err)
	}
	return nil
}

func (e *engine) rename(from string, to string) error {
	if e.dryRun() {
		shell.PrintDryRun(e.out, shell.Line("mv", from, to))
		return nil
	}
	if err := e.fs.Rename(from, to); err != nil {
		return fmt.Errorf(messages.OrchestrateRenameFmt, from, to, err)
	}
	return nil
}

// copyFile copies src to dst with perm, replacing dst. Removing first lets a
// running binary be replaced.
func (e *engine) copyFile(src string, dst string, perm os.FileMode) error {
	if e.dryRun() {
		shell.PrintDryRun(e.out, shell.Line("cp", src, dst))
		return nil
	}
	data, err := afero.ReadFile(e.fs, src)
	if err != nil {
		return fmt.Errorf(messages.OrchestrateReadFileFmt, src, err)
	}
	if err := e.fs.MkdirAll(path.Dir(dst), 0o755); err != nil {
		return fmt.Errorf(messages.OrchestrateCreateDirFmt, path.Dir(dst), err)
	}
	if err := e.fs.Remove(dst); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf(messages.OrchestrateRemoveFileFmt, dst, err)
	}
	if err := afero.WriteFile(e.fs, dst, data, perm); err != nil {
		return fmt.Errorf(messages.OrchestrateWriteFileFmt, dst, err)
	}
	return nil
}

func (e *engine) exists(p string) (bool, error) {
	ok, err := afero.Exists(e.fs, p)
	if err != nil {
		return false, fmt.Errorf(messages.OrchestrateStatFmt, p, err)
	}
	return ok, nil
}

// dirEmpty reports whether p is missing or has no entries.
func (e *engine) dirEmpty(p string) (bool, error) {
	ok, err := e.exists(p)
	if err != nil || !ok {
		return true, err
	}
	empty, err := afero.IsEmpty(e.fs, p)
	if err != nil {
		return false, fmt.Errorf(messages.OrchestrateStatFmt, p, err)
	}
	return empty, nil
}
