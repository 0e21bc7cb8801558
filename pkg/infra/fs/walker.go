// Package fs walks a project directory and builds snapshots of its content.
package fs

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/dirhook/pkg/domain/model"
	"github.com/m-mizutani/dirhook/pkg/utils/ctxlog"
)

// Walker walks a project directory and snapshots every file it is allowed to
// see. Paths containing any exclusion substring are pruned.
type Walker struct {
	fs          billy.Filesystem
	projectName string
	exclusions  []string
}

// NewWalker creates a Walker rooted at an OS directory. The project name is
// the base name of root.
func NewWalker(root string, exclusions []string) (*Walker, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve root directory", goerr.V("root", root))
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to stat root directory", goerr.V("root", abs))
	}
	if !info.IsDir() {
		return nil, goerr.New("root is not a directory", goerr.V("root", abs))
	}

	return NewWalkerFS(osfs.New(abs), filepath.Base(abs), exclusions), nil
}

// NewWalkerFS creates a Walker over any billy filesystem
func NewWalkerFS(fs billy.Filesystem, projectName string, exclusions []string) *Walker {
	return &Walker{
		fs:          fs,
		projectName: projectName,
		exclusions:  exclusions,
	}
}

// ProjectName returns the name reported in snapshots
func (w *Walker) ProjectName() string {
	return w.projectName
}

// Walk visits the tree depth-first, a directory before its children, and
// returns one folder record per visited directory. Any read error aborts the
// walk.
func (w *Walker) Walk(ctx context.Context) (*model.Snapshot, error) {
	snapshot := &model.Snapshot{
		ProjectName: w.projectName,
		Folders:     []model.FolderRecord{},
	}

	if err := w.walkDir(ctx, model.RootFolder, snapshot); err != nil {
		return nil, err
	}

	ctxlog.From(ctx).Debug("Walked project directory",
		"project", w.projectName,
		"folders", len(snapshot.Folders),
	)

	return snapshot, nil
}

func (w *Walker) walkDir(ctx context.Context, rel string, snapshot *model.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return goerr.Wrap(err, "walk interrupted", goerr.V("folder", rel))
	}

	if w.excluded(rel) {
		ctxlog.From(ctx).Debug("Skipping excluded directory", "folder", rel)
		return nil
	}

	entries, err := w.fs.ReadDir(w.fsPath(rel))
	if err != nil {
		return goerr.Wrap(err, "failed to read directory", goerr.V("folder", rel))
	}

	record := model.FolderRecord{
		Folder: rel,
		Files:  []model.FileRecord{},
	}
	var subdirs []string

	for _, entry := range entries {
		name := entry.Name()
		childPath := w.join(rel, name)

		isDir, isFile, err := w.classify(ctx, entry, childPath)
		if err != nil {
			return err
		}

		switch {
		case isDir:
			subdirs = append(subdirs, childPath)

		case isFile:
			if w.excluded(name) {
				continue
			}
			data, err := util.ReadFile(w.fs, w.fsPath(childPath))
			if err != nil {
				return goerr.Wrap(err, "failed to read file", goerr.V("path", childPath))
			}
			record.Files = append(record.Files, model.NewFileRecord(name, data))
		}
	}

	snapshot.Folders = append(snapshot.Folders, record)

	for _, sub := range subdirs {
		if err := w.walkDir(ctx, sub, snapshot); err != nil {
			return err
		}
	}

	return nil
}

// classify resolves an entry to a directory to descend into or a regular file
// to read. Symlinks to files are read through; symlinks to directories are not
// followed. Sockets, devices and dangling links are neither.
func (w *Walker) classify(ctx context.Context, entry os.FileInfo, rel string) (isDir, isFile bool, err error) {
	mode := entry.Mode()
	if mode&os.ModeSymlink == 0 {
		return mode.IsDir(), mode.IsRegular(), nil
	}

	target, err := w.fs.Stat(w.fsPath(rel))
	if err != nil {
		if os.IsNotExist(err) {
			ctxlog.From(ctx).Debug("Skipping dangling symlink", "path", rel)
			return false, false, nil
		}
		return false, false, goerr.Wrap(err, "failed to resolve symlink", goerr.V("path", rel))
	}

	return false, target.Mode().IsRegular(), nil
}

func (w *Walker) excluded(s string) bool {
	for _, excl := range w.exclusions {
		if strings.Contains(s, excl) {
			return true
		}
	}
	return false
}

func (w *Walker) join(rel, name string) string {
	if rel == model.RootFolder {
		return name
	}
	return path.Join(rel, name)
}

// fsPath converts a slash separated relative path to a billy path
func (w *Walker) fsPath(rel string) string {
	if rel == model.RootFolder {
		return "/"
	}
	return w.fs.Join(strings.Split(rel, "/")...)
}
