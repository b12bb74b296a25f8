// Package installer unpacks addon archives into a catalog scan root.
package installer

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/glorpus-work/addonreg/internal/logger"
	"github.com/glorpus-work/addonreg/pkg/catalog"
	"github.com/glorpus-work/addonreg/pkg/errors"
	"github.com/glorpus-work/addonreg/pkg/fsutil"
	"github.com/glorpus-work/addonreg/pkg/model"
	"github.com/mholt/archives"
)

// Installer extracts addon archives and moves them into place. An archive is
// valid when it contains exactly one top-level directory with an addon
// manifest inside.
type Installer struct {
	baseDir string
	load    catalog.DescriptorLoader
}

// New creates an installer over baseDir. A nil loader falls back to
// catalog.LoadDescriptor.
func New(baseDir string, loader catalog.DescriptorLoader) *Installer {
	if loader == nil {
		loader = catalog.LoadDescriptor
	}
	return &Installer{baseDir: baseDir, load: loader}
}

// InstallFromArchive extracts the archive at archivePath, validates the
// contained addon and moves it under root (relative to the installer's base
// directory). Returns the descriptor of the installed addon. An existing
// directory with the same name is replaced.
func (i *Installer) InstallFromArchive(ctx context.Context, archivePath, root string, typ model.AddonType) (*model.Descriptor, error) {
	stage, err := os.MkdirTemp(i.baseDir, ".install-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(stage) }()

	if err := extractAll(ctx, archivePath, stage); err != nil {
		return nil, err
	}

	name, err := singleAddonDir(stage)
	if err != nil {
		return nil, err
	}

	// Validate against the real loader before touching the scan root.
	_, err = i.load(stage, name, typ)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrArchiveInvalid, "%s: %v", archivePath, err)
	}

	dest := filepath.Join(i.baseDir, filepath.FromSlash(root), name)
	if err := os.RemoveAll(dest); err != nil {
		return nil, fmt.Errorf("failed to replace existing addon directory %s: %w", dest, err)
	}
	if err := fsutil.Move(filepath.Join(stage, name), dest); err != nil {
		return nil, fmt.Errorf("failed to move addon into place: %w", err)
	}

	// The descriptor's subdir must point at the final location, not the stage.
	installed, err := i.load(i.baseDir, path.Join(filepath.ToSlash(root), name), typ)
	if err != nil {
		return nil, errors.Wrapf(err, "addon %s invalid after install", name)
	}

	logger.Info("installed addon", logger.Fields{"key": installed.Key, "version": installed.Version, "dir": installed.Subdir})
	return installed, nil
}

// extractAll extracts every entry of the archive into destDir.
func extractAll(ctx context.Context, archivePath, destDir string) error {
	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		return fmt.Errorf("failed to open archive file: %w", err)
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	return fs.WalkDir(fsys, ".", func(entryPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entryPath == "." {
			return nil
		}
		destPath := filepath.Join(destDir, filepath.FromSlash(entryPath))
		if d.IsDir() {
			return os.MkdirAll(destPath, fsutil.DirModeDefault)
		}
		if err := os.MkdirAll(filepath.Dir(destPath), fsutil.DirModeDefault); err != nil {
			return err
		}
		src, err := fsys.Open(entryPath)
		if err != nil {
			return fmt.Errorf("failed to open archive entry %s: %w", entryPath, err)
		}
		defer func() { _ = src.Close() }()

		dst, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeDefault)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", destPath, err)
		}
		defer func() { _ = dst.Close() }()

		if _, err := io.Copy(dst, src); err != nil {
			return fmt.Errorf("failed to extract %s: %w", entryPath, err)
		}
		return nil
	})
}

// singleAddonDir returns the name of the single top-level directory in the
// staging area.
func singleAddonDir(stage string) (string, error) {
	names, err := fsutil.ListSubdirs(stage)
	if err != nil {
		return "", err
	}
	if len(names) != 1 {
		return "", errors.Wrapf(errors.ErrArchiveInvalid, "expected exactly one top-level directory, found %d", len(names))
	}
	return names[0], nil
}
