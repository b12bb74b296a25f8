package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glorpus-work/addonreg/pkg/errors"
	"github.com/glorpus-work/addonreg/pkg/fsutil"
	"github.com/glorpus-work/addonreg/pkg/model"
)

// FormatVersion is written into every cache file so stale layouts can be
// rejected wholesale.
const FormatVersion = "1"

// bulkFile is the serialized form of the multi-cache: every descriptor of a
// type in one file.
type bulkFile struct {
	FormatVersion string                       `json:"format_version"`
	Addons        map[string]*model.Descriptor `json:"addons"`
}

// indexFile is the serialized key->subdir index for single-cached types.
type indexFile struct {
	FormatVersion string            `json:"format_version"`
	Entries       map[string]string `json:"entries"`
}

// store performs the on-disk cache reads and writes for the catalog. Writes
// are atomic (unique temp file plus rename) so concurrent writers across
// processes never expose a partial file; an unreadable or missing cache is
// equivalent to "not cached".
type store struct {
	cacheDir string
}

func (s *store) bulkPath(typ model.AddonType) string {
	return filepath.Join(s.cacheDir, string(typ)+".json")
}

func (s *store) indexPath(typ model.AddonType) string {
	return filepath.Join(s.cacheDir, string(typ)+"-index.json")
}

func (s *store) itemPath(typ model.AddonType, key string) string {
	return filepath.Join(s.cacheDir, string(typ), key+".json")
}

func (s *store) readBulk(typ model.AddonType) (map[string]*model.Descriptor, error) {
	data, err := os.ReadFile(s.bulkPath(typ))
	if err != nil {
		return nil, err
	}
	var f bulkFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse cache file %s: %w", s.bulkPath(typ), err)
	}
	if f.FormatVersion != FormatVersion {
		return nil, fmt.Errorf("unsupported cache format %q in %s", f.FormatVersion, s.bulkPath(typ))
	}
	return f.Addons, nil
}

func (s *store) writeBulk(typ model.AddonType, addons map[string]*model.Descriptor) error {
	data, err := json.MarshalIndent(bulkFile{FormatVersion: FormatVersion, Addons: addons}, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal bulk cache")
	}
	if err := fsutil.WriteFileAtomic(s.bulkPath(typ), data, fsutil.FileModeDefault); err != nil {
		return errors.Wrapf(errors.ErrCacheWrite, "%s: %v", s.bulkPath(typ), err)
	}
	return nil
}

func (s *store) readIndex(typ model.AddonType) (map[string]string, error) {
	data, err := os.ReadFile(s.indexPath(typ))
	if err != nil {
		return nil, err
	}
	var f indexFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse index file %s: %w", s.indexPath(typ), err)
	}
	if f.FormatVersion != FormatVersion {
		return nil, fmt.Errorf("unsupported index format %q in %s", f.FormatVersion, s.indexPath(typ))
	}
	return f.Entries, nil
}

func (s *store) writeIndex(typ model.AddonType, entries map[string]string) error {
	data, err := json.MarshalIndent(indexFile{FormatVersion: FormatVersion, Entries: entries}, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal index")
	}
	if err := fsutil.WriteFileAtomic(s.indexPath(typ), data, fsutil.FileModeDefault); err != nil {
		return errors.Wrapf(errors.ErrCacheWrite, "%s: %v", s.indexPath(typ), err)
	}
	return nil
}

func (s *store) readItem(typ model.AddonType, key string) (*model.Descriptor, error) {
	data, err := os.ReadFile(s.itemPath(typ, key))
	if err != nil {
		return nil, err
	}
	var d model.Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse cache file %s: %w", s.itemPath(typ, key), err)
	}
	return &d, nil
}

func (s *store) writeItem(d *model.Descriptor) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal descriptor")
	}
	path := s.itemPath(d.Type, d.Key)
	if err := fsutil.WriteFileAtomic(path, data, fsutil.FileModeDefault); err != nil {
		return errors.Wrapf(errors.ErrCacheWrite, "%s: %v", path, err)
	}
	return nil
}

// clear removes every cache file so subsequent lookups force a rescan.
func (s *store) clear() error {
	for _, typ := range model.AllTypes {
		paths := []string{s.bulkPath(typ), s.indexPath(typ)}
		for _, p := range paths {
			if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
				return errors.Wrapf(err, "failed to remove cache file %s", p)
			}
		}
		if err := os.RemoveAll(filepath.Join(s.cacheDir, string(typ))); err != nil {
			return errors.Wrapf(err, "failed to remove cache directory for %s", typ)
		}
	}
	return nil
}
