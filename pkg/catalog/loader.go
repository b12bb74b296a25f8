package catalog

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/addonreg/pkg/errors"
	"github.com/glorpus-work/addonreg/pkg/model"
	"gopkg.in/yaml.v3"
)

// ManifestName is the file that makes a subdirectory a valid addon.
const ManifestName = "addon.yaml"

// DescriptorLoader constructs a descriptor from an addon directory. It is the
// sole authority on whether a subdirectory is a valid addon. baseDir is the
// absolute base all subdirs are relative to.
type DescriptorLoader func(baseDir, subdir string, typ model.AddonType) (*model.Descriptor, error)

// manifest is the on-disk shape of addon.yaml. The addon key always derives
// from the directory name, never from the manifest.
type manifest struct {
	Name         string            `yaml:"name"`
	Version      string            `yaml:"version"`
	Priority     int               `yaml:"priority"`
	Classes      map[string]string `yaml:"classes"`
	Requirements map[string]string `yaml:"requirements"`
	Specials     map[string]string `yaml:"specials"`
	Info         map[string]string `yaml:"info"`
	Translations []string          `yaml:"translations"`
}

// LoadDescriptor is the default DescriptorLoader. It parses
// <baseDir>/<subdir>/addon.yaml and derives the key from the directory name.
func LoadDescriptor(baseDir, subdir string, typ model.AddonType) (*model.Descriptor, error) {
	manifestPath := filepath.Join(baseDir, subdir, ManifestName)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrAddonInvalid, "cannot read %s: %v", manifestPath, err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(errors.ErrAddonInvalid, "cannot parse %s: %v", manifestPath, err)
	}
	if m.Version == "" {
		return nil, errors.Wrapf(errors.ErrAddonInvalid, "%s declares no version", manifestPath)
	}

	classes := make(map[string]string, len(m.Classes))
	for class, file := range m.Classes {
		classes[strings.ToLower(class)] = file
	}

	return &model.Descriptor{
		Key:          strings.ToLower(filepath.Base(subdir)),
		DisplayName:  m.Name,
		Type:         typ,
		Version:      m.Version,
		Priority:     m.Priority,
		Subdir:       filepath.ToSlash(subdir),
		Classes:      classes,
		Requirements: m.Requirements,
		Specials:     m.Specials,
		Info:         m.Info,
		Translations: m.Translations,
	}, nil
}
