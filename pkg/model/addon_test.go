package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptor_MatchVersion(t *testing.T) {
	d := &Descriptor{Key: "foo", Type: TypeAddon, Version: "1.2.3"}

	assert.True(t, d.MatchVersion(">= 1.0"))
	assert.True(t, d.MatchVersion(">= 1.2.3, < 2.0"))
	assert.False(t, d.MatchVersion(">= 2.0"))
	assert.False(t, d.MatchVersion("not-a-constraint"))
}

func TestDescriptor_MatchVersion_UnparseableVersion(t *testing.T) {
	d := &Descriptor{Key: "foo", Type: TypeAddon, Version: "garbage"}
	assert.False(t, d.MatchVersion(">= 0.0.0"))
}

func TestDescriptor_Requires_CaseInsensitive(t *testing.T) {
	d := &Descriptor{
		Key:          "foo",
		Requirements: map[string]string{"LibBar": ">= 1.0"},
	}

	assert.True(t, d.Requires("libbar"))
	assert.True(t, d.Requires("LIBBAR"))
	assert.False(t, d.Requires("other"))
}

func TestDescriptor_TranslationPaths(t *testing.T) {
	d := &Descriptor{
		Key:          "foo",
		Subdir:       "addons/foo",
		Translations: []string{"lang/{locale}.json", "lang/{locale}-extra.json"},
	}

	paths := d.TranslationPaths("de_DE")
	require.Len(t, paths, 2)
	assert.Equal(t, "addons/foo/lang/de_DE.json", paths[0])
	assert.Equal(t, "addons/foo/lang/de_DE-extra.json", paths[1])
}

func TestDescriptor_TranslationPaths_Empty(t *testing.T) {
	d := &Descriptor{Key: "foo", Subdir: "addons/foo"}
	assert.Nil(t, d.TranslationPaths("en_US"))
}

func TestDescriptor_EnabledKey(t *testing.T) {
	d := &Descriptor{Key: "foo", Type: TypeTheme}
	assert.Equal(t, "theme/foo", d.EnabledKey())
}

func TestDescriptor_ClassFile(t *testing.T) {
	d := &Descriptor{
		Key:     "foo",
		Classes: map[string]string{"foo_widget": "src/widget.tengo"},
	}

	assert.Equal(t, "src/widget.tengo", d.ClassFile("Foo_Widget"))
	assert.Empty(t, d.ClassFile("unknown"))
}

func TestRequirementStatus_Matches(t *testing.T) {
	assert.True(t, StatusMissing.Matches(StatusProblems))
	assert.True(t, StatusVersionMismatch.Matches(StatusProblems))
	assert.False(t, StatusEnabled.Matches(StatusProblems))
	assert.False(t, StatusDisabled.Matches(StatusProblems))
	assert.True(t, StatusDisabled.Matches(StatusAny))
}

func TestRequirementStatus_String(t *testing.T) {
	assert.Equal(t, "enabled", StatusEnabled.String())
	assert.Equal(t, "disabled", StatusDisabled.String())
	assert.Equal(t, "missing", StatusMissing.String())
	assert.Equal(t, "version-mismatch", StatusVersionMismatch.String())
}

func TestAddonType_MultiCached(t *testing.T) {
	assert.True(t, TypeAddon.MultiCached())
	assert.False(t, TypeTheme.MultiCached())
	assert.False(t, TypeLocale.MultiCached())
}
