package tree_installer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	openBoxes()
	config, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "tree", config.SourceBase)
	assert.Equal(t, ".py", config.SourceExt)
	assert.Equal(t, "tree.py", config.SourceFilename())
	assert.Equal(t, "bin", config.FallbackDir)
}

func TestTranslatorGet(t *testing.T) {
	openBoxes()
	translator := NewTranslatorVar(StringMap{"installedFile": "tree"})
	require.NotNil(t, translator)
	require.NoError(t, translator.SetLanguage("en"))

	assert.Equal(t, "Done.", translator.Get("install_done"))
	assert.Equal(t,
		"Kept the existing file, 'tree' stays in the current directory.",
		translator.Get("install_kept_existing"))
	assert.Equal(t, "", translator.Get("no_such_key"))
}

func TestTranslatorLanguages(t *testing.T) {
	openBoxes()
	translator := NewTranslator()
	require.NotNil(t, translator)

	languages := translator.GetLanguages()
	require.NotEmpty(t, languages)
	assert.Equal(t, DefaultLanguage, languages[0], "default language sorts first")
	assert.Contains(t, languages, "de")

	require.NoError(t, translator.SetLanguage("de"))
	assert.Equal(t, "Fertig.", translator.Get("install_done"))
	assert.Error(t, translator.SetLanguage("xx"))
}
