package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadJSON(t *testing.T) {
	path := writeManifest(t, "compilation.manifest", `{
		"compilation_units": [
			{"package": "com.example", "top_level": ["Foo", "Bar"], "generated_by_annotation_processor": true},
			{"top_level": ["Main"], "generated_by_annotation_processor": false}
		]
	}`)

	m, err := Read(path)
	require.NoError(t, err)
	require.Len(t, m.CompilationUnits, 2)

	assert.Equal(t, "com.example", m.CompilationUnits[0].Package)
	assert.Equal(t, []string{"Foo", "Bar"}, m.CompilationUnits[0].TopLevel)
	assert.True(t, m.CompilationUnits[0].GeneratedByAnnotationProcessor)

	// Second unit is in the default package.
	assert.Empty(t, m.CompilationUnits[1].Package)
	assert.Equal(t, []string{"Main"}, m.CompilationUnits[1].TopLevel)
	assert.False(t, m.CompilationUnits[1].GeneratedByAnnotationProcessor)
}

func TestReadYAML(t *testing.T) {
	path := writeManifest(t, "compilation.yaml", `
compilation_units:
  - package: com.example
    top_level: [Gen]
    generated_by_annotation_processor: true
  - package: com.example
    top_level: [App]
    generated_by_annotation_processor: false
`)

	m, err := Read(path)
	require.NoError(t, err)
	require.Len(t, m.CompilationUnits, 2)
	assert.Equal(t, []string{"Gen"}, m.CompilationUnits[0].TopLevel)
	assert.True(t, m.CompilationUnits[0].GeneratedByAnnotationProcessor)
	assert.False(t, m.CompilationUnits[1].GeneratedByAnnotationProcessor)
}

func TestReadEmpty(t *testing.T) {
	t.Run("no units key", func(t *testing.T) {
		m, err := Read(writeManifest(t, "m.json", `{}`))
		require.NoError(t, err)
		assert.Empty(t, m.CompilationUnits)
	})

	t.Run("empty unit list", func(t *testing.T) {
		m, err := Read(writeManifest(t, "m.json", `{"compilation_units": []}`))
		require.NoError(t, err)
		assert.Empty(t, m.CompilationUnits)
	})
}

func TestReadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Read(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := Read(writeManifest(t, "bad.json", `{"compilation_units": [`))
		assert.Error(t, err)
	})

	t.Run("malformed YAML", func(t *testing.T) {
		_, err := Read(writeManifest(t, "bad.yaml", "compilation_units:\n\t- broken"))
		assert.Error(t, err)
	})
}
