package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NIRMITI18/health-care-agent/pkg/errors"
)

func TestRegistryLoadAndRender(t *testing.T) {
	base := t.TempDir()
	promptDir := filepath.Join(base, "prompts")
	require.NoError(t, os.MkdirAll(promptDir, 0o755))

	tplPath := filepath.Join(promptDir, "greeting.tmpl")
	require.NoError(t, os.WriteFile(tplPath, []byte("Hello {{.Name}}, {{num .Weight}}kg"), 0o644))

	reg, err := NewRegistry(base)
	require.NoError(t, err)

	tmpl, err := reg.GetTemplate("prompts/greeting")
	require.NoError(t, err)

	rendered, err := tmpl.Render(map[string]any{"Name": "Alice", "Weight": 61.5})
	require.NoError(t, err)
	assert.Equal(t, "Hello Alice, 61.5kg", rendered)

	// Parsed templates keep their initial content
	require.NoError(t, os.WriteFile(tplPath, []byte("Hi {{.Name}}"), 0o644))

	rendered, err = tmpl.Render(map[string]any{"Name": "Bob", "Weight": 80.0})
	require.NoError(t, err)
	assert.Equal(t, "Hello Bob, 80kg", rendered)
}

func TestRegistryLazyLoad(t *testing.T) {
	base := t.TempDir()
	reg, err := NewRegistry(base)
	require.NoError(t, err)
	assert.Empty(t, reg.List())

	path := filepath.Join(base, "prompts", "late.tmpl")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("Goal {{.Goal}}"), 0o644))

	rendered, err := reg.Render("prompts/late", map[string]string{"Goal": "Endurance"})
	require.NoError(t, err)
	assert.Equal(t, "Goal Endurance", rendered)
}

func TestRegistryMissingKeyFails(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "strict.tmpl"), []byte("{{.Name}} {{.Age}}"), 0o644))

	reg, err := NewRegistry(base)
	require.NoError(t, err)

	_, err = reg.Render("strict", map[string]any{"Name": "Alex"})
	require.Error(t, err)
}

func TestRegistryParseError(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "broken.tmpl"), []byte("{{.Name"), 0o644))

	_, err := NewRegistry(base)
	require.Error(t, err)
}

func TestRegistryRequire(t *testing.T) {
	reg := Get()

	require.NoError(t, reg.Require("prompts/meal", "prompts/fitness", "prompts/holistic"))

	err := reg.Require("prompts/meal", "prompts/unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prompts/unknown")

	_, err = reg.GetTemplate("prompts/unknown")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestEmbeddedPrompts(t *testing.T) {
	reg := Get()
	assert.Equal(t, []string{"prompts/fitness", "prompts/holistic", "prompts/meal"}, reg.List())

	meal, err := reg.Render("prompts/meal", map[string]any{
		"Age":               30,
		"Weight":            70.0,
		"Height":            175.0,
		"ActivityLevel":     "Intermediate",
		"DietaryPreference": "Keto",
		"FitnessGoal":       "Muscle Gain",
	})
	require.NoError(t, err)
	assert.Contains(t, meal, "30-year-old person, weighing 70kg, 175cm tall")
	assert.Contains(t, meal, "following a 'Keto' diet")
}
