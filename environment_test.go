package envcmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEnvironment_PlainScalarsUnchanged(t *testing.T) {
	env, err := normalizeEnvironment(Environment{
		"S": "hello",
		"N": 1.5,
		"B": true,
	})
	require.NoError(t, err)
	assert.Equal(t, Environment{"S": "hello", "N": 1.5, "B": true}, env)
}

func TestNormalizeEnvironment_IntegersBecomeFloat64(t *testing.T) {
	env, err := normalizeEnvironment(Environment{"N": 42})
	require.NoError(t, err)
	assert.Equal(t, float64(42), env["N"])
}

func TestNormalizeEnvironment_ExoticTypesDegradeToPlainData(t *testing.T) {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	env, err := normalizeEnvironment(Environment{"AT": at})
	require.NoError(t, err)

	// time.Time survives only as its serialized string form.
	s, ok := env["AT"].(string)
	require.True(t, ok)
	assert.Contains(t, s, "2024-06-01")
}

func TestNormalizeEnvironment_UnserializableValueFails(t *testing.T) {
	_, err := normalizeEnvironment(Environment{"F": func() {}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "normalize env vars")
}

func TestEnvironment_Merge(t *testing.T) {
	base := Environment{"A": float64(1), "B": "keep"}
	base.Merge(Environment{"A": float64(2), "C": true})

	assert.Equal(t, Environment{"A": float64(2), "B": "keep", "C": true}, base)
}

func TestEnvironment_Strings(t *testing.T) {
	env := Environment{
		"PORT":  float64(3000),
		"RATIO": 1.5,
		"DEBUG": true,
		"NAME":  "app",
	}

	assert.Equal(t, []string{
		"DEBUG=true",
		"NAME=app",
		"PORT=3000",
		"RATIO=1.5",
	}, env.Strings())
}

func TestEnvironment_Strings_NestedValueAsJSON(t *testing.T) {
	env := Environment{"DB": map[string]any{"host": "localhost"}}
	assert.Equal(t, []string{`DB={"host":"localhost"}`}, env.Strings())
}
