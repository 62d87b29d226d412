package envcmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rcContent = `{
  "development": {"APP_ENV": "dev", "PORT": 3000, "DEBUG": true},
  "production": {"APP_ENV": "prod", "PORT": 80},
  "overlay": {"PORT": 8080}
}`

func TestGetRCFileVars_SingleEnvironment(t *testing.T) {
	path := writeFile(t, ".env-cmdrc", rcContent)

	env, err := GetRCFileVars(context.Background(), path, []string{"development"})
	require.NoError(t, err)
	assert.Equal(t, Environment{
		"APP_ENV": "dev",
		"PORT":    float64(3000),
		"DEBUG":   true,
	}, env)
}

func TestGetRCFileVars_MergeOrder_LaterWins(t *testing.T) {
	path := writeFile(t, ".env-cmdrc", rcContent)

	env, err := GetRCFileVars(context.Background(), path, []string{"production", "overlay"})
	require.NoError(t, err)
	assert.Equal(t, Environment{
		"APP_ENV": "prod",
		"PORT":    float64(8080),
	}, env)
}

func TestGetRCFileVars_PartialMatchSucceeds(t *testing.T) {
	path := writeFile(t, ".env-cmdrc", rcContent)

	env, err := GetRCFileVars(context.Background(), path, []string{"production", "does-not-exist"})
	require.NoError(t, err)
	assert.Equal(t, "prod", env["APP_ENV"])
}

func TestGetRCFileVars_NoMatchingEnvironments(t *testing.T) {
	path := writeFile(t, ".env-cmdrc", rcContent)

	_, err := GetRCFileVars(context.Background(), path, []string{"staging", "qa"})

	var envErr *EnvironmentError
	require.ErrorAs(t, err, &envErr)
	assert.Equal(t, []string{"staging", "qa"}, envErr.Missing)
	assert.Contains(t, err.Error(), "staging")
	assert.Contains(t, err.Error(), "qa")
}

func TestGetRCFileVars_MissingFile(t *testing.T) {
	_, err := GetRCFileVars(context.Background(), "/nonexistent/.env-cmdrc", []string{"development"})

	var pathErr *PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, "/nonexistent/.env-cmdrc", pathErr.Path)
}

func TestGetRCFileVars_NoEnvironmentsRequested(t *testing.T) {
	path := writeFile(t, ".env-cmdrc", rcContent)

	_, err := GetRCFileVars(context.Background(), path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rc environments requested")
}

func TestGetRCFileVars_YAMLRCFile(t *testing.T) {
	path := writeFile(t, "rc.yaml", "test:\n  PORT: 9000\n  NAME: yaml-rc\n")

	env, err := GetRCFileVars(context.Background(), path, []string{"test"})
	require.NoError(t, err)
	assert.Equal(t, Environment{"PORT": float64(9000), "NAME": "yaml-rc"}, env)
}

func TestGetRCFileVars_TOMLRCFile(t *testing.T) {
	path := writeFile(t, "rc.toml", "[test]\nPORT = 9000\n")

	env, err := GetRCFileVars(context.Background(), path, []string{"test"})
	require.NoError(t, err)
	assert.Equal(t, Environment{"PORT": float64(9000)}, env)
}

func TestGetRCFileVars_EnvironmentNotAnObject(t *testing.T) {
	path := writeFile(t, ".env-cmdrc", `{"broken": "just a string"}`)

	_, err := GetRCFileVars(context.Background(), path, []string{"broken"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not an object")
}
