// Package envcmd loads environment configuration from files and produces a typed key-value mapping.
//
// Two file families are supported: plain-text .env files (KEY=VALUE lines with
// comment stripping, unquoting, and type coercion) and structured data modules
// (JSON, YAML, TOML) that export a configuration object directly.
//
// Quick Start:
//
//	loader := envcmd.New(envcmd.Options{})
//	env, err := loader.GetEnvFileVars(context.Background(), ".env")
//
// Text values are coerced to their most specific primitive: numbers become
// float64, exact "true"/"false" become bool, everything else stays a string.
//
// See example_test.go for detailed usage.
package envcmd
