package envcmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Environment maps configuration keys to scalar values.
// Values produced from text parsing are exactly one of string, float64, or bool.
// Module-sourced values may additionally carry nested plain data (maps, slices).
// Each load returns a fresh map owned exclusively by the caller.
type Environment map[string]any

// normalizeValue forces a value into plain data via a full JSON round trip.
// Anything JSON cannot represent (functions, channels) is rejected; types with
// custom serialization (time.Time) degrade to their serialized form.
func normalizeValue(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("normalize env vars: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("normalize env vars: %w", err)
	}
	return out, nil
}

// normalizeEnvironment applies normalizeValue to a whole mapping.
func normalizeEnvironment(env Environment) (Environment, error) {
	v, err := normalizeValue(map[string]any(env))
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		// A nil map round-trips to JSON null.
		return Environment{}, nil
	}
	return Environment(m), nil
}

// Merge copies src entries into env, overwriting existing keys (last write wins).
func (e Environment) Merge(src Environment) {
	for key, value := range src {
		e[key] = value
	}
}

// Strings renders the environment as KEY=value pairs suitable for process
// spawning. Numbers and booleans use their canonical textual form; keys are
// sorted for deterministic output.
func (e Environment) Strings() []string {
	out := make([]string, 0, len(e))
	for key, value := range e {
		out = append(out, key+"="+formatValue(value))
	}
	sort.Strings(out)
	return out
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		// Nested module data falls back to its JSON form.
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}
