package envcmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GetRCFileVars loads an rc file (a structured module mapping environment
// names to key-value objects) and returns the merged variables for the
// requested environment names. Environments merge in the order given, later
// names overriding earlier ones. A missing file yields *PathError; requested
// names absent from the file yield *EnvironmentError.
//
// Bare rc files without a recognized data-module extension (the conventional
// .env-cmdrc) are decoded as JSON.
func (l *Loader) GetRCFileVars(ctx context.Context, path string, environments []string) (Environment, error) {
	if len(environments) == 0 {
		return nil, fmt.Errorf("env-cmd: no rc environments requested for %s", path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve rc file path %s: %w", path, err)
	}

	if _, err := os.Stat(absPath); err != nil {
		return nil, &PathError{Path: path}
	}

	ext := strings.ToLower(filepath.Ext(absPath))
	hint := ""
	if !l.extensions[ext] || ext == ".json" {
		hint = HintJSON
	}

	mod, err := l.module.Load(ctx, absPath, hint)
	if err != nil {
		return nil, err
	}

	value, err := moduleValue(ctx, mod)
	if err != nil {
		return nil, err
	}

	normalized, err := normalizeValue(value)
	if err != nil {
		return nil, err
	}
	doc, ok := normalized.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("rc file %s did not export an object", absPath)
	}

	merged := make(Environment)
	var missing []string
	for _, name := range environments {
		section, ok := doc[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		vars, ok := section.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("rc environment %q in %s is not an object", name, path)
		}
		merged.Merge(Environment(vars))
	}

	if len(missing) == len(environments) {
		return nil, &EnvironmentError{Path: path, Missing: missing}
	}

	return merged, nil
}

// GetRCFileVars loads rc-file environments with default options.
func GetRCFileVars(ctx context.Context, path string, environments []string) (Environment, error) {
	return New(Options{}).GetRCFileVars(ctx, path, environments)
}
