package envcmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// HintJSON tells a ModuleLoader to treat the file as JSON regardless of its
// extension. It mirrors the import attribute the host module system needs to
// load JSON modules and is the only hint the default loader recognizes.
const HintJSON = "json"

// Module is the value set exported by a structured env file.
// When Default is non-nil it is the configuration value; otherwise the whole
// Namespace is.
type Module struct {
	Default   any
	Namespace map[string]any
}

// Deferred is a pending module export that must be awaited before use.
// The loader resolves it after the module itself has loaded.
type Deferred interface {
	Resolve(ctx context.Context) (any, error)
}

// DeferredFunc adapts a function to the Deferred interface.
type DeferredFunc func(ctx context.Context) (any, error)

func (f DeferredFunc) Resolve(ctx context.Context) (any, error) {
	return f(ctx)
}

// ModuleLoader loads a structured env file and returns its exported values.
// Implementations receive the resolved absolute path and an optional
// content-type hint (HintJSON or empty). Load failures are propagated to the
// caller unchanged.
type ModuleLoader interface {
	Load(ctx context.Context, path string, hint string) (*Module, error)
}

// dataModuleLoader is the default ModuleLoader: it decodes JSON, YAML, and
// TOML data modules. The decoded document is the module's default export.
type dataModuleLoader struct{}

func (dataModuleLoader) Load(ctx context.Context, path string, hint string) (*Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read env module %s: %w", path, err)
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if hint == HintJSON {
		format = "json"
	}

	var doc any
	switch format {
	case "json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse JSON env module %s: %w", path, err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse YAML env module %s: %w", path, err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse TOML env module %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported env module format: %s (supported: json, yaml, toml)", format)
	}

	return &Module{Default: doc}, nil
}

// moduleValue applies the default-export convention and awaits a deferred
// export, returning the module's configuration value.
func moduleValue(ctx context.Context, mod *Module) (any, error) {
	var value any
	if mod.Default != nil {
		value = mod.Default
	} else {
		value = mod.Namespace
	}

	if deferred, ok := value.(Deferred); ok {
		resolved, err := deferred.Resolve(ctx)
		if err != nil {
			return nil, err
		}
		value = resolved
	}

	return value, nil
}
