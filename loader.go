package envcmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// defaultModuleExtensions route to the module-loading branch. Everything else
// is parsed as plain .env text.
var defaultModuleExtensions = []string{".json", ".yaml", ".yml", ".toml"}

// Options configures a Loader.
type Options struct {
	// Module loads structured env files. Nil selects the built-in data-module
	// loader (JSON, YAML, TOML).
	Module ModuleLoader

	// ModuleExtensions overrides the extension set that selects the module
	// branch. Matching is case-insensitive. Empty selects the default set.
	ModuleExtensions []string
}

// Loader produces an Environment from env files, branching on file extension
// between structured modules and plain .env text. Each call is independent;
// the loader holds no mutable state and never touches the real process
// environment.
type Loader struct {
	module     ModuleLoader
	extensions map[string]bool
}

// New creates a Loader.
func New(opts Options) *Loader {
	module := opts.Module
	if module == nil {
		module = dataModuleLoader{}
	}

	exts := opts.ModuleExtensions
	if len(exts) == 0 {
		exts = defaultModuleExtensions
	}
	extensions := make(map[string]bool, len(exts))
	for _, ext := range exts {
		extensions[strings.ToLower(ext)] = true
	}

	return &Loader{
		module:     module,
		extensions: extensions,
	}
}

// GetEnvFileVars loads the env file at path and returns its variables.
// The path is resolved to absolute form and checked for existence before any
// content is read; a missing file yields *PathError carrying the original
// path. Structured files (by extension) go through the ModuleLoader with the
// default-export convention; everything else is read as UTF-8 text and parsed
// with ParseEnvString. The name is historical: no merge with the process
// environment is performed.
func (l *Loader) GetEnvFileVars(ctx context.Context, path string) (Environment, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve env file path %s: %w", path, err)
	}

	if _, err := os.Stat(absPath); err != nil {
		return nil, &PathError{Path: path}
	}

	ext := strings.ToLower(filepath.Ext(absPath))
	if l.extensions[ext] {
		return l.loadModuleFile(ctx, absPath, ext)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return ParseEnvString(string(data))
}

// loadModuleFile runs the module branch: load, unwrap the default export,
// await a deferred value, and normalize to plain data.
func (l *Loader) loadModuleFile(ctx context.Context, absPath, ext string) (Environment, error) {
	hint := ""
	if ext == ".json" {
		hint = HintJSON
	}

	mod, err := l.module.Load(ctx, absPath, hint)
	if err != nil {
		// Module failures (syntax errors, import failures) propagate unchanged.
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
	env, ok := normalized.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("env module %s did not export an object", absPath)
	}
	return Environment(env), nil
}

// GetEnvFileVars loads an env file with default options.
func GetEnvFileVars(ctx context.Context, path string) (Environment, error) {
	return New(Options{}).GetEnvFileVars(ctx, path)
}
