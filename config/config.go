package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/xy-planning-network/burrow"
	"gopkg.in/yaml.v3"
)

// PathSeparator separates the keys of a path passed to Get.
const PathSeparator = "."

var (
	// ErrCorrupt is returned when a config document cannot be parsed into an object.
	ErrCorrupt = fmt.Errorf("%w: corrupt", burrow.ErrBadConfig)

	// ErrUnreadable is returned when a config document cannot be read.
	ErrUnreadable = fmt.Errorf("%w: unreadable", burrow.ErrBadConfig)

	// ErrUndefined is returned when a path resolves to no value.
	ErrUndefined = fmt.Errorf("%w: undefined", burrow.ErrBadConfig)
)

// A Tree is the merged configuration of all documents loaded into it.
//
// The zero value is not ready for use; construct one with New.
type Tree struct {
	mu     sync.RWMutex
	values map[string]any
}

// New constructs an empty *Tree.
func New() *Tree { return &Tree{values: make(map[string]any)} }

// Load reads the JSON document at file and merges it into the *Tree.
// Files ending in .yaml or .yml are parsed as YAML.
//
// Values in file replace values already in the *Tree at the leaf level;
// sibling keys file does not set are left untouched.
// Load returns the whole tree after merging.
func (t *Tree) Load(file string) (map[string]any, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("%w: config file %q is not readable: %s", ErrUnreadable, file, err)
	}

	var doc any
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &doc)
	default:
		err = json.Unmarshal(b, &doc)
	}

	values, ok := doc.(map[string]any)
	if err != nil || !ok {
		return nil, fmt.Errorf("%w: config file %q may be corrupted", ErrCorrupt, file)
	}

	return t.Merge(values), nil
}

// Merge merges values into the *Tree the same way Load does,
// returning a copy of the whole tree after merging.
func (t *Tree) Merge(values map[string]any) map[string]any {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.values = mergeMaps(t.values, values)
	return clone(t.values).(map[string]any)
}

// Get resolves the dot-separated path through the tree.
// Numeric keys index into arrays.
//
// An empty path returns the whole tree.
// Maps and arrays return as copies, so changing them leaves the tree as is.
// If any key along path is absent or null, ErrUndefined returns.
func (t *Tree) Get(path string) (any, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if path == "" {
		return clone(t.values), nil
	}

	var val any = t.values
	for _, key := range strings.Split(path, PathSeparator) {
		val = child(val, key)
		if val == nil {
			return nil, fmt.Errorf("%w: value %q is not defined", ErrUndefined, path)
		}
	}

	return clone(val), nil
}

// Has asserts whether path resolves to a value.
func (t *Tree) Has(path string) bool {
	_, err := t.Get(path)
	return err == nil
}

// Bool resolves path to a bool or returns def.
func (t *Tree) Bool(path string, def bool) bool {
	val, err := t.Get(path)
	if err != nil {
		return def
	}

	switch v := val.(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return def
		}
		return b
	default:
		return def
	}
}

// Int resolves path to an int or returns def.
func (t *Tree) Int(path string, def int) int {
	val, err := t.Get(path)
	if err != nil {
		return def
	}

	switch v := val.(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case string:
		i, err := strconv.Atoi(v)
		if err != nil {
			return def
		}
		return i
	default:
		return def
	}
}

// String resolves path to a string or returns def.
// Non-string scalars are formatted.
func (t *Tree) String(path string, def string) string {
	val, err := t.Get(path)
	if err != nil {
		return def
	}

	switch v := val.(type) {
	case string:
		return v
	case map[string]any, []any:
		return def
	default:
		return fmt.Sprint(v)
	}
}

// Strings resolves path to a list of strings or returns def.
// A single string resolves to a list of one.
func (t *Tree) Strings(path string, def []string) []string {
	val, err := t.Get(path)
	if err != nil {
		return def
	}

	switch v := val.(type) {
	case string:
		return []string{v}
	case []any:
		strs := make([]string, 0, len(v))
		for _, item := range v {
			switch item.(type) {
			case map[string]any, []any, nil:
				return def
			}

			strs = append(strs, fmt.Sprint(item))
		}

		return strs
	default:
		return def
	}
}

// child looks up key in val, returning nil when val holds no such key.
func child(val any, key string) any {
	switch v := val.(type) {
	case map[string]any:
		return v[key]
	case []any:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(v) {
			return nil
		}
		return v[i]
	default:
		return nil
	}
}

// mergeMaps recursively replaces values in dst with those in src.
func mergeMaps(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}

	for k, v := range src {
		dst[k] = mergeValues(dst[k], v)
	}

	return dst
}

// mergeValues merges maps by key and arrays by index;
// anything else in src replaces dst.
func mergeValues(dst, src any) any {
	switch s := src.(type) {
	case map[string]any:
		if d, ok := dst.(map[string]any); ok {
			return mergeMaps(d, s)
		}

		return mergeMaps(nil, s)

	case []any:
		d, ok := dst.([]any)
		if !ok {
			return clone(s)
		}

		out := make([]any, max(len(d), len(s)))
		copy(out, d)
		for i, v := range s {
			out[i] = mergeValues(out[i], v)
		}

		return out

	default:
		return src
	}
}

// clone deep copies the maps and arrays in val.
func clone(val any) any {
	switch v := val.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, vv := range v {
			out[k] = clone(vv)
		}
		return out

	case []any:
		out := make([]any, len(v))
		for i, vv := range v {
			out[i] = clone(vv)
		}
		return out

	default:
		return val
	}
}
