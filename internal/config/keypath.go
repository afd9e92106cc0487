package config

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// GetValue retrieves a value from a Config by dot-notation key path
// (e.g. "server.addr"). It returns scalar values as-is, and maps for
// intermediate nodes.
func GetValue(cfg *Config, keyPath string) (any, error) {
	if err := ValidateKeyPath(keyPath); err != nil {
		return nil, err
	}
	m, err := configToMap(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	val, err := navigateMap(m, keyPath)
	if err != nil {
		// Valid but unset (omitted as empty).
		return "", nil //nolint:nilerr // unset keys read as empty
	}
	return val, nil
}

// ValidateKeyPath checks that a dot-notation key path corresponds to a
// Config field. It walks yaml struct tags.
func ValidateKeyPath(keyPath string) error {
	if keyPath == "" {
		return fmt.Errorf("empty key path")
	}
	t := reflect.TypeOf(Config{})
	parts := strings.Split(keyPath, ".")
	for i, part := range parts {
		if t.Kind() != reflect.Struct {
			return fmt.Errorf("key %q is a scalar; cannot use sub-keys", strings.Join(parts[:i], "."))
		}
		fields := yamlFields(t)
		ft, ok := fields[part]
		if !ok {
			return fmt.Errorf("unknown key %q; valid keys: %s", strings.Join(parts[:i+1], "."), sortedKeys(fields))
		}
		t = ft
	}
	return nil
}

// configToMap marshals a Config to a map via YAML round-trip.
func configToMap(cfg *Config) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = make(map[string]any)
	}
	return m, nil
}

// navigateMap traverses a nested map using a dot-notation key path.
func navigateMap(m map[string]any, keyPath string) (any, error) {
	parts := strings.Split(keyPath, ".")
	var current any = m
	for _, part := range parts {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("key %q: parent is not a map", part)
		}
		val, exists := cm[part]
		if !exists {
			return nil, fmt.Errorf("key %q not found", keyPath)
		}
		current = val
	}
	return current, nil
}

// yamlFields maps yaml tag names of a struct type to the field types.
func yamlFields(t reflect.Type) map[string]reflect.Type {
	fields := make(map[string]reflect.Type)
	for i := range t.NumField() {
		f := t.Field(i)
		tag := f.Tag.Get("yaml")
		if tag == "" || tag == "-" {
			continue
		}
		if name := strings.Split(tag, ",")[0]; name != "" {
			fields[name] = f.Type
		}
	}
	return fields
}

// sortedKeys returns a comma-separated sorted list of map keys.
func sortedKeys(m map[string]reflect.Type) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
