// Package template substitutes ${dotted.path} references in command strings
// with values from a nested map, typically ReleaseContext.TemplateData.
package template

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/arthur-debert/precheck/pkg/errors"
)

var placeholder = regexp.MustCompile(`\$\{\s*([A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z0-9_-]+)*)\s*\}`)

// Render replaces every ${path} in tmpl with the value at path in data.
// Unknown paths and paths naming a mapping are ErrTemplate errors.
// Text that does not look like a placeholder is left alone.
func Render(tmpl string, data map[string]interface{}) (string, error) {
	var firstErr error

	out := placeholder.ReplaceAllStringFunc(tmpl, func(match string) string {
		if firstErr != nil {
			return match
		}
		path := placeholder.FindStringSubmatch(match)[1]
		value, err := Resolve(data, path)
		if err != nil {
			firstErr = err
			return match
		}
		return value
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

// Resolve returns the value at the dotted path formatted as a string.
func Resolve(data map[string]interface{}, path string) (string, error) {
	var current interface{} = data
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return "", unknownPath(path)
		}
		current, ok = m[part]
		if !ok {
			return "", unknownPath(path)
		}
	}

	switch v := current.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case map[string]interface{}:
		return "", errors.Newf(errors.ErrTemplate, "${%s} refers to a mapping, not a value", path).
			WithDetail("path", path)
	default:
		return fmt.Sprint(v), nil
	}
}

func unknownPath(path string) error {
	return errors.Newf(errors.ErrTemplate, "unknown variable ${%s}", path).WithDetail("path", path)
}
