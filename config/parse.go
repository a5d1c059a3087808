package config

import (
	"fmt"
	"strconv"
)

// UnknownKeyError is returned by Parse for keys missing from Default.
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown key %s", e.Key)
}

// Parse converts command-line values into the type of key's default.
// Only list keys accept more than one value.
func Parse(key string, values []string) (any, error) {
	field, ok := Default[key]
	if !ok {
		return nil, &UnknownKeyError{Key: key}
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("%s: no value given", key)
	}

	if _, ok := field.Value.([]string); ok {
		return values, nil
	}

	if len(values) > 1 {
		return nil, fmt.Errorf("%s takes a single value, got %d", key, len(values))
	}

	raw := values[0]
	switch field.Value.(type) {
	case string:
		return raw, nil
	case int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid integer %q", key, raw)
		}
		return v, nil
	case float64:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid number %q", key, raw)
		}
		return v, nil
	case bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid boolean %q", key, raw)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%s: unsupported type %T", key, field.Value)
	}
}
