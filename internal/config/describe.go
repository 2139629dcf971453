package config

import (
	"fmt"
	"reflect"
	"strconv"
)

// Option describes one configuration option for display.
type Option struct {
	Section string
	Key     string
	Type    string
	Default string
	Value   string
}

// Changed reports whether the effective value differs from the default.
func (o Option) Changed() bool {
	return o.Default != o.Value
}

// Describe enumerates every option of cfg next to its default, in section
// declaration order.
func Describe(cfg *Config) []Option {
	defs := options(Default())
	cur := options(cfg)
	out := make([]Option, len(cur))
	for i, o := range cur {
		out[i] = Option{
			Section: o.Section,
			Key:     o.Key,
			Type:    typeName(o.value.Kind()),
			Default: format(defs[i].value),
			Value:   format(o.value),
		}
	}
	return out
}

func format(v reflect.Value) string {
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	}
	return fmt.Sprint(v.Interface())
}
