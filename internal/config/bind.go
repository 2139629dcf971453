package config

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/specialistvlad/noise2read/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// option is a settable view of one Config field.
type option struct {
	Section string
	Key     string
	value   reflect.Value
}

// options walks the Config sections in declaration order.
func options(cfg *Config) []option {
	var out []option
	root := reflect.ValueOf(cfg).Elem()
	rootType := root.Type()
	for i := 0; i < rootType.NumField(); i++ {
		secField := rootType.Field(i)
		secName := secField.Tag.Get("section")
		secVal := root.Field(i)
		secType := secField.Type
		for j := 0; j < secType.NumField(); j++ {
			out = append(out, option{
				Section: secName,
				Key:     secType.Field(j).Tag.Get("key"),
				value:   secVal.Field(j),
			})
		}
	}
	return out
}

// index groups options by normalized section and key name.
func index(cfg *Config) map[string]map[string]option {
	idx := make(map[string]map[string]option)
	for _, o := range options(cfg) {
		sec := normalizeName(o.Section)
		if idx[sec] == nil {
			idx[sec] = make(map[string]option)
		}
		idx[sec][normalizeName(o.Key)] = o
	}
	return idx
}

// Bind overlays the values of doc onto cfg. Options absent from doc keep
// their current value. Unknown sections and keys are logged and skipped, or
// returned as ErrUnknownKey when strict is set. The first value that cannot
// be converted aborts binding with an *OptionError.
func Bind(ctx context.Context, doc *Document, cfg *Config, strict bool) error {
	logger := ctxlog.FromContext(ctx)
	idx := index(cfg)

	var unknown []error
	for _, sec := range doc.Sections {
		opts, ok := idx[normalizeName(sec.Name)]
		if !ok {
			unknown = append(unknown, fmt.Errorf("%w: section %q (%s)", ErrUnknownKey, sec.Name, sec.Origin))
			continue
		}
		for _, e := range sec.Entries {
			opt, ok := opts[normalizeName(e.Key)]
			if !ok {
				unknown = append(unknown, fmt.Errorf("%w: option %s.%s (%s)", ErrUnknownKey, sec.Name, e.Key, e.Origin))
				continue
			}
			if want, err := assign(opt.value, e.Value); err != nil {
				return &OptionError{Section: opt.Section, Key: opt.Key, Origin: e.Origin, Want: want, Err: err}
			}
			logger.Debug("Config option set.", "section", opt.Section, "key", opt.Key, "origin", e.Origin)
		}
	}

	if len(unknown) == 0 {
		return nil
	}
	if strict {
		return errors.Join(unknown...)
	}
	for _, err := range unknown {
		logger.Warn("Ignoring unknown config entry.", "error", err)
	}
	return nil
}

// assign converts v into the Go type of field and stores it. It returns the
// expected type name for error reporting.
func assign(field reflect.Value, v cty.Value) (string, error) {
	want := typeName(field.Kind())
	if v.IsNull() {
		return want, errors.New("value must not be null")
	}
	if !v.IsWhollyKnown() {
		return want, errors.New("value must be known")
	}

	switch field.Kind() {
	case reflect.String:
		cv, err := convert.Convert(v, cty.String)
		if err != nil {
			return want, err
		}
		field.SetString(cv.AsString())
	case reflect.Int:
		cv, err := convert.Convert(v, cty.Number)
		if err != nil {
			return want, err
		}
		var n int
		if err := gocty.FromCtyValue(cv, &n); err != nil {
			return want, err
		}
		field.SetInt(int64(n))
	case reflect.Float64:
		cv, err := convert.Convert(v, cty.Number)
		if err != nil {
			return want, err
		}
		var f float64
		if err := gocty.FromCtyValue(cv, &f); err != nil {
			return want, err
		}
		field.SetFloat(f)
	case reflect.Bool:
		b, err := toBool(v)
		if err != nil {
			return want, err
		}
		field.SetBool(b)
	default:
		return want, fmt.Errorf("unsupported option kind %s", field.Kind())
	}
	return want, nil
}

// toBool accepts native booleans and the configparser spellings
// 1/yes/true/on and 0/no/false/off in any case.
func toBool(v cty.Value) (bool, error) {
	if v.Type() == cty.Bool {
		return v.True(), nil
	}
	if v.Type() == cty.String {
		switch strings.ToLower(strings.TrimSpace(v.AsString())) {
		case "1", "yes", "true", "on":
			return true, nil
		case "0", "no", "false", "off":
			return false, nil
		}
		return false, fmt.Errorf("not a boolean: %q", v.AsString())
	}
	cv, err := convert.Convert(v, cty.Bool)
	if err != nil {
		return false, err
	}
	return cv.True(), nil
}

func typeName(k reflect.Kind) string {
	switch k {
	case reflect.Int:
		return "integer"
	case reflect.Float64:
		return "float"
	case reflect.Bool:
		return "boolean"
	default:
		return k.String()
	}
}
