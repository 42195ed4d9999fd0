package buflog

import (
	"reflect"
	"strconv"
)

// ApplyOverride applies "key=value" overrides on top of the current
// configuration. Keys are the toml tag names. All overrides are validated as
// a batch before any take effect.
func (l *Logger) ApplyOverride(overrides ...string) error {
	cfg := l.getConfig().Clone()

	var errs error
	for _, arg := range overrides {
		key, value, err := parseKeyValue(arg)
		if err != nil {
			errs = combineErrors(errs, err)
			continue
		}
		if err := applyConfigField(cfg, key, value); err != nil {
			errs = combineErrors(errs, err)
		}
	}
	if errs != nil {
		return errs
	}

	return l.ApplyConfig(cfg)
}

// applyConfigField sets a single config field addressed by its toml tag.
func applyConfigField(cfg *Config, key, value string) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("toml") != key {
			continue
		}
		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(value)
		case reflect.Int64:
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmtErrorf("invalid integer value '%s' for key '%s'", value, key)
			}
			field.SetInt(n)
		case reflect.Bool:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmtErrorf("invalid boolean value '%s' for key '%s'", value, key)
			}
			field.SetBool(b)
		default:
			return fmtErrorf("unsupported field type for key '%s'", key)
		}
		return nil
	}
	return fmtErrorf("unknown config key: '%s'", key)
}
