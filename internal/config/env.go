package config

import (
	"fmt"
	"os"
	"reflect"
)

// applyEnvOverrides walks the config struct recursively and replaces
// every field carrying an `env` tag with the value of that variable,
// when set. All portal config fields are strings; an `env` tag on
// anything else is a programming error.
func applyEnvOverrides(cfg interface{}) error {
	val := reflect.ValueOf(cfg)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil
	}

	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if field.Kind() == reflect.Struct {
			if err := applyEnvOverrides(field.Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		tag := typ.Field(i).Tag.Get("env")
		if tag == "" {
			continue
		}
		value, set := os.LookupEnv(tag)
		if !set {
			continue
		}

		if field.Kind() != reflect.String || !field.CanSet() {
			return fmt.Errorf("env tag %s on unsupported field %s", tag, typ.Field(i).Name)
		}
		field.SetString(value)
	}
	return nil
}
