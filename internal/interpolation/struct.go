package interpolation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

const tagName = "env_interpolation"

// InterpolateStruct expands env references in fields tagged `env_interpolation:"yes"`,
// modifying v in place. Tagged strings, string slices, map[string]string values
// and nested structs (direct, pointer, or slice elements) are handled.
func InterpolateStruct(v any) error {
	if v == nil {
		return nil
	}

	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return fmt.Errorf("%w, got %T", ErrNotStruct, v)
	}

	typ := val.Type()
	var errs []error
	for i := range val.NumField() {
		field := val.Field(i)
		meta := typ.Field(i)
		if !field.CanSet() || !strings.EqualFold(meta.Tag.Get(tagName), "yes") {
			continue
		}
		if err := interpolateValue(field); err != nil {
			errs = append(errs, fmt.Errorf("field %s: %w", meta.Name, err))
		}
	}
	return errors.Join(errs...)
}

func interpolateValue(field reflect.Value) error {
	switch field.Kind() {
	case reflect.String:
		return expandInto(field)

	case reflect.Map:
		if field.IsNil() ||
			field.Type().Key().Kind() != reflect.String ||
			field.Type().Elem().Kind() != reflect.String {
			return nil
		}
		var errs []error
		for _, key := range field.MapKeys() {
			expanded, err := ExpandEnvVars(field.MapIndex(key).String())
			if err != nil {
				errs = append(errs, fmt.Errorf("[%s]: %w", key.String(), err))
				continue
			}
			field.SetMapIndex(key, reflect.ValueOf(expanded).Convert(field.Type().Elem()))
		}
		return errors.Join(errs...)

	case reflect.Slice:
		var errs []error
		for j := range field.Len() {
			if err := interpolateValue(field.Index(j)); err != nil {
				errs = append(errs, fmt.Errorf("[%d]: %w", j, err))
			}
		}
		return errors.Join(errs...)

	case reflect.Struct:
		return InterpolateStruct(field.Addr().Interface())

	case reflect.Pointer:
		if field.IsNil() || field.Type().Elem().Kind() != reflect.Struct {
			return nil
		}
		return InterpolateStruct(field.Interface())
	}
	return nil
}

func expandInto(field reflect.Value) error {
	if field.String() == "" {
		return nil
	}
	expanded, err := ExpandEnvVars(field.String())
	if err != nil {
		return err
	}
	field.SetString(expanded)
	return nil
}
