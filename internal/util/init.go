package util

import (
	"reflect"

	"github.com/pkg/errors"
)

// IsStructInitialized reports whether all exported pointer and interface
// fields of the struct behind s are non-nil. Fields tagged
// `initialized:"-"` are skipped.
func IsStructInitialized(s any) error {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return errors.New("nil struct pointer")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return errors.Errorf("expected struct, got %s", v.Kind())
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Tag.Get("initialized") == "-" {
			continue
		}

		value := v.Field(i)
		switch value.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			if value.IsNil() {
				return errors.Errorf("field %s is not initialized", field.Name)
			}
		default:
		}
	}

	return nil
}
