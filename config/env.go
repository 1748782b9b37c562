// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"
)

var (
	errExpectedPointerToStruct = errors.New("expected a pointer to a struct")
	errUnsupportedSliceType    = errors.New("unsupported slice type")
	errUnsupportedFieldType    = errors.New("unsupported field type")
)

var durationType = reflect.TypeFor[time.Duration]()

// readEnv fills the fields of the struct pointed to by target that carry an
// `env:"NAME[,overwrite]"` tag.
//
// Without "overwrite", a variable only fills a field that is still zero.
// Untagged struct fields are walked recursively.
func readEnv(target any) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w, got %T", errExpectedPointerToStruct, target)
	}

	return readEnvStruct(v.Elem())
}

func readEnvStruct(v reflect.Value) error {
	t := v.Type()

	for i := range v.NumField() {
		field := v.Field(i)
		sf := t.Field(i)

		if !field.CanSet() {
			continue
		}

		tag, tagged := sf.Tag.Lookup("env")
		if !tagged {
			if field.Kind() == reflect.Struct {
				if err := readEnvStruct(field); err != nil {
					return err
				}
			}

			continue
		}

		name, options, _ := strings.Cut(tag, ",")

		raw, ok := os.LookupEnv(name)
		if !ok {
			continue
		}

		if !slices.Contains(strings.Split(options, ","), "overwrite") && !field.IsZero() {
			continue
		}

		if err := setField(field, raw); err != nil {
			return fmt.Errorf("env var %s (field %s): %w", name, sf.Name, err)
		}
	}

	return nil
}

// setField parses raw into field according to the field's kind.
func setField(field reflect.Value, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)

	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("failed to parse bool %q: %w", raw, err)
		}

		field.SetBool(b)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == durationType {
			d, err := time.ParseDuration(raw)
			if err != nil {
				return fmt.Errorf("failed to parse duration %q: %w", raw, err)
			}

			field.SetInt(int64(d))

			return nil
		}

		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("failed to parse int %q: %w", raw, err)
		}

		field.SetInt(n)

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("failed to parse float %q: %w", raw, err)
		}

		field.SetFloat(f)

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return errUnsupportedSliceType
		}

		values := []string{}

		for part := range strings.SplitSeq(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				values = append(values, trimmed)
			}
		}

		field.Set(reflect.ValueOf(values))

	default:
		return fmt.Errorf("%w: %s", errUnsupportedFieldType, field.Kind())
	}

	return nil
}
