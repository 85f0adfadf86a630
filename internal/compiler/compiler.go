// Package compiler turns serialized machine descriptions into domain
// definitions. It does not validate them; see pkg/validator.
package compiler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format is a serialization format for definitions.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ErrUnsupportedFormat is returned for unknown formats or file extensions.
var ErrUnsupportedFormat = errors.New("unsupported definition format")

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format) (domain.Definition, error) {
	switch format {
	case FormatYAML:
		return ParseYAML(data)
	case FormatJSON:
		return ParseJSON(data)
	}
	return domain.Definition{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// ParseYAML decodes a YAML document. Unknown keys are an error.
func ParseYAML(data []byte) (domain.Definition, error) {
	var def domain.Definition
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return def, errors.New("failed to parse yaml definition: empty document")
		}
		return def, fmt.Errorf("failed to parse yaml definition: %w", err)
	}
	return def, nil
}

// ParseJSON decodes a JSON document. Unknown keys are an error.
func ParseJSON(data []byte) (domain.Definition, error) {
	var def domain.Definition
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return def, errors.New("failed to parse json definition: empty document")
		}
		return def, fmt.Errorf("failed to parse json definition: %w", err)
	}
	return def, nil
}

// Decode converts a generic map, such as document frontmatter, into a
// definition. Scalars are coerced to strings so that unquoted YAML symbols
// like 0 and 1 work, and transition results may be written either as
// [next, write, move] or as a mapping.
func Decode(raw map[string]any) (domain.Definition, error) {
	var def domain.Definition
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(transitionTupleHook, directionHook),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &def,
	})
	if err != nil {
		return def, err
	}
	if err := dec.Decode(raw); err != nil {
		return def, fmt.Errorf("failed to decode definition: %w", err)
	}
	return def, nil
}

var (
	transitionResultType = reflect.TypeOf(domain.TransitionResult{})
	directionType        = reflect.TypeOf(domain.Direction(""))
)

func transitionTupleHook(from, to reflect.Type, data any) (any, error) {
	if to != transitionResultType {
		return data, nil
	}
	if from.Kind() != reflect.Slice && from.Kind() != reflect.Array {
		return data, nil
	}
	v := reflect.ValueOf(data)
	if v.Len() != 3 {
		return nil, fmt.Errorf("transition tuple must have 3 elements (next, write, move), got %d", v.Len())
	}
	parts := make([]string, 3)
	for i := range parts {
		parts[i] = fmt.Sprint(v.Index(i).Interface())
	}
	return map[string]any{"next": parts[0], "write": parts[1], "move": parts[2]}, nil
}

func directionHook(from, to reflect.Type, data any) (any, error) {
	if to != directionType || from.Kind() != reflect.String {
		return data, nil
	}
	var d domain.Direction
	if err := d.UnmarshalText([]byte(reflect.ValueOf(data).String())); err != nil {
		return nil, err
	}
	return d, nil
}
