// Package schema checks the shape of JSON request bodies before they are
// decoded: field types, lengths and allowed status values. Business rules
// such as option lists and parent lookups stay in the services.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/catalog-cms/constants"
	"github.com/joseph-ayodele/catalog-cms/internal/common"
)

// Name identifies one request body schema.
type Name string

const (
	Category     Name = "category"
	Storage      Name = "storage"
	Display      Name = "display"
	UpdateStatus Name = "update-status"
)

// Documents returns every request schema as a generic map (draft 2020-12 subset).
func Documents() map[Name]map[string]any {
	return map[Name]map[string]any{
		Category:     BuildCategorySchema(),
		Storage:      BuildStorageSchema(),
		Display:      BuildDisplaySchema(),
		UpdateStatus: BuildUpdateStatusSchema(),
	}
}

func BuildCategorySchema() map[string]any {
	return object(map[string]any{
		"name":      stringProp(100),
		"slug":      stringProp(150),
		"content":   map[string]any{"type": "string"},
		"parent_id": optionalID(),
		"image_id":  optionalID(),
		"status":    statusProp(editableStatuses()),
	}, nil)
}

func BuildStorageSchema() map[string]any {
	return object(map[string]any{
		"name":      stringProp(100),
		"type":      stringProp(50),
		"capacity":  stringProp(50),
		"interface": stringProp(50),
		"brand":     stringProp(50),
		"status":    statusProp(editableStatuses()),
	}, nil)
}

func BuildDisplaySchema() map[string]any {
	return object(map[string]any{
		"name":         stringProp(100),
		"size":         stringProp(50),
		"resolution":   stringProp(50),
		"panel_type":   stringProp(50),
		"refresh_rate": stringProp(50),
		"brand":        stringProp(50),
		"status":       statusProp(editableStatuses()),
	}, nil)
}

// BuildUpdateStatusSchema accepts every status, including soft delete.
func BuildUpdateStatusSchema() map[string]any {
	return object(map[string]any{
		"id":     map[string]any{"type": "integer", "minimum": 1},
		"status": statusProp(constants.AllStatuses()),
	}, []string{"id", "status"})
}

func object(props map[string]any, required []string) map[string]any {
	s := map[string]any{
		"$schema":              "https://json-schema.org/draft/2020-12/schema",
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func stringProp(maxLength int) map[string]any {
	return map[string]any{"type": "string", "maxLength": maxLength}
}

func optionalID() map[string]any {
	return map[string]any{"type": []string{"integer", "null"}, "minimum": 1}
}

func statusProp(allowed []int) map[string]any {
	return map[string]any{"type": "integer", "enum": allowed}
}

func editableStatuses() []int {
	var out []int
	for _, s := range constants.AllStatuses() {
		if constants.Status(s).Editable() {
			out = append(out, s)
		}
	}
	return out
}

// Validator holds the compiled request schemas.
type Validator struct {
	schemas map[Name]*jsonschema.Schema
}

// New compiles every request schema.
func New() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	docs := Documents()
	for name, doc := range docs {
		b, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("marshal schema %s: %w", name, err)
		}
		if err := compiler.AddResource(resourceURL(name), bytes.NewReader(b)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", name, err)
		}
	}

	v := &Validator{schemas: make(map[Name]*jsonschema.Schema, len(docs))}
	for name := range docs {
		s, err := compiler.Compile(resourceURL(name))
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}
		v.schemas[name] = s
	}
	return v, nil
}

func resourceURL(name Name) string {
	return string(name) + ".json"
}

// Validate checks raw against the named schema. Malformed JSON and schema
// violations come back as invalid-argument errors listing the offending fields.
func (v *Validator) Validate(name Name, raw []byte) error {
	s, ok := v.schemas[name]
	if !ok {
		return common.InternalErrorf("unknown schema %q", name)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return common.InvalidArgumentError("request body must be valid JSON")
	}
	if dec.More() {
		return common.InvalidArgumentError("request body must be a single JSON object")
	}

	if err := s.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return common.InvalidArgumentError(strings.Join(messages(ve), "; "))
		}
		return common.InvalidArgumentError(err.Error())
	}
	return nil
}

// messages flattens the leaf causes of ve into "field: message" strings.
func messages(ve *jsonschema.ValidationError) []string {
	var out []string
	seen := make(map[string]bool)
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			msg := e.Message
			if field := strings.TrimPrefix(e.InstanceLocation, "/"); field != "" {
				msg = field + ": " + msg
			}
			if !seen[msg] {
				seen[msg] = true
				out = append(out, msg)
			}
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	return out
}
