// SPDX-License-Identifier: MIT
// Copyright (c) 2026 The schemaguard authors

package schemaguard

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
)

type ValidatorOptions struct {
	AssertFormat  bool
	AssertContent bool
	DefaultDraft  *jsonschema.Draft
}

// Validator compiles schema documents and evaluates instances against them.
// It holds no per-call state and is safe for concurrent use.
type Validator struct {
	opts ValidatorOptions
}

func NewValidator(opts ValidatorOptions) *Validator {
	return &Validator{opts: opts}
}

// Schema pairs a compiled schema with the custom message overrides declared
// in its document.
type Schema struct {
	compiled  *jsonschema.Schema
	overrides PropertyOverrides
}

func (s *Schema) Overrides() PropertyOverrides { return s.overrides }

// Compile parses and compiles schema text. Malformed schema text is a
// caller error and surfaces as ErrSchemaCompile.
func (v *Validator) Compile(schemaContents string) (*Schema, error) {
	if strings.TrimSpace(schemaContents) == "" {
		return nil, ErrEmptySchema
	}

	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schemaContents))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchemaCompile, err)
	}

	c := jsonschema.NewCompiler()
	if v.opts.DefaultDraft != nil {
		c.DefaultDraft(v.opts.DefaultDraft)
	}
	if v.opts.AssertFormat {
		c.AssertFormat()
	}
	if v.opts.AssertContent {
		c.AssertContent()
	}

	if err := c.AddResource("schema.json", doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchemaCompile, err)
	}

	sch, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchemaCompile, err)
	}

	return &Schema{compiled: sch, overrides: extractOverrides(doc)}, nil
}

// DecodeInstance parses payload text into a generic JSON value. Malformed
// text degrades to a null instance instead of failing; the schema's root
// constraints then report it as ordinary validation failures.
func DecodeInstance(payload string) any {
	inst, err := jsonschema.UnmarshalJSON(strings.NewReader(payload))
	if err != nil {
		return nil
	}
	return inst
}

// Evaluate runs structural validation and converts the validator's error
// tree into Failure nodes.
func (s *Schema) Evaluate(instance any) Outcome {
	err := s.compiled.Validate(instance)
	if err == nil {
		return Outcome{}
	}

	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return Outcome{Failures: []*Failure{{Keyword: "validation"}}}
	}
	return Outcome{Failures: []*Failure{convertError(verr)}}
}

func convertError(err *jsonschema.ValidationError) *Failure {
	f := &Failure{DataPointer: append([]string(nil), err.InstanceLocation...)}
	f.Keyword, f.KeywordArgs = convertKind(err.ErrorKind)

	// A required failure listing several properties expands into one leaf
	// per missing name, so each produces its own message.
	if k, ok := err.ErrorKind.(*kind.Required); ok && len(k.Missing) > 1 {
		f.KeywordArgs = nil
		for _, name := range k.Missing {
			f.SubErrors = append(f.SubErrors, &Failure{
				Keyword:     "required",
				DataPointer: append([]string(nil), err.InstanceLocation...),
				KeywordArgs: map[string]any{"missing": name},
			})
		}
	}

	for _, cause := range err.Causes {
		f.SubErrors = append(f.SubErrors, convertError(cause))
	}
	return f
}

// convertKind extracts the keyword name and its arguments from a validator
// error kind. Kinds without a dedicated mapping keep a keyword derived from
// their type name and resolve to the generic default message.
func convertKind(k jsonschema.ErrorKind) (string, map[string]any) {
	switch k := k.(type) {
	case *kind.Type:
		return "type", map[string]any{"expected": strings.Join(k.Want, ", "), "used": k.Got}
	case *kind.Enum:
		return "enum", map[string]any{"expected": k.Want}
	case *kind.Required:
		args := map[string]any{}
		if len(k.Missing) > 0 {
			args["missing"] = k.Missing[0]
		}
		return "required", args
	case *kind.Pattern:
		return "pattern", map[string]any{"pattern": k.Want}
	case *kind.Format:
		return "format", map[string]any{"format": k.Want}
	case *kind.Minimum:
		return "minimum", map[string]any{"min": k.Want}
	case *kind.Maximum:
		return "maximum", map[string]any{"max": k.Want}
	case *kind.MinItems:
		return "minItems", map[string]any{"min": k.Want}
	case *kind.MaxItems:
		return "maxItems", map[string]any{"max": k.Want}
	case *kind.MinLength:
		return "minLength", map[string]any{"min": k.Want}
	case *kind.MaxLength:
		return "maxLength", map[string]any{"max": k.Want}
	case *kind.FalseSchema:
		// additionalProperties:false reports the offending location
		// against the false subschema.
		return "$schema", map[string]any{"schema": false}
	default:
		return kindName(k), nil
	}
}

// kindName derives a keyword-style name from the kind's type, e.g.
// *kind.AnyOf -> "anyOf".
func kindName(k jsonschema.ErrorKind) string {
	name := strings.TrimPrefix(fmt.Sprintf("%T", k), "*")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return "unknown"
	}
	return strings.ToLower(name[:1]) + name[1:]
}

// extractOverrides walks properties.<name>.errors.<keyword> in the decoded
// schema document. Any missing or mistyped link simply contributes nothing.
func extractOverrides(doc any) PropertyOverrides {
	root, ok := doc.(map[string]any)
	if !ok {
		return nil
	}
	props, ok := root["properties"].(map[string]any)
	if !ok {
		return nil
	}

	overrides := PropertyOverrides{}
	for name, raw := range props {
		prop, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		errs, ok := prop["errors"].(map[string]any)
		if !ok {
			continue
		}
		msgs := make(map[string]string, len(errs))
		for kw, v := range errs {
			if s, ok := v.(string); ok {
				msgs[kw] = s
			}
		}
		if len(msgs) > 0 {
			overrides[name] = msgs
		}
	}
	return overrides
}
