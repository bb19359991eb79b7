// SPDX-License-Identifier: MIT
// Copyright (c) 2026 The schemaguard authors

package schemaguard

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// PropertyOverrides maps property name -> keyword -> custom message, as
// declared inside the schema document under properties.<name>.errors.
type PropertyOverrides map[string]map[string]string

func (p PropertyOverrides) lookup(property, keyword string) (string, bool) {
	kws, ok := p[property]
	if !ok {
		return "", false
	}
	msg, ok := kws[keyword]
	return msg, ok
}

// inferProperty attributes a leaf failure to a single property name.
// A single-segment pointer names a top-level property directly; failing
// that, a lone keyword argument (e.g. required's "missing") is used. With
// an empty or multi-segment pointer and zero or several arguments no name
// is attributed and the message stays unprefixed.
func inferProperty(f *Failure) (string, bool) {
	if len(f.DataPointer) == 1 {
		return f.DataPointer[0], true
	}
	if len(f.KeywordArgs) == 1 {
		for _, v := range f.KeywordArgs {
			return formatArg(v), true
		}
	}
	return "", false
}

// Resolve turns one leaf failure into its final message. Custom overrides
// win over the keyword defaults; unrecognized keywords fall through to a
// generic message. Resolve never fails.
func Resolve(f *Failure, overrides PropertyOverrides) string {
	if name, ok := inferProperty(f); ok {
		if msg, ok := overrides.lookup(name, f.Keyword); ok {
			return fmt.Sprintf("Property %q error: %s", name, msg)
		}
	}

	synth, ok := defaultSynth[f.Keyword]
	if !ok {
		return prefixed(f, fmt.Sprintf("Unknown validation error for keyword %q", f.Keyword))
	}

	msg := synth(f.KeywordArgs)
	if f.Keyword == "required" {
		// required names the property via its "missing" argument and is
		// never re-wrapped with the pointer prefix.
		return msg
	}
	return prefixed(f, msg)
}

func prefixed(f *Failure, msg string) string {
	if len(f.DataPointer) == 1 {
		return fmt.Sprintf("Property %q error: %s", f.DataPointer[0], msg)
	}
	return msg
}

type synthesizer func(args map[string]any) string

// defaultSynth maps each known keyword to its default message. Keywords
// absent here resolve to the generic "Unknown validation error" text.
var defaultSynth = map[string]synthesizer{
	"required": func(args map[string]any) string {
		if v, ok := args["missing"]; ok {
			return fmt.Sprintf("Property %q error: Property is missing", formatArg(v))
		}
		return "Property is missing"
	},
	"type": func(args map[string]any) string {
		expected, okExp := args["expected"]
		used, okUsed := args["used"]
		if okExp && okUsed {
			return fmt.Sprintf("Unexpected type. Expected %q (%q used)", formatArg(expected), formatArg(used))
		}
		return "Unexpected property type"
	},
	"$schema": func(args map[string]any) string {
		if _, ok := args["schema"]; ok {
			return "Additional (unexpected) property."
		}
		return "Unexpected property error"
	},
	"pattern": func(args map[string]any) string {
		if v, ok := args["pattern"]; ok {
			return fmt.Sprintf("Value does not match pattern %q", formatArg(v))
		}
		return "Invalid string format"
	},
	"format": func(args map[string]any) string {
		if v, ok := args["format"]; ok {
			return fmt.Sprintf("Value does not match format %q", formatArg(v))
		}
		return "Invalid string format"
	},
	"enum": func(args map[string]any) string {
		if v, ok := args["expected"]; ok {
			return "Expected values are " + quotedList(v)
		}
		return "Invalid value."
	},
	"maximum": func(args map[string]any) string {
		if v, ok := args["max"]; ok {
			return fmt.Sprintf("Maximum value is %q", formatArg(v))
		}
		return "Invalid value - greater than maximum."
	},
	"minimum": func(args map[string]any) string {
		if v, ok := args["min"]; ok {
			return fmt.Sprintf("Minimum value is %q", formatArg(v))
		}
		return "Invalid value - less than minimum."
	},
	"minItems": func(args map[string]any) string {
		if v, ok := args["min"]; ok {
			return fmt.Sprintf("Minimum items count is %q", formatArg(v))
		}
		return "Invalid items count - less than minimum."
	},
	"maxItems": func(args map[string]any) string {
		if v, ok := args["max"]; ok {
			return fmt.Sprintf("Maximum items count is %q", formatArg(v))
		}
		return "Invalid items count - more than maximum."
	},
}

// formatArg renders a keyword argument for interpolation into a message.
// Integral numbers print without decimals or denominators, so a minimum of
// 5 reads `"5"` regardless of whether the validator reported a float or a
// rational.
func formatArg(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case *big.Rat:
		return v.RatString()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func quotedList(v any) string {
	var elems []any
	switch v := v.(type) {
	case []any:
		elems = v
	case []string:
		elems = make([]any, len(v))
		for i, s := range v {
			elems[i] = s
		}
	default:
		elems = []any{v}
	}

	quoted := make([]string, len(elems))
	for i, e := range elems {
		quoted[i] = strconv.Quote(formatArg(e))
	}
	return strings.Join(quoted, ", ")
}
