// SPDX-License-Identifier: MIT
// Copyright (c) 2026 The schemaguard authors

// Package schemaguard validates JSON payloads against JSON Schemas and turns
// the raw tree of validation failures into a flat, ordered list of
// human-readable messages.
//
// Schema authors can override the default text per property and keyword by
// placing an "errors" member inside a property schema:
//
//	{
//	    "type": "object",
//	    "required": ["name"],
//	    "properties": {
//	        "name": {
//	            "type": "string",
//	            "errors": {"required": "Please tell us your name."}
//	        }
//	    }
//	}
//
// Validating {} against that schema yields exactly one message:
//
//	Property "name" error: Please tell us your name.
//
// Without the override the keyword-specific default applies
// ("Property is missing", "Unexpected type. Expected ...", and so on).
//
// The usual entrypoint is ValidateSchema:
//
//	msgs, err := schemaguard.ValidateSchema(payload, schema)
//	if err != nil {
//	    return err // schema text did not compile
//	}
//	if msgs == nil {
//	    // payload is valid
//	}
//
// Structural validation is performed by github.com/santhosh-tekuri/jsonschema.
// See example_test.go for detailed usage.
package schemaguard
