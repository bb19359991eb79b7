// SPDX-License-Identifier: MIT
// Copyright (c) 2026 The schemaguard authors

package schemaguard

import (
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var (
	sharedOnce      sync.Once
	sharedValidator *Validator
)

// DefaultValidator returns the process-wide validator, created on first use
// with format assertion enabled and draft 2020-12 as the default dialect.
// It holds no mutable state after construction and may be shared freely.
func DefaultValidator() *Validator {
	sharedOnce.Do(func() {
		sharedValidator = NewValidator(ValidatorOptions{
			AssertFormat: true,
			DefaultDraft: jsonschema.Draft2020,
		})
	})
	return sharedValidator
}

// ValidateSchema validates payload text against schema text and returns the
// resolved messages, one per leaf failure in depth-first encounter order.
// A nil slice with a nil error means the payload is valid. Malformed payload
// text is treated as a null instance rather than an error; malformed schema
// text returns ErrSchemaCompile.
func ValidateSchema(payload, schemaContents string) ([]string, error) {
	sch, err := DefaultValidator().Compile(schemaContents)
	if err != nil {
		return nil, err
	}

	outcome := sch.Evaluate(DecodeInstance(payload))
	if outcome.Valid() {
		return nil, nil
	}

	leaves := Flatten(outcome.Failures)
	msgs := make([]string, 0, len(leaves))
	for _, f := range leaves {
		msgs = append(msgs, Resolve(f, sch.Overrides()))
	}
	return msgs, nil
}
