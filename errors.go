// SPDX-License-Identifier: MIT
// Copyright (c) 2026 The schemaguard authors

package schemaguard

import "errors"

var (
	ErrEmptySchema   = errors.New("empty schema")
	ErrSchemaCompile = errors.New("schema compile")
)
