// SPDX-License-Identifier: MIT
// Copyright (c) 2026 The schemaguard authors

package config

import "errors"

var (
	ErrUnsupportedExt = errors.New("unsupported extension")
	ErrDecode         = errors.New("decode error")
	ErrServerConfig   = errors.New("invalid server config")
	ErrAuthConfig     = errors.New("invalid auth config")
	ErrSchemaConfig   = errors.New("invalid schema config")
)
