// SPDX-License-Identifier: MIT
// Copyright (c) 2026 The schemaguard authors

package auth

import "net/http"

type Principal struct {
	Name string
}

// Provider authenticates a request. The bool reports whether credentials
// were accepted; errors are reserved for malformed credentials.
type Provider interface {
	Authenticate(*http.Request) (Principal, bool, error)
}
