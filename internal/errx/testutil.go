// SPDX-License-Identifier: MIT
// Copyright (c) 2026 The schemaguard authors

package errx

import (
	"errors"
	"strings"
)

// ErrIsAll reports whether err wraps every sentinel.
func ErrIsAll(err error, sentinels ...error) bool {
	for _, s := range sentinels {
		if !errors.Is(err, s) {
			return false
		}
	}
	return true
}

// ErrContainsAll reports whether the error text mentions every substring.
func ErrContainsAll(err error, subs ...string) bool {
	if err == nil {
		return false
	}

	msg := err.Error()
	for _, s := range subs {
		if !strings.Contains(msg, s) {
			return false
		}
	}
	return true
}
