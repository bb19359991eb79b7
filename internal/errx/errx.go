// SPDX-License-Identifier: MIT
// Copyright (c) 2026 The schemaguard authors

package errx

import (
	"errors"
	"fmt"
)

// Collector gathers validation findings so callers report everything wrong
// at once instead of stopping at the first problem.
type Collector struct {
	errs []error
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Add(err error) {
	if err != nil {
		c.errs = append(c.errs, err)
	}
}

func (c *Collector) Failf(sentinel error, format string, args ...any) {
	c.errs = append(c.errs, fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...))
}

func (c *Collector) If(cond bool, sentinel error, format string, args ...any) {
	if cond {
		c.Failf(sentinel, format, args...)
	}
}

func (c *Collector) Err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return errors.Join(c.errs...)
}

// Scope prefixes every finding with a path-like context, e.g. "schemas[2]".
type Scope struct {
	c      *Collector
	prefix string
}

func (c *Collector) Scope(prefix string) *Scope {
	return &Scope{c: c, prefix: prefix}
}

func (s *Scope) Failf(sentinel error, format string, args ...any) {
	s.c.Failf(sentinel, s.prefix+": "+format, args...)
}

func (s *Scope) If(cond bool, sentinel error, format string, args ...any) {
	if cond {
		s.Failf(sentinel, format, args...)
	}
}
