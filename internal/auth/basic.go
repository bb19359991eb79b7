// SPDX-License-Identifier: MIT
// Copyright (c) 2026 The schemaguard authors

package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"
)

type BasicAuth struct {
	users map[string]string
	Realm string
}

func NewBasicAuth(users map[string]string, realm string) *BasicAuth {
	cp := make(map[string]string, len(users))
	for u, p := range users {
		cp[u] = p
	}
	return &BasicAuth{users: cp, Realm: realm}
}

func (a *BasicAuth) Authenticate(r *http.Request) (Principal, bool, error) {
	user, pass, ok := r.BasicAuth()
	if !ok {
		if r.Header.Get("Authorization") != "" {
			return Principal{}, false, errors.New("malformed basic credentials")
		}
		return Principal{}, false, nil
	}

	want, known := a.users[user]
	if !known {
		return Principal{}, false, nil
	}

	if subtle.ConstantTimeCompare([]byte(want), []byte(pass)) == 1 {
		return Principal{Name: user}, true, nil
	}
	return Principal{}, false, nil
}
