// Copyright (c) 2026 Postly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package convert provides fault-tolerant conversions for optional query parameters.
//
// A malformed value and an absent value both become the zero value, which is
// what callers forwarding optional pagination parameters want. Route IDs that
// must be rejected when malformed are parsed with [strconv] directly.
package convert

import (
	"strconv"
)

// ToInt converts a string to an integer, silencing parsing errors.
// It returns 0 if the string is empty or cannot be parsed.
func ToInt(s string) int {
	if s == "" {
		return 0
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
