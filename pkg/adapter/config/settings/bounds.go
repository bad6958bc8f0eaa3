// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import (
	"cmp"
	"fmt"
)

// Bounds holds the inclusive minimum and maximum acceptable values of
// a setting. A nil boundary is not checked.
type Bounds[T cmp.Ordered] struct {
	Min, Max *T
}

// OutOfRangeError indicates that a Value was out of its acceptable
// Bounds, either less than its minimum or greater than its maximum.
type OutOfRangeError[T cmp.Ordered] struct {
	Value        T
	Bounds       Bounds[T]
	LessThanMin  bool // true if and only if min boundary is violated
	InvalidRange bool // true if and only if min is greater than max
}

// Error implements error interface and reports the violated boundary.
func (e *OutOfRangeError[T]) Error() string {
	switch {
	case e.InvalidRange:
		return fmt.Sprintf(
			"min (%v) is greater than max (%v)", *e.Bounds.Min, *e.Bounds.Max,
		)
	case e.LessThanMin:
		return fmt.Sprintf(
			"value (%v) is less than min (%v)", e.Value, *e.Bounds.Min,
		)
	default:
		return fmt.Sprintf(
			"value (%v) is greater than max (%v)", e.Value, *e.Bounds.Max,
		)
	}
}

// Clamp verifies that the given value is either nil or falls within
// b. A value which is out of range is replaced by its nearest boundary
// and the original value is reported by the returned error.
func (b Bounds[T]) Clamp(value **T) *OutOfRangeError[T] {
	switch {
	case b.Min != nil && b.Max != nil && *b.Min > *b.Max:
		return &OutOfRangeError[T]{Bounds: b, InvalidRange: true}
	case *value == nil:
		return nil
	}
	switch v := **value; {
	case b.Min != nil && v < *b.Min:
		**value = *b.Min
		return &OutOfRangeError[T]{Value: v, Bounds: b, LessThanMin: true}
	case b.Max != nil && v > *b.Max:
		**value = *b.Max
		return &OutOfRangeError[T]{Value: v, Bounds: b}
	}
	return nil
}
