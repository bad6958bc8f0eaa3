// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package orm defines the object-relational mapping contracts which
// are implemented by the adapters layer (see the ormrp package) and
// decorated by the txscope package.
// A ModelClass is the counterpart of a table, forging Model instances
// which hold one row worth of attributes. A CollectionClass forges
// Collection instances holding an ordered list of models. Classes are
// registered by name in a Registry, so relations may name their target
// classes instead of importing them.
//
// Persistence operations accept an *Options argument which may be nil.
// When its Transacting field is set, the operation runs in that
// transaction. Otherwise, a pooled connection is used.
package orm

// Attrs holds the column values of one row, keyed by column name.
type Attrs map[string]any

// Get returns the value of the key column, or nil if it is missing.
// It is safe to be called on a nil Attrs.
func (a Attrs) Get(key string) any {
	if a == nil {
		return nil
	}
	return a[key]
}

// Clone returns a shallow copy of a. A nil a is cloned as an empty,
// non-nil Attrs, so the result may be updated freely.
func (a Attrs) Clone() Attrs {
	c := make(Attrs, len(a))
	for k, v := range a {
		c[k] = v
	}
	return c
}

// Merge copies all entries of b into a (overwriting existing keys) and
// returns a for chaining.
func (a Attrs) Merge(b Attrs) Attrs {
	for k, v := range b {
		a[k] = v
	}
	return a
}
