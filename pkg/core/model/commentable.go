// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
)

// Commentable specifies the kind of entities which may be commented.
// Although this enum is numeric, it is (de)serialized as the table
// name of the commented entities, which is also stored in the
// commentable_type column of the comments table.
type Commentable int

// Valid values for the Commentable enum.
const (
	CommentableInvalid Commentable = iota // zero value is invalid

	CommentableAuthor
	CommentableBook
)

// ErrUnknownCommentable indicates that a given string may not be
// parsed as a known commentable kind. The caller of the Parse function
// knows about the invalid string and should wrap this error in order
// to mention it.
var ErrUnknownCommentable = errors.New("unknown commentable kind")

// CommentableError indicates an invalid Commentable value.
type CommentableError int

// Error implements the error interface, returning a string
// representation of the CommentableError.
func (e CommentableError) Error() string {
	return fmt.Sprintf("invalid commentable kind: %d", e)
}

// Validate returns nil if Commentable value is valid. For invalid
// values, an instance of the CommentableError will be returned.
func (c Commentable) Validate() error {
	switch c {
	case CommentableAuthor, CommentableBook:
		return nil
	default:
		return CommentableError(c)
	}
}

// String returns the table name of the c entities. Invalid values
// cause a panic.
func (c Commentable) String() string {
	switch c {
	case CommentableAuthor:
		return "authors"
	case CommentableBook:
		return "books"
	default:
		panic(CommentableError(c))
	}
}

// ModelName returns the registered model class name of the c entities.
func (c Commentable) ModelName() string {
	switch c {
	case CommentableAuthor:
		return AuthorModel
	case CommentableBook:
		return BookModel
	default:
		panic(CommentableError(c))
	}
}

// ParseCommentable parses the table name of commentable entities.
// For invalid strings, CommentableInvalid and ErrUnknownCommentable
// will be returned.
func ParseCommentable(s string) (Commentable, error) {
	switch s {
	case "authors":
		return CommentableAuthor, nil
	case "books":
		return CommentableBook, nil
	default:
		return CommentableInvalid, ErrUnknownCommentable
	}
}

// MarshalText serializes c as its table name.
func (c Commentable) MarshalText() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return []byte(c.String()), nil
}

// UnmarshalText deserializes a table name into c.
func (c *Commentable) UnmarshalText(text []byte) error {
	k, err := ParseCommentable(string(text))
	if err != nil {
		return fmt.Errorf("parsing %q: %w", text, err)
	}
	*c = k
	return nil
}
