// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
//
// The catalog entities are persisted by the orm classes which are
// registered with the names which are declared in this package, so
// use cases can find them in a transaction scope by their names.
package model

import "time"

// Registered class names of the catalog entities.
const (
	AuthorModel  = "Author"
	BookModel    = "Book"
	TagModel     = "Tag"
	BookTagModel = "BookTag"
	CommentModel = "Comment"

	BooksCollection    = "Books"
	CommentsCollection = "Comments"
)

// CommentableRelation is the polymorphic relation name of comments,
// so their parents are kept in the commentable_id and commentable_type
// columns.
const CommentableRelation = "commentable"

// Author is a writer with a list of books.
type Author struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Books     []Book    `json:"books"`
	Comments  []Comment `json:"comments,omitempty"`
}

// Book belongs to one author and may be tagged with many tags.
type Book struct {
	ID       string   `json:"id"`
	AuthorID string   `json:"author_id"`
	Title    string   `json:"title"`
	Tags     []string `json:"tags,omitempty"`
}

// Comment is a text which is written for an author or a book.
type Comment struct {
	ID       string      `json:"id"`
	Kind     Commentable `json:"kind"`
	TargetID string      `json:"target_id"`
	Body     string      `json:"body"`
}
