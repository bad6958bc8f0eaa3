// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package catalogrs realizes the catalog resource, allowing the
// authors, books, and comments REST APIs to be accepted and delegated
// to the catalog use cases respectively.
package catalogrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/txscope/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/txscope/pkg/core/model"
	"github.com/momeni/txscope/pkg/core/usecase/catalogsuc"
)

type resource struct {
	catalog *catalogsuc.UseCase
}

// Register instantiates a resource adapting the catalog use case
// instance with the relevant REST APIs including:
//  1. POST request to authors in order to create an author and books,
//  2. GET request to authors/:id in order to fetch an author,
//  3. DELETE request to authors/:id in order to delete an author,
//  4. POST request to books/:id/tags in order to tag a book, and
//  5. POST request to authors/:id/comments or books/:id/comments
//     in order to comment on an author or a book.
func Register(r *gin.RouterGroup, catalog *catalogsuc.UseCase) {
	rs := &resource{catalog: catalog}
	r.POST("authors", rs.CreateAuthor)
	r.GET("authors/:id", rs.GetAuthor)
	r.DELETE("authors/:id", rs.DeleteAuthor)
	r.POST("books/:id/tags", rs.TagBook)
	r.POST("authors/:id/comments", rs.commentOn(model.CommentableAuthor))
	r.POST("books/:id/comments", rs.commentOn(model.CommentableBook))
}

func (rs *resource) CreateAuthor(c *gin.Context) {
	req := rs.DserCreateAuthorReq(c)
	if req == nil {
		return
	}
	a, err := rs.catalog.CreateAuthor(c, req.Name, req.Books)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (rs *resource) GetAuthor(c *gin.Context) {
	id, ok := rs.DserID(c)
	if !ok {
		return
	}
	a, err := rs.catalog.Author(c, id)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (rs *resource) DeleteAuthor(c *gin.Context) {
	id, ok := rs.DserID(c)
	if !ok {
		return
	}
	if err := rs.catalog.DeleteAuthor(c, id); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (rs *resource) TagBook(c *gin.Context) {
	id, ok := rs.DserID(c)
	if !ok {
		return
	}
	req := rs.DserTagReq(c)
	if req == nil {
		return
	}
	b, err := rs.catalog.TagBook(c, id, req.Name)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (rs *resource) commentOn(kind model.Commentable) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := rs.DserID(c)
		if !ok {
			return
		}
		req := rs.DserCommentReq(c)
		if req == nil {
			return
		}
		cmnt, err := rs.catalog.Comment(c, kind, id, req.Body)
		if err != nil {
			serdser.SerErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, cmnt)
	}
}
