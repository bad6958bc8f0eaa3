// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package catalogrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/momeni/txscope/pkg/adapter/restful/gin/serdser"
)

type idReq struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type createAuthorReq struct {
	Name  string   `json:"name" binding:"required,max=200"`
	Books []string `json:"books" binding:"omitempty,dive,required,max=200"`
}

type tagReq struct {
	Name string `json:"name" binding:"required,max=64"`
}

type commentReq struct {
	Body string `json:"body" binding:"required,max=4096"`
}

// DserID deserializes the id path param. The id must be a UUID.
func (rs *resource) DserID(c *gin.Context) (uuid.UUID, bool) {
	req := &idReq{}
	if ok := serdser.BindURI(c, req); !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "id", "Path param id is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return uuid.Nil, false
	}
	return id, true
}

func (rs *resource) DserCreateAuthorReq(c *gin.Context) *createAuthorReq {
	req := &createAuthorReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return req
}

func (rs *resource) DserTagReq(c *gin.Context) *tagReq {
	req := &tagReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return req
}

func (rs *resource) DserCommentReq(c *gin.Context) *commentReq {
	req := &commentReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return req
}
