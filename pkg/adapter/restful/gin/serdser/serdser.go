// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package serdser contains the common serialization and
// deserialization helpers of the REST resources.
package serdser

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/momeni/txscope/pkg/core/cerr"
	"github.com/momeni/txscope/pkg/core/log"
)

// Bind deserializes the request body into req using the b binding and
// validates it. In case of errors, a proper response is written and
// false is returned, so the caller can return immediately.
func Bind(c *gin.Context, req any, b binding.Binding) bool {
	return report(c, c.ShouldBindWith(req, b))
}

// BindURI deserializes the path params into req like Bind.
func BindURI(c *gin.Context, req any) bool {
	return report(c, c.ShouldBindUri(req))
}

func report(c *gin.Context, err error) bool {
	switch err := err.(type) {
	case *validator.InvalidValidationError:
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": err.Error(),
		})
	case validator.ValidationErrors:
		var nameToErrs map[string][]string
		for _, ferr := range err {
			AddErr(&nameToErrs, ferr.Field(), ferr.Error())
		}
		c.JSON(http.StatusBadRequest, nameToErrs)
	default:
		if err == nil {
			return true
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": err.Error(),
		})
	}
	return false
}

func AddErr(errs *map[string][]string, name string, msgs ...string) {
	if (*errs) == nil {
		*errs = make(map[string][]string)
	}
	if elist, ok := (*errs)[name]; !ok {
		(*errs)[name] = msgs
	} else {
		(*errs)[name] = append(elist, msgs...)
	}
}

func Assert(errs *map[string][]string, ok bool, name string, msgs ...string) bool {
	if ok {
		return true
	}
	AddErr(errs, name, msgs...)
	return false
}

// SerErr writes err as a json response. Errors which carry a status
// code (directly or after mapping the orm errors) use that code and
// others are reported as internal server errors.
func SerErr(c *gin.Context, err error) {
	var ce *cerr.Error
	if errors.As(cerr.FromORM(err), &ce) {
		c.JSON(ce.HTTPStatusCode, gin.H{
			"detail": ce.Err.Error(),
		})
		return
	}
	log.Error(c, "request failed",
		log.Err("err", err), slog.String("path", c.FullPath()),
	)
	c.JSON(http.StatusInternalServerError, gin.H{
		"detail": err.Error(),
	})
}
