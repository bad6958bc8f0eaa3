// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/momeni/txscope/pkg/adapter/config"
	"github.com/momeni/txscope/pkg/adapter/db/postgres/catalogrp"
	"github.com/momeni/txscope/pkg/adapter/db/postgres/ormrp"
	"github.com/momeni/txscope/pkg/adapter/restful/gin/catalogrs"
	"github.com/momeni/txscope/pkg/core/orm"
	"github.com/momeni/txscope/pkg/core/repo"
	"github.com/momeni/txscope/pkg/core/txscope"
)

// Register defines the catalog classes in a fresh registry and creates
// a transactor over the p connections pool, so use cases may open
// transaction scopes on demand and find those classes by their names.
// Use cases are instantiated based on the uc configuration settings.
// Each use case package is named like catalogsuc and each repository
// package is named like catalogrp.
// Register instantiates a series of "resource" structs, from packages
// which are named like catalogrs, in order to adapt the use cases
// interfaces with the REST APIs. These resources are registered as
// request handlers using the e gin-gonic engine instance.
// Possible errors will be returned after possible wrapping.
func Register(e *gin.Engine, p repo.Pool, uc config.Usecases) error {
	reg := orm.NewRegistry()
	if err := catalogrp.New().Register(ormrp.New(p, reg)); err != nil {
		return fmt.Errorf("registering catalog classes: %w", err)
	}
	t := txscope.New(p, reg)
	catalogUseCase, err := uc.Catalog.NewUseCase(t)
	if err != nil {
		return fmt.Errorf("creating catalog use case: %w", err)
	}
	r := e.Group("/api/txweb/v1")
	catalogrs.Register(r, catalogUseCase)
	return nil
}
