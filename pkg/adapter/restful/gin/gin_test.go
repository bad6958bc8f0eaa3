// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/momeni/txscope/internal/test/dbcontainer"
	"github.com/momeni/txscope/pkg/adapter/config"
	"github.com/momeni/txscope/pkg/adapter/db/postgres"
	"github.com/momeni/txscope/pkg/adapter/db/postgres/catalogrp"
	"github.com/momeni/txscope/pkg/adapter/restful/gin"
	"github.com/momeni/txscope/pkg/adapter/restful/gin/routes"
	"github.com/momeni/txscope/pkg/core/model"
	"github.com/momeni/txscope/pkg/core/repo"
	"github.com/stretchr/testify/suite"
)

const prefix = "/api/txweb/v1/"

type IntegrationGinTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Pg   *sqltestutil.PostgresContainer
	Pool *postgres.Pool
	Gin  *gin.Engine
}

func TestIntegrationGinTestSuite(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &IntegrationGinTestSuite{
		Ctx:  ctx,
		Pg:   pg,
		Pool: pool,
	})
}

func (igts *IntegrationGinTestSuite) SetupSuite() {
	err := igts.Pool.Conn(
		igts.Ctx, func(ctx context.Context, c repo.Conn) error {
			return c.Tx(ctx, catalogrp.New().InitSchema)
		},
	)
	igts.Require().NoError(err, "failed to create schema contents")

	gin.SetReleaseMode()
	igts.Gin = gin.New(gin.Recovery())
	igts.Require().NotNil(igts.Gin, "cannot instantiate Gin engine")
	maxBooks := 2
	err = routes.Register(igts.Gin, igts.Pool, config.Usecases{
		Catalog: config.Catalog{
			MaxBooks: &maxBooks,
		},
	})
	igts.Require().NoError(err, "failed to register Gin routes")
}

func (igts *IntegrationGinTestSuite) SetupTest() {
	err := igts.Pool.Conn(
		igts.Ctx, func(ctx context.Context, c repo.Conn) error {
			_, err := c.Exec(
				ctx, "TRUNCATE comments, books_tags, tags, books, authors",
			)
			return err
		},
	)
	igts.Require().NoError(err, "failed to truncate tables")
}

func jsonBody(v any) io.Reader {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return bytes.NewReader(b)
}

func (igts *IntegrationGinTestSuite) send(
	method, path string, body io.Reader, res any,
) int {
	w := httptest.NewRecorder()
	req, err := http.NewRequest(method, prefix+path, body)
	igts.Require().NoError(err, "cannot create %s request", method)
	req.Header.Add("Content-Type", "application/json")
	igts.Gin.ServeHTTP(w, req)
	if res != nil {
		b := w.Body.Bytes()
		igts.NoError(json.Unmarshal(b, res), "body is not json: %s", b)
	}
	return w.Code
}

func (igts *IntegrationGinTestSuite) assertOptContains(
	expectedPart *string, seen []string, msgAndArgs ...any,
) bool {
	if expectedPart == nil {
		return true
	}
	if !igts.Equal(1, len(seen), msgAndArgs...) {
		return false
	}
	return igts.Contains(seen[0], *expectedPart, msgAndArgs...)
}

func stringAddr(s string) *string {
	return &s
}

func (igts *IntegrationGinTestSuite) TestBadRequest() {
	for _, tc := range []struct {
		name         string
		method, path string
		body         io.Reader
		detail       *string
		nameErr      *string
		idErr        *string
	}{
		{
			name:   "no body",
			method: http.MethodPost,
			path:   "authors",
			body:   nil,
			detail: stringAddr("invalid request"),
		},
		{
			name:    "no name",
			method:  http.MethodPost,
			path:    "authors",
			body:    jsonBody(map[string]any{"books": []string{"B"}}),
			nameErr: stringAddr("failed on the 'required' tag"),
		},
		{
			name:   "too many books",
			method: http.MethodPost,
			path:   "authors",
			body: jsonBody(map[string]any{
				"name":  "Ann",
				"books": []string{"B1", "B2", "B3"},
			}),
			detail: stringAddr("too many books (3), at most 2 are allowed"),
		},
		{
			name:   "invalid author id",
			method: http.MethodGet,
			path:   "authors/not-a-uuid",
			idErr:  stringAddr("failed on the 'uuid' tag"),
		},
		{
			name:    "empty tag",
			method:  http.MethodPost,
			path:    "books/" + uuid.NewString() + "/tags",
			body:    jsonBody(map[string]any{"name": ""}),
			nameErr: stringAddr("failed on the 'required' tag"),
		},
	} {
		igts.Run(tc.name, func() {
			res := &struct {
				Detail string
				Name   []string
				ID     []string
			}{}
			code := igts.send(tc.method, tc.path, tc.body, res)

			igts.Equal(400, code)
			if tc.detail != nil {
				igts.Contains(res.Detail, *tc.detail, "wrong detail")
			}
			igts.assertOptContains(tc.nameErr, res.Name, "wrong name")
			igts.assertOptContains(tc.idErr, res.ID, "wrong id")
		})
	}
}

func (igts *IntegrationGinTestSuite) TestNotFound() {
	missing := uuid.NewString()
	for _, tc := range []struct {
		name         string
		method, path string
		body         any
	}{
		{"get author", http.MethodGet, "authors/" + missing, nil},
		{"delete author", http.MethodDelete, "authors/" + missing, nil},
		{
			"tag book", http.MethodPost, "books/" + missing + "/tags",
			map[string]any{"name": "go"},
		},
		{
			"comment on book", http.MethodPost,
			"books/" + missing + "/comments",
			map[string]any{"body": "nice"},
		},
	} {
		igts.Run(tc.name, func() {
			var body io.Reader
			if tc.body != nil {
				body = jsonBody(tc.body)
			}
			res := &struct {
				Detail string
			}{}
			code := igts.send(tc.method, tc.path, body, res)

			igts.Equal(404, code)
			igts.NotEmpty(res.Detail, "missing detail")
		})
	}
}

func (igts *IntegrationGinTestSuite) TestCatalogLifecycle() {
	a := &model.Author{}
	code := igts.send(http.MethodPost, "authors", jsonBody(map[string]any{
		"name":  "Ann",
		"books": []string{"First", "Second"},
	}), a)
	igts.Require().Equal(201, code)
	igts.Require().Len(a.Books, 2)
	igts.Equal("Ann", a.Name)
	bookID := a.Books[0].ID

	b := &model.Book{}
	code = igts.send(
		http.MethodPost, "books/"+bookID+"/tags",
		jsonBody(map[string]any{"name": "go"}), b,
	)
	igts.Require().Equal(200, code)
	igts.Equal([]string{"go"}, b.Tags)

	c := &model.Comment{}
	code = igts.send(
		http.MethodPost, "books/"+bookID+"/comments",
		jsonBody(map[string]any{"body": "nice"}), c,
	)
	igts.Require().Equal(201, code)
	igts.Equal(model.CommentableBook, c.Kind)
	igts.Equal(bookID, c.TargetID)

	code = igts.send(
		http.MethodPost, "authors/"+a.ID+"/comments",
		jsonBody(map[string]any{"body": "prolific"}), c,
	)
	igts.Require().Equal(201, code)
	igts.Equal(model.CommentableAuthor, c.Kind)

	got := &model.Author{}
	code = igts.send(http.MethodGet, "authors/"+a.ID, nil, got)
	igts.Require().Equal(200, code)
	igts.Equal(a.ID, got.ID)
	igts.Len(got.Books, 2)
	igts.Len(got.Comments, 1)

	code = igts.send(http.MethodDelete, "authors/"+a.ID, nil, nil)
	igts.Equal(204, code)
	code = igts.send(http.MethodGet, "authors/"+a.ID, nil, &struct{}{})
	igts.Equal(404, code)
}
