package ormrp

import (
	"testing"

	"github.com/momeni/txscope/pkg/core/orm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectStmt(t *testing.T) {
	s := newSelect("books", nil)
	s.eq("books", "author_id", 7)
	s.eq("books", "deleted_at", nil)
	s.orderBy = "id"
	s.limit = 1
	sql, args := s.SQL()
	assert.Equal(t,
		`SELECT "books".* FROM "books" WHERE "books"."author_id" = $1`+
			` AND "books"."deleted_at" IS NULL ORDER BY "books"."id" LIMIT 1`,
		sql,
	)
	assert.Equal(t, []any{7}, args)

	s = newSelect("books", []string{"id", "title"})
	sql, args = s.SQL()
	assert.Equal(t, `SELECT "books"."id", "books"."title" FROM "books"`, sql)
	assert.Empty(t, args)
}

func TestInsertUpdateDeleteStmt(t *testing.T) {
	ins := &insertStmt{table: "tags", attrs: map[string]any{
		"name": "go", "id": "x",
	}}
	sql, args := ins.SQL()
	assert.Equal(t,
		`INSERT INTO "tags" ("id", "name") VALUES ($1, $2) RETURNING *`, sql,
	)
	assert.Equal(t, []any{"x", "go"}, args)
	sql, args = ins.SQL()
	assert.Len(t, args, 2, "args must not accumulate")

	ins = &insertStmt{table: "tags"}
	sql, args = ins.SQL()
	assert.Equal(t, `INSERT INTO "tags" DEFAULT VALUES RETURNING *`, sql)
	assert.Nil(t, args)

	upd := &updateStmt{
		table: "tags", attrs: map[string]any{"name": "golang"},
		idAttr: "id", id: "x",
	}
	sql, args = upd.SQL()
	assert.Equal(t,
		`UPDATE "tags" SET "name" = $1 WHERE "id" = $2 RETURNING *`, sql,
	)
	assert.Equal(t, []any{"golang", "x"}, args)

	del := &deleteStmt{table: "tags", idAttr: "id", id: "x"}
	sql, args = del.SQL()
	assert.Equal(t, `DELETE FROM "tags" WHERE "id" = $1`, sql)
	assert.Equal(t, []any{"x"}, args)
}

func TestIdentQuoting(t *testing.T) {
	assert.Equal(t, `"we""ird"`, ident(`we"ird`))
	assert.Equal(t, `"a"."b"`, ident("a", "b"))
}

func TestNaming(t *testing.T) {
	assert.Equal(t, "author_id", foreignKey("authors", "id"))
	assert.Equal(t, "book_tag_id", foreignKey("BookTags", "id"))
	idCol, typeCol := morphColumns("Commentable")
	assert.Equal(t, "commentable_id", idCol)
	assert.Equal(t, "commentable_type", typeCol)
	assert.Equal(t, "books_tags", joinTable("tags", "books"))
	assert.Equal(t, "books_tags", joinTable("books", "tags"))
}

func TestConstrain(t *testing.T) {
	for _, tc := range []struct {
		name string
		rel  *orm.Relation
		sql  string
		args []any
	}{
		{
			name: "has many",
			rel: &orm.Relation{
				Kind: orm.HasMany, ParentID: "a1", ForeignKey: "author_id",
			},
			sql:  `SELECT "books".* FROM "books" WHERE "books"."author_id" = $1`,
			args: []any{"a1"},
		},
		{
			name: "belongs to",
			rel: &orm.Relation{
				Kind: orm.BelongsTo, ParentFK: "a1", ForeignKey: "author_id",
			},
			sql:  `SELECT "books".* FROM "books" WHERE "books"."id" = $1`,
			args: []any{"a1"},
		},
		{
			name: "belongs to many",
			rel: &orm.Relation{
				Kind: orm.BelongsToMany, ParentID: "t1",
				JoinTable: "books_tags", ForeignKey: "tag_id",
				OtherKey: "book_id",
			},
			sql: `SELECT "books".* FROM "books" JOIN "books_tags"` +
				` ON "books_tags"."book_id" = "books"."id"` +
				` WHERE "books_tags"."tag_id" = $1`,
			args: []any{"t1"},
		},
		{
			name: "morph many",
			rel: &orm.Relation{
				Kind: orm.MorphMany, ParentID: "a1",
				MorphName: "commentable", MorphValue: "authors",
			},
			sql: `SELECT "books".* FROM "books" WHERE` +
				` "books"."commentable_id" = $1 AND` +
				` "books"."commentable_type" = $2`,
			args: []any{"a1", "authors"},
		},
		{
			name: "has many through",
			rel: &orm.Relation{
				Kind: orm.HasMany, ParentID: "p1", ForeignKey: "author_id",
				Through: &orm.ThroughRelation{
					TableName: "authors", IDAttribute: "id",
					ForeignKey: "publisher_id", OtherKey: "author_id",
				},
			},
			sql: `SELECT "books".* FROM "books" JOIN "authors"` +
				` ON "authors"."id" = "books"."author_id"` +
				` WHERE "authors"."publisher_id" = $1`,
			args: []any{"p1"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := newSelect("books", nil)
			require.NoError(t, constrain(s, tc.rel, "books", "id"))
			sql, args := s.SQL()
			assert.Equal(t, tc.sql, sql)
			assert.Equal(t, tc.args, args)
		})
	}
}
