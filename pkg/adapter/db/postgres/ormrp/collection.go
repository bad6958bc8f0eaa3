package ormrp

import (
	"context"
	"fmt"

	"github.com/momeni/txscope/pkg/core/orm"
	"github.com/momeni/txscope/pkg/core/repo"
)

type collection struct {
	class  *collectionClass
	models []orm.Model
	rel    *orm.Relation
}

func (c *collection) Len() int {
	return len(c.models)
}

func (c *collection) At(i int) orm.Model {
	return c.models[i]
}

func (c *collection) Models() []orm.Model {
	return append([]orm.Model(nil), c.models...)
}

func (c *collection) Relation() *orm.Relation {
	return c.rel
}

// elem returns the class of the c models.
func (c *collection) elem() orm.ModelClass {
	if c.rel != nil && c.rel.Target != nil {
		return c.rel.Target
	}
	return c.class.elem
}

func (c *collection) fetch(
	ctx context.Context, opts *orm.Options, limit int,
) ([]orm.Attrs, error) {
	mc := c.elem()
	table := mc.TableName()
	s := newSelect(table, columns(opts))
	if err := constrain(s, c.rel, table, mc.IDAttribute()); err != nil {
		return nil, err
	}
	s.orderBy = mc.IDAttribute()
	s.limit = limit
	var rows []orm.Attrs
	err := c.class.orm.run(ctx, opts, func(q repo.Queryer) (err error) {
		rows, err = query(ctx, q, table, s)
		return err
	})
	return rows, err
}

// Fetch loads all rows of the collection relation (or of its table
// if it is not a relation collection) and returns c itself.
func (c *collection) Fetch(ctx context.Context, opts *orm.Options) (orm.Collection, error) {
	rows, err := c.fetch(ctx, opts, 0)
	if err != nil {
		return nil, fmt.Errorf("fetch collection: %w", err)
	}
	mc := c.elem()
	c.models = make([]orm.Model, 0, len(rows))
	for _, attrs := range rows {
		c.models = append(c.models, mc.Forge(attrs))
	}
	return c, nil
}

func (c *collection) FetchOne(ctx context.Context, opts *orm.Options) (orm.Model, error) {
	rows, err := c.fetch(ctx, opts, 1)
	if err != nil {
		return nil, fmt.Errorf("fetch one of collection: %w", err)
	}
	if len(rows) == 0 {
		if required(opts) {
			return nil, fmt.Errorf(
				"fetch one %q: %w", c.elem().TableName(), orm.ErrNotFound,
			)
		}
		return nil, nil
	}
	return c.elem().Forge(rows[0]), nil
}

// Through routes a HasMany relation collection through the interim
// class, whose throughForeignKey column refers to the parent, while
// the otherKey column of the target table refers to the interim.
func (c *collection) Through(
	interim orm.Target, throughForeignKey, otherKey string,
) (orm.Collection, error) {
	if c.rel != nil && c.rel.Kind != orm.HasMany {
		return nil, fmt.Errorf(
			"through %s: unsupported %s relation", interim, c.rel.Kind,
		)
	}
	rel, err := through(c.class.orm, c.rel, interim, throughForeignKey, otherKey)
	if err != nil {
		return nil, err
	}
	return c.class.ForgeRelated(rel), nil
}
