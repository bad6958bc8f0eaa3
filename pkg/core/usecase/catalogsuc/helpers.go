package catalogsuc

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/momeni/txscope/pkg/core/model"
	"github.com/momeni/txscope/pkg/core/orm"
	"github.com/momeni/txscope/pkg/core/txscope"
)

// fetch loads the id row of the name model class in the tc scope.
// The orm.ErrNotFound is returned if it does not exist.
func fetch(
	ctx context.Context, tc *txscope.Context, name string, id uuid.UUID,
) (orm.Model, error) {
	mc, err := tc.Model(name)
	if err != nil {
		return nil, err
	}
	m, err := mc.Forge(orm.Attrs{"id": id.String()}).Fetch(
		ctx, &orm.Options{Require: true},
	)
	if err != nil {
		return nil, fmt.Errorf("fetching %s %v: %w", name, id, err)
	}
	return m, nil
}

// findOrCreate fetches the first mc model which matches attrs, or
// saves a new one with attrs if no model matches.
func findOrCreate(
	ctx context.Context, mc orm.ModelClass, attrs orm.Attrs,
) (orm.Model, error) {
	m := mc.Forge(attrs)
	found, err := m.Fetch(ctx, nil)
	if err != nil {
		return nil, err
	}
	if found != nil {
		return found, nil
	}
	return m.Save(ctx, nil, &orm.Options{Method: orm.SaveInsert})
}

func withTags(ctx context.Context, bm orm.Model) (model.Book, error) {
	b := toBook(bm)
	tags, err := bm.BelongsToMany(orm.ByName(model.TagModel), "", "", "")
	if err != nil {
		return b, err
	}
	if tags, err = tags.Fetch(ctx, nil); err != nil {
		return b, fmt.Errorf("fetching tags of book %s: %w", b.ID, err)
	}
	for _, tm := range tags.Models() {
		b.Tags = append(b.Tags, str(tm, "name"))
	}
	return b, nil
}

func comments(ctx context.Context, parent orm.Model) ([]model.Comment, error) {
	cs, err := parent.MorphMany(
		orm.ByName(model.CommentsCollection), model.CommentableRelation,
	)
	if err != nil {
		return nil, err
	}
	if cs, err = cs.Fetch(ctx, nil); err != nil {
		return nil, fmt.Errorf("fetching comments: %w", err)
	}
	res := make([]model.Comment, 0, cs.Len())
	for _, cm := range cs.Models() {
		c, err := toComment(cm)
		if err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, nil
}

func destroyComments(ctx context.Context, parent orm.Model) error {
	cs, err := parent.MorphMany(
		orm.ByName(model.CommentsCollection), model.CommentableRelation,
	)
	if err != nil {
		return err
	}
	if err := destroyAll(ctx, cs); err != nil {
		return fmt.Errorf("deleting comments of %v: %w", parent.ID(), err)
	}
	return nil
}

// destroyAll fetches all models of c and destroys them one by one.
func destroyAll(ctx context.Context, c orm.Collection) error {
	c, err := c.Fetch(ctx, nil)
	if err != nil {
		return err
	}
	for _, m := range c.Models() {
		if _, err := m.Destroy(ctx, &orm.Options{Require: true}); err != nil {
			return err
		}
	}
	return nil
}
