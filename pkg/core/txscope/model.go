package txscope

import (
	"context"
	"reflect"

	"github.com/momeni/txscope/pkg/core/orm"
)

// modelClass is a transaction-bound model class. It behaves like its
// embedded class, but forges bound models.
type modelClass struct {
	orm.ModelClass
	*scope
}

func (mc *modelClass) Forge(attrs orm.Attrs) orm.Model {
	return mc.bindModel(mc.ModelClass.Forge(attrs))
}

func (mc *modelClass) ForgeRelated(rel *orm.Relation) orm.Model {
	return mc.bindModel(mc.ModelClass.ForgeRelated(rel))
}

// model is a transaction-bound model. Its persistence methods inject
// the scope transaction and its relation methods bind their targets.
// Models which are returned by the embedded model are bound too.
type model struct {
	orm.Model
	*scope
}

// self binds res, returning m itself when res is the embedded model.
func (m *model) self(res orm.Model) orm.Model {
	if res != nil && reflect.TypeOf(res).Comparable() && res == m.Model {
		return m
	}
	return m.bindModel(res)
}

func (m *model) Fetch(ctx context.Context, opts *orm.Options) (orm.Model, error) {
	res, err := m.Model.Fetch(ctx, m.applyTransaction(opts))
	return m.self(res), err
}

func (m *model) FetchAll(ctx context.Context, opts *orm.Options) (orm.Collection, error) {
	res, err := m.Model.FetchAll(ctx, m.applyTransaction(opts))
	return m.bindCollection(res), err
}

func (m *model) FetchOne(ctx context.Context, opts *orm.Options) (orm.Model, error) {
	res, err := m.Model.FetchOne(ctx, m.applyTransaction(opts))
	return m.bindModel(res), err
}

func (m *model) Save(ctx context.Context, attrs orm.Attrs, opts *orm.Options) (orm.Model, error) {
	res, err := m.Model.Save(ctx, attrs, m.applyTransaction(opts))
	return m.self(res), err
}

func (m *model) Destroy(ctx context.Context, opts *orm.Options) (orm.Model, error) {
	res, err := m.Model.Destroy(ctx, m.applyTransaction(opts))
	return m.self(res), err
}

func (m *model) HasOne(target orm.Target, foreignKey string) (orm.Model, error) {
	t, err := m.bindTarget(target)
	if err != nil {
		return nil, err
	}
	res, err := m.Model.HasOne(t, foreignKey)
	return m.bindModel(res), err
}

func (m *model) HasMany(target orm.Target, foreignKey string) (orm.Collection, error) {
	t, err := m.bindTarget(target)
	if err != nil {
		return nil, err
	}
	res, err := m.Model.HasMany(t, foreignKey)
	return m.bindCollection(res), err
}

func (m *model) BelongsTo(target orm.Target, foreignKey string) (orm.Model, error) {
	t, err := m.bindTarget(target)
	if err != nil {
		return nil, err
	}
	res, err := m.Model.BelongsTo(t, foreignKey)
	return m.bindModel(res), err
}

func (m *model) BelongsToMany(
	target orm.Target, joinTable, foreignKey, otherKey string,
) (orm.Collection, error) {
	t, err := m.bindTarget(target)
	if err != nil {
		return nil, err
	}
	res, err := m.Model.BelongsToMany(t, joinTable, foreignKey, otherKey)
	return m.bindCollection(res), err
}

func (m *model) MorphOne(target orm.Target, name string) (orm.Model, error) {
	t, err := m.bindTarget(target)
	if err != nil {
		return nil, err
	}
	res, err := m.Model.MorphOne(t, name)
	return m.bindModel(res), err
}

func (m *model) MorphMany(target orm.Target, name string) (orm.Collection, error) {
	t, err := m.bindTarget(target)
	if err != nil {
		return nil, err
	}
	res, err := m.Model.MorphMany(t, name)
	return m.bindCollection(res), err
}

// MorphTo passes the name relation name untouched and binds each one
// of the targets independently.
func (m *model) MorphTo(name string, targets ...orm.Target) (orm.Model, error) {
	ts, err := m.bindTargets(targets)
	if err != nil {
		return nil, err
	}
	res, err := m.Model.MorphTo(name, ts...)
	return m.bindModel(res), err
}

func (m *model) Through(
	interim orm.Target, throughForeignKey, otherKey string,
) (orm.Model, error) {
	t, err := m.bindTarget(interim)
	if err != nil {
		return nil, err
	}
	res, err := m.Model.Through(t, throughForeignKey, otherKey)
	return m.bindModel(res), err
}
