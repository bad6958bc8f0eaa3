package txscope_test

import (
	"context"
	"errors"

	"github.com/momeni/txscope/pkg/core/orm"
	"github.com/momeni/txscope/pkg/core/repo"
)

type fakeTx struct {
	name string
}

func (*fakeTx) Exec(context.Context, string, ...any) (int64, error) {
	return 0, errors.New("not supported")
}

func (*fakeTx) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, errors.New("not supported")
}

func (*fakeTx) IsTx() {
}

// fakeConn commits when the handler succeeds and rolls back otherwise.
type fakeConn struct {
	tx         *fakeTx
	txCalls    int
	committed  bool
	rolledBack bool
}

func (c *fakeConn) Tx(ctx context.Context, h repo.TxHandler) error {
	c.txCalls++
	if err := h(ctx, c.tx); err != nil {
		c.rolledBack = true
		return err
	}
	c.committed = true
	return nil
}

func (*fakeConn) Exec(context.Context, string, ...any) (int64, error) {
	return 0, errors.New("not supported")
}

func (*fakeConn) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, errors.New("not supported")
}

func (*fakeConn) IsConn() {
}

type fakePool struct {
	conn      *fakeConn
	connCalls int
}

func (p *fakePool) Conn(ctx context.Context, h repo.ConnHandler) error {
	p.connCalls++
	return h(ctx, p.conn)
}

// call records one persistence operation of the fake ORM.
type call struct {
	op    string
	class string
	attrs orm.Attrs
	opts  *orm.Options
}

type recorder struct {
	calls   []call
	targets []orm.Class // resolved targets of the last MorphTo
}

func (r *recorder) add(op, class string, attrs orm.Attrs, opts *orm.Options) {
	r.calls = append(r.calls, call{op: op, class: class, attrs: attrs, opts: opts})
}

func (r *recorder) last() call {
	if len(r.calls) == 0 {
		return call{}
	}
	return r.calls[len(r.calls)-1]
}

// fakeClass plays the role of the base ORM, resolving relation
// targets using the registry like the real base classes do.
type fakeClass struct {
	name string
	rec  *recorder
	reg  *orm.Registry
}

func (fc *fakeClass) Name() string        { return fc.name }
func (fc *fakeClass) TableName() string   { return fc.name + "s" }
func (fc *fakeClass) IDAttribute() string { return "id" }

func (fc *fakeClass) Forge(attrs orm.Attrs) orm.Model {
	return &fakeModel{class: fc, attrs: attrs.Clone()}
}

func (fc *fakeClass) ForgeRelated(rel *orm.Relation) orm.Model {
	return &fakeModel{class: fc, attrs: orm.Attrs{}, rel: rel}
}

type fakeModel struct {
	class *fakeClass
	attrs orm.Attrs
	rel   *orm.Relation
}

func (fm *fakeModel) TableName() string         { return fm.class.TableName() }
func (fm *fakeModel) IDAttribute() string       { return "id" }
func (fm *fakeModel) ID() any                   { return fm.attrs.Get("id") }
func (fm *fakeModel) Get(key string) any        { return fm.attrs.Get(key) }
func (fm *fakeModel) Set(key string, value any) { fm.attrs[key] = value }
func (fm *fakeModel) Attributes() orm.Attrs     { return fm.attrs.Clone() }
func (fm *fakeModel) IsNew() bool               { return fm.ID() == nil }
func (fm *fakeModel) Relation() *orm.Relation   { return fm.rel }

func (fm *fakeModel) Fetch(_ context.Context, opts *orm.Options) (orm.Model, error) {
	fm.class.rec.add("fetch", fm.class.name, nil, opts)
	return fm, nil
}

func (fm *fakeModel) FetchAll(_ context.Context, opts *orm.Options) (orm.Collection, error) {
	fm.class.rec.add("fetchAll", fm.class.name, nil, opts)
	return &fakeCollection{base: fm.class, models: []orm.Model{fm.class.Forge(orm.Attrs{"id": 1})}}, nil
}

func (fm *fakeModel) FetchOne(_ context.Context, opts *orm.Options) (orm.Model, error) {
	fm.class.rec.add("fetchOne", fm.class.name, nil, opts)
	return fm.class.Forge(orm.Attrs{"id": 1}), nil
}

func (fm *fakeModel) Save(_ context.Context, attrs orm.Attrs, opts *orm.Options) (orm.Model, error) {
	fm.class.rec.add("save", fm.class.name, attrs, opts)
	fm.attrs.Merge(attrs)
	return fm, nil
}

func (fm *fakeModel) Destroy(_ context.Context, opts *orm.Options) (orm.Model, error) {
	fm.class.rec.add("destroy", fm.class.name, nil, opts)
	return fm, nil
}

func (fm *fakeModel) related(kind orm.RelationKind, t orm.Target) (*orm.Relation, error) {
	c, err := fm.class.reg.Resolve(t)
	if err != nil {
		return nil, err
	}
	mc, err := orm.ElementClass(c)
	if err != nil {
		return nil, err
	}
	return &orm.Relation{
		Kind:        kind,
		Target:      mc,
		ParentTable: fm.TableName(),
		ParentID:    fm.ID(),
	}, nil
}

func (fm *fakeModel) relatedModel(kind orm.RelationKind, t orm.Target) (orm.Model, error) {
	rel, err := fm.related(kind, t)
	if err != nil {
		return nil, err
	}
	return rel.Target.ForgeRelated(rel), nil
}

func (fm *fakeModel) relatedCollection(kind orm.RelationKind, t orm.Target) (orm.Collection, error) {
	c, err := fm.class.reg.Resolve(t)
	if err != nil {
		return nil, err
	}
	rel, err := fm.related(kind, orm.ByClass(c))
	if err != nil {
		return nil, err
	}
	if cc, ok := c.(orm.CollectionClass); ok {
		return cc.ForgeRelated(rel), nil
	}
	return &fakeCollection{base: baseOf(fm.class.reg, rel.Target), rel: rel}, nil
}

func (fm *fakeModel) HasOne(t orm.Target, _ string) (orm.Model, error) {
	return fm.relatedModel(orm.HasOne, t)
}

func (fm *fakeModel) HasMany(t orm.Target, _ string) (orm.Collection, error) {
	return fm.relatedCollection(orm.HasMany, t)
}

func (fm *fakeModel) BelongsTo(t orm.Target, _ string) (orm.Model, error) {
	return fm.relatedModel(orm.BelongsTo, t)
}

func (fm *fakeModel) BelongsToMany(t orm.Target, _, _, _ string) (orm.Collection, error) {
	return fm.relatedCollection(orm.BelongsToMany, t)
}

func (fm *fakeModel) MorphOne(t orm.Target, _ string) (orm.Model, error) {
	return fm.relatedModel(orm.MorphOne, t)
}

func (fm *fakeModel) MorphMany(t orm.Target, _ string) (orm.Collection, error) {
	return fm.relatedCollection(orm.MorphMany, t)
}

func (fm *fakeModel) MorphTo(name string, targets ...orm.Target) (orm.Model, error) {
	fm.class.rec.targets = nil
	for _, t := range targets {
		c, err := fm.class.reg.Resolve(t)
		if err != nil {
			return nil, err
		}
		fm.class.rec.targets = append(fm.class.rec.targets, c)
	}
	if len(targets) == 0 {
		return nil, errors.New("no targets")
	}
	m, err := fm.relatedModel(orm.MorphTo, targets[0])
	if err != nil {
		return nil, err
	}
	m.Relation().MorphName = name
	return m, nil
}

// Through returns a new model of the same (unbound) class, so the
// bound wrappers have to bind it again.
func (fm *fakeModel) Through(t orm.Target, fk, otherKey string) (orm.Model, error) {
	c, err := fm.class.reg.Resolve(t)
	if err != nil {
		return nil, err
	}
	mc, err := orm.ElementClass(c)
	if err != nil {
		return nil, err
	}
	rel := fm.rel.Clone()
	if rel == nil {
		rel = &orm.Relation{Kind: orm.HasOne}
	}
	rel.Through = &orm.ThroughRelation{Target: mc, ForeignKey: fk, OtherKey: otherKey}
	return fm.class.ForgeRelated(rel), nil
}

type fakeCollectionClass struct {
	name string
	mc   *fakeClass
}

func (fcc *fakeCollectionClass) Name() string { return fcc.name }

func (fcc *fakeCollectionClass) ModelClass() orm.ModelClass {
	return fcc.mc
}

func (fcc *fakeCollectionClass) Forge(models ...orm.Model) orm.Collection {
	return &fakeCollection{base: fcc.mc, models: models}
}

func (fcc *fakeCollectionClass) ForgeRelated(rel *orm.Relation) orm.Collection {
	return &fakeCollection{base: fcc.mc, rel: rel}
}

// fakeCollection keeps its unbound element class, so its fetched
// models are unbound and bound wrappers have to bind them.
type fakeCollection struct {
	base   *fakeClass
	models []orm.Model
	rel    *orm.Relation
}

func (fc *fakeCollection) Len() int                { return len(fc.models) }
func (fc *fakeCollection) At(i int) orm.Model      { return fc.models[i] }
func (fc *fakeCollection) Models() []orm.Model     { return fc.models }
func (fc *fakeCollection) Relation() *orm.Relation { return fc.rel }

func (fc *fakeCollection) Fetch(_ context.Context, opts *orm.Options) (orm.Collection, error) {
	fc.base.rec.add("collection.fetch", fc.base.name, nil, opts)
	fc.models = append(fc.models, fc.base.Forge(orm.Attrs{"id": 2}))
	return fc, nil
}

func (fc *fakeCollection) FetchOne(_ context.Context, opts *orm.Options) (orm.Model, error) {
	fc.base.rec.add("collection.fetchOne", fc.base.name, nil, opts)
	return fc.base.Forge(orm.Attrs{"id": 3}), nil
}

func (fc *fakeCollection) Through(t orm.Target, fk, otherKey string) (orm.Collection, error) {
	c, err := fc.base.reg.Resolve(t)
	if err != nil {
		return nil, err
	}
	mc, err := orm.ElementClass(c)
	if err != nil {
		return nil, err
	}
	rel := fc.rel.Clone()
	if rel == nil {
		rel = &orm.Relation{Kind: orm.HasMany}
	}
	rel.Through = &orm.ThroughRelation{Target: mc, ForeignKey: fk, OtherKey: otherKey}
	return &fakeCollection{base: fc.base, rel: rel}, nil
}

// baseOf returns the registered (unbound) fake class of mc.
func baseOf(reg *orm.Registry, mc orm.ModelClass) *fakeClass {
	m, _ := reg.Model(mc.Name())
	return m.(*fakeClass)
}
