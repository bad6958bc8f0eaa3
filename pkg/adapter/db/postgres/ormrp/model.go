package ormrp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/txscope/pkg/core/log"
	"github.com/momeni/txscope/pkg/core/orm"
	"github.com/momeni/txscope/pkg/core/repo"
)

// Timestamp columns which are maintained by the WithTimestamps option.
const (
	CreatedAt = "created_at"
	UpdatedAt = "updated_at"
)

type model struct {
	class *modelClass
	attrs orm.Attrs
	rel   *orm.Relation
}

func (m *model) TableName() string {
	return m.class.table
}

func (m *model) IDAttribute() string {
	return m.class.idAttr
}

func (m *model) ID() any {
	return m.attrs.Get(m.class.idAttr)
}

func (m *model) Get(key string) any {
	return m.attrs.Get(key)
}

func (m *model) Set(key string, value any) {
	m.attrs[key] = value
}

func (m *model) Attributes() orm.Attrs {
	return m.attrs.Clone()
}

func (m *model) IsNew() bool {
	return m.ID() == nil
}

func (m *model) Relation() *orm.Relation {
	return m.rel
}

// target returns the class which should forge the m siblings. For
// related models, it is the relation target class which may carry
// a transaction.
func (m *model) target() orm.ModelClass {
	if m.rel != nil && m.rel.Target != nil {
		return m.rel.Target
	}
	return m.class
}

// selectStmt prepares a statement which selects rows matching the
// m relation and attributes.
func (m *model) selectStmt(opts *orm.Options) (*selectStmt, error) {
	s := newSelect(m.class.table, columns(opts))
	if err := constrain(s, m.rel, m.class.table, m.class.idAttr); err != nil {
		return nil, err
	}
	for _, k := range sortedKeys(m.attrs) {
		s.eq(m.class.table, k, m.attrs[k])
	}
	return s, nil
}

func (m *model) query(
	ctx context.Context, opts *orm.Options, s statement,
) (rows []orm.Attrs, err error) {
	err = m.class.orm.run(ctx, opts, func(q repo.Queryer) error {
		rows, err = query(ctx, q, m.class.table, s)
		return err
	})
	return rows, err
}

func (m *model) Fetch(ctx context.Context, opts *orm.Options) (orm.Model, error) {
	s, err := m.selectStmt(opts)
	if err != nil {
		return nil, err
	}
	s.limit = 1
	rows, err := m.query(ctx, opts, s)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	if len(rows) == 0 {
		if required(opts) {
			return nil, fmt.Errorf("fetch %q: %w", m.class.table, orm.ErrNotFound)
		}
		return nil, nil
	}
	m.attrs = rows[0]
	return m, nil
}

func (m *model) FetchAll(ctx context.Context, opts *orm.Options) (orm.Collection, error) {
	s, err := m.selectStmt(opts)
	if err != nil {
		return nil, err
	}
	s.orderBy = m.class.idAttr
	rows, err := m.query(ctx, opts, s)
	if err != nil {
		return nil, fmt.Errorf("fetch all: %w", err)
	}
	t := m.target()
	models := make([]orm.Model, 0, len(rows))
	for _, attrs := range rows {
		models = append(models, t.Forge(attrs))
	}
	c := &collection{
		class:  m.class.orm.anonymous(t),
		models: models,
		rel:    m.rel,
	}
	return c, nil
}

func (m *model) FetchOne(ctx context.Context, opts *orm.Options) (orm.Model, error) {
	s, err := m.selectStmt(opts)
	if err != nil {
		return nil, err
	}
	s.orderBy = m.class.idAttr
	s.limit = 1
	rows, err := m.query(ctx, opts, s)
	if err != nil {
		return nil, fmt.Errorf("fetch one: %w", err)
	}
	if len(rows) == 0 {
		if required(opts) {
			return nil, fmt.Errorf("fetch one %q: %w", m.class.table, orm.ErrNotFound)
		}
		return nil, nil
	}
	return m.target().Forge(rows[0]), nil
}

func (m *model) Save(ctx context.Context, attrs orm.Attrs, opts *orm.Options) (orm.Model, error) {
	m.attrs.Merge(attrs)
	method := orm.SaveAuto
	if opts != nil {
		method = opts.Method
	}
	if method == orm.SaveAuto {
		method = orm.SaveUpdate
		if m.IsNew() {
			method = orm.SaveInsert
		}
	}
	var s statement
	switch method {
	case orm.SaveInsert:
		s = m.insertStmt()
	case orm.SaveUpdate:
		us, err := m.updateStmt(attrs, opts != nil && opts.Patch)
		if err != nil {
			return nil, err
		}
		if us == nil {
			return m, nil
		}
		s = us
	default:
		return nil, fmt.Errorf("unsupported save method: %q", method)
	}
	rows, err := m.query(ctx, opts, s)
	if err != nil {
		return nil, fmt.Errorf("save (%s): %w", method, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf(
			"save %q (id=%v): %w", m.class.table, m.ID(), orm.ErrNoRowsUpdated,
		)
	}
	m.attrs = rows[0]
	log.Debug(ctx, "saved model",
		log.Table(m.class.table), log.ID("id", m.ID()),
	)
	return m, nil
}

func (m *model) insertStmt() *insertStmt {
	if m.class.uuidKeys && m.IsNew() {
		m.attrs[m.class.idAttr] = uuid.NewString()
	}
	m.fillRelationKeys()
	if m.class.timestamps {
		now := time.Now()
		if m.attrs.Get(CreatedAt) == nil {
			m.attrs[CreatedAt] = now
		}
		m.attrs[UpdatedAt] = now
	}
	return &insertStmt{table: m.class.table, attrs: m.attrs.Clone()}
}

// updateStmt prepares an UPDATE statement for all attributes, or only
// for the given attrs if patch is set. It returns nil if there are no
// columns to be updated.
func (m *model) updateStmt(attrs orm.Attrs, patch bool) (*updateStmt, error) {
	id := m.ID()
	if id == nil {
		return nil, fmt.Errorf("update %q: %w", m.class.table, orm.ErrMissingID)
	}
	set := m.attrs.Clone()
	if patch {
		set = attrs.Clone()
	}
	delete(set, m.class.idAttr)
	if len(set) == 0 {
		return nil, nil
	}
	if m.class.timestamps {
		now := time.Now()
		m.attrs[UpdatedAt] = now
		set[UpdatedAt] = now
	}
	return &updateStmt{
		table:  m.class.table,
		attrs:  set,
		idAttr: m.class.idAttr,
		id:     id,
	}, nil
}

// fillRelationKeys sets the foreign key columns of a model which was
// forged by a HasOne, HasMany, MorphOne, or MorphMany relation, so it
// may be saved as a child of the relation parent.
func (m *model) fillRelationKeys() {
	rel := m.rel
	if rel == nil || rel.Through != nil {
		return
	}
	switch rel.Kind {
	case orm.HasOne, orm.HasMany:
		if m.attrs.Get(rel.ForeignKey) == nil {
			m.attrs[rel.ForeignKey] = rel.ParentID
		}
	case orm.MorphOne, orm.MorphMany:
		idCol, typeCol := morphColumns(rel.MorphName)
		if m.attrs.Get(idCol) == nil {
			m.attrs[idCol] = rel.ParentID
		}
		if m.attrs.Get(typeCol) == nil {
			m.attrs[typeCol] = rel.MorphValue
		}
	}
}

func (m *model) Destroy(ctx context.Context, opts *orm.Options) (orm.Model, error) {
	id := m.ID()
	if id == nil {
		return nil, fmt.Errorf("destroy %q: %w", m.class.table, orm.ErrMissingID)
	}
	s := &deleteStmt{table: m.class.table, idAttr: m.class.idAttr, id: id}
	var n int64
	err := m.class.orm.run(ctx, opts, func(q repo.Queryer) (err error) {
		n, err = exec(ctx, q, m.class.table, s)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("destroy: %w", err)
	}
	if n == 0 && required(opts) {
		return nil, fmt.Errorf(
			"destroy %q (id=%v): %w", m.class.table, id, orm.ErrNoRowsDeleted,
		)
	}
	m.attrs = orm.Attrs{}
	return m, nil
}

func required(opts *orm.Options) bool {
	return opts != nil && opts.Require
}

func columns(opts *orm.Options) []string {
	if opts == nil {
		return nil
	}
	return opts.Columns
}
