package ormrp

import (
	"fmt"

	"github.com/momeni/txscope/pkg/core/orm"
)

// resolve finds the t class using the registry. The class and its
// element model class are returned.
func (m *model) resolve(t orm.Target) (orm.Class, orm.ModelClass, error) {
	c, err := m.class.orm.registry.Resolve(t)
	if err != nil {
		return nil, nil, err
	}
	mc, err := orm.ElementClass(c)
	if err != nil {
		return nil, nil, err
	}
	return c, mc, nil
}

// collectionOf returns the c collection class, or an anonymous
// collection class of mc models if c is a model class.
func (m *model) collectionOf(
	c orm.Class, mc orm.ModelClass,
) orm.CollectionClass {
	if cc, ok := c.(orm.CollectionClass); ok {
		return cc
	}
	return m.class.orm.anonymous(mc)
}

func (m *model) relation(kind orm.RelationKind, mc orm.ModelClass) *orm.Relation {
	return &orm.Relation{
		Kind:        kind,
		Target:      mc,
		ParentTable: m.class.table,
		ParentID:    m.ID(),
	}
}

func (m *model) HasOne(target orm.Target, foreignKey string) (orm.Model, error) {
	_, mc, err := m.resolve(target)
	if err != nil {
		return nil, err
	}
	rel := m.relation(orm.HasOne, mc)
	rel.ForeignKey = m.ownForeignKey(foreignKey)
	return mc.ForgeRelated(rel), nil
}

func (m *model) HasMany(target orm.Target, foreignKey string) (orm.Collection, error) {
	c, mc, err := m.resolve(target)
	if err != nil {
		return nil, err
	}
	rel := m.relation(orm.HasMany, mc)
	rel.ForeignKey = m.ownForeignKey(foreignKey)
	return m.collectionOf(c, mc).ForgeRelated(rel), nil
}

func (m *model) BelongsTo(target orm.Target, foreignKey string) (orm.Model, error) {
	_, mc, err := m.resolve(target)
	if err != nil {
		return nil, err
	}
	rel := m.relation(orm.BelongsTo, mc)
	if foreignKey == "" {
		foreignKey = refKey(mc)
	}
	rel.ForeignKey = foreignKey
	rel.ParentFK = m.Get(foreignKey)
	return mc.ForgeRelated(rel), nil
}

func (m *model) BelongsToMany(
	target orm.Target, joinTableName, foreignKey, otherKey string,
) (orm.Collection, error) {
	c, mc, err := m.resolve(target)
	if err != nil {
		return nil, err
	}
	rel := m.relation(orm.BelongsToMany, mc)
	if joinTableName == "" {
		joinTableName = joinTable(m.class.table, mc.TableName())
	}
	if otherKey == "" {
		otherKey = refKey(mc)
	}
	rel.JoinTable = joinTableName
	rel.ForeignKey = m.ownForeignKey(foreignKey)
	rel.OtherKey = otherKey
	return m.collectionOf(c, mc).ForgeRelated(rel), nil
}

func (m *model) morph(kind orm.RelationKind, mc orm.ModelClass, name string) *orm.Relation {
	rel := m.relation(kind, mc)
	rel.MorphName = name
	rel.MorphValue = m.class.table
	return rel
}

func (m *model) MorphOne(target orm.Target, name string) (orm.Model, error) {
	_, mc, err := m.resolve(target)
	if err != nil {
		return nil, err
	}
	return mc.ForgeRelated(m.morph(orm.MorphOne, mc, name)), nil
}

func (m *model) MorphMany(target orm.Target, name string) (orm.Collection, error) {
	c, mc, err := m.resolve(target)
	if err != nil {
		return nil, err
	}
	rel := m.morph(orm.MorphMany, mc, name)
	return m.collectionOf(c, mc).ForgeRelated(rel), nil
}

func (m *model) MorphTo(name string, targets ...orm.Target) (orm.Model, error) {
	idCol, typeCol := morphColumns(name)
	typ, _ := m.Get(typeCol).(string)
	if typ == "" {
		return nil, fmt.Errorf("morph to %q: missing %s attribute", name, typeCol)
	}
	for _, t := range targets {
		_, mc, err := m.resolve(t)
		if err != nil {
			return nil, err
		}
		if mc.TableName() != typ {
			continue
		}
		rel := m.relation(orm.MorphTo, mc)
		rel.MorphName = name
		rel.MorphValue = typ
		rel.ParentFK = m.Get(idCol)
		return mc.ForgeRelated(rel), nil
	}
	return nil, fmt.Errorf("morph to %q: no target for %q type", name, typ)
}

// Through routes a HasOne or BelongsTo relation through the interim
// class. For HasOne, the throughForeignKey column of the interim table
// refers to the parent and the otherKey column of the target table
// refers to the interim. For BelongsTo, the parent foreign key refers
// to the interim, whose otherKey column refers to the target, hence,
// the throughForeignKey is not used.
func (m *model) Through(
	interim orm.Target, throughForeignKey, otherKey string,
) (orm.Model, error) {
	if m.rel != nil && !m.rel.IsSingle() {
		return nil, fmt.Errorf(
			"through %s: %s relation is not single-valued", interim, m.rel.Kind,
		)
	}
	rel, err := through(m.class.orm, m.rel, interim, throughForeignKey, otherKey)
	if err != nil {
		return nil, err
	}
	return rel.Target.ForgeRelated(rel), nil
}

// through returns a copy of rel which is routed through the interim.
func through(
	o *ORM, rel *orm.Relation, interim orm.Target,
	throughForeignKey, otherKey string,
) (*orm.Relation, error) {
	if rel == nil {
		return nil, fmt.Errorf("through %s: not a relation", interim)
	}
	switch rel.Kind {
	case orm.HasOne, orm.HasMany, orm.BelongsTo:
	default:
		return nil, fmt.Errorf(
			"through %s: unsupported %s relation", interim, rel.Kind,
		)
	}
	c, err := o.registry.Resolve(interim)
	if err != nil {
		return nil, err
	}
	imc, err := orm.ElementClass(c)
	if err != nil {
		return nil, err
	}
	if throughForeignKey == "" {
		throughForeignKey = rel.ForeignKey
	}
	if otherKey == "" {
		otherKey = refKey(imc)
		if rel.Kind == orm.BelongsTo {
			otherKey = refKey(rel.Target)
		}
	}
	r := rel.Clone()
	r.Through = &orm.ThroughRelation{
		Target:      imc,
		ForeignKey:  throughForeignKey,
		OtherKey:    otherKey,
		TableName:   imc.TableName(),
		IDAttribute: imc.IDAttribute(),
	}
	return r, nil
}

// ownForeignKey returns fk, or the default name of a column which
// refers to m.
func (m *model) ownForeignKey(fk string) string {
	if fk != "" {
		return fk
	}
	return foreignKey(m.class.table, m.class.idAttr)
}

// refKey returns the default name of a column which refers to
// the mc table.
func refKey(mc orm.ModelClass) string {
	return foreignKey(mc.TableName(), mc.IDAttribute())
}

// constrain adds the rel conditions to s, which selects from the table
// of the rel target (whose primary key is idAttr).
func constrain(s *selectStmt, rel *orm.Relation, table, idAttr string) error {
	if rel == nil {
		return nil
	}
	if t := rel.Through; t != nil {
		switch rel.Kind {
		case orm.HasOne, orm.HasMany:
			s.join(t.TableName, t.IDAttribute, table, t.OtherKey)
			s.eq(t.TableName, t.ForeignKey, rel.ParentID)
		case orm.BelongsTo:
			s.join(t.TableName, t.OtherKey, table, idAttr)
			s.eq(t.TableName, t.IDAttribute, rel.ParentFK)
		default:
			return fmt.Errorf("unsupported through %s relation", rel.Kind)
		}
		return nil
	}
	switch rel.Kind {
	case orm.HasOne, orm.HasMany:
		s.eq(table, rel.ForeignKey, rel.ParentID)
	case orm.BelongsTo, orm.MorphTo:
		s.eq(table, idAttr, rel.ParentFK)
	case orm.BelongsToMany:
		s.join(rel.JoinTable, rel.OtherKey, table, idAttr)
		s.eq(rel.JoinTable, rel.ForeignKey, rel.ParentID)
	case orm.MorphOne, orm.MorphMany:
		idCol, typeCol := morphColumns(rel.MorphName)
		s.eq(table, idCol, rel.ParentID)
		s.eq(table, typeCol, rel.MorphValue)
	default:
		return fmt.Errorf("unsupported %s relation", rel.Kind)
	}
	return nil
}
