package ormrp

import "github.com/momeni/txscope/pkg/core/orm"

type modelClass struct {
	name       string
	orm        *ORM
	table      string
	idAttr     string
	uuidKeys   bool
	timestamps bool
}

func (mc *modelClass) Name() string {
	return mc.name
}

func (mc *modelClass) TableName() string {
	return mc.table
}

func (mc *modelClass) IDAttribute() string {
	return mc.idAttr
}

func (mc *modelClass) Forge(attrs orm.Attrs) orm.Model {
	return &model{class: mc, attrs: attrs.Clone()}
}

func (mc *modelClass) ForgeRelated(rel *orm.Relation) orm.Model {
	return &model{class: mc, attrs: orm.Attrs{}, rel: rel}
}

// collectionClass forges collections of elem models. The elem class
// may be a decorated class (e.g., one which is bound to a transaction)
// when the collection class is created for a relation.
type collectionClass struct {
	name string
	orm  *ORM
	elem orm.ModelClass
}

func (cc *collectionClass) Name() string {
	return cc.name
}

func (cc *collectionClass) ModelClass() orm.ModelClass {
	return cc.elem
}

func (cc *collectionClass) Forge(models ...orm.Model) orm.Collection {
	return &collection{class: cc, models: models}
}

func (cc *collectionClass) ForgeRelated(rel *orm.Relation) orm.Collection {
	return &collection{class: cc, rel: rel}
}

var (
	_ orm.ModelClass      = (*modelClass)(nil)
	_ orm.CollectionClass = (*collectionClass)(nil)
	_ orm.Model           = (*model)(nil)
	_ orm.Collection      = (*collection)(nil)
)
