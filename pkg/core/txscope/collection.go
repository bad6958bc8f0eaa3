package txscope

import (
	"context"
	"reflect"

	"github.com/momeni/txscope/pkg/core/orm"
)

// collectionClass is a transaction-bound collection class.
type collectionClass struct {
	orm.CollectionClass
	*scope
}

// ModelClass returns the bound element class, so models which are
// forged for the collection elements carry the transaction too.
func (cc *collectionClass) ModelClass() orm.ModelClass {
	return cc.bindModelClass(cc.CollectionClass.ModelClass())
}

func (cc *collectionClass) Forge(models ...orm.Model) orm.Collection {
	return cc.bindCollection(cc.CollectionClass.Forge(models...))
}

func (cc *collectionClass) ForgeRelated(rel *orm.Relation) orm.Collection {
	return cc.bindCollection(cc.CollectionClass.ForgeRelated(rel))
}

// collection is a transaction-bound collection.
type collection struct {
	orm.Collection
	*scope
}

func (c *collection) At(i int) orm.Model {
	return c.bindModel(c.Collection.At(i))
}

func (c *collection) Models() []orm.Model {
	ms := c.Collection.Models()
	bms := make([]orm.Model, 0, len(ms))
	for _, m := range ms {
		bms = append(bms, c.bindModel(m))
	}
	return bms
}

func (c *collection) Fetch(ctx context.Context, opts *orm.Options) (orm.Collection, error) {
	res, err := c.Collection.Fetch(ctx, c.applyTransaction(opts))
	if res != nil && reflect.TypeOf(res).Comparable() && res == c.Collection {
		return c, err
	}
	return c.bindCollection(res), err
}

func (c *collection) FetchOne(ctx context.Context, opts *orm.Options) (orm.Model, error) {
	res, err := c.Collection.FetchOne(ctx, c.applyTransaction(opts))
	return c.bindModel(res), err
}

func (c *collection) Through(
	interim orm.Target, throughForeignKey, otherKey string,
) (orm.Collection, error) {
	t, err := c.bindTarget(interim)
	if err != nil {
		return nil, err
	}
	res, err := c.Collection.Through(t, throughForeignKey, otherKey)
	return c.bindCollection(res), err
}
