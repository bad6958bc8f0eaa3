package txscope

import (
	"fmt"

	"github.com/momeni/txscope/pkg/core/orm"
	"github.com/momeni/txscope/pkg/core/repo"
)

// scope is shared by all bound values of one Context. It is immutable.
type scope struct {
	tx       repo.Tx
	registry *orm.Registry
}

// Transaction returns the transaction handle of s.
func (s *scope) Transaction() repo.Tx {
	return s.tx
}

// applyTransaction returns opts with the Transacting option set to the
// s transaction handle, unless it was set explicitly by the caller.
// A nil handle (even a typed nil pointer) is replaced too.
// The caller opts is never modified, so a copy is returned whenever
// an update is required.
func (s *scope) applyTransaction(opts *orm.Options) *orm.Options {
	if opts.Tx() != nil {
		return opts
	}
	opts = opts.Clone()
	opts.Transacting = s.tx
	return opts
}

// bindTarget resolves t using the registry and returns a ByClass
// target referring to a class which is bound to s.
func (s *scope) bindTarget(t orm.Target) (orm.Target, error) {
	c, err := s.registry.Resolve(t)
	if err != nil {
		return orm.Target{}, err
	}
	bc, err := s.bind(c)
	if err != nil {
		return orm.Target{}, err
	}
	return orm.ByClass(bc), nil
}

func (s *scope) bindTargets(ts []orm.Target) ([]orm.Target, error) {
	bts := make([]orm.Target, 0, len(ts))
	for _, t := range ts {
		bt, err := s.bindTarget(t)
		if err != nil {
			return nil, err
		}
		bts = append(bts, bt)
	}
	return bts, nil
}

func (s *scope) bind(c orm.Class) (orm.Class, error) {
	switch cc := c.(type) {
	case orm.ModelClass:
		return s.bindModelClass(cc), nil
	case orm.CollectionClass:
		return s.bindCollectionClass(cc), nil
	default:
		return nil, fmt.Errorf("unsupported class type: %T", c)
	}
}

// bindModelClass wraps mc, so its forged models carry s. A class
// which is bound already (e.g., to another transaction) is unwrapped
// first, so the s transaction replaces its former transaction.
func (s *scope) bindModelClass(mc orm.ModelClass) orm.ModelClass {
	if bmc, ok := mc.(*modelClass); ok {
		mc = bmc.ModelClass
	}
	return &modelClass{ModelClass: mc, scope: s}
}

func (s *scope) bindCollectionClass(
	cc orm.CollectionClass,
) orm.CollectionClass {
	if bcc, ok := cc.(*collectionClass); ok {
		cc = bcc.CollectionClass
	}
	return &collectionClass{CollectionClass: cc, scope: s}
}

// bindModel wraps m, unless it is nil or carries s already.
func (s *scope) bindModel(m orm.Model) orm.Model {
	switch mm := m.(type) {
	case nil:
		return nil
	case *model:
		if mm.scope == s {
			return mm
		}
		return &model{Model: mm.Model, scope: s}
	default:
		return &model{Model: m, scope: s}
	}
}

func (s *scope) bindCollection(c orm.Collection) orm.Collection {
	switch cc := c.(type) {
	case nil:
		return nil
	case *collection:
		if cc.scope == s {
			return cc
		}
		return &collection{Collection: cc.Collection, scope: s}
	default:
		return &collection{Collection: c, scope: s}
	}
}
