package orm_test

import (
	"testing"

	"github.com/momeni/txscope/pkg/core/orm"
	"github.com/momeni/txscope/pkg/core/repo"
	"github.com/stretchr/testify/assert"
)

type stubTx struct {
	repo.Tx
}

func TestOptionsTx(t *testing.T) {
	var opts *orm.Options
	assert.Nil(t, opts.Tx(), "nil options")
	assert.Nil(t, (&orm.Options{}).Tx(), "missing handle")

	var typedNil *stubTx
	assert.Nil(t, (&orm.Options{Transacting: typedNil}).Tx(), "typed nil handle")

	tx := &stubTx{}
	assert.Same(t, tx, (&orm.Options{Transacting: tx}).Tx())
}

func TestOptionsClone(t *testing.T) {
	var opts *orm.Options
	c := opts.Clone()
	assert.NotNil(t, c)
	assert.Nil(t, c.Transacting)

	opts = &orm.Options{Require: true, Columns: []string{"id"}}
	c = opts.Clone()
	c.Transacting = &stubTx{}
	assert.Nil(t, opts.Transacting, "clone must not modify the original")
	assert.True(t, c.Require)
}
