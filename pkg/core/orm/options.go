package orm

import (
	"reflect"

	"github.com/momeni/txscope/pkg/core/repo"
)

// SaveMethod chooses between the INSERT and UPDATE statements when
// a model is saved.
type SaveMethod string

// Supported save methods. The SaveAuto method inserts new models (i.e.,
// models without an ID) and updates the existing ones.
const (
	SaveAuto   SaveMethod = ""
	SaveInsert SaveMethod = "insert"
	SaveUpdate SaveMethod = "update"
)

// Options configures a persistence operation. A nil *Options is
// equivalent to a zero Options.
type Options struct {
	// Transacting is the transaction handle which the operation
	// should run in. A nil value asks for a pooled connection.
	Transacting repo.Tx

	// Require makes Fetch and FetchOne report ErrNotFound (instead of
	// a nil result) and Destroy report ErrNoRowsDeleted when no rows
	// match.
	Require bool

	// Columns limits the selected columns of fetch operations.
	// All columns are selected when it is empty.
	Columns []string

	// Method overrides the INSERT/UPDATE selection of Save.
	Method SaveMethod

	// Patch makes Save update only the given attributes, instead of
	// all attributes of the model.
	Patch bool
}

// Clone returns a shallow copy of opts. A nil opts is cloned as a new
// zero Options value.
func (opts *Options) Clone() *Options {
	if opts == nil {
		return &Options{}
	}
	c := *opts
	return &c
}

// Tx returns the Transacting handle of opts, or nil if opts is nil.
// A nil pointer which is wrapped by the Transacting interface counts
// as absent too, so it is never used for running statements.
func (opts *Options) Tx() repo.Tx {
	if opts == nil || opts.Transacting == nil {
		return nil
	}
	if v := reflect.ValueOf(opts.Transacting); v.Kind() == reflect.Pointer && v.IsNil() {
		return nil
	}
	return opts.Transacting
}
