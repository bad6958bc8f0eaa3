// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package orm

import "context"

// Class is implemented by both of ModelClass and CollectionClass, so
// relation targets may refer to either of them.
type Class interface {
	// Name returns the registered name of the class.
	Name() string
}

// ModelClass describes a table and forges its Model instances.
type ModelClass interface {
	Class

	TableName() string
	IDAttribute() string

	// Forge creates a new model holding a copy of attrs.
	// The model is not persisted until it is saved.
	Forge(attrs Attrs) Model

	// ForgeRelated creates a new model which is constrained by the
	// rel relation, as returned by the single-valued relation methods
	// such as HasOne and BelongsTo.
	ForgeRelated(rel *Relation) Model
}

// CollectionClass forges collections of its ModelClass instances.
type CollectionClass interface {
	Class

	// ModelClass returns the class of the collection elements.
	ModelClass() ModelClass

	Forge(models ...Model) Collection

	// ForgeRelated creates an empty collection which is constrained
	// by the rel relation, as returned by the multi-valued relation
	// methods such as HasMany and BelongsToMany.
	ForgeRelated(rel *Relation) Collection
}

// Model is one row of a table. Its persistence methods accept a nil
// opts argument. Relation methods accept their target classes as a
// Target, resolving names using the registry of the model class.
type Model interface {
	TableName() string
	IDAttribute() string

	// ID returns the value of the IDAttribute attribute, or nil.
	ID() any

	Get(key string) any
	Set(key string, value any)

	// Attributes returns a copy of all attributes.
	Attributes() Attrs

	// IsNew reports whether the model has no ID yet.
	IsNew() bool

	// Relation returns the relation constraint of a model which was
	// created by a relation method, or nil.
	Relation() *Relation

	// Fetch loads the first row which matches the model attributes
	// (or its Relation) into the model and returns it. If no rows
	// match, nil is returned, or ErrNotFound if opts.Require is set.
	Fetch(ctx context.Context, opts *Options) (Model, error)

	// FetchAll loads all rows which match the model attributes (or
	// its Relation) as a collection.
	FetchAll(ctx context.Context, opts *Options) (Collection, error)

	// FetchOne is like Fetch, but orders rows by ID and returns the
	// first one as a new model, leaving the receiver intact.
	FetchOne(ctx context.Context, opts *Options) (Model, error)

	// Save sets attrs on the model and persists it, using an INSERT
	// or UPDATE statement based on opts.Method and IsNew.
	Save(ctx context.Context, attrs Attrs, opts *Options) (Model, error)

	// Destroy deletes the row of the model and clears its attributes.
	Destroy(ctx context.Context, opts *Options) (Model, error)

	HasOne(target Target, foreignKey string) (Model, error)
	HasMany(target Target, foreignKey string) (Collection, error)
	BelongsTo(target Target, foreignKey string) (Model, error)
	BelongsToMany(
		target Target, joinTable, foreignKey, otherKey string,
	) (Collection, error)
	MorphOne(target Target, name string) (Model, error)
	MorphMany(target Target, name string) (Collection, error)

	// MorphTo returns the polymorphic parent of the model. The name
	// relation name is used as given, while each one of the targets
	// is a candidate parent class. The candidate whose table name
	// matches the <name>_type attribute is chosen.
	MorphTo(name string, targets ...Target) (Model, error)

	// Through routes a HasOne or BelongsTo relation model through the
	// interim class. It fails for models without a Relation.
	Through(interim Target, throughForeignKey, otherKey string) (Model, error)
}

// Collection is an ordered list of models of one ModelClass.
type Collection interface {
	Len() int
	At(i int) Model
	Models() []Model

	// Relation returns the relation constraint of a collection which
	// was created by a relation method, or nil.
	Relation() *Relation

	// Fetch loads all matching rows, replacing the collection models.
	Fetch(ctx context.Context, opts *Options) (Collection, error)

	// FetchOne loads the first matching row (ordered by ID).
	FetchOne(ctx context.Context, opts *Options) (Model, error)

	// Through routes a HasMany or BelongsToMany relation collection
	// through the interim class.
	Through(
		interim Target, throughForeignKey, otherKey string,
	) (Collection, error)
}
