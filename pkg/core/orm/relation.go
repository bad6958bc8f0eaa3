package orm

// RelationKind identifies the relation method which created a Relation.
type RelationKind string

// Supported relation kinds.
const (
	HasOne        RelationKind = "hasOne"
	HasMany       RelationKind = "hasMany"
	BelongsTo     RelationKind = "belongsTo"
	BelongsToMany RelationKind = "belongsToMany"
	MorphOne      RelationKind = "morphOne"
	MorphMany     RelationKind = "morphMany"
	MorphTo       RelationKind = "morphTo"
)

// Relation constrains a related model or collection, which is created
// by a relation method of its parent model, to the rows that belong
// to that parent.
type Relation struct {
	Kind RelationKind

	// Target is the class of the related models. For a relation which
	// was created in a transaction scope, Target forges models which
	// carry the same transaction.
	Target ModelClass

	ParentTable string
	ParentID    any
	ParentFK    any // value of ForeignKey in parent, for BelongsTo

	ForeignKey string
	OtherKey   string
	JoinTable  string

	// MorphName is the polymorphic relation name, so its columns are
	// MorphName_id and MorphName_type. MorphValue is the value of the
	// MorphName_type column (i.e., table name of the parent).
	MorphName  string
	MorphValue string

	Through *ThroughRelation
}

// ThroughRelation describes the interim table of a relation which is
// routed by the Through methods.
type ThroughRelation struct {
	Target      ModelClass
	ForeignKey  string // column of interim table, refers to parent
	OtherKey    string // column of interim table, refers to target
	TableName   string
	IDAttribute string
}

// IsSingle reports whether r is a single-valued relation.
func (r *Relation) IsSingle() bool {
	switch r.Kind {
	case HasOne, BelongsTo, MorphOne, MorphTo:
		return true
	}
	return false
}

// Clone returns a copy of r. The Through pointer is copied deeply.
func (r *Relation) Clone() *Relation {
	if r == nil {
		return nil
	}
	c := *r
	if r.Through != nil {
		t := *r.Through
		c.Through = &t
	}
	return &c
}
