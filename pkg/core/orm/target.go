package orm

import "fmt"

// Target names the class of a relation target. It holds either a name
// which should be resolved using a Registry or a class reference.
// The zero Target is invalid and cannot be resolved.
type Target struct {
	name  string
	class Class
}

// ByName returns a Target which refers to the name registered class.
func ByName(name string) Target {
	return Target{name: name}
}

// ByClass returns a Target which refers to the c class directly.
func ByClass(c Class) Target {
	return Target{class: c}
}

// Name returns the class name of a ByName target and true, or an
// empty string and false for a ByClass target.
func (t Target) Name() (string, bool) {
	if t.class != nil {
		return "", false
	}
	return t.name, true
}

// Class returns the class of a ByClass target and true.
func (t Target) Class() (Class, bool) {
	return t.class, t.class != nil
}

// String returns the name of t, prefixing class references with
// a `class:` marker.
func (t Target) String() string {
	if t.class != nil {
		return fmt.Sprintf("class:%s", t.class.Name())
	}
	return t.name
}
