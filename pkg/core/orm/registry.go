// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package orm

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps names to model and collection classes. Models and
// collections have distinct name spaces, so a "Books" collection may
// co-exist with a "Books" model, but relation targets prefer the
// collection in that case (see Resolve).
// It is safe to be used concurrently.
type Registry struct {
	mu          sync.RWMutex
	models      map[string]ModelClass
	collections map[string]CollectionClass
}

// NewRegistry instantiates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		models:      make(map[string]ModelClass),
		collections: make(map[string]CollectionClass),
	}
}

// RegisterModel registers mc with its name. Registering an empty name
// or a name which is already taken by another model is an error.
func (r *Registry) RegisterModel(mc ModelClass) error {
	name := mc.Name()
	if name == "" {
		return fmt.Errorf("empty model name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, found := r.models[name]; found {
		return fmt.Errorf("model %q is already registered", name)
	}
	r.models[name] = mc
	return nil
}

// RegisterCollection registers cc with its name, similar to the
// RegisterModel method.
func (r *Registry) RegisterCollection(cc CollectionClass) error {
	name := cc.Name()
	if name == "" {
		return fmt.Errorf("empty collection name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, found := r.collections[name]; found {
		return fmt.Errorf("collection %q is already registered", name)
	}
	r.collections[name] = cc
	return nil
}

// Model looks up the name model class.
func (r *Registry) Model(name string) (ModelClass, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	mc, found := r.models[name]
	return mc, found
}

// Collection looks up the name collection class.
func (r *Registry) Collection(name string) (CollectionClass, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cc, found := r.collections[name]
	return cc, found
}

// Resolve converts t to a class. A ByClass target is returned as is,
// while a ByName target is looked up among the collections first and
// then among the models. A *ResolutionError is returned if the name
// could not be found or t holds neither a name nor a class.
func (r *Registry) Resolve(t Target) (Class, error) {
	if c, ok := t.Class(); ok {
		return c, nil
	}
	name, _ := t.Name()
	if cc, found := r.Collection(name); found {
		return cc, nil
	}
	if mc, found := r.Model(name); found {
		return mc, nil
	}
	return nil, &ResolutionError{Kind: "target", Name: name}
}

// ModelNames returns the sorted names of all registered models.
func (r *Registry) ModelNames() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// ElementClass returns the model class of c. A ModelClass is returned
// as is and a CollectionClass is converted to its ModelClass.
func ElementClass(c Class) (ModelClass, error) {
	switch cc := c.(type) {
	case ModelClass:
		return cc, nil
	case CollectionClass:
		return cc.ModelClass(), nil
	default:
		return nil, fmt.Errorf("unsupported class type: %T", c)
	}
}
