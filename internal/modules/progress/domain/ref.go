package domain

import (
	"encoding/json"
	"fmt"
)

// Ref is a polymorphic reference: depending on the endpoint the server
// sends either a bare id string or the populated object. It marshals back
// to the bare id, which is what the save endpoint expects.
type Ref[T any] struct {
	id  string
	obj *T
}

// NewRef builds a bare-id reference.
func NewRef[T any](id string) Ref[T] {
	return Ref[T]{id: id}
}

// NewPopulatedRef builds a populated reference.
func NewPopulatedRef[T any](id string, obj T) Ref[T] {
	return Ref[T]{id: id, obj: &obj}
}

// ID returns the referenced id, whichever shape arrived.
func (r Ref[T]) ID() string {
	return r.id
}

// Data returns the populated object, if the server sent one.
func (r Ref[T]) Data() (T, bool) {
	if r.obj == nil {
		var zero T
		return zero, false
	}
	return *r.obj, true
}

// DataOf resolves a reference against a lookup table, preferring the
// populated object when the server sent one. Callers use this instead of
// probing the shape themselves.
func DataOf[T any](r Ref[T], table map[string]T) (T, bool) {
	if obj, ok := r.Data(); ok {
		return obj, true
	}
	obj, ok := table[r.ID()]
	return obj, ok
}

func (r *Ref[T]) UnmarshalJSON(b []byte) error {
	var id string
	if err := json.Unmarshal(b, &id); err == nil {
		r.id = id
		r.obj = nil
		return nil
	}

	var obj T
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("reference is neither an id nor an object: %w", err)
	}
	var probe struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return fmt.Errorf("read reference id: %w", err)
	}
	r.id = probe.ID
	r.obj = &obj
	return nil
}

func (r Ref[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.id)
}
