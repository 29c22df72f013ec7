// Package store provides typed JSON records over a kv.Store.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bizmatters/usdc-actions/internal/kv"
)

// Key prefixes for the record kinds kept in a shared substrate.
const (
	SpecPrefix    = "spec:"
	SessionPrefix = "session:"
)

// ErrNotFound is returned when no record exists for the id.
var ErrNotFound = errors.New("record not found")

// JSON stores values of T as JSON documents under prefix+id.
type JSON[T any] struct {
	kv     kv.Store
	prefix string
}

// NewJSON returns a typed view of s.
func NewJSON[T any](s kv.Store, prefix string) *JSON[T] {
	return &JSON[T]{kv: s, prefix: prefix}
}

// Get loads and decodes the record. A record that fails to decode is
// reported as a wrapped decode error, not ErrNotFound.
func (j *JSON[T]) Get(ctx context.Context, id string) (*T, error) {
	data, err := j.kv.Get(ctx, j.prefix+id)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s%s: %w", j.prefix, id, err)
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to decode %s%s: %w", j.prefix, id, err)
	}
	return &v, nil
}

// Put encodes and writes the record, replacing any previous value.
func (j *JSON[T]) Put(ctx context.Context, id string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s%s: %w", j.prefix, id, err)
	}
	if err := j.kv.Put(ctx, j.prefix+id, data); err != nil {
		return fmt.Errorf("failed to write %s%s: %w", j.prefix, id, err)
	}
	return nil
}

// Delete removes the record. Missing records are not an error.
func (j *JSON[T]) Delete(ctx context.Context, id string) error {
	if err := j.kv.Delete(ctx, j.prefix+id); err != nil {
		return fmt.Errorf("failed to delete %s%s: %w", j.prefix, id, err)
	}
	return nil
}
