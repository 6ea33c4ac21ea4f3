// Package upsert models the outcome of a PUT on a resource id: the entity
// was either updated in place or created under the requested id.
package upsert

import (
	"context"
	"errors"

	"github.com/tinoosan/cinerator/internal/errs"
)

// Kind tags an upsert outcome.
type Kind int

const (
	Updated Kind = iota
	Created
)

func (k Kind) String() string {
	if k == Created {
		return "created"
	}
	return "updated"
}

// Result carries the stored entity and how it got there.
type Result[T any] struct {
	Kind  Kind
	Value T
}

// Created reports whether the entity did not exist before the call.
func (r Result[T]) Created() bool { return r.Kind == Created }

// Apply runs update when lookup finds the entity and create when lookup
// reports errs.ErrNotFound. Any other lookup error is returned as is.
func Apply[T any](ctx context.Context, lookup func(context.Context) error, update, create func(context.Context) (T, error)) (Result[T], error) {
	err := lookup(ctx)
	switch {
	case err == nil:
		v, err := update(ctx)
		if err != nil {
			return Result[T]{}, err
		}
		return Result[T]{Kind: Updated, Value: v}, nil
	case errors.Is(err, errs.ErrNotFound):
		v, err := create(ctx)
		if err != nil {
			return Result[T]{}, err
		}
		return Result[T]{Kind: Created, Value: v}, nil
	default:
		return Result[T]{}, err
	}
}
