package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/cnap/internal/cnap/domain"
	"github.com/aussiebroadwan/cnap/internal/cnap/store"
)

// Lookup is the result of a resolver query: a value, or nothing.
type Lookup[T any] struct {
	Value T
	Found bool
}

func Found[T any](v T) Lookup[T] { return Lookup[T]{Value: v, Found: true} }

func NotFound[T any]() Lookup[T] { return Lookup[T]{} }

func lookup[T any](v T, err error) (Lookup[T], error) {
	switch {
	case err == nil:
		return Found(v), nil
	case errors.Is(err, store.ErrNotFound):
		return NotFound[T](), nil
	}
	return NotFound[T](), err
}

// Resolver answers the three identity questions the workflows branch on.
// It has no side effects. Pass a Tx-scoped store to resolve inside a
// transaction.
type Resolver struct {
	Store store.Store
}

func (r Resolver) FindUserByEmail(ctx context.Context, email string) (Lookup[domain.User], error) {
	return lookup(r.Store.Users().GetUserByEmail(ctx, email))
}

func (r Resolver) FindResearchGroupByPIEmail(ctx context.Context, email string) (Lookup[domain.ResearchGroup], error) {
	return lookup(r.Store.ResearchGroups().GetResearchGroupByPIEmail(ctx, email))
}

func (r Resolver) FindAssociation(ctx context.Context, userID, groupID string) (Lookup[domain.CnapUser], error) {
	return lookup(r.Store.Members().GetMember(ctx, userID, groupID))
}
