// Package resource holds the request logic shared by the API and view
// controllers. Each operation consults the repository, performs at most one
// mutation and reports a neutral Outcome that the controllers reshape.
package resource

import (
	"context"

	"stockroom/internal/repos"
)

type Verdict int

const (
	Listed Verdict = iota
	Found
	Created
	Updated
	Deleted
	NotFound
	// Mismatch: the route id and the payload id differ; storage was not touched.
	Mismatch
	// MissingID: no identifier was supplied at all; storage was not touched.
	MissingID
)

func (v Verdict) String() string {
	switch v {
	case Listed:
		return "listed"
	case Found:
		return "found"
	case Created:
		return "created"
	case Updated:
		return "updated"
	case Deleted:
		return "deleted"
	case NotFound:
		return "not_found"
	case Mismatch:
		return "mismatch"
	case MissingID:
		return "missing_id"
	}
	return "unknown"
}

// Outcome is the result of one request. Entity is set for Found, Created,
// Updated and Deleted; Entities for Listed; ID whenever an id is known.
type Outcome[T any] struct {
	Verdict  Verdict
	ID       int64
	Entity   *T
	Entities []T
}

// Core runs the CRUD state machine against a repository. It is stateless and
// safe for concurrent use as long as the repository is.
type Core[T any, P repos.Record[T]] struct {
	repo repos.Repository[T]
}

func NewCore[T any, P repos.Record[T]](repo repos.Repository[T]) *Core[T, P] {
	return &Core[T, P]{repo: repo}
}

func (c *Core[T, P]) List(ctx context.Context) (Outcome[T], error) {
	all, err := c.repo.GetAll(ctx)
	if err != nil {
		return Outcome[T]{}, err
	}
	if all == nil {
		all = []T{}
	}
	return Outcome[T]{Verdict: Listed, Entities: all}, nil
}

func (c *Core[T, P]) Find(ctx context.Context, id int64) (Outcome[T], error) {
	e, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return Outcome[T]{}, err
	}
	if e == nil {
		return Outcome[T]{Verdict: NotFound, ID: id}, nil
	}
	return Outcome[T]{Verdict: Found, ID: id, Entity: e}, nil
}

// FindOptional is Find for callers whose identifier may be absent.
func (c *Core[T, P]) FindOptional(ctx context.Context, id *int64) (Outcome[T], error) {
	if id == nil {
		return Outcome[T]{Verdict: MissingID}, nil
	}
	return c.Find(ctx, *id)
}

func (c *Core[T, P]) Create(ctx context.Context, entity *T) (Outcome[T], error) {
	if err := c.repo.Create(ctx, entity); err != nil {
		return Outcome[T]{}, err
	}
	return Outcome[T]{Verdict: Created, ID: P(entity).PrimaryKey(), Entity: entity}, nil
}

// Update rejects a payload whose id differs from routeID before any
// repository call. Existence is not checked; the backend decides.
func (c *Core[T, P]) Update(ctx context.Context, routeID int64, entity *T) (Outcome[T], error) {
	if P(entity).PrimaryKey() != routeID {
		return Outcome[T]{Verdict: Mismatch, ID: routeID}, nil
	}
	if err := c.repo.Update(ctx, entity); err != nil {
		return Outcome[T]{}, err
	}
	return Outcome[T]{Verdict: Updated, ID: routeID, Entity: entity}, nil
}

// Delete only calls the repository's Delete when the entity exists, and
// hands it the stored entity.
func (c *Core[T, P]) Delete(ctx context.Context, id int64) (Outcome[T], error) {
	found, err := c.Find(ctx, id)
	if err != nil || found.Verdict != Found {
		return found, err
	}
	if err := c.repo.Delete(ctx, found.Entity); err != nil {
		return Outcome[T]{}, err
	}
	return Outcome[T]{Verdict: Deleted, ID: id, Entity: found.Entity}, nil
}
