package controllers

import (
	"context"
	"net/http"

	"stockroom/internal/repos"
	"stockroom/internal/resource"
)

type APIKind int

const (
	Ok APIKind = iota
	NoContent
	NotFound
	BadRequest
	Created
)

func (k APIKind) StatusCode() int {
	switch k {
	case Ok:
		return http.StatusOK
	case NoContent:
		return http.StatusNoContent
	case NotFound:
		return http.StatusNotFound
	case BadRequest:
		return http.StatusBadRequest
	case Created:
		return http.StatusCreated
	}
	return http.StatusInternalServerError
}

func (k APIKind) String() string {
	switch k {
	case Ok:
		return "ok"
	case NoContent:
		return "no_content"
	case NotFound:
		return "not_found"
	case BadRequest:
		return "bad_request"
	case Created:
		return "created"
	}
	return "unknown"
}

// ActionGet names the action that serves a single resource; Created results
// point at it.
const ActionGet = "Get"

// APIResult is a status-coded outcome. For Created, Action and ID form the
// location hint of the new resource.
type APIResult struct {
	Kind    APIKind
	Verdict resource.Verdict
	Body    any
	Action  string
	ID      int64
}

// API is the JSON-facing controller for one entity type.
type API[T any, P repos.Record[T]] struct {
	core *resource.Core[T, P]
}

func NewAPI[T any, P repos.Record[T]](repo repos.Repository[T]) *API[T, P] {
	return &API[T, P]{core: resource.NewCore[T, P](repo)}
}

func (a *API[T, P]) List(ctx context.Context) (APIResult, error) {
	out, err := a.core.List(ctx)
	if err != nil {
		return APIResult{}, err
	}
	return APIResult{Kind: Ok, Verdict: out.Verdict, Body: out.Entities}, nil
}

func (a *API[T, P]) Get(ctx context.Context, id int64) (APIResult, error) {
	out, err := a.core.Find(ctx, id)
	if err != nil {
		return APIResult{}, err
	}
	if out.Verdict != resource.Found {
		return APIResult{Kind: NotFound, Verdict: out.Verdict, ID: id}, nil
	}
	return APIResult{Kind: Ok, Verdict: out.Verdict, Body: out.Entity, ID: id}, nil
}

func (a *API[T, P]) Create(ctx context.Context, entity *T) (APIResult, error) {
	out, err := a.core.Create(ctx, entity)
	if err != nil {
		return APIResult{}, err
	}
	return APIResult{Kind: Created, Verdict: out.Verdict, Body: out.Entity, Action: ActionGet, ID: out.ID}, nil
}

func (a *API[T, P]) Update(ctx context.Context, id int64, entity *T) (APIResult, error) {
	out, err := a.core.Update(ctx, id, entity)
	if err != nil {
		return APIResult{}, err
	}
	if out.Verdict == resource.Mismatch {
		return APIResult{Kind: BadRequest, Verdict: out.Verdict, ID: id}, nil
	}
	return APIResult{Kind: NoContent, Verdict: out.Verdict, ID: id}, nil
}

func (a *API[T, P]) Delete(ctx context.Context, id int64) (APIResult, error) {
	out, err := a.core.Delete(ctx, id)
	if err != nil {
		return APIResult{}, err
	}
	if out.Verdict != resource.Deleted {
		return APIResult{Kind: NotFound, Verdict: out.Verdict, ID: id}, nil
	}
	return APIResult{Kind: NoContent, Verdict: out.Verdict, ID: id}, nil
}
