package controllers

import (
	"context"

	"stockroom/internal/repos"
	"stockroom/internal/resource"
)

type ViewKind int

const (
	Render ViewKind = iota
	Redirect
	NotFoundPage
)

func (k ViewKind) String() string {
	switch k {
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	case NotFoundPage:
		return "not_found"
	}
	return "unknown"
}

const (
	ViewIndex   = "index"
	ViewDetails = "details"
	ViewCreate  = "create"
	ViewEdit    = "edit"
	ViewDelete  = "delete"

	ActionIndex = "Index"
)

// ViewResult is either a view to render with Model, a redirect to Action, or
// the not-found page.
type ViewResult struct {
	Kind    ViewKind
	Verdict resource.Verdict
	View    string
	Model   any
	Action  string
}

func render(v resource.Verdict, view string, model any) ViewResult {
	return ViewResult{Kind: Render, Verdict: v, View: view, Model: model}
}

func redirect(v resource.Verdict, action string) ViewResult {
	return ViewResult{Kind: Redirect, Verdict: v, Action: action}
}

func notFound(v resource.Verdict) ViewResult {
	return ViewResult{Kind: NotFoundPage, Verdict: v}
}

// View is the page-facing controller for one entity type.
type View[T any, P repos.Record[T]] struct {
	core *resource.Core[T, P]
}

func NewView[T any, P repos.Record[T]](repo repos.Repository[T]) *View[T, P] {
	return &View[T, P]{core: resource.NewCore[T, P](repo)}
}

func (v *View[T, P]) Index(ctx context.Context) (ViewResult, error) {
	out, err := v.core.List(ctx)
	if err != nil {
		return ViewResult{}, err
	}
	return render(out.Verdict, ViewIndex, out.Entities), nil
}

// Details sends a caller without an id back to the index, and a caller with
// an unknown id to the not-found page.
func (v *View[T, P]) Details(ctx context.Context, id *int64) (ViewResult, error) {
	out, err := v.core.FindOptional(ctx, id)
	if err != nil {
		return ViewResult{}, err
	}
	switch out.Verdict {
	case resource.MissingID:
		return redirect(out.Verdict, ActionIndex), nil
	case resource.Found:
		return render(out.Verdict, ViewDetails, out.Entity), nil
	}
	return notFound(out.Verdict), nil
}

// CreateForm renders an empty entity; the repository is not consulted.
func (v *View[T, P]) CreateForm() ViewResult {
	return ViewResult{Kind: Render, View: ViewCreate, Model: new(T)}
}

func (v *View[T, P]) Create(ctx context.Context, entity *T) (ViewResult, error) {
	out, err := v.core.Create(ctx, entity)
	if err != nil {
		return ViewResult{}, err
	}
	return redirect(out.Verdict, ActionIndex), nil
}

func (v *View[T, P]) Edit(ctx context.Context, id int64) (ViewResult, error) {
	return v.show(ctx, id, ViewEdit)
}

// EditPost answers a route/payload id mismatch with the not-found page.
func (v *View[T, P]) EditPost(ctx context.Context, id int64, entity *T) (ViewResult, error) {
	out, err := v.core.Update(ctx, id, entity)
	if err != nil {
		return ViewResult{}, err
	}
	if out.Verdict != resource.Updated {
		return notFound(out.Verdict), nil
	}
	return redirect(out.Verdict, ActionIndex), nil
}

func (v *View[T, P]) Delete(ctx context.Context, id int64) (ViewResult, error) {
	return v.show(ctx, id, ViewDelete)
}

func (v *View[T, P]) DeleteConfirmed(ctx context.Context, id int64) (ViewResult, error) {
	out, err := v.core.Delete(ctx, id)
	if err != nil {
		return ViewResult{}, err
	}
	if out.Verdict != resource.Deleted {
		return notFound(out.Verdict), nil
	}
	return redirect(out.Verdict, ActionIndex), nil
}

func (v *View[T, P]) show(ctx context.Context, id int64, view string) (ViewResult, error) {
	out, err := v.core.Find(ctx, id)
	if err != nil {
		return ViewResult{}, err
	}
	if out.Verdict != resource.Found {
		return notFound(out.Verdict), nil
	}
	return render(out.Verdict, view, out.Entity), nil
}
