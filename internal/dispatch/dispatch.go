// Package dispatch performs the per-item side effects of a run: adding each
// matched issue or pull request to a project column and optionally
// commenting on it.
package dispatch

import (
	"context"
	"fmt"

	"github.com/spiffcs/teamping/internal/log"
	"github.com/spiffcs/teamping/internal/model"
)

// API is the subset of the GitHub client the dispatcher needs.
type API interface {
	ContentID(ctx context.Context, ref model.ItemRef) (int64, error)
	CreateProjectCard(ctx context.Context, columnID, contentID int64, kind model.ContentKind) error
	CreateComment(ctx context.Context, ref model.ItemRef, body string) error
}

// Action records what was (or, on a dry run, would be) done for one item.
type Action struct {
	Item      model.Item
	Ref       model.ItemRef
	ContentID int64
	Comment   string
}

// Report summarizes a dispatch.
type Report struct {
	Processed int
	Actions   []Action
}

// Dispatcher creates project cards and comments for search hits.
type Dispatcher struct {
	api      API
	columnID int64
	comment  *Template
	dryRun   bool
}

// Option is a functional option for configuring a Dispatcher.
type Option func(*Dispatcher)

// WithComment posts the rendered template on every item.
func WithComment(t *Template) Option {
	return func(d *Dispatcher) {
		d.comment = t
	}
}

// WithDryRun records actions without calling any write endpoint.
func WithDryRun(dryRun bool) Option {
	return func(d *Dispatcher) {
		d.dryRun = dryRun
	}
}

// New creates a Dispatcher targeting a project column.
func New(api API, columnID int64, opts ...Option) *Dispatcher {
	d := &Dispatcher{api: api, columnID: columnID}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch processes items strictly in order. The first failure stops the
// loop; the report then covers only the items completed before it.
func (d *Dispatcher) Dispatch(ctx context.Context, items []model.Item) (*Report, error) {
	report := &Report{}

	for _, item := range items {
		action, err := d.dispatchOne(ctx, item)
		if err != nil {
			return report, err
		}
		report.Actions = append(report.Actions, action)
		report.Processed++
	}

	return report, nil
}

func (d *Dispatcher) dispatchOne(ctx context.Context, item model.Item) (Action, error) {
	ref, err := model.ParseItemURL(item.HTMLURL)
	if err != nil {
		return Action{}, err
	}
	action := Action{Item: item, Ref: ref}

	if d.comment != nil {
		body, err := d.comment.Render(item, ref)
		if err != nil {
			return Action{}, err
		}
		action.Comment = body
	}

	if d.dryRun {
		log.Info("dry run: would add card", "item", ref.String(), "kind", ref.Kind, "column", d.columnID)
		return action, nil
	}

	contentID, err := d.api.ContentID(ctx, ref)
	if err != nil {
		return Action{}, err
	}
	action.ContentID = contentID

	if err := d.api.CreateProjectCard(ctx, d.columnID, contentID, ref.Kind); err != nil {
		return Action{}, err
	}
	log.Info("created project card", "column", d.columnID, "kind", ref.Kind, "item", ref.String())

	if action.Comment != "" {
		if err := d.api.CreateComment(ctx, ref, action.Comment); err != nil {
			return Action{}, fmt.Errorf("card created but commenting failed: %w", err)
		}
		log.Info("created comment", "item", ref.String())
	}

	return action, nil
}
