package resource

import (
	"context"
	"fmt"

	"fooddesk/internal/api"
	"fooddesk/internal/model"
)

// ValidationError is a local, pre-network failure of a form submission.
// It never reaches the HTTP layer.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Submission carries a draft's values to a create or update call.
type Submission struct {
	Values map[string]string
	// ConfirmValues pairs secret fields with their confirmation input.
	ConfirmValues map[string]string
	// ImagePath attaches a local file as the "image" part on multipart resources.
	ImagePath string
}

// Result is the outcome of a successful mutating operation.
type Result struct {
	// Message is the backend confirmation, or a generic one when absent.
	Message string
	// Destination is the navigation intent the shell should act on; empty when
	// the operation does not move the operator anywhere.
	Destination string
}

// ConfirmFunc asks the operator a blocking yes/no question.
type ConfirmFunc func(prompt string) (bool, error)

// ErrAborted reports that the operator declined a confirmation prompt.
var ErrAborted = fmt.Errorf("aborted")

// Orchestrator drives list and CRUD flows for any resource spec.
type Orchestrator struct {
	client  *api.Client
	confirm ConfirmFunc
}

func NewOrchestrator(client *api.Client, confirm ConfirmFunc) *Orchestrator {
	return &Orchestrator{client: client, confirm: confirm}
}

// envelope is the backend's usual {data, message} response shape.
type envelope struct {
	Data    []model.Record `json:"data"`
	Message string         `json:"message"`
}

type detailEnvelope struct {
	Data    model.Record `json:"data"`
	Message string       `json:"message"`
}

// List fetches the resource's collection and runs its enrichment phase.
// The returned records are a fresh snapshot; callers replace, never merge.
func (o *Orchestrator) List(ctx context.Context, spec *Spec, parentID string) ([]model.Record, error) {
	var env envelope
	if err := o.client.Get(ctx, spec.ListPath(parentID), &env); err != nil {
		return nil, err
	}
	items := env.Data
	if items == nil {
		items = []model.Record{}
	}
	if spec.Enrich != nil {
		if err := spec.Enrich(ctx, o.client, items); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// View fetches a single record by id.
func (o *Orchestrator) View(ctx context.Context, spec *Spec, id string) (model.Record, error) {
	var env detailEnvelope
	if err := o.client.Get(ctx, spec.ViewPath(id), &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Create validates the submission locally, then posts it. On success the
// result carries the backend message and the owning list as the destination.
func (o *Orchestrator) Create(ctx context.Context, spec *Spec, parentID string, sub Submission) (*Result, error) {
	if err := o.validate(spec, sub); err != nil {
		return nil, err
	}
	var env detailEnvelope
	var err error
	if spec.Multipart {
		err = o.submitMultipart(ctx, spec.CreatePath(parentID), false, spec, sub, &env)
	} else {
		err = o.client.Post(ctx, spec.CreatePath(parentID), o.jsonBody(spec, sub), &env)
	}
	if err != nil {
		return nil, err
	}
	msg := env.Message
	if msg == "" {
		msg = spec.Name + " created successfully"
	}
	return &Result{Message: msg, Destination: spec.ListDestination(parentID)}, nil
}

// Update validates and submits changed values for an existing record.
// Secret fields are sent only when non-empty.
func (o *Orchestrator) Update(ctx context.Context, spec *Spec, parentID, id string, sub Submission) (*Result, error) {
	if err := o.validate(spec, sub); err != nil {
		return nil, err
	}
	if spec.Nested && spec.UpdateParentField != "" {
		sub = sub.withValue(spec.UpdateParentField, parentID)
	}
	var env detailEnvelope
	var err error
	if spec.Multipart {
		err = o.submitMultipart(ctx, spec.UpdatePath(id), true, spec, sub, &env)
	} else {
		err = o.client.Put(ctx, spec.UpdatePath(id), o.jsonBody(spec, sub), &env)
	}
	if err != nil {
		return nil, err
	}
	msg := env.Message
	if msg == "" {
		msg = spec.Name + " updated successfully"
	}
	return &Result{Message: msg, Destination: spec.ListDestination(parentID)}, nil
}

// Delete asks for confirmation, issues the request, and only then removes the
// record from items by identity. A declined prompt returns ErrAborted without
// any network call; a failed request leaves items untouched.
func (o *Orchestrator) Delete(ctx context.Context, spec *Spec, id string, items []model.Record) ([]model.Record, *Result, error) {
	ok, err := o.confirm(fmt.Sprintf("This will permanently delete the %s. Are you sure?", spec.Name))
	if err != nil {
		return items, nil, err
	}
	if !ok {
		return items, nil, ErrAborted
	}
	var env detailEnvelope
	if err := o.client.Delete(ctx, spec.DeletePath(id), &env); err != nil {
		return items, nil, err
	}
	kept := make([]model.Record, 0, len(items))
	for _, it := range items {
		if it.ID() != id {
			kept = append(kept, it)
		}
	}
	msg := env.Message
	if msg == "" {
		msg = "The " + spec.Name + " has been deleted."
	}
	return kept, &Result{Message: msg}, nil
}

// validate applies the local rules: required fields must be present, and a
// non-empty secret value must match its confirmation. Secret fields are never
// required; on update an empty one simply means "keep the current password".
func (o *Orchestrator) validate(spec *Spec, sub Submission) error {
	for _, f := range spec.Fields {
		v := sub.Values[f.Name]
		if f.Secret {
			if v != "" && sub.ConfirmValues[f.Name] != v {
				return &ValidationError{Field: f.Name, Message: "Passwords don't match"}
			}
			continue
		}
		if f.Required && v == "" {
			return &ValidationError{Field: f.Name, Message: f.Name + " is required"}
		}
	}
	return nil
}

// jsonBody builds the JSON submission from the spec's fields, skipping empty
// secret values.
func (o *Orchestrator) jsonBody(spec *Spec, sub Submission) map[string]string {
	body := make(map[string]string, len(sub.Values))
	for _, f := range spec.Fields {
		v, ok := sub.Values[f.Name]
		if !ok {
			continue
		}
		if f.Secret && v == "" {
			continue
		}
		body[f.Name] = v
	}
	return body
}

func (o *Orchestrator) submitMultipart(ctx context.Context, path string, put bool, spec *Spec, sub Submission, out any) error {
	fields := o.jsonBody(spec, sub)
	if spec.Nested && spec.UpdateParentField != "" {
		if v, ok := sub.Values[spec.UpdateParentField]; ok && v != "" {
			fields[spec.UpdateParentField] = v
		}
	}
	var file *api.FilePart
	if sub.ImagePath != "" {
		part, closeFn, err := api.FilePartFromPath(sub.ImagePath)
		if err != nil {
			return fmt.Errorf("attach image: %w", err)
		}
		defer closeFn()
		file = part
	}
	if put {
		return o.client.PutMultipart(ctx, path, fields, file, out)
	}
	return o.client.PostMultipart(ctx, path, fields, file, out)
}

// withValue returns a copy of the submission with one extra value set.
func (s Submission) withValue(name, value string) Submission {
	values := make(map[string]string, len(s.Values)+1)
	for k, v := range s.Values {
		values[k] = v
	}
	values[name] = value
	out := s
	out.Values = values
	return out
}
