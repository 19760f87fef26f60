// Package editor holds the draft a record form edits: seeded from a record,
// mutated one field at a time, and submitted whole on save. Staged file
// uploads commit before the payload does, so an upload failure aborts the
// save and no record is written with a missing URL.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"fleet_console/internal/repository"
	"fleet_console/internal/schema"
	"fleet_console/internal/storage"
)

// ErrDeleteNotConfirmed is returned when a delete is attempted without the
// explicit confirmation step.
var ErrDeleteNotConfirmed = errors.New("delete not confirmed")

// stagedFile is a file selected for a field but not yet persisted.
type stagedFile struct {
	field    string
	filename string
	data     io.Reader
}

// Draft is the local edit state for one record.
type Draft struct {
	entity schema.Entity
	values map[string]any
	staged []stagedFile
}

// NewDraft seeds a draft from a record's row form. Only schema fields are
// kept, so identity and timestamps never leak into the payload. A nil record
// starts an empty "new" draft.
func NewDraft(entity schema.Entity, record map[string]any) *Draft {
	values := make(map[string]any)
	for _, f := range entity.Fields {
		if v, ok := record[f.Key]; ok {
			values[f.Key] = v
		}
	}
	return &Draft{entity: entity, values: values}
}

// Set updates a single field's draft value; no other field is touched.
// String values arriving from form posts are coerced to the field's type.
func (d *Draft) Set(key string, value any) error {
	field, ok := d.entity.Field(key)
	if !ok {
		return fmt.Errorf("%s has no field %q", d.entity.Name, key)
	}
	coerced, err := coerce(field, value)
	if err != nil {
		return err
	}
	d.values[key] = coerced
	return nil
}

// Stage holds a file for a file field until save. Nothing is uploaded yet.
func (d *Draft) Stage(key, filename string, data io.Reader) error {
	field, ok := d.entity.Field(key)
	if !ok {
		return fmt.Errorf("%s has no field %q", d.entity.Name, key)
	}
	if field.Type != schema.File {
		return fmt.Errorf("%s.%s is not a file field", d.entity.Name, key)
	}
	d.staged = append(d.staged, stagedFile{field: key, filename: filename, data: data})
	return nil
}

// Payload returns a copy of the draft's editable fields.
func (d *Draft) Payload() map[string]any {
	payload := make(map[string]any, len(d.values))
	for k, v := range d.values {
		payload[k] = v
	}
	return payload
}

// Save uploads every staged file, writes the returned URLs into their fields,
// then submits the full draft. A failed upload aborts before submit and
// surfaces the storage error; the record is not mutated.
func (d *Draft) Save(ctx context.Context, store storage.Store, bucket string, submit func(payload map[string]any) error) error {
	for _, f := range d.staged {
		url, err := store.Upload(ctx, bucket, f.filename, f.data)
		if err != nil {
			return &repository.TransportError{Op: "upload " + f.field, Err: err}
		}
		d.values[f.field] = url
	}
	d.staged = nil
	return submit(d.Payload())
}

// Delete runs del only when the confirmation step was taken; otherwise it
// aborts with no side effect.
func Delete(confirmed bool, del func() error) error {
	if !confirmed {
		return ErrDeleteNotConfirmed
	}
	return del()
}

// coerce converts form-post strings into the field's natural type. Values
// that already have the right type pass through.
func coerce(field schema.Field, value any) (any, error) {
	text, isString := value.(string)
	if !isString {
		return value, nil
	}
	if field.Relation != nil {
		if text == "" {
			return nil, nil
		}
		id, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a record id", field.Key, text)
		}
		return float64(id), nil
	}
	switch field.Type {
	case schema.Number:
		if text == "" {
			return nil, nil
		}
		n, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a number", field.Key, text)
		}
		return n, nil
	case schema.Checkbox:
		if text == "" {
			return false, nil
		}
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a boolean", field.Key, text)
		}
		return b, nil
	default:
		return text, nil
	}
}
