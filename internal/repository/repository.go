// Package repository provides the generic record store every entity screen is
// backed by: list, get, insert, partial update and guarded delete against the
// database, with a typed error taxonomy instead of raw gorm errors.
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"fleet_console/internal/schema"
)

// ReferentialGuard blocks deletion while rows in Table still point at the
// record through Column. Reason is surfaced to the user verbatim.
type ReferentialGuard struct {
	Table  string
	Column string
	Reason string
}

// Repository is a gorm-backed record store for one entity. All reads and
// writes are scoped to the caller's organization.
type Repository[T any] struct {
	db       *gorm.DB
	entity   schema.Entity
	preloads []string
	guards   []ReferentialGuard
}

// Option configures a Repository.
type Option[T any] func(*Repository[T])

// WithPreloads eagerly loads the named relations on List and Get.
func WithPreloads[T any](relations ...string) Option[T] {
	return func(r *Repository[T]) { r.preloads = relations }
}

// WithGuards installs referential delete guards.
func WithGuards[T any](guards ...ReferentialGuard) Option[T] {
	return func(r *Repository[T]) { r.guards = guards }
}

func New[T any](db *gorm.DB, entity schema.Entity, opts ...Option[T]) *Repository[T] {
	r := &Repository[T]{db: db, entity: entity}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Entity returns the schema entry this repository serves.
func (r *Repository[T]) Entity() schema.Entity { return r.entity }

func (r *Repository[T]) scope(tx *gorm.DB, orgID uint) *gorm.DB {
	return tx.Where("organization_id = ?", orgID)
}

// List returns every matching record in creation order. filters are equality
// matches on schema keys; unknown keys are ignored. An empty result is an
// empty slice, never an error.
func (r *Repository[T]) List(ctx context.Context, orgID uint, filters map[string]any) ([]T, error) {
	tx := r.scope(r.db.WithContext(ctx), orgID)
	for key, value := range filters {
		if _, ok := r.entity.Field(key); ok {
			tx = tx.Where(key+" = ?", value)
		}
	}
	for _, rel := range r.preloads {
		tx = tx.Preload(rel)
	}
	records := make([]T, 0)
	if err := tx.Order("id").Find(&records).Error; err != nil {
		return nil, translate(r.entity.Name, 0, "list "+r.entity.Name, err)
	}
	return records, nil
}

// Get fetches one record by id, NotFoundError when it does not exist.
func (r *Repository[T]) Get(ctx context.Context, orgID, id uint) (*T, error) {
	tx := r.scope(r.db.WithContext(ctx), orgID)
	for _, rel := range r.preloads {
		tx = tx.Preload(rel)
	}
	record := new(T)
	if err := tx.First(record, "id = ?", id).Error; err != nil {
		return nil, translate(r.entity.Name, id, "get "+r.entity.Name, err)
	}
	return record, nil
}

// Insert validates the payload against the schema, assigns the organization
// and creates the record. Identity and timestamps are database-assigned.
func (r *Repository[T]) Insert(ctx context.Context, orgID uint, payload map[string]any) (*T, error) {
	if orgID == 0 {
		return nil, &ValidationError{Entity: r.entity.Name, Problems: []string{"missing organization"}}
	}
	if err := r.validate(payload, true); err != nil {
		return nil, err
	}
	clean := r.editable(payload)
	clean["organization_id"] = orgID
	record := new(T)
	if err := decode(clean, record); err != nil {
		return nil, &ValidationError{Entity: r.entity.Name, Problems: []string{err.Error()}}
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, translate(r.entity.Name, 0, "insert "+r.entity.Name, err)
	}
	// Reload so database-assigned defaults and preloads are visible.
	return r.Get(ctx, orgID, recordID(record))
}

func recordID(record any) uint {
	raw, err := json.Marshal(record)
	if err != nil {
		return 0
	}
	var row map[string]any
	if err := json.Unmarshal(raw, &row); err != nil {
		return 0
	}
	if f, ok := row["id"].(float64); ok {
		return uint(f)
	}
	return 0
}

// Update applies partial semantics: only the provided fields change. The
// record is fetched first so a stale id is a NotFoundError, then reloaded so
// the caller sees the stored state.
func (r *Repository[T]) Update(ctx context.Context, orgID, id uint, partial map[string]any) (*T, error) {
	if err := r.validate(partial, false); err != nil {
		return nil, err
	}
	if _, err := r.Get(ctx, orgID, id); err != nil {
		return nil, err
	}
	changes := r.editable(partial)
	if len(changes) > 0 {
		tx := r.scope(r.db.WithContext(ctx).Model(new(T)), orgID).Where("id = ?", id)
		if err := tx.Updates(changes).Error; err != nil {
			return nil, translate(r.entity.Name, id, "update "+r.entity.Name, err)
		}
	}
	return r.Get(ctx, orgID, id)
}

// Delete removes the record after checking referential guards.
// A guarded delete returns ConflictError and mutates nothing.
func (r *Repository[T]) Delete(ctx context.Context, orgID, id uint) error {
	if _, err := r.Get(ctx, orgID, id); err != nil {
		return err
	}
	for _, guard := range r.guards {
		var count int64
		err := r.db.WithContext(ctx).Table(guard.Table).
			Where(guard.Column+" = ? AND deleted_at IS NULL", id).
			Count(&count).Error
		if err != nil {
			return translate(r.entity.Name, id, "delete "+r.entity.Name, err)
		}
		if count > 0 {
			return &ConflictError{Entity: r.entity.Name, ID: id, Reason: guard.Reason}
		}
	}
	tx := r.scope(r.db.WithContext(ctx), orgID).Delete(new(T), "id = ?", id)
	if tx.Error != nil {
		return translate(r.entity.Name, id, "delete "+r.entity.Name, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return &NotFoundError{Entity: r.entity.Name, ID: id}
	}
	return nil
}

// validate enforces the closed enums and, on insert, required fields.
func (r *Repository[T]) validate(payload map[string]any, insert bool) error {
	var problems []string
	for _, field := range r.entity.Fields {
		value, present := payload[field.Key]
		if insert && field.Required && (!present || value == nil || value == "") {
			problems = append(problems, field.Key+" is required")
			continue
		}
		if !present || value == nil || value == "" || len(field.Options) == 0 {
			continue
		}
		text := fmt.Sprintf("%v", value)
		ok := false
		for _, opt := range field.Options {
			if opt.Value == text {
				ok = true
				break
			}
		}
		if !ok {
			problems = append(problems, fmt.Sprintf("%s: %q is not an allowed value", field.Key, text))
		}
	}
	if len(problems) > 0 {
		return &ValidationError{Entity: r.entity.Name, Problems: problems}
	}
	return nil
}

// editable keeps only schema keys, dropping identity, timestamps and anything
// the schema does not know about.
func (r *Repository[T]) editable(payload map[string]any) map[string]any {
	clean := make(map[string]any, len(payload))
	for key, value := range payload {
		if _, ok := r.entity.Field(key); ok {
			clean[key] = value
		}
	}
	return clean
}

// decode maps a validated payload onto the record struct through its json
// tags, which match the schema keys by construction.
func decode(payload map[string]any, record any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, record)
}
