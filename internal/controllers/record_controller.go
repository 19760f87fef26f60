package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"fleet_console/internal/editor"
	"fleet_console/internal/middleware"
	"fleet_console/internal/repository"
	"fleet_console/internal/storage"
	"fleet_console/internal/table"
)

// RecordController serves the generic CRUD surface of one entity: list as a
// table, get, create, partial update and confirmed delete. Entity-specific
// behavior is configuration, not copied code.
type RecordController[T any] struct {
	repo    *repository.Repository[T]
	store   storage.Store
	bucket  string
	prepare func(payload map[string]any, insert bool) error
	redact  []string
}

// RecordOption configures a RecordController.
type RecordOption[T any] func(*RecordController[T])

// WithPrepare runs before every insert/update payload is submitted (e.g. to
// hash a user password).
func WithPrepare[T any](fn func(payload map[string]any, insert bool) error) RecordOption[T] {
	return func(rc *RecordController[T]) { rc.prepare = fn }
}

// WithRedact strips the named keys from every response row.
func WithRedact[T any](keys ...string) RecordOption[T] {
	return func(rc *RecordController[T]) { rc.redact = keys }
}

func NewRecordController[T any](repo *repository.Repository[T], store storage.Store, bucket string, opts ...RecordOption[T]) *RecordController[T] {
	rc := &RecordController[T]{repo: repo, store: store, bucket: bucket}
	for _, opt := range opts {
		opt(rc)
	}
	return rc
}

// List renders the entity's table: equality filters on schema keys, then
// client-visible sort and pagination on the fetched set.
func (rc *RecordController[T]) List(c *gin.Context) {
	orgID := middleware.OrganizationID(c)
	entity := rc.repo.Entity()

	filters := map[string]any{}
	for _, f := range entity.Fields {
		if v, ok := c.GetQuery(f.Key); ok && v != "" {
			filters[f.Key] = v
		}
	}

	records, err := rc.repo.List(c.Request.Context(), orgID, filters)
	if err != nil {
		respondError(c, err)
		return
	}
	rows, err := table.RowsFrom(records)
	if err != nil {
		respondError(c, &repository.TransportError{Op: "render " + entity.Name, Err: err})
		return
	}
	rc.redactRows(rows)

	s := table.Sort{Key: c.Query("sort"), Direction: table.Direction(c.Query("direction"))}
	if s.Key != "" && s.Direction == "" {
		s.Direction = table.Ascending
	}
	page := intQuery(c, "page", 1)
	pageSize := intQuery(c, "page_size", table.DefaultPageSize)

	c.JSON(http.StatusOK, gin.H{"data": table.Build(entity, rows, s, page, pageSize)})
}

func (rc *RecordController[T]) Get(c *gin.Context) {
	orgID := middleware.OrganizationID(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	record, err := rc.repo.Get(c.Request.Context(), orgID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	rc.respondRecord(c, http.StatusOK, record)
}

// Create accepts JSON or, when the editor submits files, multipart form data.
// Staged uploads commit before the insert; an upload failure aborts it.
func (rc *RecordController[T]) Create(c *gin.Context) {
	orgID := middleware.OrganizationID(c)
	draft, closers, err := rc.draftFromRequest(c, nil)
	defer closeAll(closers)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var created *T
	err = draft.Save(c.Request.Context(), rc.store, rc.bucket, func(payload map[string]any) error {
		if rc.prepare != nil {
			if err := rc.prepare(payload, true); err != nil {
				return err
			}
		}
		record, err := rc.repo.Insert(c.Request.Context(), orgID, payload)
		if err != nil {
			return err
		}
		created = record
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	rc.respondRecord(c, http.StatusCreated, created)
}

// Update is partial for JSON bodies (inline edit); a multipart body goes
// through the editor draft, seeded from the stored record, and submits the
// full draft after its uploads succeed.
func (rc *RecordController[T]) Update(c *gin.Context) {
	orgID := middleware.OrganizationID(c)
	id, ok := idParam(c)
	if !ok {
		return
	}

	var seed table.Row
	if isMultipart(c) {
		current, err := rc.repo.Get(c.Request.Context(), orgID, id)
		if err != nil {
			respondError(c, err)
			return
		}
		seed, err = table.RowFrom(current)
		if err != nil {
			respondError(c, &repository.TransportError{Op: "render record", Err: err})
			return
		}
	}

	draft, closers, err := rc.draftFromRequest(c, seed)
	defer closeAll(closers)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var updated *T
	err = draft.Save(c.Request.Context(), rc.store, rc.bucket, func(payload map[string]any) error {
		if rc.prepare != nil {
			if err := rc.prepare(payload, false); err != nil {
				return err
			}
		}
		record, err := rc.repo.Update(c.Request.Context(), orgID, id, payload)
		if err != nil {
			return err
		}
		updated = record
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	rc.respondRecord(c, http.StatusOK, updated)
}

// Delete is permanent and therefore demands the explicit confirm step the
// console's interstitial drives (?confirm=true).
func (rc *RecordController[T]) Delete(c *gin.Context) {
	orgID := middleware.OrganizationID(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	confirmed := c.Query("confirm") == "true"
	err := editor.Delete(confirmed, func() error {
		return rc.repo.Delete(c.Request.Context(), orgID, id)
	})
	if errors.Is(err, editor.ErrDeleteNotConfirmed) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "deletion requires confirmation"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": rc.repo.Entity().Title + " record deleted"})
}

// draftFromRequest builds the editor draft for this request: form fields and
// staged files from multipart bodies, a plain payload from JSON ones. Keys
// the schema does not know (id, timestamps echoed back by the client) are
// dropped rather than rejected.
func (rc *RecordController[T]) draftFromRequest(c *gin.Context, seed table.Row) (*editor.Draft, []interface{ Close() error }, error) {
	entity := rc.repo.Entity()
	draft := editor.NewDraft(entity, seed)
	var closers []interface{ Close() error }

	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			return draft, closers, err
		}
		for key, values := range form.Value {
			if _, known := entity.Field(key); !known || len(values) == 0 {
				continue
			}
			if err := draft.Set(key, values[0]); err != nil {
				return draft, closers, err
			}
		}
		for key, files := range form.File {
			if _, known := entity.Field(key); !known || len(files) == 0 {
				continue
			}
			file, err := files[0].Open()
			if err != nil {
				return draft, closers, err
			}
			closers = append(closers, file)
			if err := draft.Stage(key, files[0].Filename, file); err != nil {
				return draft, closers, err
			}
		}
		return draft, closers, nil
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		return draft, closers, err
	}
	for key, value := range payload {
		if _, known := entity.Field(key); !known {
			continue
		}
		if err := draft.Set(key, value); err != nil {
			return draft, closers, err
		}
	}
	return draft, closers, nil
}

func (rc *RecordController[T]) respondRecord(c *gin.Context, status int, record *T) {
	row, err := table.RowFrom(record)
	if err != nil {
		respondError(c, &repository.TransportError{Op: "render record", Err: err})
		return
	}
	rc.redactRows([]table.Row{row})
	c.JSON(status, gin.H{"data": row})
}

func (rc *RecordController[T]) redactRows(rows []table.Row) {
	for _, row := range rows {
		for _, key := range rc.redact {
			delete(row, key)
		}
	}
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

func closeAll(closers []interface{ Close() error }) {
	for _, cl := range closers {
		cl.Close()
	}
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return 0, false
	}
	return uint(id), true
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// respondError maps the repository taxonomy onto HTTP statuses. Every
// user-initiated mutation resolves to a success body or a visible error.
func respondError(c *gin.Context, err error) {
	var (
		validation *repository.ValidationError
		notFound   *repository.NotFoundError
		conflict   *repository.ConflictError
		partial    *repository.PartialFailureError
		transport  *repository.TransportError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record no longer exists"})
	case errors.As(err, &partial):
		c.JSON(http.StatusConflict, gin.H{
			"error":          "inconsistent state, please retry assignment",
			"completed_side": partial.CompletedSide,
			"detail":         partial.Error(),
		})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Reason})
	case errors.As(err, &transport):
		c.JSON(http.StatusBadGateway, gin.H{"error": "backend unavailable, please retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
