package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet_console/internal/schema"
)

// fakeStore records uploads and can be told to fail.
type fakeStore struct {
	fail    bool
	uploads []string
}

func (s *fakeStore) Upload(_ context.Context, bucket, filename string, _ io.Reader) (string, error) {
	if s.fail {
		return "", errors.New("bucket unreachable")
	}
	s.uploads = append(s.uploads, filename)
	return fmt.Sprintf("/files/%s/%s", bucket, filename), nil
}

func TestNewDraftKeepsOnlySchemaFields(t *testing.T) {
	record := map[string]any{
		"make":       "Toyota",
		"model":      "Hiace",
		"id":         float64(7),
		"created_at": "2024-01-01T00:00:00Z",
	}
	draft := NewDraft(schema.Vehicles, record)

	payload := draft.Payload()
	assert.Equal(t, "Toyota", payload["make"])
	assert.Equal(t, "Hiace", payload["model"])
	assert.NotContains(t, payload, "id")
	assert.NotContains(t, payload, "created_at")
}

func TestDraftRoundTrip(t *testing.T) {
	record := map[string]any{
		"make":          "Toyota",
		"model":         "Hiace",
		"year":          float64(2021),
		"color":         "white",
		"license_plate": "KDA 123X",
		"status":        "available",
		"mileage":       float64(120000),
	}
	draft := NewDraft(schema.Vehicles, record)

	// An untouched draft submits exactly what it was seeded with.
	assert.Equal(t, record, draft.Payload())
}

func TestSetChangesOneFieldOnly(t *testing.T) {
	draft := NewDraft(schema.Vehicles, map[string]any{
		"make":  "Toyota",
		"color": "white",
	})

	require.NoError(t, draft.Set("color", "blue"))

	payload := draft.Payload()
	assert.Equal(t, "blue", payload["color"])
	assert.Equal(t, "Toyota", payload["make"])
}

func TestSetUnknownField(t *testing.T) {
	draft := NewDraft(schema.Vehicles, nil)
	err := draft.Set("top_speed", 200)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "top_speed")
}

func TestSetCoercesFormStrings(t *testing.T) {
	draft := NewDraft(schema.Activities, nil)

	require.NoError(t, draft.Set("amount", "1500.50"))
	require.NoError(t, draft.Set("vehicle_id", "3"))
	require.NoError(t, draft.Set("date", "2024-03-01"))

	payload := draft.Payload()
	assert.Equal(t, 1500.50, payload["amount"])
	assert.Equal(t, float64(3), payload["vehicle_id"])
	assert.Equal(t, "2024-03-01", payload["date"])

	// Empty strings clear numeric and relation fields.
	require.NoError(t, draft.Set("amount", ""))
	require.NoError(t, draft.Set("vehicle_id", ""))
	assert.Nil(t, draft.Payload()["amount"])
	assert.Nil(t, draft.Payload()["vehicle_id"])

	assert.Error(t, draft.Set("amount", "lots"))
	assert.Error(t, draft.Set("vehicle_id", "first"))
}

func TestSetCoercesCheckbox(t *testing.T) {
	draft := NewDraft(schema.Users, nil)

	require.NoError(t, draft.Set("owner", "true"))
	assert.Equal(t, true, draft.Payload()["owner"])

	require.NoError(t, draft.Set("owner", ""))
	assert.Equal(t, false, draft.Payload()["owner"])
}

func TestStageRejectsNonFileFields(t *testing.T) {
	draft := NewDraft(schema.Drivers, nil)

	require.NoError(t, draft.Stage("profile_photo", "me.jpg", strings.NewReader("jpeg")))
	err := draft.Stage("full_name", "me.jpg", strings.NewReader("jpeg"))
	require.Error(t, err)
}

func TestSaveUploadsBeforeSubmit(t *testing.T) {
	store := &fakeStore{}
	draft := NewDraft(schema.Drivers, map[string]any{"full_name": "Jane Wanjiru"})
	require.NoError(t, draft.Stage("profile_photo", "jane.jpg", strings.NewReader("jpeg")))

	var submitted map[string]any
	err := draft.Save(context.Background(), store, "drivers", func(payload map[string]any) error {
		submitted = payload
		return nil
	})
	require.NoError(t, err)
	require.NotNil(t, submitted)
	assert.Equal(t, "/files/drivers/jane.jpg", submitted["profile_photo"])
	assert.Equal(t, "Jane Wanjiru", submitted["full_name"])
	assert.Equal(t, []string{"jane.jpg"}, store.uploads)
}

func TestSaveAbortsOnUploadFailure(t *testing.T) {
	store := &fakeStore{fail: true}
	draft := NewDraft(schema.Drivers, map[string]any{"full_name": "Jane Wanjiru"})
	require.NoError(t, draft.Stage("profile_photo", "jane.jpg", strings.NewReader("jpeg")))

	called := false
	err := draft.Save(context.Background(), store, "drivers", func(map[string]any) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile_photo")
	assert.False(t, called, "submit must not run after a failed upload")
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	ran := false
	err := Delete(false, func() error { ran = true; return nil })
	require.ErrorIs(t, err, ErrDeleteNotConfirmed)
	assert.False(t, ran)

	require.NoError(t, Delete(true, func() error { ran = true; return nil }))
	assert.True(t, ran)
}
