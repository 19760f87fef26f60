package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	for _, name := range []string{"vehicles", "drivers", "activities", "revenue", "expenses", "users"} {
		e, ok := Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, name, e.Name)
		assert.NotEmpty(t, e.Fields, name)
	}

	_, ok := Lookup("garages")
	assert.False(t, ok)

	assert.Len(t, Names(), 6)
}

func TestFieldLookup(t *testing.T) {
	f, ok := Vehicles.Field("status")
	require.True(t, ok)
	assert.Equal(t, Select, f.Type)
	assert.NotEmpty(t, f.Options)

	_, ok = Vehicles.Field("top_speed")
	assert.False(t, ok)
}

func TestKeysPreserveOrder(t *testing.T) {
	keys := Activities.Keys()
	require.Len(t, keys, len(Activities.Fields))
	assert.Equal(t, "date", keys[0])
	for i, f := range Activities.Fields {
		assert.Equal(t, f.Key, keys[i])
	}
}

func TestFileFields(t *testing.T) {
	var keys []string
	for _, f := range Drivers.FileFields() {
		assert.Equal(t, File, f.Type)
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{
		"profile_photo",
		"drivers_license_photo",
		"criminal_records_photo",
		"police_records_photo",
	}, keys)
}

func TestRelationFields(t *testing.T) {
	f, ok := Vehicles.Field("driver_id")
	require.True(t, ok)
	require.NotNil(t, f.Relation)
	assert.Equal(t, "drivers", f.Relation.Entity)
	assert.Equal(t, "full_name", f.Relation.DisplayField)

	f, ok = Drivers.Field("vehicle_id")
	require.True(t, ok)
	require.NotNil(t, f.Relation)
	assert.Equal(t, "vehicles", f.Relation.Entity)
}
