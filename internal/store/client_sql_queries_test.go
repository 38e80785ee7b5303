package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-session-sync/models"
)

func TestNewProjection(t *testing.T) {
	tests := []struct {
		name    string
		fields  []string
		want    []string
		payload bool
		extra   []string
	}{
		{name: "no fields reads everything", want: []string{"id", "payload"}, payload: true},
		{name: "typed only", fields: []string{models.FieldName, models.FieldDate}, want: []string{"id", "name", "date"}},
		{name: "id not duplicated", fields: []string{models.FieldID, models.FieldTag}, want: []string{"id", "tag"}},
		{name: "untyped needs payload", fields: []string{"windows", models.FieldTabsNumber}, want: []string{"id", "tabs_number", "payload"}, payload: true, extra: []string{"windows"}},
		{name: "duplicates collapsed", fields: []string{"windows", "windows"}, want: []string{"id", "payload"}, payload: true, extra: []string{"windows"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProjection(tt.fields)
			assert.Equal(t, tt.want, p.columns())
			assert.Equal(t, tt.payload, p.payload)
			assert.Equal(t, tt.extra, p.extra)
		})
	}
}

func TestBuildSearchSessionsQuery(t *testing.T) {
	query, args, err := buildSearchSessionsQuery(models.FieldLastEditedTime, int64(7))
	require.NoError(t, err)
	assert.Equal(t, "SELECT payload FROM sessions WHERE last_edited_time = ? ORDER BY id", query)
	assert.Equal(t, []any{int64(7)}, args)

	_, _, err = buildSearchSessionsQuery("nope", 1)
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestBuildSelectSessionsQuery(t *testing.T) {
	query, args, err := buildSelectSessionsQuery(newProjection(nil))
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, payload FROM sessions ORDER BY date DESC, id", query)
	assert.Empty(t, args)
}
