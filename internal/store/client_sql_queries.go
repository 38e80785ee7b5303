// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-session-sync/models"
)

const (
	sessionsTable = "sessions"
	settingsTable = "settings"

	payloadColumn = "payload"
)

// sessionColumns maps typed session members to their columns.
var sessionColumns = map[string]string{
	models.FieldID:             "id",
	models.FieldName:           "name",
	models.FieldDate:           "date",
	models.FieldLastEditedTime: "last_edited_time",
	models.FieldTag:            "tag",
	models.FieldTabsNumber:     "tabs_number",
	models.FieldWindowsNumber:  "windows_number",
}

// searchableFields are the members Search accepts.
var searchableFields = map[string]bool{
	models.FieldID:             true,
	models.FieldName:           true,
	models.FieldDate:           true,
	models.FieldLastEditedTime: true,
	models.FieldTabsNumber:     true,
	models.FieldWindowsNumber:  true,
}

// projection describes which columns a GetAll reads.
type projection struct {
	// fields are typed members read from their columns, id first.
	fields []string
	// payload is set when the full JSON document has to be read.
	payload bool
	// extra lists requested untyped members kept from the payload.
	extra []string
}

func newProjection(fields []string) projection {
	if len(fields) == 0 {
		return projection{fields: []string{models.FieldID}, payload: true}
	}

	p := projection{fields: []string{models.FieldID}}
	seen := map[string]bool{models.FieldID: true}
	for _, f := range fields {
		if seen[f] {
			continue
		}
		seen[f] = true

		if _, ok := sessionColumns[f]; ok {
			p.fields = append(p.fields, f)
			continue
		}
		p.payload = true
		p.extra = append(p.extra, f)
	}
	return p
}

func (p projection) columns() []string {
	cols := make([]string, 0, len(p.fields)+1)
	for _, f := range p.fields {
		cols = append(cols, sessionColumns[f])
	}
	if p.payload {
		cols = append(cols, payloadColumn)
	}
	return cols
}

func buildSelectSessionsQuery(p projection) (string, []any, error) {
	return sq.Select(p.columns()...).
		From(sessionsTable).
		OrderBy("date DESC", "id").
		ToSql()
}

func buildSelectSessionQuery(id string) (string, []any, error) {
	return sq.Select(payloadColumn).
		From(sessionsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildSearchSessionsQuery(field string, value any) (string, []any, error) {
	if !searchableFields[field] {
		return "", nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	return sq.Select(payloadColumn).
		From(sessionsTable).
		Where(sq.Eq{sessionColumns[field]: value}).
		OrderBy("id").
		ToSql()
}

func buildUpsertSessionQuery(s models.Session, tag, payload string) (string, []any, error) {
	return sq.Insert(sessionsTable).
		Columns("id", "name", "date", "last_edited_time", "tag", "tabs_number", "windows_number", payloadColumn).
		Values(s.ID, s.Name, s.Date, s.LastEditedTime, tag, s.TabsNumber, s.WindowsNumber, payload).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			date = excluded.date,
			last_edited_time = excluded.last_edited_time,
			tag = excluded.tag,
			tabs_number = excluded.tabs_number,
			windows_number = excluded.windows_number,
			payload = excluded.payload`).
		ToSql()
}

func buildDeleteSessionQuery(id string) (string, []any, error) {
	return sq.Delete(sessionsTable).Where(sq.Eq{"id": id}).ToSql()
}

func buildDeleteAllSessionsQuery() (string, []any, error) {
	return sq.Delete(sessionsTable).ToSql()
}

func buildSelectSettingQuery(key string) (string, []any, error) {
	return sq.Select("value").From(settingsTable).Where(sq.Eq{"key": key}).ToSql()
}

func buildUpsertSettingQuery(key, value string) (string, []any, error) {
	return sq.Insert(settingsTable).
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value").
		ToSql()
}
