// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Session is a saved snapshot of browser tabs and windows.
//
// Only the fields the sync engine indexes are typed. Every other JSON member
// (windows, windowsInfo, sessionStartTime, ...) is kept verbatim in Extra so a
// session survives upload, download and local storage without loss.
type Session struct {
	// ID is the caller-generated identity of the session.
	ID string

	// Name is the display name chosen by the user.
	Name string

	// Date is the creation time in epoch milliseconds. The local store
	// indexes it and the import reconciler uses it as a pre-filter.
	Date int64

	// LastEditedTime is the wall-clock time of the last local mutation in
	// epoch milliseconds. Greater wins during reconciliation.
	LastEditedTime int64

	// Tag is the ordered tag list, including reserved system tags.
	Tag []string

	TabsNumber    int
	WindowsNumber int

	// Extra holds the opaque remainder of the payload.
	Extra map[string]json.RawMessage
}

// Session JSON member names.
const (
	FieldID             = "id"
	FieldName           = "name"
	FieldDate           = "date"
	FieldLastEditedTime = "lastEditedTime"
	FieldTag            = "tag"
	FieldTabsNumber     = "tabsNumber"
	FieldWindowsNumber  = "windowsNumber"
)

var sessionFields = []string{
	FieldID, FieldName, FieldDate, FieldLastEditedTime,
	FieldTag, FieldTabsNumber, FieldWindowsNumber,
}

// IsSessionField reports whether name is one of the typed session members.
func IsSessionField(name string) bool {
	return slices.Contains(sessionFields, name)
}

type sessionJSON struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Date           int64    `json:"date"`
	LastEditedTime int64    `json:"lastEditedTime"`
	Tag            []string `json:"tag"`
	TabsNumber     int      `json:"tabsNumber"`
	WindowsNumber  int      `json:"windowsNumber"`
}

// MarshalJSON writes the typed fields merged with Extra.
func (s Session) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(s.Extra)+len(sessionFields))
	for k, v := range s.Extra {
		out[k] = v
	}

	tag := s.Tag
	if tag == nil {
		tag = []string{}
	}

	typed := map[string]any{
		FieldID:             s.ID,
		FieldName:           s.Name,
		FieldDate:           s.Date,
		FieldLastEditedTime: s.LastEditedTime,
		FieldTag:            tag,
		FieldTabsNumber:     s.TabsNumber,
		FieldWindowsNumber:  s.WindowsNumber,
	}
	for k, v := range typed {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal session field %s: %w", k, err)
		}
		out[k] = raw
	}

	return json.Marshal(out)
}

// UnmarshalJSON reads the typed fields and keeps the rest in Extra.
func (s *Session) UnmarshalJSON(b []byte) error {
	var typed sessionJSON
	if err := json.Unmarshal(b, &typed); err != nil {
		return fmt.Errorf("decode session: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decode session members: %w", err)
	}
	for _, k := range sessionFields {
		delete(raw, k)
	}
	if len(raw) == 0 {
		raw = nil
	}

	*s = Session{
		ID:             typed.ID,
		Name:           typed.Name,
		Date:           typed.Date,
		LastEditedTime: typed.LastEditedTime,
		Tag:            typed.Tag,
		TabsNumber:     typed.TabsNumber,
		WindowsNumber:  typed.WindowsNumber,
		Extra:          raw,
	}
	if s.Tag == nil {
		s.Tag = []string{}
	}

	return nil
}

// HasTag reports whether tag is attached to the session.
func (s Session) HasTag(tag string) bool {
	return slices.Contains(s.Tag, tag)
}

// Clone returns a deep copy so callers may mutate tags without aliasing.
func (s Session) Clone() Session {
	c := s
	if s.Tag != nil {
		c.Tag = slices.Clone(s.Tag)
	}
	if s.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(s.Extra))
		for k, v := range s.Extra {
			c.Extra[k] = slices.Clone(v)
		}
	}
	return c
}
