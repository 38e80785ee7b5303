// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-session-sync/internal/utils"
)

const (
	// ManifestMimeType is the fixed mime type recorded for every session file.
	ManifestMimeType = "application/json"

	// ManifestNameBudget is the byte budget for the session name mirrored
	// into a manifest entry.
	ManifestNameBudget = 115
)

// ManifestEntry is the remote-visible projection of a [Session].
//
// Name is always written equal to ID so manifests stay readable by clients
// that look entries up by name.
type ManifestEntry struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	AppProperties AppProperties `json:"appProperties"`
	MimeType      string        `json:"mimeType"`
}

// AppProperties carries the session metadata needed to plan a sync without
// downloading payloads.
type AppProperties struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Date           int64   `json:"date"`
	LastEditedTime int64   `json:"lastEditedTime"`
	Tag            TagList `json:"tag"`
	TabsNumber     int     `json:"tabsNumber"`
	WindowsNumber  int     `json:"windowsNumber"`
}

// NewManifestEntry projects s into its manifest entry.
func NewManifestEntry(s Session) ManifestEntry {
	tag := TagList(s.Tag)
	if tag == nil {
		tag = TagList{}
	}

	return ManifestEntry{
		ID:   s.ID,
		Name: s.ID,
		AppProperties: AppProperties{
			ID:             s.ID,
			Name:           utils.TruncateBytes(s.Name, ManifestNameBudget),
			Date:           s.Date,
			LastEditedTime: s.LastEditedTime,
			Tag:            tag,
			TabsNumber:     s.TabsNumber,
			WindowsNumber:  s.WindowsNumber,
		},
		MimeType: ManifestMimeType,
	}
}

// UnmarshalJSON decodes an entry written by any manifest format. An entry
// without an id takes its identity from name.
func (e *ManifestEntry) UnmarshalJSON(b []byte) error {
	type plain ManifestEntry
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return fmt.Errorf("decode manifest entry: %w", err)
	}
	if p.ID == "" {
		p.ID = p.Name
	}
	if p.AppProperties.Tag == nil {
		p.AppProperties.Tag = TagList{}
	}

	*e = ManifestEntry(p)
	return nil
}

// UnmarshalJSON accepts numeric members encoded either as JSON numbers or as
// decimal strings. Missing members keep their zero value.
func (a *AppProperties) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID             string          `json:"id"`
		Name           string          `json:"name"`
		Date           json.RawMessage `json:"date"`
		LastEditedTime json.RawMessage `json:"lastEditedTime"`
		Tag            TagList         `json:"tag"`
		TabsNumber     json.RawMessage `json:"tabsNumber"`
		WindowsNumber  json.RawMessage `json:"windowsNumber"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decode app properties: %w", err)
	}

	if raw.Tag == nil {
		raw.Tag = TagList{}
	}

	*a = AppProperties{
		ID:             raw.ID,
		Name:           raw.Name,
		Date:           flexInt(raw.Date),
		LastEditedTime: flexInt(raw.LastEditedTime),
		Tag:            raw.Tag,
		TabsNumber:     int(flexInt(raw.TabsNumber)),
		WindowsNumber:  int(flexInt(raw.WindowsNumber)),
	}
	return nil
}

func flexInt(raw json.RawMessage) int64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0
		}
		text = strings.TrimSpace(text)
	}

	if v, err := strconv.ParseInt(text, 10, 64); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return int64(f)
	}
	return 0
}

// TagList is a tag sequence. Older manifests stored it as a comma-joined
// string, which is split on decode.
type TagList []string

// UnmarshalJSON decodes a JSON array, a comma-joined string or null.
func (t *TagList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = TagList{}
		return nil
	}

	if b[0] == '"' {
		var joined string
		if err := json.Unmarshal(b, &joined); err != nil {
			return fmt.Errorf("decode joined tags: %w", err)
		}
		if joined == "" {
			*t = TagList{}
			return nil
		}
		*t = strings.Split(joined, ",")
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil {
		return fmt.Errorf("decode tag list: %w", err)
	}

	list := make(TagList, 0, len(items))
	for _, item := range items {
		item = bytes.TrimSpace(item)
		switch {
		case bytes.Equal(item, []byte("null")):
			continue
		case len(item) > 0 && item[0] == '"':
			var tag string
			if err := json.Unmarshal(item, &tag); err != nil {
				return fmt.Errorf("decode tag: %w", err)
			}
			list = append(list, tag)
		case len(item) > 0 && (item[0] == '{' || item[0] == '['):
			continue
		default:
			// numbers and booleans written by older clients
			list = append(list, string(item))
		}
	}
	*t = list
	return nil
}

// Manifest is the single remote index cataloguing every uploaded session.
type Manifest struct {
	Files     []ManifestEntry `json:"files"`
	UpdatedAt int64           `json:"updatedAt"`

	// ETag is the entity tag the server returned on read, if any.
	ETag string `json:"-"`

	// Exists is false when the remote index was absent on read.
	Exists bool `json:"-"`

	// Skipped counts entries dropped on read because they were malformed
	// or had no identity.
	Skipped int `json:"-"`
}

// UnmarshalJSON tolerates a missing or non-array files member. Entries that
// cannot be decoded are dropped and counted in Skipped.
func (m *Manifest) UnmarshalJSON(b []byte) error {
	var raw struct {
		Files     json.RawMessage `json:"files"`
		UpdatedAt json.RawMessage `json:"updatedAt"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decode manifest: %w", err)
	}

	files := []ManifestEntry{}
	skipped := 0
	trimmed := bytes.TrimSpace(raw.Files)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return fmt.Errorf("decode manifest files: %w", err)
		}
		for _, item := range items {
			var e ManifestEntry
			if err := json.Unmarshal(item, &e); err != nil || e.ID == "" {
				skipped++
				continue
			}
			files = append(files, e)
		}
	}

	m.Files = files
	m.Skipped = skipped
	m.UpdatedAt = flexInt(raw.UpdatedAt)
	return nil
}

// Find returns the entry with the given identity.
func (m Manifest) Find(id string) (ManifestEntry, bool) {
	for _, f := range m.Files {
		if f.ID == id {
			return f, true
		}
	}
	return ManifestEntry{}, false
}

// Without returns the entries whose identity differs from id.
func (m Manifest) Without(id string) []ManifestEntry {
	out := make([]ManifestEntry, 0, len(m.Files))
	for _, f := range m.Files {
		if f.ID != id {
			out = append(out, f)
		}
	}
	return out
}

// Upsert returns the entries with any previous entry for e.ID replaced by e,
// which is appended last.
func (m Manifest) Upsert(e ManifestEntry) []ManifestEntry {
	return append(m.Without(e.ID), e)
}
