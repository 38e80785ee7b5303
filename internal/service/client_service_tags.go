package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/MKhiriev/go-session-sync/internal/logger"
	"github.com/MKhiriev/go-session-sync/internal/store"
	"github.com/MKhiriev/go-session-sync/models"
)

// SystemTags are reserved tag names attached by the host itself.
var SystemTags = []string{"regular", "winClose", "browserExit", "temp", "_displayAll", "_user", "_auto"}

var (
	// leading and trailing runs of ASCII and ideographic spaces
	edgeSpaces     = regexp.MustCompile(`^[ \x{3000}]+|[ \x{3000}]+$`)
	multipleSpaces = regexp.MustCompile(` +`)
)

// SanitizeTag strips leading and trailing spaces (including U+3000) and
// collapses runs of ASCII spaces.
func SanitizeTag(tag string) string {
	tag = edgeSpaces.ReplaceAllString(tag, "")
	return multipleSpaces.ReplaceAllString(tag, " ")
}

type tagService struct {
	repo     store.SessionRepository
	sessions SessionService
	reserved []string
	policy   StorePolicy
}

// NewTagService returns the [TagService]. extraReserved adds host-supplied
// names, typically localized system tag labels, to [SystemTags].
func NewTagService(repo store.SessionRepository, sessions SessionService, extraReserved []string, policy StorePolicy) TagService {
	reserved := slices.Clone(SystemTags)
	for _, r := range extraReserved {
		if r = strings.TrimSpace(r); r != "" {
			reserved = append(reserved, r)
		}
	}

	return &tagService{
		repo:     repo,
		sessions: sessions,
		reserved: reserved,
		policy:   policy,
	}
}

func (t *tagService) AddTag(ctx context.Context, id, tag string) error {
	log := logger.FromContext(ctx).With().Str("func", "tagService.AddTag").Str("id", id).Logger()

	item, ok, err := t.load(ctx, id)
	if err != nil || !ok {
		return err
	}

	tag = SanitizeTag(tag)
	switch {
	case tag == "":
		log.Debug().Msg("empty tag ignored")
		return nil
	case slices.Contains(t.reserved, tag):
		log.Debug().Str("tag", tag).Msg("reserved tag ignored")
		return nil
	case item.HasTag(tag):
		log.Debug().Str("tag", tag).Msg("tag already present")
		return nil
	}

	item.Tag = append(item.Tag, tag)
	return t.sessions.Update(ctx, item)
}

func (t *tagService) RemoveTag(ctx context.Context, id, tag string) error {
	item, ok, err := t.load(ctx, id)
	if err != nil || !ok {
		return err
	}

	if !item.HasTag(tag) {
		return nil
	}

	item.Tag = slices.DeleteFunc(item.Tag, func(v string) bool { return v == tag })
	return t.sessions.Update(ctx, item)
}

func (t *tagService) ListByTag(ctx context.Context, tag string, fields ...string) ([]models.Session, error) {
	if len(fields) > 0 {
		fields = append(slices.Clone(fields), models.FieldTag, models.FieldDate)
	}

	all, err := t.repo.GetAll(ctx, fields...)
	if err != nil {
		return nil, fmt.Errorf("get all sessions: %w", err)
	}

	tagged := slices.DeleteFunc(all, func(s models.Session) bool { return !s.HasTag(tag) })
	slices.SortStableFunc(tagged, func(a, b models.Session) int { return cmp.Compare(b.Date, a.Date) })

	return tagged, nil
}

// load returns the session, or ok=false when it does not exist.
func (t *tagService) load(ctx context.Context, id string) (models.Session, bool, error) {
	item, err := t.repo.Get(ctx, id)
	if err == nil {
		return item, true, nil
	}
	if errors.Is(err, store.ErrSessionNotFound) {
		return models.Session{}, false, nil
	}

	err = t.policy.handle(ctx, fmt.Errorf("get session %s: %w", id, err), "tagService.load", "failed to load session")
	return models.Session{}, false, err
}
