package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/votiy-api/internal/domain/entity"
	repo "github.com/oksasatya/votiy-api/internal/domain/repository"
	"github.com/oksasatya/votiy-api/pkg/helpers"
)

// PollCache holds the public poll listing between writes.
type PollCache interface {
	GetPublic(ctx context.Context) ([]entity.Poll, bool)
	SetPublic(ctx context.Context, polls []entity.Poll)
	Invalidate(ctx context.Context)
}

// PollIndex is the full-text index of polls.
type PollIndex interface {
	Index(ctx context.Context, p *entity.Poll) error
	Remove(ctx context.Context, id int64) error
	Search(ctx context.Context, q string, size int) ([]int64, error)
}

type PollService struct {
	Polls  repo.PollRepository
	Cache  PollCache
	Search PollIndex
	Logger logrus.FieldLogger
}

func NewPollService(polls repo.PollRepository, cache PollCache, index PollIndex, logger logrus.FieldLogger) *PollService {
	return &PollService{Polls: polls, Cache: cache, Search: index, Logger: logger}
}

type OptionInput struct {
	Text        string
	Description *string
	OrderIndex  int
}

type CreatePollInput struct {
	Title       string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	IsPublic    *bool
	Options     []OptionInput
}

// ListPublic returns public polls newest first, from cache when warm.
func (s *PollService) ListPublic(ctx context.Context) ([]entity.Poll, error) {
	if s.Cache != nil {
		if polls, ok := s.Cache.GetPublic(ctx); ok {
			return polls, nil
		}
	}
	polls, err := s.Polls.List(ctx, repo.PollFilter{PublicOnly: true})
	if err != nil {
		s.log().WithError(err).Error("list public polls failed")
		return nil, fromStore(err, nil)
	}
	if s.Cache != nil {
		s.Cache.SetPublic(ctx, polls)
	}
	return polls, nil
}

// ListByCreator returns every poll of one user regardless of visibility.
func (s *PollService) ListByCreator(ctx context.Context, userID string) ([]entity.Poll, error) {
	polls, err := s.Polls.List(ctx, repo.PollFilter{CreatorID: userID})
	if err != nil {
		return nil, fromStore(err, nil)
	}
	return polls, nil
}

// Get hides private polls from everyone but their creator.
func (s *PollService) Get(ctx context.Context, id int64, viewerID string) (*entity.Poll, error) {
	p, err := s.Polls.GetByID(ctx, id)
	if err != nil {
		return nil, fromStore(err, ErrPollNotFound)
	}
	if !p.IsPublic && p.CreatorID != viewerID {
		return nil, ErrPollNotFound
	}
	return p, nil
}

func (s *PollService) Create(ctx context.Context, creatorID string, in CreatePollInput) (*entity.Poll, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, validationError("Validation failed", map[string]string{"title": "is required"})
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return nil, validationError("Validation failed", map[string]string{"endDate": "must not be before startDate"})
	}
	p := &entity.Poll{
		Title:       title,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		CreatorID:   creatorID,
		IsPublic:    in.IsPublic == nil || *in.IsPublic,
	}
	options := make([]entity.PollOption, 0, len(in.Options))
	for _, o := range in.Options {
		options = append(options, entity.PollOption{
			Text:        strings.TrimSpace(o.Text),
			Description: o.Description,
			OrderIndex:  o.OrderIndex,
		})
	}
	if err := s.Polls.Create(ctx, p, options); err != nil {
		s.log().WithError(err).WithField("creator_id", creatorID).Error("create poll failed")
		return nil, fromStore(err, nil)
	}
	s.changed(ctx, p.ID)
	return s.reload(ctx, p), nil
}

// owned loads a poll and checks that userID created it.
func (s *PollService) owned(ctx context.Context, id int64, userID string) (*entity.Poll, error) {
	p, err := s.Polls.GetByID(ctx, id)
	if err != nil {
		return nil, fromStore(err, ErrPollNotFound)
	}
	if p.CreatorID != userID {
		return nil, ErrNotPollOwner
	}
	return p, nil
}

func (s *PollService) Update(ctx context.Context, id int64, userID string, patch entity.PollPatch) (*entity.Poll, error) {
	current, err := s.owned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		if t == "" {
			return nil, validationError("Validation failed", map[string]string{"title": "must not be empty"})
		}
		patch.Title = &t
	}
	if patch.Empty() {
		return current, nil
	}
	p, err := s.Polls.Update(ctx, id, patch)
	if err != nil {
		return nil, fromStore(err, ErrPollNotFound)
	}
	s.changed(ctx, id)
	return p, nil
}

// Delete succeeds when the poll is already gone.
func (s *PollService) Delete(ctx context.Context, id int64, userID string) error {
	if _, err := s.owned(ctx, id, userID); err != nil {
		if errors.Is(err, ErrPollNotFound) {
			return nil
		}
		return err
	}
	if err := s.Polls.Delete(ctx, id); err != nil && repo.KindOf(err) != repo.KindNotFound {
		return fromStore(err, nil)
	}
	if s.Cache != nil {
		s.Cache.Invalidate(ctx)
	}
	if s.Search != nil {
		if err := s.Search.Remove(ctx, id); err != nil {
			s.log().WithError(err).WithField("poll_id", id).Warn("remove poll from index failed")
		}
	}
	return nil
}

// SearchPublic runs a full-text query and returns matching public polls in rank order.
func (s *PollService) SearchPublic(ctx context.Context, q string, size int) ([]entity.Poll, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, validationError("Validation failed", map[string]string{"q": "is required"})
	}
	if s.Search == nil {
		return []entity.Poll{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	ids, err := s.Search.Search(ctx, q, size)
	if err != nil {
		s.log().WithError(err).Warn("poll search failed")
		return nil, &Error{Kind: KindInternal, Message: "Search failed", Err: err}
	}
	out := make([]entity.Poll, 0, len(ids))
	for _, id := range ids {
		p, err := s.Polls.GetByID(ctx, id)
		if err != nil {
			if repo.KindOf(err) == repo.KindNotFound {
				continue
			}
			return nil, fromStore(err, nil)
		}
		if p.IsPublic {
			out = append(out, *p)
		}
	}
	return out, nil
}

// changed drops the cached listing and reindexes one poll after a write to it
// or its options.
func (s *PollService) changed(ctx context.Context, pollID int64) {
	if s.Cache != nil {
		s.Cache.Invalidate(ctx)
	}
	if s.Search == nil {
		return
	}
	p, err := s.Polls.GetByID(ctx, pollID)
	if err != nil {
		return
	}
	if err := s.Search.Index(ctx, p); err != nil {
		s.log().WithError(err).WithField("poll_id", pollID).Warn("index poll failed")
	}
}

// reload returns the stored poll with creator and options, falling back to p.
func (s *PollService) reload(ctx context.Context, p *entity.Poll) *entity.Poll {
	if full, err := s.Polls.GetByID(ctx, p.ID); err == nil {
		return full
	}
	return p
}

func (s *PollService) log() logrus.FieldLogger {
	if s.Logger == nil {
		return helpers.NopLogger()
	}
	return s.Logger
}
