package application

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/votiy-api/internal/domain/entity"
	repo "github.com/oksasatya/votiy-api/internal/domain/repository"
)

func TestPollCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.seedUser(t, "a@x.com")

	_, err := f.polls.Create(ctx, u.ID, CreatePollInput{Title: "  "})
	assert.Equal(t, KindValidation, KindOf(err))

	p := f.seedPoll(t, u.ID, true, "B", "A")
	assert.True(t, p.IsPublic)
	assert.Equal(t, u.ID, p.CreatorID)
	require.Len(t, p.Options, 2)
	assert.Equal(t, "B", p.Options[0].Text)
	require.NotNil(t, p.Creator)
	assert.Equal(t, "F", p.Creator.FirstName)

	assert.Equal(t, "Poll", f.index.indexed[p.ID])
	assert.Equal(t, 1, f.cache.invalidated)
}

func TestPollListPublic_UsesCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.seedUser(t, "a@x.com")
	f.seedPoll(t, u.ID, true)
	f.seedPoll(t, u.ID, false)

	polls, err := f.polls.ListPublic(ctx)
	require.NoError(t, err)
	assert.Len(t, polls, 1)
	assert.True(t, f.cache.warm)

	f.cache.polls = []entity.Poll{{ID: 99}}
	polls, err = f.polls.ListPublic(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(99), polls[0].ID)

	mine, err := f.polls.ListByCreator(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestPollVisibilityAndOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "owner@x.com")
	other := f.seedUser(t, "other@x.com")
	private := f.seedPoll(t, owner.ID, false)

	_, err := f.polls.Get(ctx, private.ID, other.ID)
	assert.ErrorIs(t, err, ErrPollNotFound)
	got, err := f.polls.Get(ctx, private.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, private.ID, got.ID)

	title := "Renamed"
	_, err = f.polls.Update(ctx, private.ID, other.ID, entity.PollPatch{Title: &title})
	assert.ErrorIs(t, err, ErrNotPollOwner)
	assert.ErrorIs(t, f.polls.Delete(ctx, private.ID, other.ID), ErrNotPollOwner)

	updated, err := f.polls.Update(ctx, private.ID, owner.ID, entity.PollPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	_, err = f.polls.Update(ctx, 12345, owner.ID, entity.PollPatch{Title: &title})
	assert.ErrorIs(t, err, ErrPollNotFound)

	require.NoError(t, f.polls.Delete(ctx, private.ID, owner.ID))
	require.NoError(t, f.polls.Delete(ctx, private.ID, owner.ID))
	assert.Equal(t, []int64{private.ID}, f.index.removed)
}

func TestPollSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.seedUser(t, "a@x.com")
	pub := f.seedPoll(t, u.ID, true)
	priv := f.seedPoll(t, u.ID, false)
	f.index.hits = []int64{priv.ID, 777, pub.ID}

	_, err := f.polls.SearchPublic(ctx, " ", 5)
	assert.Equal(t, KindValidation, KindOf(err))

	polls, err := f.polls.SearchPublic(ctx, "poll", 5)
	require.NoError(t, err)
	require.Len(t, polls, 1)
	assert.Equal(t, pub.ID, polls[0].ID)

	f.polls.Search = nil
	polls, err = f.polls.SearchPublic(ctx, "poll", 5)
	require.NoError(t, err)
	assert.Empty(t, polls)
}

func TestPollOptions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.seedUser(t, "a@x.com")
	p := f.seedPoll(t, u.ID, true)
	before := f.cache.invalidated

	_, err := f.options.Create(ctx, CreateOptionInput{PollID: p.ID})
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = f.options.Create(ctx, CreateOptionInput{PollID: 9999, Text: "x"})
	assert.Equal(t, KindValidation, KindOf(err))

	o, err := f.options.Create(ctx, CreateOptionInput{PollID: p.ID, Text: "Yes"})
	require.NoError(t, err)
	assert.Equal(t, 0, o.OrderIndex)
	assert.Equal(t, before+1, f.cache.invalidated)

	idx := 3
	o, err = f.options.Update(ctx, o.ID, entity.PollOptionPatch{OrderIndex: &idx})
	require.NoError(t, err)
	assert.Equal(t, "Yes", o.Text)
	assert.Equal(t, 3, o.OrderIndex)

	_, err = f.options.Update(ctx, 9999, entity.PollOptionPatch{OrderIndex: &idx})
	assert.ErrorIs(t, err, ErrOptionNotFound)

	require.NoError(t, f.options.Delete(ctx, o.ID))
	require.NoError(t, f.options.Delete(ctx, o.ID))
	_, err = f.options.Get(ctx, o.ID)
	assert.ErrorIs(t, err, ErrOptionNotFound)
}

func TestVotes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.seedUser(t, "a@x.com")
	p := f.seedPoll(t, u.ID, true, "Yes", "No")
	other := f.seedPoll(t, u.ID, true, "Other")
	yes, no := p.Options[0].ID, p.Options[1].ID

	_, err := f.votes.Cast(ctx, CastVoteInput{PollID: p.ID})
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = f.votes.Cast(ctx, CastVoteInput{PollID: p.ID, OptionID: other.Options[0].ID, UserID: u.ID})
	assert.Equal(t, KindValidation, KindOf(err))

	v, err := f.votes.Cast(ctx, CastVoteInput{PollID: p.ID, OptionID: yes, UserID: u.ID})
	require.NoError(t, err)

	_, err = f.votes.Cast(ctx, CastVoteInput{PollID: p.ID, OptionID: no, UserID: u.ID})
	assert.ErrorIs(t, err, ErrAlreadyVoted)

	votes, err := f.votes.List(ctx, repo.VoteFilter{PollID: p.ID})
	require.NoError(t, err)
	assert.Len(t, votes, 1)

	_, err = f.votes.ChangeOption(ctx, v.ID, 0)
	assert.Equal(t, KindValidation, KindOf(err))
	_, err = f.votes.ChangeOption(ctx, 9999, no)
	assert.ErrorIs(t, err, ErrVoteNotFound)

	changed, err := f.votes.ChangeOption(ctx, v.ID, no)
	require.NoError(t, err)
	assert.Equal(t, no, changed.OptionID)

	tally, err := f.votes.Results(ctx, p.ID)
	require.NoError(t, err)
	counts := map[int64]int64{}
	for _, row := range tally {
		counts[row.OptionID] = row.Votes
	}
	assert.Equal(t, map[int64]int64{yes: 0, no: 1}, counts)

	require.NoError(t, f.votes.Delete(ctx, v.ID))
	require.NoError(t, f.votes.Delete(ctx, v.ID))
	_, err = f.votes.Get(ctx, v.ID)
	assert.ErrorIs(t, err, ErrVoteNotFound)
}

func TestVotes_ConcurrentDuplicatesInsertOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.seedUser(t, "a@x.com")
	p := f.seedPoll(t, u.ID, true, "Yes")

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, dupe int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.votes.Cast(ctx, CastVoteInput{PollID: p.ID, OptionID: p.Options[0].ID, UserID: u.ID})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if err == ErrAlreadyVoted {
				dupe++
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, ok)
	assert.Equal(t, 15, dupe)
}
