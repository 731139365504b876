package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/votiy-api/internal/domain/entity"
	"github.com/oksasatya/votiy-api/internal/infrastructure/memory"
	"github.com/oksasatya/votiy-api/pkg/helpers"
	"github.com/oksasatya/votiy-api/pkg/mailer"
)

type fakePublisher struct {
	mu   sync.Mutex
	jobs []mailer.EmailJob
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, body.(mailer.EmailJob))
	return nil
}

func (f *fakePublisher) templates() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.jobs))
	for _, j := range f.jobs {
		out = append(out, j.Template)
	}
	return out
}

type fakeCache struct {
	polls       []entity.Poll
	warm        bool
	invalidated int
}

func (c *fakeCache) GetPublic(context.Context) ([]entity.Poll, bool) { return c.polls, c.warm }
func (c *fakeCache) SetPublic(_ context.Context, p []entity.Poll)    { c.polls, c.warm = p, true }
func (c *fakeCache) Invalidate(context.Context)                      { c.polls, c.warm = nil, false; c.invalidated++ }

type fakeIndex struct {
	indexed map[int64]string
	removed []int64
	hits    []int64
}

func (x *fakeIndex) Index(_ context.Context, p *entity.Poll) error {
	if x.indexed == nil {
		x.indexed = map[int64]string{}
	}
	x.indexed[p.ID] = p.Title
	return nil
}
func (x *fakeIndex) Remove(_ context.Context, id int64) error {
	x.removed = append(x.removed, id)
	return nil
}
func (x *fakeIndex) Search(context.Context, string, int) ([]int64, error) {
	return x.hits, nil
}

type fixture struct {
	store   *memory.Store
	users   *UserService
	auth    *AuthService
	polls   *PollService
	options *PollOptionService
	votes   *PollVoteService
	pub     *fakePublisher
	cache   *fakeCache
	index   *fakeIndex
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	logger := helpers.NopLogger()
	pub := &fakePublisher{}
	cache := &fakeCache{}
	index := &fakeIndex{}

	users := NewUserService(store.Users(), cache, logger)
	polls := NewPollService(store.Polls(), cache, index, logger)
	return &fixture{
		store:   store,
		users:   users,
		auth:    NewAuthService(users, helpers.NewJWTManager("test-secret", time.Hour), NewNotifier(pub, "Votiy", "", logger), logger),
		polls:   polls,
		options: NewPollOptionService(store.PollOptions(), polls),
		votes:   NewPollVoteService(store.PollVotes(), store.PollOptions()),
		pub:     pub,
		cache:   cache,
		index:   index,
	}
}

// seedUser inserts a user directly, skipping bcrypt.
func (f *fixture) seedUser(t *testing.T, email string) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, Password: "x", FirstName: "F", LastName: "L"}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return u
}

func (f *fixture) seedPoll(t *testing.T, creatorID string, public bool, options ...string) *entity.Poll {
	t.Helper()
	in := CreatePollInput{Title: "Poll", IsPublic: &public}
	for i, o := range options {
		in.Options = append(in.Options, OptionInput{Text: o, OrderIndex: i})
	}
	p, err := f.polls.Create(context.Background(), creatorID, in)
	require.NoError(t, err)
	return p
}

func entityPatch(first, last, phone *string) entity.UserPatch {
	return entity.UserPatch{FirstName: first, LastName: last, Phone: phone}
}
