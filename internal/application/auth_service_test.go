package application

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mailtpl "github.com/oksasatya/votiy-api/pkg/mailer/templates"
)

func TestSignup_SigninAndProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sess, err := f.auth.Signup(ctx, CreateUserInput{
		Email: "  Ada@Example.COM ", Password: "secret1", FirstName: "Ada", LastName: "Lovelace",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", sess.User.Email)
	assert.NotEqual(t, "secret1", sess.User.Password)
	assert.NotEmpty(t, sess.Token)

	claims, err := f.auth.JWT.Verify(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, claims.UserID)

	u, err := f.auth.Profile(ctx, claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.FirstName)

	b, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(b), u.Password)
	assert.NotContains(t, string(b), "password")

	_, err = f.auth.Signin(ctx, "ADA@example.com", "secret1")
	require.NoError(t, err)

	assert.Equal(t, []string{mailtpl.Welcome}, f.pub.templates())
}

func TestSignup_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "dup@x.com")

	_, err := f.auth.Signup(ctx, CreateUserInput{Email: "DUP@x.com", Password: "secret1", FirstName: "A", LastName: "B"})
	assert.True(t, errors.Is(err, ErrEmailTaken))
	assert.Equal(t, KindConflict, KindOf(err))

	users, err := f.users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Empty(t, f.pub.templates())
}

func TestSignin_Failures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.auth.Signup(ctx, CreateUserInput{Email: "a@x.com", Password: "secret1", FirstName: "A", LastName: "B"})
	require.NoError(t, err)

	_, err = f.auth.Signin(ctx, "a@x.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.auth.Signin(ctx, "nobody@x.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshAndProfile_DeletedUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.seedUser(t, "gone@x.com")

	sess, err := f.auth.Refresh(ctx, u.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)

	require.NoError(t, f.users.Delete(ctx, u.ID))
	_, err = f.auth.Refresh(ctx, u.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = f.auth.Profile(ctx, u.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess, err := f.auth.Signup(ctx, CreateUserInput{Email: "a@x.com", Password: "secret1", FirstName: "A", LastName: "B"})
	require.NoError(t, err)
	id := sess.User.ID

	err = f.auth.ChangePassword(ctx, id, "secret1", "123", RequestMeta{})
	assert.Equal(t, KindValidation, KindOf(err))

	err = f.auth.ChangePassword(ctx, id, "nope", "newsecret", RequestMeta{})
	assert.ErrorIs(t, err, ErrWrongPassword)

	// a wrong current password wins over a too-short new one
	err = f.auth.ChangePassword(ctx, id, "nope", "123", RequestMeta{})
	assert.ErrorIs(t, err, ErrWrongPassword)

	require.NoError(t, f.auth.ChangePassword(ctx, id, "secret1", "newsecret", RequestMeta{IP: "10.0.0.1"}))

	_, err = f.auth.Signin(ctx, "a@x.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.auth.Signin(ctx, "a@x.com", "newsecret")
	assert.NoError(t, err)

	assert.Equal(t, []string{mailtpl.Welcome, mailtpl.PasswordChanged}, f.pub.templates())
}

func TestUserUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.seedUser(t, "a@x.com")

	blank, phone := "  ", " 555 "
	got, err := f.users.Update(ctx, u.ID, entityPatch(&blank, nil, &phone))
	require.NoError(t, err)
	assert.Equal(t, "F", got.FirstName)
	require.NotNil(t, got.Phone)
	assert.Equal(t, "555", *got.Phone)

	_, err = f.users.Update(ctx, "00000000-0000-0000-0000-000000000000", entityPatch(nil, nil, &phone))
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, f.users.Delete(ctx, u.ID))
	require.NoError(t, f.users.Delete(ctx, u.ID))
}

func TestUserWrites_OwnershipAndPollCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.seedUser(t, "a@x.com")
	b := f.seedUser(t, "b@x.com")
	f.seedPoll(t, a.ID, true, "yes")

	name := "Mallory"
	_, err := f.users.UpdateAs(ctx, b.ID, a.ID, entityPatch(&name, nil, nil))
	assert.ErrorIs(t, err, ErrNotAccountOwner)
	assert.ErrorIs(t, f.users.DeleteAs(ctx, b.ID, a.ID), ErrNotAccountOwner)
	_, err = f.users.Get(ctx, a.ID)
	require.NoError(t, err)

	_, err = f.polls.ListPublic(ctx)
	require.NoError(t, err)
	require.True(t, f.cache.warm)

	phone := "555"
	_, err = f.users.UpdateAs(ctx, a.ID, a.ID, entityPatch(nil, nil, &phone))
	require.NoError(t, err)
	assert.True(t, f.cache.warm, "phone changes do not touch the poll listing")

	_, err = f.users.UpdateAs(ctx, a.ID, a.ID, entityPatch(&name, nil, nil))
	require.NoError(t, err)
	assert.False(t, f.cache.warm)

	_, err = f.polls.ListPublic(ctx)
	require.NoError(t, err)
	require.True(t, f.cache.warm)
	require.NoError(t, f.users.DeleteAs(ctx, a.ID, a.ID))
	assert.False(t, f.cache.warm)

	polls, err := f.polls.ListPublic(ctx)
	require.NoError(t, err)
	assert.Empty(t, polls)
}
