package service

import (
	"Portfolio/internal/api/config"
	"Portfolio/internal/api/dto"
	"Portfolio/internal/model"
	"Portfolio/internal/pkg/consts"
	pkgredis "Portfolio/internal/pkg/redis"
	"Portfolio/internal/pkg/security"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdminRepo struct {
	admins map[string]*model.Admin
}

func (r *fakeAdminRepo) GetByEmail(_ context.Context, email string) (*model.Admin, error) {
	return r.admins[email], nil
}

func (r *fakeAdminRepo) GetByID(_ context.Context, id string) (*model.Admin, error) {
	for _, a := range r.admins {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAdminRepo) Upsert(_ context.Context, admin *model.Admin) error {
	r.admins[admin.Email] = admin
	return nil
}

func newAuthFixture(t *testing.T) (AuthService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	hash, err := security.HashPassword("correct horse")
	require.NoError(t, err)
	admins := &fakeAdminRepo{admins: map[string]*model.Admin{
		"admin@example.com": {ID: "admin-1", Email: "admin@example.com", PasswordHash: hash},
	}}
	signer := security.NewSigner(config.JWTConfig{Secret: "test-secret", ExpirationHours: 1, Issuer: "Portfolio"})
	return NewAuthService(admins, signer, pkgredis.NewSessionStore(rdb)), mr
}

func TestAuth_SignInAndGetSession(t *testing.T) {
	auth, _ := newAuthFixture(t)
	ctx := context.Background()

	session, err := auth.SignInWithPassword(ctx, &dto.LoginDTO{Email: " Admin@Example.com ", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, "admin-1", session.UserID)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	got, err := auth.GetSession(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", got.Email)
}

func TestAuth_SignInRejectsBadCredentials(t *testing.T) {
	auth, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := auth.SignInWithPassword(ctx, &dto.LoginDTO{Email: "admin@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrPasswordIncorrect)

	_, err = auth.SignInWithPassword(ctx, &dto.LoginDTO{Email: "nobody@example.com", Password: "correct horse"})
	assert.ErrorIs(t, err, ErrPasswordIncorrect)
}

func TestAuth_GetSessionRejectsMissingAndGarbage(t *testing.T) {
	auth, _ := newAuthFixture(t)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := auth.GetSession(context.Background(), token)
		assert.ErrorIs(t, err, ErrSession, token)
	}
}

func TestAuth_SignOutRevokesToken(t *testing.T) {
	auth, mr := newAuthFixture(t)
	ctx := context.Background()

	session, err := auth.SignInWithPassword(ctx, &dto.LoginDTO{Email: "admin@example.com", Password: "correct horse"})
	require.NoError(t, err)
	require.NoError(t, auth.SignOut(ctx, session))

	_, err = auth.GetSession(ctx, session.Token)
	assert.ErrorIs(t, err, ErrSession)

	signature, err := security.ExtractSignature(session.Token)
	require.NoError(t, err)
	assert.True(t, mr.Exists(consts.SessionRevokedKey+signature))
	assert.Greater(t, mr.TTL(consts.SessionRevokedKey+signature), time.Duration(0))
}

func TestAuth_OnSessionChange(t *testing.T) {
	auth, _ := newAuthFixture(t)
	ctx := context.Background()

	session, err := auth.SignInWithPassword(ctx, &dto.LoginDTO{Email: "admin@example.com", Password: "correct horse"})
	require.NoError(t, err)

	events := make(chan SessionEvent, 4)
	unsubscribe, err := auth.OnSessionChange(ctx, session.UserID, func(e SessionEvent) { events <- e })
	require.NoError(t, err)

	require.NoError(t, auth.SignOut(ctx, session))

	select {
	case e := <-events:
		assert.Equal(t, consts.SessionSignedOut, e.Type)
		assert.Equal(t, "admin-1", e.UserID)
	case <-time.After(2 * time.Second):
		t.Fatal("session event not delivered")
	}

	unsubscribe()
}
