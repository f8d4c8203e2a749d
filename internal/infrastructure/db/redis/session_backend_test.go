package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sairam-Chetpelly/visafrontend/internal/core/domain"
	"github.com/Sairam-Chetpelly/visafrontend/internal/infrastructure/store"
)

func setupBackend(t *testing.T, profile string) (*SessionBackend, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return NewSessionBackend(client, "visafrontend", profile), mr
}

func TestSessionBackend_RoundTrip(t *testing.T) {
	b, mr := setupBackend(t, "default")
	s := store.New(b, zerolog.Nop())
	ctx := context.Background()

	want := domain.Session{
		Token: "aaa.bbb.ccc",
		User:  domain.User{ID: "1", Email: "a@b.com", UserType: domain.UserTypeEmployee},
	}
	require.NoError(t, s.Write(ctx, want))

	got, ok := s.Read(ctx)
	require.True(t, ok)
	assert.Equal(t, want, *got)

	tok, err := mr.Get("visafrontend:default:auth_token")
	require.NoError(t, err)
	assert.Equal(t, "aaa.bbb.ccc", tok)
	assert.True(t, mr.Exists("visafrontend:default:user"))
}

func TestSessionBackend_ClearDeletesBothKeys(t *testing.T) {
	b, mr := setupBackend(t, "default")
	s := store.New(b, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, domain.Session{Token: "aaa.bbb.ccc", User: domain.User{Email: "a@b.com"}}))
	require.NoError(t, s.Clear(ctx))

	assert.False(t, mr.Exists("visafrontend:default:auth_token"))
	assert.False(t, mr.Exists("visafrontend:default:user"))
	assert.False(t, s.Has(ctx))
}

func TestSessionBackend_TokenWithoutUser(t *testing.T) {
	b, mr := setupBackend(t, "default")
	require.NoError(t, mr.Set("visafrontend:default:auth_token", "aaa.bbb.ccc"))

	s := store.New(b, zerolog.Nop())
	assert.False(t, s.Has(context.Background()))
	assert.True(t, s.HasToken(context.Background()))
}

func TestSessionBackend_UnavailableReadsAsAbsent(t *testing.T) {
	b, mr := setupBackend(t, "default")
	s := store.New(b, zerolog.Nop())
	require.NoError(t, s.Write(context.Background(), domain.Session{Token: "aaa.bbb.ccc", User: domain.User{Email: "a@b.com"}}))

	mr.Close()

	assert.False(t, s.Has(context.Background()))
	assert.Error(t, b.Ping(context.Background()))
}
