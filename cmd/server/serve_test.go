package main

import (
	"context"
	"testing"
	"time"

	"expertqa/internal/config"
	"expertqa/internal/session"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionStore_Cookie(t *testing.T) {
	store, closeFn, err := newSessionStore(context.Background(), &config.Config{
		SessionStore:  config.SessionStoreCookie,
		SessionSecret: "secret",
		SessionTTL:    time.Hour,
	})
	require.NoError(t, err)
	defer closeFn()

	assert.IsType(t, &session.CookieStore{}, store)
}

func TestNewSessionStore_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	store, closeFn, err := newSessionStore(context.Background(), &config.Config{
		SessionStore: config.SessionStoreRedis,
		RedisAddr:    mr.Addr(),
		SessionTTL:   time.Hour,
	})
	require.NoError(t, err)
	defer closeFn()

	assert.IsType(t, &session.RedisStore{}, store)
}

func TestNewSessionStore_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, _, err := newSessionStore(context.Background(), &config.Config{
		SessionStore: config.SessionStoreRedis,
		RedisAddr:    addr,
	})
	assert.Error(t, err)
}

func TestNewRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"serve", "migrate", "admin"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}

	admin, _, err := root.Find([]string{"admin"})
	require.NoError(t, err)
	assert.NotNil(t, admin.Flags().Lookup("revoke"))
}
