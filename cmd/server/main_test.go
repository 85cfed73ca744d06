package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"kingdomstudio/internal/adapters/email"
	"kingdomstudio/internal/adapters/http/middleware"
	"kingdomstudio/internal/application/content"
	"kingdomstudio/internal/config"
	"kingdomstudio/internal/domain/credential"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["set-admin-password"])
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestSetAdminPasswordRequiresValue(t *testing.T) {
	err := setAdminPassword(context.Background(), "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password is required")
}

func TestCSRFKeyDecodesConfiguredKey(t *testing.T) {
	cfg := &config.Config{}
	cfg.HTTP.CSRFKey = strings.Repeat("ab", 32)

	key, err := csrfKey(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, key, 32)
	assert.Equal(t, byte(0xab), key[0])
}

func TestCSRFKeyGeneratesRandomKeyWhenUnset(t *testing.T) {
	cfg := &config.Config{}

	first, err := csrfKey(cfg, zap.NewNop())
	require.NoError(t, err)
	second, err := csrfKey(cfg, zap.NewNop())
	require.NoError(t, err)

	assert.Len(t, first, 32)
	assert.NotEqual(t, first, second)
}

func TestNewSenderSelectsTransport(t *testing.T) {
	ctx := context.Background()

	s, err := newSender(ctx, config.MailConfig{Transport: "noop"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &email.NoopSender{}, s)

	s, err = newSender(ctx, config.MailConfig{Transport: "resend", ResendKey: "re_test", From: "a@b.example"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &email.ResendSender{}, s)
}

func TestNewSessionStoreDefaultsToMemory(t *testing.T) {
	cfg := &config.Config{}
	cfg.Session.Backend = "memory"

	store, err := newSessionStore(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &middleware.MemorySessionStore{}, store)
}

type stubEnsurer struct{ err error }

func (s stubEnsurer) EnsureAdminPassword(context.Context, string) error { return s.err }

func TestPrepareAdminPasswordKeepsServingWhenStoreUnreachable(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	down := errors.New("connection refused")

	err := prepareAdminPassword(context.Background(),
		stubEnsurer{err: &content.RemoteReadError{Op: "get", Entity: "setting admin_password", Err: down}},
		"", zap.New(core))
	require.NoError(t, err)

	err = prepareAdminPassword(context.Background(),
		stubEnsurer{err: &content.RemoteWriteError{Op: "put", Entity: "setting admin_password", Err: down}},
		"a long bootstrap secret", zap.New(core))
	require.NoError(t, err)

	assert.Equal(t, 2, logs.FilterField(zap.String("event", "password_check_skipped")).Len())
}

func TestPrepareAdminPasswordMissingIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	err := prepareAdminPassword(context.Background(), stubEnsurer{err: content.ErrNoAdminPassword}, "", zap.New(core))
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterField(zap.String("event", "password_missing")).Len())
}

func TestPrepareAdminPasswordRejectsUnusableBootstrap(t *testing.T) {
	err := prepareAdminPassword(context.Background(), stubEnsurer{err: credential.ErrPasswordTooShort}, "short", zap.NewNop())

	var cerr *config.ConfigurationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "admin.bootstrap_password", cerr.Key)
}
