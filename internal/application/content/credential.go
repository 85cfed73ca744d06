package content

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"

	"kingdomstudio/internal/domain/credential"
	"kingdomstudio/internal/domain/settings"
)

// ErrNoAdminPassword is returned by EnsureAdminPassword when nothing is
// stored and no bootstrap password was configured.
var ErrNoAdminPassword = errors.New("no admin password stored and no bootstrap password configured")

// CheckCredential verifies an admin login against the stored password.
// POST: false on wrong username, wrong password, missing row or store failure
func (a *Access) CheckCredential(ctx context.Context, username, password string) bool {
	stored, ok := a.storedPassword(ctx)
	if !ok {
		return false
	}
	match, legacy := credential.Check(username, password, stored)
	if match && legacy {
		a.logger.Warn("auth_event",
			zap.String("event", "legacy_password_accepted"),
			zap.String("detail", "admin password is stored unhashed; set a new one to rotate it"),
		)
	}
	return match
}

// SetAdminPassword hashes and stores a new admin password.
// PRE: caller is authenticated
// POST: admin_password holds a bcrypt hash, or an error is returned
func (a *Access) SetAdminPassword(ctx context.Context, plaintext string) error {
	if err := credential.ValidateNewPassword(plaintext); err != nil {
		return err
	}
	hash, err := credential.Hash(plaintext)
	if err != nil {
		return err
	}
	if err := a.putTo(ctx, a.stores.Secrets, settings.KeyAdminPassword, hash); err != nil {
		return err
	}
	a.logger.Info("auth_event", zap.String("event", "admin_password_changed"))
	return nil
}

// EnsureAdminPassword stores the bootstrap password when no admin
// password row exists. An existing row is never replaced.
// POST: nil when a password is (now) stored; *RemoteReadError when the store cannot be read
func (a *Access) EnsureAdminPassword(ctx context.Context, bootstrap string) error {
	bctx, cancel := a.bound(ctx)
	raw, err := a.stores.Secrets.Get(bctx, settings.KeyAdminPassword)
	cancel()
	if err != nil {
		a.readFailed("get", "setting "+settings.KeyAdminPassword, err)
		return &RemoteReadError{Op: "get", Entity: "setting " + settings.KeyAdminPassword, Err: err}
	}
	if raw != nil {
		return nil
	}
	if bootstrap == "" {
		return ErrNoAdminPassword
	}
	if err := a.SetAdminPassword(ctx, bootstrap); err != nil {
		return err
	}
	a.logger.Info("auth_event", zap.String("event", "admin_password_bootstrapped"))
	return nil
}

func (a *Access) storedPassword(ctx context.Context) (string, bool) {
	raw, ok := a.getFrom(ctx, a.stores.Secrets, settings.KeyAdminPassword)
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		s = string(raw)
	}
	s = strings.TrimSpace(settings.Unquote(s))
	return s, s != ""
}
