package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"

	"kingdomstudio/internal/adapters/email"
	web "kingdomstudio/internal/adapters/http"
	"kingdomstudio/internal/adapters/http/middleware"
	"kingdomstudio/internal/adapters/storage"
	blogpostStore "kingdomstudio/internal/adapters/storage/blogpost"
	businessStore "kingdomstudio/internal/adapters/storage/business"
	"kingdomstudio/internal/adapters/storage/local"
	programStore "kingdomstudio/internal/adapters/storage/program"
	registrationStore "kingdomstudio/internal/adapters/storage/registration"
	settingsStore "kingdomstudio/internal/adapters/storage/settings"
	"kingdomstudio/internal/application/content"
	"kingdomstudio/internal/application/site"
	"kingdomstudio/internal/config"
	"kingdomstudio/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

const shutdownTimeout = 15 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "kbs",
		Short:         "Kingdom Business Studio site and admin console",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), configFile)
		},
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to a YAML config file")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), configFile)
		},
	})

	var password string
	setPassword := &cobra.Command{
		Use:   "set-admin-password [password]",
		Short: "Hash and store a new admin password",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				password = args[0]
			}
			return setAdminPassword(cmd.Context(), configFile, password)
		},
	}
	setPassword.Flags().StringVar(&password, "password", "", "new admin password")
	root.AddCommand(setPassword)

	return root
}

// app is everything serve and the admin commands share.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	pools  *storage.Pools
	access *content.Access
}

func bootstrap(ctx context.Context, configFile string) (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	pools, err := storage.OpenPools(ctx, cfg.Store, log)
	if err != nil {
		return nil, err
	}
	if cfg.Store.Migrate {
		if err := storage.Migrate(ctx, pools.Privileged); err != nil {
			pools.Close()
			return nil, fmt.Errorf("failed to migrate store: %w", err)
		}
		log.Info("store_event", zap.String("event", "migrated"))
	}

	access := content.NewAccess(content.Stores{
		Businesses:    businessStore.NewPostgresStore(pools.Public, pools.Privileged),
		BlogPosts:     blogpostStore.NewPostgresStore(pools.Public, pools.Privileged),
		Programs:      programStore.NewPostgresStore(pools.Public, pools.Privileged),
		Registrations: registrationStore.NewPostgresStore(pools.Public, pools.Privileged),
		Settings:      settingsStore.NewPostgresStore(pools.Public, pools.Privileged),
		Secrets:       settingsStore.NewPostgresStore(pools.Privileged, pools.Privileged),
	}, log, content.WithTimeout(cfg.Store.Timeout))

	return &app{cfg: cfg, logger: log, pools: pools, access: access}, nil
}

func (a *app) close() {
	if err := a.pools.Close(); err != nil {
		a.logger.Warn("store_event", zap.String("event", "close_failed"), zap.Error(err))
	}
	_ = a.logger.Sync()
}

func serve(parent context.Context, configFile string) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx, configFile)
	if err != nil {
		return err
	}
	defer a.close()
	cfg, log := a.cfg, a.logger

	if err := prepareAdminPassword(ctx, a.access, cfg.Admin.BootstrapPassword, log); err != nil {
		return err
	}

	markers, err := local.Open(cfg.Local.Path)
	if err != nil {
		return err
	}
	defer markers.Close()

	sender, err := newSender(ctx, cfg.Mail, log)
	if err != nil {
		return err
	}

	controller := site.New(a.access, markers, email.NewDraftDispatcher(sender, cfg.Mail.From), log)
	controller.Init(ctx)
	defer controller.Dispose()

	sessions, err := newSessionStore(ctx, cfg, log)
	if err != nil {
		return err
	}

	csrfKey, err := csrfKey(cfg, log)
	if err != nil {
		return err
	}

	handler, err := web.NewRouter(web.Deps{
		Site:          controller,
		Sessions:      sessions,
		Logger:        log,
		CSRFKey:       csrfKey,
		SecureCookies: cfg.HTTP.SecureCookies,
		SlowRequestMs: cfg.HTTP.SlowRequestMs,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server_starting",
			zap.String("version", version),
			zap.String("addr", cfg.HTTP.Addr),
			zap.String("env", cfg.App.Env),
			zap.Bool("privileged_fallback", a.pools.Fallback),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("server_stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

type passwordEnsurer interface {
	EnsureAdminPassword(ctx context.Context, bootstrap string) error
}

// prepareAdminPassword stores the bootstrap password when none exists.
// Only an unusable bootstrap password stops the server; a missing
// password or an unreachable store is logged and the site keeps serving.
func prepareAdminPassword(ctx context.Context, access passwordEnsurer, bootstrap string, log *zap.Logger) error {
	err := access.EnsureAdminPassword(ctx, bootstrap)
	var rerr *content.RemoteReadError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, content.ErrNoAdminPassword):
		log.Warn("admin_event",
			zap.String("event", "password_missing"),
			zap.String("detail", "login is disabled until set-admin-password is run"),
		)
		return nil
	case errors.As(err, &rerr), content.IsRemoteWrite(err):
		log.Warn("admin_event",
			zap.String("event", "password_check_skipped"),
			zap.String("detail", "store unreachable; the bootstrap password is applied on the next start"),
			zap.Error(err),
		)
		return nil
	default:
		return &config.ConfigurationError{Key: "admin.bootstrap_password", Reason: err.Error()}
	}
}

func setAdminPassword(ctx context.Context, configFile, password string) error {
	if password == "" {
		return errors.New("a password is required")
	}
	a, err := bootstrap(ctx, configFile)
	if err != nil {
		return err
	}
	defer a.close()
	if err := a.access.SetAdminPassword(ctx, password); err != nil {
		return err
	}
	a.logger.Info("admin_event", zap.String("event", "password_set"))
	return nil
}

func newSender(ctx context.Context, cfg config.MailConfig, log *zap.Logger) (email.Sender, error) {
	switch cfg.Transport {
	case "resend":
		log.Info("mail_transport", zap.String("transport", "resend"))
		return email.NewResendSender(cfg.ResendKey, cfg.From, log), nil
	case "ses":
		log.Info("mail_transport", zap.String("transport", "ses"), zap.String("region", cfg.AWSRegion))
		return email.NewSESSender(ctx, cfg.AWSRegion, cfg.From, log)
	default:
		log.Info("mail_transport", zap.String("transport", "noop"))
		return email.NewNoopSender(log), nil
	}
}

func newSessionStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (middleware.SessionStore, error) {
	if cfg.Session.Backend != "redis" {
		return middleware.NewMemorySessionStore(), nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.Redis.Addr, err)
	}
	log.Info("session_backend", zap.String("backend", "redis"), zap.String("addr", cfg.Redis.Addr))
	return middleware.NewRedisSessionStore(client), nil
}

// csrfKey decodes the configured key. Outside production an empty key
// gets a random one, which invalidates forms on every restart.
func csrfKey(cfg *config.Config, log *zap.Logger) ([]byte, error) {
	if cfg.HTTP.CSRFKey != "" {
		return hex.DecodeString(cfg.HTTP.CSRFKey)
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate csrf key: %w", err)
	}
	log.Warn("csrf_key_generated", zap.String("detail", "set http.csrf_key to keep forms valid across restarts"))
	return key, nil
}
