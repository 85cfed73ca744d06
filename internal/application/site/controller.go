package site

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"kingdomstudio/internal/domain/blogpost"
	"kingdomstudio/internal/domain/business"
	"kingdomstudio/internal/domain/contact"
	"kingdomstudio/internal/domain/program"
	"kingdomstudio/internal/domain/registration"
	"kingdomstudio/internal/domain/settings"
	"kingdomstudio/internal/metrics"
)

// MarkerKey is the local key recording an authenticated admin session.
const MarkerKey = "kbs-admin-session"

const markerValue = "authenticated"

// ErrSessionRequired is returned by admin-only operations while anonymous.
var ErrSessionRequired = errors.New("admin session required")

// ContentAccess defines the remote operations the controller needs.
type ContentAccess interface {
	ListBusinesses(ctx context.Context) []business.Business
	CreateBusiness(ctx context.Context, b business.Business) (business.Business, error)
	UpdateBusiness(ctx context.Context, id string, patch business.Patch) error
	RemoveBusiness(ctx context.Context, id string) error

	ListBlogPosts(ctx context.Context) []blogpost.BlogPost
	CreateBlogPost(ctx context.Context, p blogpost.BlogPost) (blogpost.BlogPost, error)
	UpdateBlogPost(ctx context.Context, id string, patch blogpost.Patch) error
	RemoveBlogPost(ctx context.Context, id string) error

	LoadPrograms(ctx context.Context) ([]program.Program, error)
	UpdateProgram(ctx context.Context, id string, patch program.Patch) error
	SeedDefaultPrograms(ctx context.Context) error

	ListRegistrations(ctx context.Context) ([]registration.Registration, error)
	CreateRegistration(ctx context.Context, r registration.Registration) (registration.Registration, error)
	RemoveRegistration(ctx context.Context, id string) error

	GetRegistrationPrice(ctx context.Context) int
	SetRegistrationPrice(ctx context.Context, price int) error
	GetContactInfo(ctx context.Context) settings.ContactInfo
	SetContactInfo(ctx context.Context, info settings.ContactInfo) error
	GetSocialMediaLinks(ctx context.Context) settings.SocialMediaLinks
	SetSocialMediaLinks(ctx context.Context, links settings.SocialMediaLinks) error
	SetAdminPassword(ctx context.Context, plaintext string) error

	CheckCredential(ctx context.Context, username, password string) bool
}

// MarkerStore persists the session marker across restarts.
type MarkerStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Mailer hands a composed contact draft to a mail transport.
type Mailer interface {
	SendDraft(ctx context.Context, d contact.Draft) error
}

// Controller owns the admin session state and the aggregate snapshot.
//
// INVARIANT: the published snapshot carries registrations only while
// the session is authenticated.
// INVARIANT: loads are serialised; each publishes a complete snapshot.
// INVARIANT: seeded is set only after the canonical programs were written.
type Controller struct {
	access  ContentAccess
	markers MarkerStore
	mailer  Mailer
	logger  *zap.Logger

	snap          atomic.Pointer[Snapshot]
	authenticated atomic.Bool
	seeded        atomic.Bool

	loadMu   sync.Mutex // one load at a time
	commitMu sync.Mutex // guards the session check + publish pair

	mailCtx     context.Context
	mailCancel  context.CancelFunc
	mailWG      sync.WaitGroup
	mailTimeout time.Duration
}

// New creates a Controller in the Anonymous state holding default content.
// mailer may be nil, in which case contact drafts are only composed.
func New(access ContentAccess, markers MarkerStore, mailer Mailer, logger *zap.Logger) *Controller {
	c := &Controller{
		access:      access,
		markers:     markers,
		mailer:      mailer,
		logger:      logger,
		mailTimeout: 30 * time.Second,
	}
	c.mailCtx, c.mailCancel = context.WithCancel(context.Background())
	c.snap.Store(initialSnapshot())
	return c
}

// Init restores the session from the marker and performs the first load.
// A marker that cannot be read leaves the session Anonymous.
// POST: a loaded snapshot is published
func (c *Controller) Init(ctx context.Context) {
	value, ok, err := c.markers.Get(ctx, MarkerKey)
	switch {
	case err != nil:
		c.logger.Warn("session_event", zap.String("event", "marker_unreadable"), zap.Error(err))
	case ok && value == markerValue:
		c.authenticated.Store(true)
		c.logger.Info("session_event", zap.String("event", "session_restored"))
	}
	c.Refresh(ctx)
}

// Dispose stops pending contact deliveries and waits for them to return.
func (c *Controller) Dispose() {
	c.mailCancel()
	c.mailWG.Wait()
}

// Snapshot returns the currently published snapshot.
func (c *Controller) Snapshot() Snapshot {
	return *c.snap.Load()
}

// IsAuthenticated reports the session state.
func (c *Controller) IsAuthenticated() bool {
	return c.authenticated.Load()
}

// Refresh fetches every collection concurrently and publishes the result
// as one snapshot. Individual failures degrade to empty or default values.
// PRE: none
// POST: a new snapshot is published unless ctx ended first, in which case
// the previous snapshot stays; registrations are present iff the session
// is authenticated both when the load starts and when it commits
func (c *Controller) Refresh(ctx context.Context) {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	start := time.Now()
	withRegistrations := c.authenticated.Load()
	next := &Snapshot{Registrations: []registration.Registration{}}
	programsRead := false

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		next.Businesses = c.access.ListBusinesses(gctx)
		return nil
	})
	g.Go(func() error {
		next.BlogPosts = c.access.ListBlogPosts(gctx)
		return nil
	})
	g.Go(func() error {
		list, err := c.access.LoadPrograms(gctx)
		next.Programs = list
		programsRead = err == nil
		return nil
	})
	g.Go(func() error {
		next.RegistrationPrice = c.access.GetRegistrationPrice(gctx)
		return nil
	})
	g.Go(func() error {
		next.ContactInfo = c.access.GetContactInfo(gctx)
		return nil
	})
	g.Go(func() error {
		next.SocialMediaLinks = c.access.GetSocialMediaLinks(gctx)
		return nil
	})
	if withRegistrations {
		g.Go(func() error {
			regs, err := c.access.ListRegistrations(gctx)
			if err != nil {
				c.logger.Warn("snapshot_event", zap.String("event", "registrations_unavailable"), zap.Error(err))
				return nil
			}
			next.Registrations = regs
			return nil
		})
	}
	_ = g.Wait()

	// Reads against an ended context fail for that reason alone; publishing
	// them would replace live content with defaults.
	if err := ctx.Err(); err != nil {
		c.logger.Warn("snapshot_event", zap.String("event", "snapshot_discarded"), zap.Error(err))
		return
	}

	if len(next.Programs) == 0 {
		if programsRead {
			c.seedPrograms(ctx)
		}
		next.Programs = program.Defaults()
	}

	c.commitMu.Lock()
	if !c.authenticated.Load() {
		next.Registrations = []registration.Registration{}
	}
	next.LoadedAt = time.Now()
	c.snap.Store(next)
	c.commitMu.Unlock()

	elapsed := time.Since(start)
	metrics.SnapshotRefreshDuration.Observe(elapsed.Seconds())
	c.logger.Debug("snapshot_event",
		zap.String("event", "snapshot_loaded"),
		zap.Bool("with_registrations", withRegistrations),
		zap.Duration("duration", elapsed),
	)
}

// seedPrograms writes the canonical programs when a successful read found
// none. A failed seed is retried by the next load.
// PRE: loadMu is held
func (c *Controller) seedPrograms(ctx context.Context) {
	if c.seeded.Load() {
		return
	}
	if err := c.access.SeedDefaultPrograms(ctx); err != nil {
		c.logger.Warn("seed_event", zap.String("event", "program_seed_failed"), zap.Error(err))
		return
	}
	c.seeded.Store(true)
}

// reload refreshes after a write that has already landed. It outlives the
// caller's context so an aborted request cannot discard the reload; every
// remote call is still bounded by the access timeout.
func (c *Controller) reload(ctx context.Context) {
	c.Refresh(context.WithoutCancel(ctx))
}

// Login checks the credential and, on success, persists the marker,
// switches to Authenticated and reloads with registrations.
// POST: returns false and changes nothing when the credential is rejected
func (c *Controller) Login(ctx context.Context, username, password string) bool {
	if !c.access.CheckCredential(ctx, username, password) {
		metrics.LoginAttempts.WithLabelValues("rejected").Inc()
		c.logger.Info("auth_event", zap.String("event", "login_failed"), zap.String("username", username))
		return false
	}
	metrics.LoginAttempts.WithLabelValues("accepted").Inc()

	if err := c.markers.Set(ctx, MarkerKey, markerValue); err != nil {
		c.logger.Warn("session_event", zap.String("event", "marker_write_failed"), zap.Error(err))
	}
	c.authenticated.Store(true)
	c.logger.Info("auth_event", zap.String("event", "login_success"), zap.String("username", username))

	c.reload(ctx)
	return true
}

// Logout clears the marker and drops registrations from the published
// snapshot immediately, without waiting for a reload.
func (c *Controller) Logout(ctx context.Context) {
	c.commitMu.Lock()
	c.authenticated.Store(false)
	current := *c.snap.Load()
	current.Registrations = []registration.Registration{}
	c.snap.Store(&current)
	c.commitMu.Unlock()

	if err := c.markers.Delete(ctx, MarkerKey); err != nil {
		c.logger.Warn("session_event", zap.String("event", "marker_delete_failed"), zap.Error(err))
	}
	c.logger.Info("auth_event", zap.String("event", "logout"))
}

func (c *Controller) requireSession() error {
	if !c.authenticated.Load() {
		return ErrSessionRequired
	}
	return nil
}

// mutate runs an admin-only write and reloads on success.
func (c *Controller) mutate(ctx context.Context, entity, op string, write func(context.Context) error) error {
	if err := c.requireSession(); err != nil {
		return err
	}
	if err := write(ctx); err != nil {
		metrics.Mutations.WithLabelValues(entity, op, metrics.ResultError).Inc()
		return err
	}
	metrics.Mutations.WithLabelValues(entity, op, metrics.ResultOK).Inc()
	c.reload(ctx)
	return nil
}
