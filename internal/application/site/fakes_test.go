package site

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"kingdomstudio/internal/domain/blogpost"
	"kingdomstudio/internal/domain/business"
	"kingdomstudio/internal/domain/contact"
	"kingdomstudio/internal/domain/program"
	"kingdomstudio/internal/domain/registration"
	"kingdomstudio/internal/domain/settings"
)

var errRemote = errors.New("remote rejected")

// fakeAccess is an in-memory ContentAccess with call counters. Reads
// behave like the real access layer: a collection named in listErrs, or
// any read on an ended context, yields the empty or default value.
type fakeAccess struct {
	mu sync.Mutex

	businesses    []business.Business
	posts         []blogpost.BlogPost
	programs      []program.Program
	registrations []registration.Registration
	price         int
	contactInfo   settings.ContactInfo
	links         settings.SocialMediaLinks
	password      string

	writeErr error
	regsErr  error
	seedErr  error
	listErrs map[string]error

	// afterWrite runs once a write has been accepted.
	afterWrite func()

	// regsGate, when set, blocks ListRegistrations until closed;
	// regsStarted is signalled when the call begins.
	regsGate    chan struct{}
	regsStarted chan struct{}

	listCalls    map[string]int
	writes       int
	seedCalls    int
	credChecks   int
	lastPricePut int
}

func newFakeAccess() *fakeAccess {
	return &fakeAccess{
		businesses:    []business.Business{{ID: "b1", Name: "Grace Bakery"}},
		posts:         []blogpost.BlogPost{{ID: "p1", Title: "Faith at Work"}},
		programs:      program.Defaults(),
		registrations: []registration.Registration{{ID: "r1", FullName: "Amani"}},
		price:         3500,
		contactInfo:   settings.ContactInfo{Email: "hello@studio.example", Phone: "1"},
		links:         settings.DefaultSocialMediaLinks(),
		password:      "a long admin secret",
		listCalls:     map[string]int{},
		listErrs:      map[string]error{},
	}
}

func (f *fakeAccess) count(name string) {
	f.mu.Lock()
	f.listCalls[name]++
	f.mu.Unlock()
}

func (f *fakeAccess) calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls[name]
}

func (f *fakeAccess) write() error {
	f.mu.Lock()
	f.writes++
	err, hook := f.writeErr, f.afterWrite
	f.mu.Unlock()
	if err == nil && hook != nil {
		hook()
	}
	return err
}

// readFails counts a read of name and reports whether it should fail.
func (f *fakeAccess) readFails(ctx context.Context, name string) bool {
	f.count(name)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listErrs[name] != nil || ctx.Err() != nil
}

func (f *fakeAccess) failList(name string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.listErrs, name)
		return
	}
	f.listErrs[name] = err
}

func (f *fakeAccess) storedPrograms() []program.Program {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]program.Program{}, f.programs...)
}

func (f *fakeAccess) ListBusinesses(ctx context.Context) []business.Business {
	if f.readFails(ctx, "businesses") {
		return []business.Business{}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]business.Business{}, f.businesses...)
}

func (f *fakeAccess) CreateBusiness(_ context.Context, b business.Business) (business.Business, error) {
	if err := f.write(); err != nil {
		return business.Business{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	b.ID = "b-new"
	f.businesses = append([]business.Business{b}, f.businesses...)
	return b, nil
}

func (f *fakeAccess) UpdateBusiness(context.Context, string, business.Patch) error { return f.write() }
func (f *fakeAccess) RemoveBusiness(context.Context, string) error                 { return f.write() }

func (f *fakeAccess) ListBlogPosts(ctx context.Context) []blogpost.BlogPost {
	if f.readFails(ctx, "posts") {
		return []blogpost.BlogPost{}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]blogpost.BlogPost{}, f.posts...)
}

func (f *fakeAccess) CreateBlogPost(_ context.Context, p blogpost.BlogPost) (blogpost.BlogPost, error) {
	if err := f.write(); err != nil {
		return blogpost.BlogPost{}, err
	}
	p.ID = "p-new"
	return p, nil
}

func (f *fakeAccess) UpdateBlogPost(context.Context, string, blogpost.Patch) error { return f.write() }
func (f *fakeAccess) RemoveBlogPost(context.Context, string) error                 { return f.write() }

func (f *fakeAccess) LoadPrograms(ctx context.Context) ([]program.Program, error) {
	if f.readFails(ctx, "programs") {
		return []program.Program{}, errRemote
	}
	return f.storedPrograms(), nil
}

func (f *fakeAccess) UpdateProgram(context.Context, string, program.Patch) error { return f.write() }

func (f *fakeAccess) SeedDefaultPrograms(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seedCalls++
	if f.seedErr != nil {
		return f.seedErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(f.programs) == 0 {
		f.programs = program.Defaults()
	}
	return nil
}

func (f *fakeAccess) ListRegistrations(ctx context.Context) ([]registration.Registration, error) {
	if f.readFails(ctx, "registrations") {
		return nil, errRemote
	}
	if f.regsStarted != nil {
		f.regsStarted <- struct{}{}
	}
	if f.regsGate != nil {
		<-f.regsGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.regsErr != nil {
		return nil, f.regsErr
	}
	return append([]registration.Registration{}, f.registrations...), nil
}

func (f *fakeAccess) CreateRegistration(_ context.Context, r registration.Registration) (registration.Registration, error) {
	if err := f.write(); err != nil {
		return registration.Registration{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r.ID = "r-new"
	f.registrations = append([]registration.Registration{r}, f.registrations...)
	return r, nil
}

func (f *fakeAccess) RemoveRegistration(context.Context, string) error { return f.write() }

func (f *fakeAccess) GetRegistrationPrice(ctx context.Context) int {
	if f.readFails(ctx, "price") {
		return settings.DefaultRegistrationPrice
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.price
}

func (f *fakeAccess) SetRegistrationPrice(_ context.Context, price int) error {
	if err := f.write(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.price = price
	f.lastPricePut = price
	return nil
}

func (f *fakeAccess) GetContactInfo(ctx context.Context) settings.ContactInfo {
	if f.readFails(ctx, "contact") {
		return settings.DefaultContactInfo()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.contactInfo
}

func (f *fakeAccess) SetContactInfo(_ context.Context, info settings.ContactInfo) error {
	if err := f.write(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contactInfo = info
	return nil
}

func (f *fakeAccess) GetSocialMediaLinks(ctx context.Context) settings.SocialMediaLinks {
	if f.readFails(ctx, "social") {
		return settings.DefaultSocialMediaLinks()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.links
}

func (f *fakeAccess) SetSocialMediaLinks(context.Context, settings.SocialMediaLinks) error {
	return f.write()
}

func (f *fakeAccess) SetAdminPassword(_ context.Context, plaintext string) error {
	if err := f.write(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.password = plaintext
	return nil
}

func (f *fakeAccess) CheckCredential(_ context.Context, username, password string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.credChecks++
	return username == "admin" && password == f.password
}

// fakeMarkers is an in-memory MarkerStore.
type fakeMarkers struct {
	mu     sync.Mutex
	values map[string]string
	getErr error
}

func newFakeMarkers() *fakeMarkers {
	return &fakeMarkers{values: map[string]string{}}
}

func (m *fakeMarkers) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *fakeMarkers) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *fakeMarkers) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *fakeMarkers) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.values[key]
	return ok
}

// fakeMailer records drafts; sent is signalled per delivery.
type fakeMailer struct {
	mu     sync.Mutex
	drafts []contact.Draft
	err    error
	sent   chan struct{}
}

func (m *fakeMailer) SendDraft(_ context.Context, d contact.Draft) error {
	m.mu.Lock()
	m.drafts = append(m.drafts, d)
	err := m.err
	m.mu.Unlock()
	if m.sent != nil {
		m.sent <- struct{}{}
	}
	return err
}

func newTestController(access *fakeAccess, markers *fakeMarkers, mailer Mailer) *Controller {
	return New(access, markers, mailer, zap.NewNop())
}

func waitFor(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	case <-time.After(2 * time.Second):
		return false
	}
}
