package web

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"kingdomstudio/internal/adapters/http/middleware"
	"kingdomstudio/internal/application/site"
	"kingdomstudio/internal/domain/blogpost"
	"kingdomstudio/internal/domain/business"
	"kingdomstudio/internal/domain/contact"
	"kingdomstudio/internal/domain/program"
	"kingdomstudio/internal/domain/registration"
	"kingdomstudio/internal/domain/settings"
)

const testPassword = "a long admin secret"

// fakeSite records controller calls. err, when set, is returned by every mutation.
type fakeSite struct {
	mu   sync.Mutex
	snap site.Snapshot
	err  error

	authenticated bool
	logouts       int

	businesses    []business.Business
	businessPatch business.Patch
	posts         []blogpost.BlogPost
	postPatch     blogpost.Patch
	programID     string
	programPatch  program.Patch
	registrations []registration.Registration
	removed       []string
	price         int
	contactInfo   settings.ContactInfo
	links         settings.SocialMediaLinks
	password      string
	contactDrafts []contact.Draft
}

func newFakeSite() *fakeSite {
	return &fakeSite{snap: site.Snapshot{
		Businesses: []business.Business{{ID: "b1", Name: "Grace Bakery", Logo: "🍞", Category: "Food", Description: "Fresh bread", IsNew: true}},
		BlogPosts: []blogpost.BlogPost{{
			ID: "p1", Title: "Faith at Work", Excerpt: "Short", Content: "Some **bold** text",
			Author: "Ruth", Category: "Faith", Date: mustDate("2025-07-01"),
		}},
		Programs:          program.Defaults(),
		Registrations:     []registration.Registration{},
		RegistrationPrice: 3500,
		ContactInfo:       settings.DefaultContactInfo(),
		SocialMediaLinks:  settings.DefaultSocialMediaLinks(),
	}}
}

func mustDate(s string) time.Time {
	d, err := blogpost.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (f *fakeSite) Snapshot() site.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func (f *fakeSite) Login(_ context.Context, username, password string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if username == "admin" && password == testPassword {
		f.authenticated = true
		return true
	}
	return false
}

func (f *fakeSite) Logout(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.authenticated = false
	f.logouts++
}

func (f *fakeSite) AddBusiness(_ context.Context, b business.Business) (business.Business, error) {
	if f.err != nil {
		return business.Business{}, f.err
	}
	if err := b.Validate(); err != nil {
		return business.Business{}, err
	}
	f.businesses = append(f.businesses, b)
	return b, nil
}

func (f *fakeSite) UpdateBusiness(_ context.Context, _ string, patch business.Patch) error {
	f.businessPatch = patch
	return f.err
}

func (f *fakeSite) RemoveBusiness(_ context.Context, id string) error {
	f.removed = append(f.removed, id)
	return f.err
}

func (f *fakeSite) AddBlogPost(_ context.Context, p blogpost.BlogPost) (blogpost.BlogPost, error) {
	if f.err != nil {
		return blogpost.BlogPost{}, f.err
	}
	f.posts = append(f.posts, p)
	return p, nil
}

func (f *fakeSite) UpdateBlogPost(_ context.Context, _ string, patch blogpost.Patch) error {
	f.postPatch = patch
	return f.err
}

func (f *fakeSite) RemoveBlogPost(_ context.Context, id string) error {
	f.removed = append(f.removed, id)
	return f.err
}

func (f *fakeSite) UpdateProgram(_ context.Context, id string, patch program.Patch) error {
	if !program.IsCanonicalID(id) {
		return program.ErrUnknownProgram
	}
	f.programID = id
	f.programPatch = patch
	return f.err
}

func (f *fakeSite) AddRegistration(_ context.Context, r registration.Registration) (registration.Registration, error) {
	if err := r.Validate(); err != nil {
		return registration.Registration{}, err
	}
	if f.err != nil {
		return registration.Registration{}, f.err
	}
	f.registrations = append(f.registrations, r)
	return r, nil
}

func (f *fakeSite) RemoveRegistration(_ context.Context, id string) error {
	f.removed = append(f.removed, id)
	return f.err
}

func (f *fakeSite) UpdateRegistrationPrice(_ context.Context, price int) error {
	f.price = price
	return f.err
}

func (f *fakeSite) UpdateContactInfo(_ context.Context, info settings.ContactInfo) error {
	f.contactInfo = info
	return f.err
}

func (f *fakeSite) UpdateSocialMediaLinks(_ context.Context, links settings.SocialMediaLinks) error {
	f.links = links
	return f.err
}

func (f *fakeSite) UpdateAdminPassword(_ context.Context, plaintext string) error {
	f.password = plaintext
	return f.err
}

func (f *fakeSite) SendContactMessage(m contact.Message) (contact.Draft, error) {
	if err := m.Validate(); err != nil {
		return contact.Draft{}, err
	}
	d := contact.Compose(f.Snapshot().ContactInfo.Email, m)
	f.contactDrafts = append(f.contactDrafts, d)
	return d, nil
}

type testEnv struct {
	site     *fakeSite
	sessions *middleware.MemorySessionStore
	handler  http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	fs := newFakeSite()
	sessions := middleware.NewMemorySessionStore()
	h, err := NewRouter(Deps{Site: fs, Sessions: sessions, Logger: zap.NewNop()})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	return &testEnv{site: fs, sessions: sessions, handler: h}
}
