package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"kingdomstudio/internal/domain/blogpost"
	"kingdomstudio/internal/domain/business"
	"kingdomstudio/internal/domain/program"
	"kingdomstudio/internal/domain/registration"
)

var errStoreDown = errors.New("connection refused")

// --- businesses ---

type fakeBusinessStore struct {
	mu      sync.Mutex
	rows    []business.Business
	calls   int
	listErr error
	failErr error
}

func (s *fakeBusinessStore) List(_ context.Context) ([]business.Business, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]business.Business(nil), s.rows...), nil
}

func (s *fakeBusinessStore) Create(_ context.Context, b business.Business) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failErr != nil {
		return s.failErr
	}
	s.rows = append([]business.Business{b}, s.rows...)
	return nil
}

func (s *fakeBusinessStore) Update(_ context.Context, id string, p business.Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failErr != nil {
		return s.failErr
	}
	for i := range s.rows {
		if s.rows[i].ID != id {
			continue
		}
		if p.Name != nil {
			s.rows[i].Name = *p.Name
		}
		if p.Logo != nil {
			s.rows[i].Logo = *p.Logo
		}
		if p.Category != nil {
			s.rows[i].Category = *p.Category
		}
		if p.Description != nil {
			s.rows[i].Description = *p.Description
		}
		if p.IsNew != nil {
			s.rows[i].IsNew = *p.IsNew
		}
	}
	return nil
}

func (s *fakeBusinessStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failErr != nil {
		return s.failErr
	}
	kept := s.rows[:0]
	for _, b := range s.rows {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	s.rows = kept
	return nil
}

// --- blog posts ---

type fakeBlogPostStore struct {
	mu      sync.Mutex
	rows    []blogpost.BlogPost
	listErr error
	failErr error
}

func (s *fakeBlogPostStore) List(_ context.Context) ([]blogpost.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]blogpost.BlogPost(nil), s.rows...), nil
}

func (s *fakeBlogPostStore) Create(_ context.Context, p blogpost.BlogPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return s.failErr
	}
	s.rows = append(s.rows, p)
	return nil
}

func (s *fakeBlogPostStore) Update(_ context.Context, id string, p blogpost.Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return s.failErr
	}
	for i := range s.rows {
		if s.rows[i].ID == id && p.Title != nil {
			s.rows[i].Title = *p.Title
		}
	}
	return nil
}

func (s *fakeBlogPostStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return s.failErr
	}
	kept := s.rows[:0]
	for _, p := range s.rows {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.rows = kept
	return nil
}

// --- programs ---

type fakeProgramStore struct {
	mu        sync.Mutex
	rows      []program.Program
	listErr   error
	failErr   error
	seedCalls int
}

func (s *fakeProgramStore) List(_ context.Context) ([]program.Program, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]program.Program(nil), s.rows...), nil
}

func (s *fakeProgramStore) Update(_ context.Context, id string, p program.Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return s.failErr
	}
	for i := range s.rows {
		if s.rows[i].ID != id {
			continue
		}
		if p.Name != nil {
			s.rows[i].Name = *p.Name
		}
		if p.Description != nil {
			s.rows[i].Description = *p.Description
		}
		if p.PrimaryColor != nil {
			s.rows[i].PrimaryColor = *p.PrimaryColor
		}
		if p.AccentColors != nil {
			s.rows[i].AccentColors = p.AccentColors
		}
		if p.Features != nil {
			s.rows[i].Features = p.Features
		}
	}
	return nil
}

func (s *fakeProgramStore) InsertMissing(_ context.Context, programs []program.Program) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seedCalls++
	if s.failErr != nil {
		return s.failErr
	}
	for _, p := range programs {
		if _, ok := program.Find(s.rows, p.ID); !ok {
			s.rows = append(s.rows, p)
		}
	}
	return nil
}

// --- registrations ---

type fakeRegistrationStore struct {
	mu      sync.Mutex
	rows    []registration.Registration
	listErr error
	failErr error
}

func (s *fakeRegistrationStore) List(_ context.Context) ([]registration.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]registration.Registration(nil), s.rows...), nil
}

func (s *fakeRegistrationStore) Create(_ context.Context, r registration.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return s.failErr
	}
	s.rows = append([]registration.Registration{r}, s.rows...)
	return nil
}

func (s *fakeRegistrationStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return s.failErr
	}
	kept := s.rows[:0]
	for _, r := range s.rows {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.rows = kept
	return nil
}

// --- settings ---

type fakeSettingsStore struct {
	mu      sync.Mutex
	values  map[string]json.RawMessage
	getErr  error
	failErr error
	puts    int
}

func newFakeSettingsStore() *fakeSettingsStore {
	return &fakeSettingsStore{values: map[string]json.RawMessage{}}
}

func (s *fakeSettingsStore) Get(_ context.Context, key string) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.values[key], nil
}

func (s *fakeSettingsStore) Put(_ context.Context, key string, value json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts++
	if s.failErr != nil {
		return s.failErr
	}
	s.values[key] = value
	return nil
}

// --- helpers ---

type fixture struct {
	access        *Access
	businesses    *fakeBusinessStore
	posts         *fakeBlogPostStore
	programs      *fakeProgramStore
	registrations *fakeRegistrationStore
	settings      *fakeSettingsStore
}

func fixedNow() time.Time {
	return time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("00000000-0000-4000-8000-%012d", n)
	}
}

func newFixture() *fixture {
	f := &fixture{
		businesses:    &fakeBusinessStore{},
		posts:         &fakeBlogPostStore{},
		programs:      &fakeProgramStore{},
		registrations: &fakeRegistrationStore{},
		settings:      newFakeSettingsStore(),
	}
	f.access = NewAccess(Stores{
		Businesses:    f.businesses,
		BlogPosts:     f.posts,
		Programs:      f.programs,
		Registrations: f.registrations,
		Settings:      f.settings,
		Secrets:       f.settings,
	}, zap.NewNop(), WithIDGenerator(sequentialIDs()), WithClock(fixedNow))
	return f
}
