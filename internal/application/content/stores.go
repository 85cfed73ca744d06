package content

import (
	"context"
	"encoding/json"

	"kingdomstudio/internal/domain/blogpost"
	"kingdomstudio/internal/domain/business"
	"kingdomstudio/internal/domain/program"
	"kingdomstudio/internal/domain/registration"
)

// BusinessStore defines the store interface needed for businesses.
type BusinessStore interface {
	List(ctx context.Context) ([]business.Business, error)
	Create(ctx context.Context, value business.Business) error
	Update(ctx context.Context, id string, patch business.Patch) error
	Delete(ctx context.Context, id string) error
}

// BlogPostStore defines the store interface needed for blog posts.
type BlogPostStore interface {
	List(ctx context.Context) ([]blogpost.BlogPost, error)
	Create(ctx context.Context, value blogpost.BlogPost) error
	Update(ctx context.Context, id string, patch blogpost.Patch) error
	Delete(ctx context.Context, id string) error
}

// ProgramStore defines the store interface needed for programs.
type ProgramStore interface {
	List(ctx context.Context) ([]program.Program, error)
	Update(ctx context.Context, id string, patch program.Patch) error
	InsertMissing(ctx context.Context, programs []program.Program) error
}

// RegistrationStore defines the store interface needed for registrations.
type RegistrationStore interface {
	List(ctx context.Context) ([]registration.Registration, error)
	Create(ctx context.Context, value registration.Registration) error
	Delete(ctx context.Context, id string) error
}

// SettingsStore defines the store interface needed for site settings.
// Get returns nil, nil for a missing key.
type SettingsStore interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Put(ctx context.Context, key string, value json.RawMessage) error
}

// Stores bundles the remote collections. Settings reads public keys;
// Secrets reads admin_password through privileged credentials.
type Stores struct {
	Businesses    BusinessStore
	BlogPosts     BlogPostStore
	Programs      ProgramStore
	Registrations RegistrationStore
	Settings      SettingsStore
	Secrets       SettingsStore
}
