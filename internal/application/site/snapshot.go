package site

import (
	"time"

	"kingdomstudio/internal/domain/blogpost"
	"kingdomstudio/internal/domain/business"
	"kingdomstudio/internal/domain/program"
	"kingdomstudio/internal/domain/registration"
	"kingdomstudio/internal/domain/settings"
)

// Snapshot is the aggregate view every page renders from. A snapshot is
// replaced wholesale and never mutated after it is published, so readers
// must treat its slices as read-only.
type Snapshot struct {
	Businesses        []business.Business
	BlogPosts         []blogpost.BlogPost
	Programs          []program.Program
	Registrations     []registration.Registration // empty unless authenticated
	RegistrationPrice int
	ContactInfo       settings.ContactInfo
	SocialMediaLinks  settings.SocialMediaLinks
	LoadedAt          time.Time
}

// initialSnapshot is what readers see before the first load completes.
func initialSnapshot() *Snapshot {
	return &Snapshot{
		Businesses:        []business.Business{},
		BlogPosts:         []blogpost.BlogPost{},
		Programs:          program.Defaults(),
		Registrations:     []registration.Registration{},
		RegistrationPrice: settings.DefaultRegistrationPrice,
		ContactInfo:       settings.DefaultContactInfo(),
		SocialMediaLinks:  settings.DefaultSocialMediaLinks(),
	}
}

// BlogPost finds a post by id.
func (s Snapshot) BlogPost(id string) (blogpost.BlogPost, bool) {
	for _, p := range s.BlogPosts {
		if p.ID == id {
			return p, true
		}
	}
	return blogpost.BlogPost{}, false
}

// LatestPosts returns up to n posts, newest first.
func (s Snapshot) LatestPosts(n int) []blogpost.BlogPost {
	if n >= len(s.BlogPosts) {
		return s.BlogPosts
	}
	return s.BlogPosts[:n]
}

// Business finds a business by id.
func (s Snapshot) Business(id string) (business.Business, bool) {
	for _, b := range s.Businesses {
		if b.ID == id {
			return b, true
		}
	}
	return business.Business{}, false
}
