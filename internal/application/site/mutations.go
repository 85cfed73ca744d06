package site

import (
	"context"

	"kingdomstudio/internal/domain/blogpost"
	"kingdomstudio/internal/domain/business"
	"kingdomstudio/internal/domain/program"
	"kingdomstudio/internal/domain/registration"
	"kingdomstudio/internal/domain/settings"
	"kingdomstudio/internal/metrics"
)

// AddBusiness creates a business and reloads.
func (c *Controller) AddBusiness(ctx context.Context, b business.Business) (business.Business, error) {
	var created business.Business
	err := c.mutate(ctx, "business", "create", func(ctx context.Context) error {
		var err error
		created, err = c.access.CreateBusiness(ctx, b)
		return err
	})
	return created, err
}

// UpdateBusiness applies a partial update and reloads.
func (c *Controller) UpdateBusiness(ctx context.Context, id string, patch business.Patch) error {
	return c.mutate(ctx, "business", "update", func(ctx context.Context) error {
		return c.access.UpdateBusiness(ctx, id, patch)
	})
}

// RemoveBusiness deletes a business and reloads.
func (c *Controller) RemoveBusiness(ctx context.Context, id string) error {
	return c.mutate(ctx, "business", "delete", func(ctx context.Context) error {
		return c.access.RemoveBusiness(ctx, id)
	})
}

// AddBlogPost creates a post and reloads.
func (c *Controller) AddBlogPost(ctx context.Context, p blogpost.BlogPost) (blogpost.BlogPost, error) {
	var created blogpost.BlogPost
	err := c.mutate(ctx, "blog_post", "create", func(ctx context.Context) error {
		var err error
		created, err = c.access.CreateBlogPost(ctx, p)
		return err
	})
	return created, err
}

// UpdateBlogPost applies a partial update and reloads.
func (c *Controller) UpdateBlogPost(ctx context.Context, id string, patch blogpost.Patch) error {
	return c.mutate(ctx, "blog_post", "update", func(ctx context.Context) error {
		return c.access.UpdateBlogPost(ctx, id, patch)
	})
}

// RemoveBlogPost deletes a post and reloads.
func (c *Controller) RemoveBlogPost(ctx context.Context, id string) error {
	return c.mutate(ctx, "blog_post", "delete", func(ctx context.Context) error {
		return c.access.RemoveBlogPost(ctx, id)
	})
}

// UpdateProgram edits one canonical program and reloads.
func (c *Controller) UpdateProgram(ctx context.Context, id string, patch program.Patch) error {
	return c.mutate(ctx, "program", "update", func(ctx context.Context) error {
		return c.access.UpdateProgram(ctx, id, patch)
	})
}

// AddRegistration stores a visitor's submission. It needs no session;
// the snapshot is reloaded only when an admin could see the new row.
func (c *Controller) AddRegistration(ctx context.Context, r registration.Registration) (registration.Registration, error) {
	created, err := c.access.CreateRegistration(ctx, r)
	if err != nil {
		metrics.Mutations.WithLabelValues("registration", "create", metrics.ResultError).Inc()
		return registration.Registration{}, err
	}
	metrics.Mutations.WithLabelValues("registration", "create", metrics.ResultOK).Inc()
	if c.authenticated.Load() {
		c.reload(ctx)
	}
	return created, nil
}

// ListRegistrations returns registrations for an admin, or nothing while anonymous.
func (c *Controller) ListRegistrations(ctx context.Context) ([]registration.Registration, error) {
	if !c.authenticated.Load() {
		return []registration.Registration{}, nil
	}
	return c.access.ListRegistrations(ctx)
}

// RemoveRegistration deletes a registration and reloads.
func (c *Controller) RemoveRegistration(ctx context.Context, id string) error {
	return c.mutate(ctx, "registration", "delete", func(ctx context.Context) error {
		return c.access.RemoveRegistration(ctx, id)
	})
}

// UpdateRegistrationPrice stores a new fee and reloads.
func (c *Controller) UpdateRegistrationPrice(ctx context.Context, price int) error {
	return c.mutate(ctx, "setting", "registration_price", func(ctx context.Context) error {
		return c.access.SetRegistrationPrice(ctx, price)
	})
}

// UpdateContactInfo stores new contact details and reloads.
func (c *Controller) UpdateContactInfo(ctx context.Context, info settings.ContactInfo) error {
	return c.mutate(ctx, "setting", "contact_info", func(ctx context.Context) error {
		return c.access.SetContactInfo(ctx, info)
	})
}

// UpdateSocialMediaLinks stores new links and reloads.
func (c *Controller) UpdateSocialMediaLinks(ctx context.Context, links settings.SocialMediaLinks) error {
	return c.mutate(ctx, "setting", "social_media_links", func(ctx context.Context) error {
		return c.access.SetSocialMediaLinks(ctx, links)
	})
}

// UpdateAdminPassword replaces the admin password and reloads.
func (c *Controller) UpdateAdminPassword(ctx context.Context, plaintext string) error {
	return c.mutate(ctx, "setting", "admin_password", func(ctx context.Context) error {
		return c.access.SetAdminPassword(ctx, plaintext)
	})
}
