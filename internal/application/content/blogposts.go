package content

import (
	"context"

	"kingdomstudio/internal/domain/blogpost"
)

const entityBlogPost = "blog post"

// ListBlogPosts returns every post by date descending, or an empty list
// when the store cannot be read.
func (a *Access) ListBlogPosts(ctx context.Context) []blogpost.BlogPost {
	ctx, cancel := a.bound(ctx)
	defer cancel()

	list, err := a.stores.BlogPosts.List(ctx)
	if err != nil {
		a.readFailed("list", "blog_posts", err)
		return []blogpost.BlogPost{}
	}
	if list == nil {
		return []blogpost.BlogPost{}
	}
	blogpost.SortByDateDesc(list)
	return list
}

// CreateBlogPost assigns an id and stores p.
func (a *Access) CreateBlogPost(ctx context.Context, p blogpost.BlogPost) (blogpost.BlogPost, error) {
	if err := p.Validate(); err != nil {
		return blogpost.BlogPost{}, err
	}
	p.ID = a.newID()

	ctx, cancel := a.bound(ctx)
	defer cancel()
	if err := a.stores.BlogPosts.Create(ctx, p); err != nil {
		return blogpost.BlogPost{}, a.writeFailed("create", entityBlogPost, err)
	}
	return p, nil
}

// UpdateBlogPost applies a partial update. An empty patch or an id that
// names no row does nothing.
func (a *Access) UpdateBlogPost(ctx context.Context, id string, patch blogpost.Patch) error {
	if patch.IsEmpty() {
		return nil
	}
	if err := patch.Validate(); err != nil {
		return err
	}
	if !isStoredID(id) {
		return nil
	}
	ctx, cancel := a.bound(ctx)
	defer cancel()
	if err := a.stores.BlogPosts.Update(ctx, id, patch); err != nil {
		return a.writeFailed("update", entityBlogPost, err)
	}
	return nil
}

// RemoveBlogPost deletes a post. Removing a missing id succeeds.
func (a *Access) RemoveBlogPost(ctx context.Context, id string) error {
	if !isStoredID(id) {
		return nil
	}
	ctx, cancel := a.bound(ctx)
	defer cancel()
	if err := a.stores.BlogPosts.Delete(ctx, id); err != nil {
		return a.writeFailed("delete", entityBlogPost, err)
	}
	return nil
}
