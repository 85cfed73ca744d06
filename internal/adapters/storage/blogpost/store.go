package blogpost

import (
	"context"

	domain "kingdomstudio/internal/domain/blogpost"
)

// Store persists BlogPost records in the blog_posts table.
type Store interface {
	List(ctx context.Context) ([]domain.BlogPost, error)
	Create(ctx context.Context, value domain.BlogPost) error
	Update(ctx context.Context, id string, patch domain.Patch) error
	Delete(ctx context.Context, id string) error
}
