package blogpost

import (
	"context"

	"kingdomstudio/internal/adapters/storage"
	domain "kingdomstudio/internal/domain/blogpost"
)

const selectColumns = "SELECT id, title, excerpt, content, author, date, category, image_url FROM blog_posts"

// PostgresStore implements Store against the remote store.
type PostgresStore struct {
	read  storage.SQLDB
	write storage.SQLDB
}

// NewPostgresStore creates a new BlogPostStore.
func NewPostgresStore(read, write storage.SQLDB) *PostgresStore {
	return &PostgresStore{read: read, write: write}
}

// List retrieves all posts, newest publication date first.
func (s *PostgresStore) List(ctx context.Context) ([]domain.BlogPost, error) {
	rows, err := s.read.QueryContext(ctx, selectColumns+" ORDER BY date DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []domain.BlogPost{}
	for rows.Next() {
		var p domain.BlogPost
		if err := rows.Scan(&p.ID, &p.Title, &p.Excerpt, &p.Content, &p.Author, &p.Date, &p.Category, &p.ImageURL); err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

// Create inserts a new post.
// PRE: value has been validated and carries an id
// POST: Row is persisted
func (s *PostgresStore) Create(ctx context.Context, value domain.BlogPost) error {
	_, err := s.write.ExecContext(ctx,
		"INSERT INTO blog_posts (id, title, excerpt, content, author, date, category, image_url) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		value.ID, value.Title, value.Excerpt, value.Content, value.Author, value.DateString(), value.Category, value.ImageURL,
	)
	return err
}

// Update writes only the fields present in patch.
// PRE: patch is validated
// POST: Present fields are overwritten; id is never changed
func (s *PostgresStore) Update(ctx context.Context, id string, patch domain.Patch) error {
	b := storage.NewUpdate("blog_posts")
	if patch.Title != nil {
		b.Set("title", *patch.Title)
	}
	if patch.Excerpt != nil {
		b.Set("excerpt", *patch.Excerpt)
	}
	if patch.Content != nil {
		b.Set("content", *patch.Content)
	}
	if patch.Author != nil {
		b.Set("author", *patch.Author)
	}
	if patch.Date != nil {
		b.Set("date", patch.Date.Format(domain.DateLayout))
	}
	if patch.Category != nil {
		b.Set("category", *patch.Category)
	}
	if patch.ImageURL != nil {
		b.Set("image_url", *patch.ImageURL)
	}
	if b.Empty() {
		return nil
	}
	query, args := b.WhereID(id)
	_, err := s.write.ExecContext(ctx, query, args...)
	return err
}

// Delete removes a post. Deleting a missing id is not an error.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := s.write.ExecContext(ctx, "DELETE FROM blog_posts WHERE id = $1", id)
	return err
}
