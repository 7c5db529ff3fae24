package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// recountConcurrency bounds how many posts are reconciled at once.
const recountConcurrency = 8

// CounterStore is the slice of the blog post repository the reconciliation
// job needs.
type CounterStore interface {
	AllIDs() ([]uuid.UUID, error)
	SetLikesCount(id uuid.UUID, count int64) error
}

// LikeCounter counts stored like rows for a post.
type LikeCounter interface {
	CountForPost(blogPostID uuid.UUID) (int64, error)
}

// RecountLikes recomputes every post's denormalized likes counter from the
// like rows themselves. The toggle path keeps the counter consistent on its
// own; this job repairs any drift after manual data surgery or a bad import.
// Returns the number of posts processed.
func RecountLikes(ctx context.Context, posts CounterStore, likes LikeCounter) (int, error) {
	ids, err := posts.AllIDs()
	if err != nil {
		return 0, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(recountConcurrency)

	for _, id := range ids {
		id := id
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			count, err := likes.CountForPost(id)
			if err != nil {
				return err
			}
			if err := posts.SetLikesCount(id, count); err != nil {
				return err
			}

			log.Debug().Str("blogPostId", id.String()).Int64("likes", count).Msg("Recounted likes")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(ids), nil
}
