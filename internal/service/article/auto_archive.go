package article

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// AutoArchive archives every live article dated before now-olderThan and
// returns how many were archived. It runs as a system job and is not
// subject to authorization.
func (s *Service) AutoArchive(ctx context.Context, olderThan time.Duration) (int, error) {
	if olderThan <= 0 {
		return 0, fmt.Errorf("article.AutoArchive: olderThan must be positive (got %v)", olderThan)
	}
	cutoff := s.now().UTC().Add(-olderThan)

	ids, err := s.articles.ArchiveOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("article.AutoArchive: %w", err)
	}

	if len(ids) > 0 {
		s.invalidateFeed(ctx)
	}
	s.log.InfoContext(ctx, "articles auto-archived",
		slog.Int("count", len(ids)),
		slog.Time("cutoff", cutoff),
	)
	return len(ids), nil
}
