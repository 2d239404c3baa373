package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	authRepo "basamu_backend/internals/features/users/auth/repository"
)

const cleanupBatch = 500

// StartBlacklistCleanupScheduler removes blacklist entries older than ttlDays past
// their expiry, once at start and then every interval, until ctx is done.
func StartBlacklistCleanupScheduler(ctx context.Context, repo authRepo.Repository, ttlDays int, interval time.Duration) {
	if ttlDays <= 0 {
		ttlDays = 7
	}
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			RunBlacklistCleanup(ctx, repo, time.Now().Add(-time.Duration(ttlDays)*24*time.Hour))
			select {
			case <-ctx.Done():
				log.Info().Msg("blacklist cleanup stopped")
				return
			case <-ticker.C:
			}
		}
	}()
}

// RunBlacklistCleanup deletes in batches until nothing older than before remains.
func RunBlacklistCleanup(ctx context.Context, repo authRepo.Repository, before time.Time) int64 {
	var total int64
	for {
		n, err := repo.CleanupExpiredBlacklist(ctx, before, cleanupBatch)
		if err != nil {
			log.Error().Err(err).Msg("blacklist cleanup failed")
			return total
		}
		total += n
		if n < cleanupBatch {
			break
		}
	}
	if total > 0 {
		log.Info().Int64("deleted", total).Msg("expired blacklist tokens removed")
	} else {
		log.Debug().Msg("no expired blacklist tokens")
	}
	return total
}
