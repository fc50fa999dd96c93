// Package cleaner prunes refresh tokens that can no longer be used.
package cleaner

import (
	"context"
	"database/sql"
	"time"

	"github.com/dtroode/quicksnatch-server/internal/logger"
)

// StartRefreshTokenCleaner deletes expired and revoked refresh tokens every interval
// until ctx is cancelled. Tokens are kept for retention after they stop being valid.
func StartRefreshTokenCleaner(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	retention time.Duration,
	log *logger.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cutoff := time.Now().Add(-retention)
				res, err := db.ExecContext(ctx, `
                    DELETE FROM refresh_tokens
                     WHERE expires_at < $1
                        OR (revoked_at IS NOT NULL AND revoked_at < $1)
                `, cutoff)
				if err != nil {
					log.Error("Token cleaner: failed to delete stale refresh tokens", "error", err)
					continue
				}
				if rows, _ := res.RowsAffected(); rows > 0 {
					log.Info("Token cleaner: deleted stale refresh tokens", "removed", rows)
				}
			}
		}
	}()
}
