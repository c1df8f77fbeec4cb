package keystore

import (
	"context"
	"fmt"

	"internmatch-client/internal/common/config"
	"internmatch-client/internal/common/database"
	"internmatch-client/internal/common/logger"
)

// Open builds the keystore selected by cfg.Session.Store. The returned close
// function releases any connection it opened.
func Open(ctx context.Context, cfg *config.Config, log logger.Logger) (Keystore, func() error, error) {
	log = logger.OrNop(log)
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		client := database.NewRedis(cfg.Database.Redis)
		if err := client.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Database.Redis.Describe(), err)
		}
		log.Info("using redis keystore", map[string]interface{}{
			"redis":  cfg.Database.Redis.Describe(),
			"prefix": cfg.Session.KeyPrefix,
		})
		return NewRedisKeystore(client, cfg.Session.KeyPrefix), client.Close, nil
	case config.SessionStoreFile:
		log.Debug("using file keystore", map[string]interface{}{"path": cfg.Session.FilePath})
		return NewFileKeystore(cfg.Session.FilePath), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}
