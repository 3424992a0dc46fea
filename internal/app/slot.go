package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/MrSnakeDoc/codex/internal/config"
	"github.com/MrSnakeDoc/codex/internal/domain"
	"github.com/MrSnakeDoc/codex/internal/gallery"
	"github.com/MrSnakeDoc/codex/internal/httpserver/deps"
	"github.com/MrSnakeDoc/codex/internal/logger"
	"github.com/MrSnakeDoc/codex/internal/redis"
	"github.com/MrSnakeDoc/codex/internal/slot"
	redisstore "github.com/MrSnakeDoc/codex/internal/store/redis"
	"github.com/MrSnakeDoc/codex/internal/store/sqlite"
)

// slotHandle is an opened slot backend.
type slotHandle struct {
	backend string
	slot    slot.Slot
	pinger  deps.Pinger // nil for the memory backend
	closer  io.Closer   // nil when there is nothing to close
}

func openSlot(ctx context.Context, cfg *config.Config, log logger.Logger) (slotHandle, error) {
	switch cfg.SlotBackend {
	case config.BackendRedis:
		client, err := redis.New(ctx, redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			return slotHandle{}, err
		}
		sl, err := redisstore.NewSlot(client, cfg.SlotKey)
		if err != nil {
			_ = client.Close()
			return slotHandle{}, err
		}
		log.Info("gallery slot opened",
			logger.String("backend", cfg.SlotBackend),
			logger.String("key", sl.Key()))
		return slotHandle{backend: cfg.SlotBackend, slot: sl, pinger: sl, closer: client}, nil

	case config.BackendSQLite:
		return openSQLiteSlot(ctx, cfg.SQLitePath, cfg.SlotKey, log)

	case config.BackendMemory:
		log.Warn("memory slot backend: fan art is lost on restart")
		return slotHandle{backend: cfg.SlotBackend, slot: slot.NewMemory(nil)}, nil

	default:
		return slotHandle{}, fmt.Errorf("unknown slot backend %q", cfg.SlotBackend)
	}
}

func openSQLiteSlot(ctx context.Context, path, key string, log logger.Logger) (slotHandle, error) {
	st, err := sqlite.Open(path)
	if err != nil {
		return slotHandle{}, err
	}
	sl, err := st.Slot(key)
	if err != nil {
		_ = st.Close()
		return slotHandle{}, err
	}

	fields := []logger.Field{
		logger.String("backend", config.BackendSQLite),
		logger.String("path", path),
		logger.String("key", key),
	}
	if at, ok, err := sl.UpdatedAt(ctx); err == nil && ok {
		fields = append(fields, logger.Time("last_written", at))
	}
	log.Info("gallery slot opened", fields...)

	return slotHandle{backend: config.BackendSQLite, slot: sl, pinger: sl, closer: st}, nil
}

// newGallery picks the id generator and builds the store, seeded from characters.
func newGallery(ctx context.Context, sl slot.Slot, characters []domain.Character, idKind string, log logger.Logger) (*gallery.Store, error) {
	ids, err := gallery.NewIDGenerator(idKind)
	if err != nil {
		return nil, err
	}
	if idKind != gallery.GeneratorPseudo && ids.Kind() == gallery.GeneratorPseudo {
		log.Info("secure random source unavailable, using pseudo-random fan art ids")
	}

	return gallery.New(ctx, sl, domain.SeedEntries(characters, time.Now()),
		gallery.WithIDGenerator(ids),
		gallery.WithLogger(log))
}
