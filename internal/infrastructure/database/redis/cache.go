package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/piyushjha0409/DockAI/internal/infrastructure/monitoring/logging"
	"github.com/piyushjha0409/DockAI/pkg/errors"
	"github.com/piyushjha0409/DockAI/pkg/types/common"
	dockingdto "github.com/piyushjha0409/DockAI/pkg/types/docking"
)

// KV is the subset of redis.Client the cache uses.
type KV interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// ModelDataCache caches parsed datasets keyed by analysis id so repeated
// viewer loads skip the database.  Entries expire after ttl; a zero ttl means
// entries never expire.
type ModelDataCache struct {
	rdb    KV
	prefix string
	ttl    time.Duration
	log    logging.Logger
}

// NewModelDataCache constructs a ModelDataCache.
func NewModelDataCache(rdb KV, prefix string, ttl time.Duration, log logging.Logger) *ModelDataCache {
	if prefix == "" {
		prefix = "dockai:"
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &ModelDataCache{rdb: rdb, prefix: prefix, ttl: ttl, log: log.Named("modeldata-cache")}
}

func (c *ModelDataCache) key(id common.ID) string {
	return c.prefix + "modeldata:" + string(id)
}

// Set stores the dataset for id.
func (c *ModelDataCache) Set(ctx context.Context, id common.ID, data *dockingdto.ModelDataDTO) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode model data")
	}
	if err := c.rdb.Set(ctx, c.key(id), raw, c.ttl).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to cache model data")
	}
	return nil
}

// Get loads the dataset for id.  The second return value reports whether the
// entry was present; a miss is not an error.
func (c *ModelDataCache) Get(ctx context.Context, id common.ID) (*dockingdto.ModelDataDTO, bool, error) {
	raw, err := c.rdb.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, errors.ErrCodeCacheError, "failed to read cached model data")
	}
	var data dockingdto.ModelDataDTO
	if err := json.Unmarshal(raw, &data); err != nil {
		// A corrupt entry is treated as a miss so the caller falls back to
		// the database and overwrites it.
		c.log.Warn("discarding corrupt cache entry", logging.String("id", string(id)), logging.Err(err))
		return nil, false, nil
	}
	return &data, true, nil
}

// Delete evicts the dataset for id.  Evicting a missing entry is not an error.
func (c *ModelDataCache) Delete(ctx context.Context, id common.ID) error {
	if err := c.rdb.Del(ctx, c.key(id)).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to evict cached model data")
	}
	return nil
}
