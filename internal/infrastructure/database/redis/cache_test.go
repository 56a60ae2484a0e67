package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piyushjha0409/DockAI/pkg/types/common"
	dockingdto "github.com/piyushjha0409/DockAI/pkg/types/docking"
)

type fakeKV struct {
	store   map[string]string
	lastTTL time.Duration
	getErr  error
	setErr  error
}

func newFakeKV() *fakeKV {
	return &fakeKV{store: map[string]string{}}
}

func (f *fakeKV) Set(_ context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.store[key] = string(value.([]byte))
	f.lastTTL = ttl
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeKV) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.store[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeKV) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.store[k]; ok {
			delete(f.store, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func sampleDTO() *dockingdto.ModelDataDTO {
	affinity := -7.2
	return &dockingdto.ModelDataDTO{
		Models: []dockingdto.ModelDTO{
			{
				ModelID:         1,
				BindingAffinity: &affinity,
				Atoms:           []dockingdto.AtomDTO{{ID: 1, Element: "C", X: 1, Y: 2, Z: 3}},
				Bonds:           []dockingdto.BondDTO{},
			},
		},
		Summary: dockingdto.SummaryDTO{BestBindingAffinity: -7.2, ModelCount: 1},
	}
}

func TestModelDataCacheRoundTrip(t *testing.T) {
	kv := newFakeKV()
	cache := NewModelDataCache(kv, "dockai:", 30*time.Minute, nil)
	ctx := context.Background()
	id := common.NewID()

	require.NoError(t, cache.Set(ctx, id, sampleDTO()))
	assert.Equal(t, 30*time.Minute, kv.lastTTL)

	got, hit, err := cache.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, sampleDTO(), got)
}

func TestModelDataCacheMiss(t *testing.T) {
	cache := NewModelDataCache(newFakeKV(), "dockai:", time.Minute, nil)

	got, hit, err := cache.Get(context.Background(), common.ID("absent"))
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, got)
}

func TestModelDataCacheKeyPrefix(t *testing.T) {
	kv := newFakeKV()
	cache := NewModelDataCache(kv, "custom:", time.Minute, nil)
	id := common.ID("a1")

	require.NoError(t, cache.Set(context.Background(), id, sampleDTO()))
	_, ok := kv.store["custom:modeldata:a1"]
	assert.True(t, ok, "entry should be stored under the prefixed key")
}

func TestModelDataCacheCorruptEntryIsAMiss(t *testing.T) {
	kv := newFakeKV()
	cache := NewModelDataCache(kv, "dockai:", time.Minute, nil)
	kv.store["dockai:modeldata:a1"] = "{not json"

	got, hit, err := cache.Get(context.Background(), common.ID("a1"))
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, got)
}

func TestModelDataCacheDelete(t *testing.T) {
	kv := newFakeKV()
	cache := NewModelDataCache(kv, "dockai:", time.Minute, nil)
	ctx := context.Background()
	id := common.ID("a1")

	require.NoError(t, cache.Set(ctx, id, sampleDTO()))
	require.NoError(t, cache.Delete(ctx, id))

	_, hit, err := cache.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, cache.Delete(ctx, id), "evicting a missing entry is not an error")
}

func TestModelDataCacheUnscoredSurvivesJSON(t *testing.T) {
	dto := sampleDTO()
	dto.Models[0].BindingAffinity = nil

	raw, err := json.Marshal(dto)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "binding_affinity", "nil affinity must be omitted")

	kv := newFakeKV()
	cache := NewModelDataCache(kv, "dockai:", time.Minute, nil)
	ctx := context.Background()
	id := common.ID("a1")
	require.NoError(t, cache.Set(ctx, id, dto))

	got, hit, err := cache.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Nil(t, got.Models[0].BindingAffinity)
}
