package memdb

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/store"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
)

const (
	draftKeyPrefix  = "DRAFT:"
	DefaultDraftTTL = 7 * 24 * time.Hour // abandoned drafts disappear
)

// DraftDB keeps one JSON encoded draft per device, refreshed on every save.
type DraftDB struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDraftDB(client *redis.Client, ttl time.Duration) *DraftDB {
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}
	return &DraftDB{client: client, ttl: ttl}
}

func deviceIDToKey(deviceID string) string {
	return draftKeyPrefix + deviceID
}

func (d *DraftDB) SaveDraft(ctx context.Context, draft types.Draft) error {
	dataBytes, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return d.client.Set(ctx, deviceIDToKey(draft.DeviceID), dataBytes, d.ttl).Err()
}

func (d *DraftDB) GetDraft(ctx context.Context, deviceID string) (types.Draft, error) {
	dataBytes, err := d.client.Get(ctx, deviceIDToKey(deviceID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return types.Draft{}, store.ErrDraftNotFound
		}
		return types.Draft{}, err
	}

	var draft types.Draft
	if err := json.Unmarshal(dataBytes, &draft); err != nil {
		return types.Draft{}, err
	}
	return draft, nil
}

func (d *DraftDB) DeleteDraft(ctx context.Context, deviceID string) error {
	return d.client.Del(ctx, deviceIDToKey(deviceID)).Err()
}
