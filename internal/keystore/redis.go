package keystore

import (
	"context"
	stderrors "errors"

	"internmatch-client/internal/common/database"
	"internmatch-client/internal/common/errors"
)

// RedisKeystore stores keys under a namespace prefix with no expiry.
type RedisKeystore struct {
	client *database.RedisClient
	prefix string
}

func NewRedisKeystore(client *database.RedisClient, prefix string) *RedisKeystore {
	return &RedisKeystore{client: client, prefix: prefix}
}

func (k *RedisKeystore) key(name string) string {
	return k.prefix + name
}

func (k *RedisKeystore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := k.client.Get(ctx, k.key(key))
	if stderrors.Is(err, database.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.NewStorageError("get "+key, err)
	}
	return val, true, nil
}

func (k *RedisKeystore) Set(ctx context.Context, key, value string) error {
	if err := k.client.Set(ctx, k.key(key), value, 0); err != nil {
		return errors.NewStorageError("set "+key, err)
	}
	return nil
}

func (k *RedisKeystore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, key := range keys {
		full[i] = k.key(key)
	}
	if err := k.client.Del(ctx, full...); err != nil {
		return errors.NewStorageError("delete", err)
	}
	return nil
}
