package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyFmt = "session:%s"

// Sessions cache the identity provider subject -> local user id
// mapping so the per-request middleware can skip the sync lookup.

func SetSession(rdb *redis.Client, subject string, userID uint, duration time.Duration) error {
	ctx := context.Background()
	key := fmt.Sprintf(sessionKeyFmt, subject)
	return rdb.Set(ctx, key, strconv.FormatUint(uint64(userID), 10), duration).Err()
}

func GetSession(rdb *redis.Client, subject string) (uint, error) {
	ctx := context.Background()
	key := fmt.Sprintf(sessionKeyFmt, subject)
	val, err := rdb.Get(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session value %q: %w", val, err)
	}
	return uint(id), nil
}

func DeleteSession(rdb *redis.Client, subject string) error {
	ctx := context.Background()
	key := fmt.Sprintf(sessionKeyFmt, subject)
	return rdb.Del(ctx, key).Err()
}

// OnlineUserCount returns the number of subjects with a live session.
func OnlineUserCount(rdb *redis.Client) (int, error) {
	ctx := context.Background()
	var cursor uint64
	subjects := make(map[string]struct{})
	for {
		keys, newCursor, err := rdb.Scan(ctx, cursor, "session:*", 100).Result()
		if err != nil {
			return 0, err
		}
		for _, key := range keys {
			subjects[key] = struct{}{}
		}
		if newCursor == 0 {
			break
		}
		cursor = newCursor
	}
	return len(subjects), nil
}
