package auth

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestSessionRoundTrip(t *testing.T) {
	rdb := setupTestRedis(t)
	subject := "idp_user_7"

	if err := SetSession(rdb, subject, 7, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	id, err := GetSession(rdb, subject)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if id != 7 {
		t.Errorf("expected user id 7, got %d", id)
	}

	if err := DeleteSession(rdb, subject); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := GetSession(rdb, subject); err == nil {
		t.Errorf("expected miss after delete")
	}
}

func TestGetSession_Miss(t *testing.T) {
	rdb := setupTestRedis(t)
	if _, err := GetSession(rdb, "never-seen"); err == nil {
		t.Errorf("expected error on missing session")
	}
}

func TestOnlineUserCount(t *testing.T) {
	rdb := setupTestRedis(t)
	if err := SetSession(rdb, "sub_a", 1, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := SetSession(rdb, "sub_b", 2, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	// Same subject twice counts once.
	if err := SetSession(rdb, "sub_a", 1, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	n, err := OnlineUserCount(rdb)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 online users, got %d", n)
	}
}
