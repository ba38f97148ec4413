package cache

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/clipshift/shorts-ms-go/internal/db"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewCache(mr.Addr(), ""), mr
}

func TestGetCacheKey(t *testing.T) {
	if got := getCacheKey("abc", false); got != "video:abc" {
		t.Errorf("getCacheKey = %q; want video:abc", got)
	}
	if got := getCacheKey("abc", true); got != "etag:video:abc" {
		t.Errorf("getCacheKey = %q; want etag:video:abc", got)
	}
}

func TestVideoDetailsRoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	id := db.NewUUID()
	payload := []byte(`{"title":"My Video"}`)

	c.SetVideoDetails(ctx, id, payload, time.Now().Add(time.Hour))

	got, err := c.GetVideoDetails(ctx, id)
	if err != nil {
		t.Fatalf("GetVideoDetails: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("got %q; want %q", got, payload)
	}

	ttl := mr.TTL(getCacheKey(id.String(), false))
	if ttl <= 59*time.Minute || ttl > time.Hour {
		t.Errorf("ttl = %v; want about 1h", ttl)
	}
}

func TestGetVideoDetails_Miss(t *testing.T) {
	c, _ := newTestCache(t)

	got, err := c.GetVideoDetails(context.Background(), db.NewUUID())
	if err != nil {
		t.Fatalf("GetVideoDetails: %v", err)
	}
	if got != nil {
		t.Errorf("expected a miss, got %q", got)
	}
}

func TestEtagVideoDetailsRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	id := db.NewUUID()

	c.SetEtagVideoDetails(ctx, id, `"cafebabe"`, time.Now().Add(time.Hour))

	got, err := c.GetEtagVideoDetails(ctx, id)
	if err != nil {
		t.Fatalf("GetEtagVideoDetails: %v", err)
	}
	if got != `"cafebabe"` {
		t.Errorf("got %q; want %q", got, `"cafebabe"`)
	}
}

func TestGetEtagVideoDetails_Miss(t *testing.T) {
	c, _ := newTestCache(t)

	got, err := c.GetEtagVideoDetails(context.Background(), db.NewUUID())
	if err != nil {
		t.Fatalf("GetEtagVideoDetails: %v", err)
	}
	if got != "" {
		t.Errorf("expected a miss, got %q", got)
	}
}

func TestEntriesExpire(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	id := db.NewUUID()

	c.SetVideoDetails(ctx, id, []byte("data"), time.Now().Add(time.Minute))
	c.SetEtagVideoDetails(ctx, id, `"etag"`, time.Now().Add(time.Minute))

	mr.FastForward(2 * time.Minute)

	if got, _ := c.GetVideoDetails(ctx, id); got != nil {
		t.Errorf("expected the entry to have expired, got %q", got)
	}
	if got, _ := c.GetEtagVideoDetails(ctx, id); got != "" {
		t.Errorf("expected the etag entry to have expired, got %q", got)
	}
}

func TestDeleteVideoDetails(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	id := db.NewUUID()

	c.SetVideoDetails(ctx, id, []byte("data"), time.Now().Add(time.Hour))
	c.SetEtagVideoDetails(ctx, id, `"etag"`, time.Now().Add(time.Hour))

	if err := c.DeleteVideoDetails(ctx, id); err != nil {
		t.Fatalf("DeleteVideoDetails: %v", err)
	}
	if err := c.DeleteEtagVideoDetails(ctx, id); err != nil {
		t.Fatalf("DeleteEtagVideoDetails: %v", err)
	}

	if got, _ := c.GetVideoDetails(ctx, id); got != nil {
		t.Errorf("expected the entry to be gone, got %q", got)
	}
	if got, _ := c.GetEtagVideoDetails(ctx, id); got != "" {
		t.Errorf("expected the etag entry to be gone, got %q", got)
	}
}

func TestGetVideoDetails_RedisDown(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	if _, err := c.GetVideoDetails(context.Background(), db.NewUUID()); err == nil {
		t.Error("expected an error when redis is unreachable")
	}
	if _, err := c.GetEtagVideoDetails(context.Background(), db.NewUUID()); err == nil {
		t.Error("expected an error when redis is unreachable")
	}
	if err := c.DeleteVideoDetails(context.Background(), db.NewUUID()); err == nil {
		t.Error("expected an error when redis is unreachable")
	}
}
