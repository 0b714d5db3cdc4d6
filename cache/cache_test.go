package cache

import (
	"testing"

	"github.com/prospectio/leadscout/models"
)

func TestKeyIsStablePerURL(t *testing.T) {
	a := Key("https://example.com")
	b := Key("https://example.com")
	c := Key("https://example.org")

	if a != b {
		t.Error("same URL should produce the same key")
	}
	if a == c {
		t.Error("different URLs should produce different keys")
	}
}

func TestGetSet(t *testing.T) {
	c := New(10)
	key := Key("https://example.com")
	resp := &models.ScrapeResponse{Success: true, URL: "https://example.com"}

	if _, hit := c.Get(key, 60000); hit {
		t.Fatal("unexpected hit on empty cache")
	}

	c.Set(key, resp)

	got, hit := c.Get(key, 60000)
	if !hit {
		t.Fatal("expected cache hit after Set")
	}
	if got.URL != resp.URL {
		t.Errorf("cached URL = %q, want %q", got.URL, resp.URL)
	}
}

func TestGetDisabledWithZeroMaxAge(t *testing.T) {
	c := New(10)
	key := Key("https://example.com")
	c.Set(key, &models.ScrapeResponse{Success: true})

	if _, hit := c.Get(key, 0); hit {
		t.Error("maxAge 0 should disable cache lookup")
	}
}

func TestEvictionAtCapacity(t *testing.T) {
	c := New(2)
	c.Set(Key("u1"), &models.ScrapeResponse{})
	c.Set(Key("u2"), &models.ScrapeResponse{})
	c.Set(Key("u3"), &models.ScrapeResponse{})

	hits := 0
	for _, u := range []string{"u1", "u2", "u3"} {
		if _, hit := c.Get(Key(u), 60000); hit {
			hits++
		}
	}
	if hits != 2 {
		t.Errorf("expected exactly 2 entries after eviction, got %d", hits)
	}
}
