package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSortByNewest(t *testing.T) {
	at := func(offset time.Duration) *time.Time {
		ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC).Add(offset)
		return &ts
	}

	records := []Credential{
		{ID: "middle", CreatedAt: at(time.Hour)},
		{ID: "no-timestamp"},
		{ID: "newest", CreatedAt: at(3 * time.Hour)},
		{ID: "oldest", CreatedAt: at(0)},
	}

	SortByNewest(records)

	got := make([]string, len(records))
	for i, r := range records {
		got[i] = r.ID
	}
	assert.Equal(t, []string{"newest", "middle", "oldest", "no-timestamp"}, got,
		"records without a timestamp sort last")
}

func TestSortByNewest_StableForTies(t *testing.T) {
	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	records := []Credential{
		{ID: "a", CreatedAt: &ts},
		{ID: "b", CreatedAt: &ts},
		{ID: "c", CreatedAt: &ts},
	}

	SortByNewest(records)

	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, "b", records[1].ID)
	assert.Equal(t, "c", records[2].ID)
}

func TestDomain(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"full url", "https://github.com/settings", "github.com"},
		{"bare host", "github.com", "github.com"},
		{"host with port", "https://localhost:8080/login", "localhost"},
		{"with subdomain", "https://accounts.google.com", "accounts.google.com"},
		{"unparsable returned as-is", "http://[::1]:namedport", "http://[::1]:namedport"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Domain(tt.raw))
		})
	}
}

func TestStrengthLevel_Text(t *testing.T) {
	assert.Equal(t, "Strong", StrengthStrong.Text())
	assert.Equal(t, "Medium", StrengthMedium.Text())
	assert.Equal(t, "Weak", StrengthWeak.Text())
	assert.Equal(t, "Weak", StrengthLevel("unknown").Text())
}
