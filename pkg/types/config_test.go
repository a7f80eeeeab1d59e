// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFetchConfigResolve(t *testing.T) {
	base := FetchConfig{MaxResults: 50, Delay: 2 * time.Second, HoursBack: 48}

	tests := []struct {
		name string
		in   FetchConfig
		want FetchConfig
	}{
		{"all unset", FetchConfig{}, base},
		{"all set", FetchConfig{MaxResults: 5, Delay: time.Second, HoursBack: 6}, FetchConfig{MaxResults: 5, Delay: time.Second, HoursBack: 6}},
		{"partial", FetchConfig{HoursBack: 12}, FetchConfig{MaxResults: 50, Delay: 2 * time.Second, HoursBack: 12}},
		{"negative is unset", FetchConfig{MaxResults: -1}, base},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Resolve(base))
		})
	}
}

func TestFetchConfigWithDefaults(t *testing.T) {
	got := FetchConfig{}.WithDefaults()
	assert.Equal(t, FetchConfig{MaxResults: 30, Delay: 3 * time.Second, HoursBack: 24}, got)
	assert.Equal(t, 24*time.Hour, got.Window())
}

func TestSettingsFetchConfig(t *testing.T) {
	s := Settings{ArxivMaxResults: 30, ArxivDelaySeconds: 0.25, ArxivHoursBack: 24}
	assert.Equal(t, FetchConfig{MaxResults: 30, Delay: 250 * time.Millisecond, HoursBack: 24}, s.FetchConfig())
}
