package cache

import (
	"testing"
	"time"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()

	if p.DefaultTTL != 5*time.Minute {
		t.Errorf("DefaultTTL = %v, want 5m", p.DefaultTTL)
	}
	if p.MaxTTL != time.Hour {
		t.Errorf("MaxTTL = %v, want 1h", p.MaxTTL)
	}
	if !p.ShouldCache() {
		t.Error("default policy should enable caching")
	}
}

func TestNoCachePolicy(t *testing.T) {
	p := NoCachePolicy()

	if p.ShouldCache() {
		t.Error("no-cache policy should disable caching")
	}
	if p.EffectiveTTL(0) != 0 {
		t.Errorf("EffectiveTTL(0) = %v, want 0", p.EffectiveTTL(0))
	}
}

func TestPolicy_EffectiveTTL(t *testing.T) {
	p := Policy{DefaultTTL: time.Minute, MaxTTL: 10 * time.Minute}

	tests := []struct {
		name     string
		override time.Duration
		want     time.Duration
	}{
		{"zero override uses default", 0, time.Minute},
		{"negative override uses default", -time.Second, time.Minute},
		{"override within max", 5 * time.Minute, 5 * time.Minute},
		{"override clamped to max", time.Hour, 10 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.EffectiveTTL(tt.override); got != tt.want {
				t.Errorf("EffectiveTTL(%v) = %v, want %v", tt.override, got, tt.want)
			}
		})
	}
}

func TestPolicy_NoMaxTTL(t *testing.T) {
	p := Policy{DefaultTTL: time.Minute}

	if got := p.EffectiveTTL(24 * time.Hour); got != 24*time.Hour {
		t.Errorf("EffectiveTTL without MaxTTL should not clamp; got %v", got)
	}
}
