package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRates(t *testing.T) {
	rates := parseRates("buy=200, sip=150, bad, neg=-5, empty=")
	assert.Equal(t, map[string]int64{"buy": 200, "sip": 150}, rates)
}

func TestRateBpsFor(t *testing.T) {
	cfg := Config{
		CommissionDefaultRateBps: 200,
		CommissionRatesBps:       map[string]int64{"sip": 150},
	}

	assert.Equal(t, int64(150), cfg.RateBpsFor("sip"))
	assert.Equal(t, int64(150), cfg.RateBpsFor(" SIP "))
	assert.Equal(t, int64(200), cfg.RateBpsFor("buy"))
	assert.Equal(t, int64(200), cfg.RateBpsFor(""))
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, int64(100000), cfg.PayoutMinAmount)
	assert.Equal(t, int64(200), cfg.CommissionDefaultRateBps)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
}
