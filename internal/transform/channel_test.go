package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMediaType(t *testing.T) {
	cases := map[string]string{
		"paid_youtube": "YouTube",
		"paid_reels":   "Reels",
		"cpc":          "Google Ads",
		"organic":      "Organic",
		"referral":     "Referral",
		"direct":       "Direct",
		"email":        "email",
		"":             "",
		"(none)":       "(none)",
		"Paid_YouTube": "Paid_YouTube",
	}
	for medium, want := range cases {
		assert.Equal(t, want, MediaType(medium), "medium %q", medium)
	}
}
