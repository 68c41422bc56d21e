package transform

const (
	YouTube   = "YouTube"
	Reels     = "Reels"
	GoogleAds = "Google Ads"
	Organic   = "Organic"
	Referral  = "Referral"
	Direct    = "Direct"
)

var mediaTypes = map[string]string{
	"paid_youtube": YouTube,
	"paid_reels":   Reels,
	"cpc":          GoogleAds,
	"organic":      Organic,
	"referral":     Referral,
	"direct":       Direct,
}

// MediaType maps a session medium to its display label. Unknown mediums
// are returned as-is.
func MediaType(medium string) string {
	if label, ok := mediaTypes[medium]; ok {
		return label
	}
	return medium
}
