package models

// MaxLevel caps the level-up cascade. The reward tables stop here, and the
// orchestrator's loop uses it as an explicit termination guard.
const MaxLevel = 100

// TierBand is one named band of levels. Bands form a closed, ordered,
// non-overlapping partition of [1, MaxLevel]. Tier is never stored on the
// user record — it is always derived from the level via TierOf-style lookup
// so the two can not drift apart.
type TierBand struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	MinLevel    int    `json:"min_level"`
	MaxLevel    int    `json:"max_level"`
	// GemReward is the base gem amount granted for every level gained
	// inside this band.
	GemReward int `json:"gem_reward"`
}

// TierTable is the static level partition. Order matters: lookup scans from
// the first band and the first band is the defensive fallback.
var TierTable = []TierBand{
	{ID: "bronze", DisplayName: "Bronze", MinLevel: 1, MaxLevel: 9, GemReward: 100},
	{ID: "silver", DisplayName: "Silver", MinLevel: 10, MaxLevel: 24, GemReward: 150},
	{ID: "gold", DisplayName: "Gold", MinLevel: 25, MaxLevel: 49, GemReward: 200},
	{ID: "platinum", DisplayName: "Platinum", MinLevel: 50, MaxLevel: 74, GemReward: 250},
	{ID: "diamond", DisplayName: "Diamond", MinLevel: 75, MaxLevel: 100, GemReward: 300},
}

// TierEntryBonuses maps the first level of each non-starting tier to the
// one-time gem bonus granted when that tier is entered.
var TierEntryBonuses = map[int]int{
	10: 500,   // Silver
	25: 1500,  // Gold
	50: 5000,  // Platinum
	75: 10000, // Diamond
}

// TierCrestItems maps tier-entry levels to the cosmetic crest unlocked
// alongside the gem bonus. IDs must exist nowhere in the shop catalog —
// crests are earned, never bought.
var TierCrestItems = map[int]string{
	10: "silver-crest",
	25: "gold-crest",
	50: "platinum-crest",
	75: "diamond-crest",
}
