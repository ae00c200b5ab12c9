package models

import "github.com/gosimple/slug"

// ShopItemKind distinguishes consumables (applied on purchase) from
// cosmetics (recorded in unlockedItems).
type ShopItemKind string

const (
	ItemKindConsumable ShopItemKind = "consumable"
	ItemKindTheme      ShopItemKind = "theme"
	ItemKindAvatar     ShopItemKind = "avatar"
)

// ShopItem is one static catalog entry. IDs are slugs of the display name.
type ShopItem struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Kind        ShopItemKind `json:"kind"`
	Cost        int          `json:"cost"`
}

// ItemStreakFreeze is the consumable that protects a streak for one missed
// day. Purchasing it equips a charge instead of adding to unlockedItems.
var ItemStreakFreeze = newItem("Streak Freeze", "Protects your streak for one missed day", ItemKindConsumable, 300)

// ShopCatalog is the fixed purchasable item set.
var ShopCatalog = []ShopItem{
	ItemStreakFreeze,
	newItem("Midnight Theme", "A dark blue interface theme", ItemKindTheme, 800),
	newItem("Sunrise Theme", "A warm orange interface theme", ItemKindTheme, 800),
	newItem("Forest Theme", "A calm green interface theme", ItemKindTheme, 1000),
	newItem("Gem Collector Avatar", "Show off your gem hoard", ItemKindAvatar, 1200),
	newItem("Golden Trophy Avatar", "For champions only", ItemKindAvatar, 2500),
}

func newItem(name, description string, kind ShopItemKind, cost int) ShopItem {
	return ShopItem{
		ID:          slug.Make(name),
		Name:        name,
		Description: description,
		Kind:        kind,
		Cost:        cost,
	}
}

// ItemByID looks up a catalog entry by its slug ID.
func ItemByID(id string) (ShopItem, bool) {
	for _, item := range ShopCatalog {
		if item.ID == id {
			return item, true
		}
	}
	return ShopItem{}, false
}
