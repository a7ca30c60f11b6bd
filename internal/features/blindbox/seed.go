// Package blindbox — seed.go holds the built-in box series and content pool.
package blindbox

// DefaultBoxes returns the seed box series.
func DefaultBoxes() []Box {
	mk := func(id, name, description string, price int64, rarity Rarity, count int) Box {
		return Box{
			ID: id, Name: name, Description: description,
			Price: price, Rarity: rarity,
			TotalCount: count, RemainingCount: count, Available: count > 0,
			ImageURL: "/images/boxes/" + id + ".png",
		}
	}
	return []Box{
		mk("box-paper", "Paper Lantern Box", "Everyday trinkets with a lucky streak",
			100, RarityCommon, 500),
		mk("box-lacquer", "Lacquer Box", "A better shot at rare pieces",
			250, RarityRare, 200),
		mk("box-bronze", "Bronze Ware Box", "Epic-leaning pool for collectors",
			500, RarityEpic, 80),
		mk("box-imperial", "Imperial Seal Box", "The deepest pool in the catalog",
			1000, RarityLegendary, 20),
	}
}

// DefaultContents returns the shared content pool, a few entries per tier.
func DefaultContents() []Content {
	mk := func(id, name string, rarity Rarity) Content {
		return Content{ID: id, Name: name, Rarity: rarity, ImageURL: "/images/contents/" + id + ".png"}
	}
	return []Content{
		mk("cnt-sticker", "Opera Mask Sticker", RarityCommon),
		mk("cnt-magnet", "Lattice Window Magnet", RarityCommon),
		mk("cnt-keyring", "Knot Keyring", RarityCommon),
		mk("cnt-fan", "Folding Fan Charm", RarityCommon),
		mk("cnt-pin", "Cloisonné Pin", RarityRare),
		mk("cnt-seal", "Mini Stone Seal", RarityRare),
		mk("cnt-brush", "Calligraphy Brush Charm", RarityRare),
		mk("cnt-jade", "Jade Pendant", RarityEpic),
		mk("cnt-inkstone", "Pocket Inkstone", RarityEpic),
		mk("cnt-dragon", "Gilded Dragon Figurine", RarityLegendary),
		mk("cnt-phoenix", "Phoenix Silk Miniature", RarityLegendary),
	}
}
