// Package catalog — seed.go holds the built-in product catalog used when
// storage has no snapshot or the schema version changed.
package catalog

import "time"

// SchemaVersion is bumped on breaking changes to the product shape;
// a mismatch on load triggers a reseed of the defaults.
const SchemaVersion = 1

// DefaultCatalog returns the seed products.
func DefaultCatalog(now time.Time) []Product {
	mk := func(id, name, description, category, imageURL string, points int64, stock int, tags ...string) Product {
		return Product{
			ID: id, Name: name, Description: description,
			Points: points, Stock: stock, Status: StatusActive,
			Category: category, Tags: tags, ImageURL: imageURL,
			CreatedAt: now, UpdatedAt: now,
		}
	}
	return []Product{
		mk("prod-bookmark", "Cloisonné Bookmark", "Enamel bookmark with a crane motif",
			"stationery", "/images/products/bookmark.png", 300, 50, "enamel", "crane"),
		mk("prod-postcards", "Heritage Postcard Set", "Twelve postcards of museum pieces",
			"stationery", "/images/products/postcards.png", 150, 120, "postcards", "print"),
		mk("prod-teacup", "Celadon Teacup", "Hand-glazed celadon cup, 150ml",
			"homeware", "/images/products/teacup.png", 800, 20, "ceramics", "tea"),
		mk("prod-scarf", "Brocade Silk Scarf", "Jacquard scarf woven with a cloud pattern",
			"apparel", "/images/products/scarf.png", 1200, 10, "silk", "brocade"),
		mk("prod-notebook", "Woodblock Print Notebook", "A5 notebook with a woodblock cover",
			"stationery", "/images/products/notebook.png", 200, 80, "paper", "print"),
	}
}
