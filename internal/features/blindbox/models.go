// Package blindbox implements stock-limited blind boxes: a paid purchase
// step, a rarity-weighted open step and the per-user opening history.
// models.go describes the box, content and record shapes plus the
// probability tables.
package blindbox

import "time"

// Rarity grades both boxes and their contents.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// RarityOrder is the fixed tier walk used by cumulative sampling.
var RarityOrder = []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}

// TierProbabilities maps a BOX's rarity to the content-tier probabilities,
// indexed in RarityOrder. Each row sums to 1; higher box rarity shifts
// weight toward higher-rarity content.
var TierProbabilities = map[Rarity][4]float64{
	RarityCommon:    {0.70, 0.25, 0.04, 0.01},
	RarityRare:      {0.45, 0.40, 0.12, 0.03},
	RarityEpic:      {0.25, 0.45, 0.25, 0.05},
	RarityLegendary: {0.10, 0.35, 0.40, 0.15},
}

// Box is one purchasable blind-box series. Available mirrors the remaining
// stock: it is true exactly while RemainingCount > 0.
type Box struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Price          int64  `json:"price"` // Points per unit
	Rarity         Rarity `json:"rarity"`
	TotalCount     int    `json:"total_count"`
	RemainingCount int    `json:"remaining_count"`
	Available      bool   `json:"available"`
	ImageURL       string `json:"image_url"`
}

// Content is one possible item inside a box. The pool is shared by all
// boxes; the box's rarity only biases which tier is drawn.
type Content struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Rarity   Rarity `json:"rarity"`
	ImageURL string `json:"image_url"`
}

// Purchase is one paid, not-necessarily-opened box unit. Opening consumes
// the oldest unopened purchase for the (user, box) pair.
type Purchase struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	BoxID     string     `json:"box_id"`
	Opened    bool       `json:"opened"`
	CreatedAt time.Time  `json:"created_at"`
	OpenedAt  *time.Time `json:"opened_at,omitempty"`
}

// OpeningRecord is one resolved open, appended to the per-user history.
// Draws are independent: no pity counter, duplicates allowed.
type OpeningRecord struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	BoxID       string    `json:"box_id"`
	ContentID   string    `json:"content_id"`
	ContentName string    `json:"content_name"`
	Rarity      Rarity    `json:"rarity"`
	CreatedAt   time.Time `json:"created_at"`
}
