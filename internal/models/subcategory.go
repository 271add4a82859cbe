package models

// SubCategory is a row of the tsubcat lookup table. Points encode the
// difficulty of tickets filed under the sub-category.
type SubCategory struct {
	ID     int64  `db:"id" json:"id"`
	Name   string `db:"name" json:"name"`
	Points int    `db:"points" json:"points"`
}

// Tier is the difficulty classification derived from sub-category points.
type Tier int

const (
	TierEasy   Tier = 10
	TierMedium Tier = 20
	TierHard   Tier = 30
)

// DefaultPoints is assigned to tickets whose sub-category is missing or
// unmapped. Unknown work is assumed hard, not an error.
const DefaultPoints = int(TierHard)

// TierFromPoints maps a point value onto a tier. Anything outside the
// known values falls back to hard.
func TierFromPoints(points int) Tier {
	switch points {
	case int(TierEasy):
		return TierEasy
	case int(TierMedium):
		return TierMedium
	default:
		return TierHard
	}
}

// String returns the tier mnemonic.
func (t Tier) String() string {
	switch t {
	case TierEasy:
		return "facile"
	case TierMedium:
		return "moyen"
	default:
		return "difficile"
	}
}
