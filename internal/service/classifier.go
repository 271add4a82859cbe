package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/helpdeskops/perf-api/internal/models"
)

// Classifier maps raw sub-category names onto difficulty points and tiers.
// It is built once per request from the tsubcat point table and memoizes
// nothing beyond its own lookup map, so repeated lookups within one
// aggregation pass never touch the store.
type Classifier struct {
	points map[string]int
}

// NewClassifier indexes the point table under normalized names.
func NewClassifier(categories []models.SubCategory) *Classifier {
	points := make(map[string]int, len(categories))
	for _, category := range categories {
		points[NormalizeCategory(category.Name)] = category.Points
	}
	return &Classifier{points: points}
}

// Points returns the difficulty points for a raw sub-category name.
// Missing or unmapped names fall back to the hard tier.
func (c *Classifier) Points(raw string) int {
	if value, ok := c.points[NormalizeCategory(raw)]; ok {
		return value
	}
	return models.DefaultPoints
}

// Tier classifies a raw sub-category name.
func (c *Classifier) Tier(raw string) models.Tier {
	return models.TierFromPoints(c.Points(raw))
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeCategory is the single canonical normalization: trim, lowercase,
// strip diacritics, drop anything that is not a letter, digit or space.
// "Configuration Réseau " and "configuration reseau" index identically.
func NormalizeCategory(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return ""
	}

	if stripped, _, err := transform.String(stripMarks, raw); err == nil {
		raw = stripped
	}

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
