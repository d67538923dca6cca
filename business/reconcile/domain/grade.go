// Package domain contains the core domain types for the reconcile context.
package domain

import "strings"

// Grade is the canonical condition bucket for a quote. Exactly two grades
// are supported, named by the raw shop labels they come from.
type Grade string

const (
	// GradeNearMint is the near-mint-minus condition (raw label "A-").
	GradeNearMint Grade = "A-"

	// GradePlayed is the played condition (raw label "B").
	GradePlayed Grade = "B"
)

// fullWidthMinus (U+FF0D) appears in place of the ASCII minus in some
// shop exports.
const fullWidthMinus = "－"

// NormalizeCondition maps a raw shop condition label to a canonical Grade.
// Matching is case-insensitive and the full-width minus variant of "A-"
// normalizes identically to the ASCII one. A bare "A" label is a synonym
// for the near-mint-minus grade. Any other label, including an empty one,
// reports ok=false; such quotes are excluded from all downstream
// computation.
func NormalizeCondition(label string) (Grade, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(label))
	normalized = strings.ReplaceAll(normalized, fullWidthMinus, "-")

	switch normalized {
	case "A-", "A":
		return GradeNearMint, true
	case "B":
		return GradePlayed, true
	default:
		return "", false
	}
}
