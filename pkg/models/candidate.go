package models

import (
	"fmt"
	"time"
)

// Candidate is a single OCR-derived text observation proposed by the upstream
// detection/OCR collaborators. Candidates are request-scoped and never mutated.
type Candidate struct {
	// Text is the raw OCR output for one detected region. May be empty;
	// empty candidates are discarded before prioritization.
	Text string `json:"text"`

	// OCRConfidence is the OCR engine's confidence on a 0-100 scale.
	OCRConfidence float64 `json:"ocr_confidence"`

	// DetectorConfidence is the object detector's confidence on a 0-1 scale.
	// Nil for free-text-only candidates that did not come from a detected region.
	DetectorConfidence *float64 `json:"detector_confidence,omitempty"`

	// LooksLikeDate is the OCR engine's own guess that the text is date-shaped.
	LooksLikeDate bool `json:"looks_like_date"`

	// BBox identifies the source region. Opaque, carried through for display only.
	BBox []int `json:"bbox,omitempty"`
}

// Tier identifies which extraction stage produced a result.
type Tier int

const (
	TierNone Tier = iota
	TierCandidates
	TierFreeText
	TierOracle
	TierCompact
)

// String returns the tier name used in logs and JSON output.
func (t Tier) String() string {
	switch t {
	case TierCandidates:
		return "candidates"
	case TierFreeText:
		return "free-text"
	case TierOracle:
		return "oracle"
	case TierCompact:
		return "compact"
	default:
		return "none"
	}
}

// ParsedDate is a successfully interpreted expiration date candidate.
//
// Confidence values are comparable across tiers even though each tier computes
// them differently; see the assignment table in the cascade documentation.
type ParsedDate struct {
	Date         time.Time // calendar date at UTC midnight, no time component
	OriginalText string    // the string that produced the date
	Confidence   float64
	Source       Tier
}

// Status is the expiry verdict for a product.
type Status string

const (
	StatusExpired    Status = "EXPIRED"
	StatusNotExpired Status = "NOT EXPIRED"
)

// NoDateFoundMessage is the user-facing result when no tier produced a date.
// The exact wording is part of the public output contract.
const NoDateFoundMessage = "sorry , i couldn't find any dates on this product ! try another image please"

// Decision is the final verdict for one request. Derived once from the winning
// ParsedDate and the wall-clock date at decision time; never cached.
type Decision struct {
	// Found is false when no extraction tier produced a result. All other
	// fields are meaningful only when Found is true.
	Found bool

	ExpiryDate     time.Time
	OriginalFormat string // verbatim text the winning date was parsed from
	Confidence     float64
	Source         Tier
	Status         Status

	// DaysDelta is today minus the expiry date in whole days: positive once
	// the product is expired, zero or negative while it is still good.
	DaysDelta int
}

// Summary renders the decision as the fixed-shape text block consumed by the
// presentation layer. The field order and wording are a compatibility contract.
func (d *Decision) Summary() string {
	if !d.Found {
		return NoDateFoundMessage
	}

	timeMsg := fmt.Sprintf("%d days remaining", -d.DaysDelta)
	if d.Status == StatusExpired {
		timeMsg = fmt.Sprintf("%d days ago", d.DaysDelta)
	}

	return fmt.Sprintf("Expiration Date: %s\nOriginal Format: %s\nStatus: %s\nTime: %s",
		d.ExpiryDate.Format("02-01-2006"), d.OriginalFormat, d.Status, timeMsg)
}
