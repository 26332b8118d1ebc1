package model

// TemporalType categorizes the time scope a claim refers to
type TemporalType string

const (
	TemporalSameDay      TemporalType = "same_day"      // Claim about today's events
	TemporalSpecificDate TemporalType = "specific_date" // Claim pinned to a date
	TemporalNone         TemporalType = "none"          // No temporal scope
)

// Valid reports whether the temporal type is a member of the closed enum.
func (t TemporalType) Valid() bool {
	switch t {
	case TemporalSameDay, TemporalSpecificDate, TemporalNone:
		return true
	}
	return false
}

// Intent holds search-narrowing hints derived from a claim
type Intent struct {
	Language    string       `json:"language,omitempty"`     // Model's own language guess
	Temporal    TemporalType `json:"temporal"`               // Time scope classification
	WindowHours int          `json:"window_hours,omitempty"` // Lookback for same_day
	Date        string       `json:"date,omitempty"`         // ISO date for specific_date
	Entities    []string     `json:"entities,omitempty"`     // Salient entities
	Keywords    []string     `json:"keywords,omitempty"`     // 3-8 search keywords
}

// DefaultIntent returns the neutral intent used when extraction fails
func DefaultIntent(language string) *Intent {
	return &Intent{
		Language: language,
		Temporal: TemporalNone,
	}
}
