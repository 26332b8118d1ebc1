package model

// VerdictState is the normalized verdict classification.
// False is a first-class state: suppressing it would misreport confidently
// debunked claims as merely uncertain.
type VerdictState string

const (
	VerdictTrue      VerdictState = "true"
	VerdictFalse     VerdictState = "false"
	VerdictUncertain VerdictState = "uncertain"
)

// CitedSource is one source the model cited in support of its verdict
type CitedSource struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
}

// Verdict is the structured conclusion for a single claim.
// Case carries the localized verdict word as returned by the model;
// State carries its normalized classification.
type Verdict struct {
	Case    string        `json:"case"`
	State   VerdictState  `json:"state"`
	Talk    string        `json:"talk"`
	Sources []CitedSource `json:"sources"`
}

// VerdictResult is the complete fact-check output returned to callers
type VerdictResult struct {
	RunID            string           `json:"run_id"`
	Language         string           `json:"language"`
	Case             string           `json:"case"`
	State            VerdictState     `json:"state"`
	Talk             string           `json:"talk"`
	Sources          []CitedSource    `json:"sources"`
	NewsArticle      *string          `json:"news_article,omitempty"`
	XTweet           *string          `json:"x_tweet,omitempty"`
	SourceStatistics SourceStatistics `json:"source_statistics"`
	Degraded         bool             `json:"degraded,omitempty"` // Verdict was recovered from a malformed model response
}

// TriState is a three-valued answer for image forensics questions
type TriState string

const (
	TriTrue    TriState = "true"
	TriFalse   TriState = "false"
	TriUnknown TriState = "unknown"
)

// TriFromBool converts a boolean answer to its TriState form.
func TriFromBool(v bool) TriState {
	if v {
		return TriTrue
	}
	return TriFalse
}

// ImageVerdict is the result of an image authenticity check
type ImageVerdict struct {
	IsAIGenerated     TriState       `json:"is_ai_generated"`
	IsPhotoshopped    TriState       `json:"is_photoshopped"`
	IsFake            TriState       `json:"is_fake"`
	Confidence        float64        `json:"confidence"`
	Message           string         `json:"message"`
	ManipulationSigns []string       `json:"manipulation_signs,omitempty"`
	ExtractedText     string         `json:"extracted_text,omitempty"`
	Sources           []EvidenceItem `json:"sources,omitempty"`
	Language          string         `json:"language"`
	Refused           bool           `json:"refused,omitempty"` // Model declined to analyze (not a technical failure)
}
