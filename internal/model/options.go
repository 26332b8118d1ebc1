package model

// CheckOptions are the per-request knobs recognized by RunFactCheck
type CheckOptions struct {
	// SourceCount overrides the general-query result count when > 0
	SourceCount int `json:"source_count,omitempty"`

	// GenerateNews requests a news-article draft alongside the verdict
	GenerateNews bool `json:"generate_news,omitempty"`

	// GenerateTweet requests an X post alongside the verdict
	GenerateTweet bool `json:"generate_tweet,omitempty"`

	// PreserveSources substitutes the raw search evidence for the cited
	// sources when the verdict is uncertain (which otherwise empties them)
	PreserveSources bool `json:"preserve_sources,omitempty"`

	// ExtractIntent runs intent extraction to narrow the search queries
	ExtractIntent bool `json:"extract_intent,omitempty"`
}
