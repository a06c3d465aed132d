package pipeline

// Stats is the fixed per-call counter set. All counters start at zero and
// only ever grow within a call; the text-only path leaves the structural
// counters at zero.
type Stats struct {
	HiddenElements     int `json:"hiddenElements"`
	OffscreenElements  int `json:"offscreenElements"`
	SameColorText      int `json:"sameColorText"`
	ScriptTags         int `json:"scriptTags"`
	StyleTags          int `json:"styleTags"`
	NoscriptTags       int `json:"noscriptTags"`
	MetaLinkTags       int `json:"metaLinkTags"`
	HTMLComments       int `json:"htmlComments"`
	ZeroWidthChars     int `json:"zeroWidthChars"`
	BidiControls       int `json:"bidiControls"`
	VariationSelectors int `json:"variationSelectors"`
	TagCharacters      int `json:"tagCharacters"`
	ControlChars       int `json:"controlChars"`
	DataURIs           int `json:"dataUris"`
	Base64Payloads     int `json:"base64Payloads"`
	HexPayloads        int `json:"hexPayloads"`
	ExfiltrationURLs   int `json:"exfiltrationUrls"`
	LLMDelimiters      int `json:"llmDelimiters"`
	CustomPatterns     int `json:"customPatterns"`
}

// Add accumulates other into s. Used by cross-call aggregation.
func (s *Stats) Add(other Stats) {
	s.HiddenElements += other.HiddenElements
	s.OffscreenElements += other.OffscreenElements
	s.SameColorText += other.SameColorText
	s.ScriptTags += other.ScriptTags
	s.StyleTags += other.StyleTags
	s.NoscriptTags += other.NoscriptTags
	s.MetaLinkTags += other.MetaLinkTags
	s.HTMLComments += other.HTMLComments
	s.ZeroWidthChars += other.ZeroWidthChars
	s.BidiControls += other.BidiControls
	s.VariationSelectors += other.VariationSelectors
	s.TagCharacters += other.TagCharacters
	s.ControlChars += other.ControlChars
	s.DataURIs += other.DataURIs
	s.Base64Payloads += other.Base64Payloads
	s.HexPayloads += other.HexPayloads
	s.ExfiltrationURLs += other.ExfiltrationURLs
	s.LLMDelimiters += other.LLMDelimiters
	s.CustomPatterns += other.CustomPatterns
}

// Category pairs a stat name with its count.
type Category struct {
	Name  string
	Count int
}

// Categories returns every counter in a fixed, report-friendly order.
func (s Stats) Categories() []Category {
	return []Category{
		{"hidden elements", s.HiddenElements},
		{"off-screen elements", s.OffscreenElements},
		{"same-color text", s.SameColorText},
		{"script tags", s.ScriptTags},
		{"style tags", s.StyleTags},
		{"noscript tags", s.NoscriptTags},
		{"meta/link tags", s.MetaLinkTags},
		{"html comments", s.HTMLComments},
		{"zero-width chars", s.ZeroWidthChars},
		{"bidi controls", s.BidiControls},
		{"variation selectors", s.VariationSelectors},
		{"tag characters", s.TagCharacters},
		{"control chars", s.ControlChars},
		{"data uris", s.DataURIs},
		{"base64 payloads", s.Base64Payloads},
		{"hex payloads", s.HexPayloads},
		{"exfiltration urls", s.ExfiltrationURLs},
		{"llm delimiters", s.LLMDelimiters},
		{"custom patterns", s.CustomPatterns},
	}
}

// Total sums every counter.
func (s Stats) Total() int {
	total := 0
	for _, c := range s.Categories() {
		total += c.Count
	}
	return total
}
