package recommend

// Candidate is one recommended store produced by the backend. It is
// an immutable value: translation builds new Candidate values rather
// than overwriting fields in place, so the untranslated originals can
// always be shown again.
type Candidate struct {
	Store       string   `json:"store"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Keywords    []string `json:"keywords"`
	LogoURL     string   `json:"logo_url"`
	Address     string   `json:"address,omitempty"`
	ReviewAvg   *float64 `json:"review_avg,omitempty"`
}

// Restaurant is the raw establishment record the backend attaches to
// a recommendation, carrying the authoritative address.
type Restaurant struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	Categories string `json:"categories"`
	ReviewAvg  string `json:"review_avg"`
	LogoURL    string `json:"logo_url"`
}
