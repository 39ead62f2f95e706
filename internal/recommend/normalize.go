package recommend

import "errors"

// ErrNoResult marks a well-formed response that carries no usable
// candidate. Callers treat it like a transport failure (same retry
// affordance); the distinction is not actionable by the user.
var ErrNoResult = errors.New("recommend: response contains no result")

// Payload is the tagged union of every response shape the backend has
// been observed to produce: a single candidate under "result", an
// array under "results", restaurant records under "restaurants", and
// an optional top-level address. Older endpoint versions populate
// different subsets.
type Payload struct {
	Result      *Candidate   `json:"result"`
	Results     []Candidate  `json:"results"`
	Restaurants []Restaurant `json:"restaurants"`
	Address     string       `json:"address"`
	Error       string       `json:"error"`
	Detail      string       `json:"detail"`
}

// Normalize folds every payload variant into one canonical ResultSet
// with the cursor at the first candidate. An in-band error field or
// an empty pool yields ErrNoResult.
func Normalize(p Payload) (*ResultSet, error) {
	if p.Error != "" {
		return nil, ErrNoResult
	}

	candidates := p.Results
	if len(candidates) == 0 && p.Result != nil {
		candidates = []Candidate{*p.Result}
	}
	if len(candidates) == 0 {
		return nil, ErrNoResult
	}

	return &ResultSet{
		Candidates:  candidates,
		Restaurants: p.Restaurants,
		Address:     p.Address,
	}, nil
}
