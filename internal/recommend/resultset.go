package recommend

// AddressPlaceholder is shown when no usable address survives the
// precedence chain.
const AddressPlaceholder = "주소 정보 없음"

// ResultSet is the full candidate pool returned for one backend
// query, together with a cursor into that pool. "다시 시도하기" rotates
// the cursor locally; the pool itself is only replaced by a refetch.
type ResultSet struct {
	Candidates  []Candidate
	Restaurants []Restaurant
	Address     string

	current int
}

// Len returns the pool size.
func (rs *ResultSet) Len() int { return len(rs.Candidates) }

// Empty reports the terminal no-result state.
func (rs *ResultSet) Empty() bool { return len(rs.Candidates) == 0 }

// Current returns the candidate under the cursor. ok is false in the
// no-result state; the cursor is never used to index an empty pool.
func (rs *ResultSet) Current() (Candidate, bool) {
	if rs.Empty() {
		return Candidate{}, false
	}
	return rs.Candidates[rs.current], true
}

// Cycle advances the cursor modulo the pool size and returns the
// candidate at the new position. No network call is made. With a
// single candidate the rotation is a no-op returning that candidate.
func (rs *ResultSet) Cycle() (Candidate, bool) {
	if rs.Empty() {
		return Candidate{}, false
	}
	rs.current = (rs.current + 1) % len(rs.Candidates)
	return rs.Candidates[rs.current], true
}

// AddressOf resolves the display address for c in fixed precedence:
// the associated restaurant record, then the candidate's own field,
// then the set-level address, then the localized placeholder.
func (rs *ResultSet) AddressOf(c Candidate) string {
	if len(rs.Restaurants) > 0 && rs.Restaurants[0].Address != "" {
		return rs.Restaurants[0].Address
	}
	if c.Address != "" {
		return c.Address
	}
	if rs.Address != "" {
		return rs.Address
	}
	return AddressPlaceholder
}
