package public

// recommendationResponse is one candidate in the wire shape the
// original service emits.
type recommendationResponse struct {
	Store       string   `json:"store"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Keywords    []string `json:"keywords"`
	LogoURL     string   `json:"logo_url"`
	Address     string   `json:"address,omitempty"`
}

// recommendRestaurantResponse is the matched restaurant record
// attached to a recommendation; review_avg and categories stay
// strings because existing consumers parse them as such.
type recommendRestaurantResponse struct {
	Name       string `json:"name"`
	ReviewAvg  string `json:"review_avg"`
	Address    string `json:"address"`
	ID         string `json:"id"`
	Categories string `json:"categories"`
	LogoURL    string `json:"logo_url"`
}

// recommendResultResponse is the full envelope of both recommendation
// endpoints: the single best match under result plus the whole pool
// under results so the client can cycle without re-querying.
type recommendResultResponse struct {
	Result      *recommendationResponse       `json:"result"`
	Results     []recommendationResponse      `json:"results"`
	Restaurants []recommendRestaurantResponse `json:"restaurants"`
	Address     string                        `json:"address,omitempty"`

	// test 모드에서만 채워지는 필드.
	Text  string         `json:"text,omitempty"`
	Lat   *float64       `json:"lat,omitempty"`
	Lng   *float64       `json:"lng,omitempty"`
	Types []string       `json:"types,omitempty"`
	Score map[string]int `json:"score,omitempty"`
}

// restaurantListItemResponse is one establishment in the nearby list.
type restaurantListItemResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Categories  []string `json:"categories"`
	ReviewAvg   float64  `json:"review_avg"`
	ReviewCount int      `json:"review_count"`
	LogoURL     string   `json:"logo_url"`
	DeliveryFee struct {
		Basic string `json:"basic"`
	} `json:"delivery_fee_to_display"`
}

// restaurantListResponse wraps the nearby list with its resolved
// address.
type restaurantListResponse struct {
	Restaurants []restaurantListItemResponse `json:"restaurants"`
	Address     string                       `json:"address"`
}

// tokenResponse is the credential envelope of the auth endpoints.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Nickname    string `json:"nickname,omitempty"`
}

// userResponse is the public view of an account.
type userResponse struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}
