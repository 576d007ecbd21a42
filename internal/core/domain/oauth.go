package domain

// OAuthProfile is the normalized identity an OAuth provider returns after a
// completed consent exchange. The OAuth service produces it; the user service
// only ever consumes this shape, never raw provider payloads.
type OAuthProfile struct {
	Provider       AuthProvider `json:"provider"`
	ProviderUserID string       `json:"providerUserID"`
	Email          string       `json:"email"`
	GivenName      string       `json:"givenName"`
	FamilyName     string       `json:"familyName"`
}

// FacebookUserInfo mirrors the fields requested from the Facebook Graph API
// userinfo endpoint.
type FacebookUserInfo struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
