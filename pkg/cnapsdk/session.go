package cnapsdk

// Session makes authenticated requests with a staff bearer token. Staff
// tokens are minted offline and are not refreshed.
type Session struct {
	client      *SDKClient
	accessToken string
}

// AccessToken returns the bearer token used by the session.
func (s *Session) AccessToken() string { return s.accessToken }
