package cnapsdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the CNAP facility API. It covers the public
// endpoints and creates staff Sessions for everything else.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client for the service at baseURL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewStaffSession wraps a staff bearer token, as minted by cnap-token.
func (c *SDKClient) NewStaffSession(accessToken string) *Session {
	return &Session{client: c, accessToken: accessToken}
}
