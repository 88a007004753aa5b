package cnapsdk

import (
	"context"
	"net/http"
)

// ApprovePI submits a PI approval link. The server acknowledges at once and
// finalizes in the background; the returned string is the acknowledgement.
func (c *SDKClient) ApprovePI(ctx context.Context, token string) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/approvals/pi/"+escape(token), nil, nil)
	if err != nil {
		return "", err
	}
	return readText(resp, http.StatusOK)
}

// StaffApprove approves a pending account request for PI confirmation.
// Requires: staff scope
func (s *Session) StaffApprove(ctx context.Context, pendingID string) (string, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/approvals/staff/"+escape(pendingID), nil, nil)
	if err != nil {
		return "", err
	}
	return readText(resp, http.StatusOK)
}
