package cnapsdk

import (
	"context"
	"net/http"
)

// Read-only record endpoints. All require the staff scope.

func getJSON[T any](ctx context.Context, s *Session, path string) (*T, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	var v T
	if err := decodeJSON(resp, &v, http.StatusOK); err != nil {
		return nil, err
	}
	return &v, nil
}

func listJSON[T any](ctx context.Context, s *Session, path string) ([]T, error) {
	list, err := getJSON[ListResponse[T]](ctx, s, path)
	if err != nil {
		return nil, err
	}
	return list.Items, nil
}

func (s *Session) ListOrganizations(ctx context.Context) ([]Organization, error) {
	return listJSON[Organization](ctx, s, "/v1/organizations")
}

func (s *Session) GetOrganization(ctx context.Context, id string) (*Organization, error) {
	return getJSON[Organization](ctx, s, "/v1/organizations/"+escape(id))
}

func (s *Session) ListResearchGroups(ctx context.Context) ([]ResearchGroup, error) {
	return listJSON[ResearchGroup](ctx, s, "/v1/groups")
}

func (s *Session) GetResearchGroup(ctx context.Context, id string) (*ResearchGroup, error) {
	return getJSON[ResearchGroup](ctx, s, "/v1/groups/"+escape(id))
}

func (s *Session) ListMembers(ctx context.Context) ([]Member, error) {
	return listJSON[Member](ctx, s, "/v1/members")
}

func (s *Session) GetMember(ctx context.Context, id string) (*Member, error) {
	return getJSON[Member](ctx, s, "/v1/members/"+escape(id))
}

func (s *Session) ListPurchases(ctx context.Context) ([]Purchase, error) {
	return listJSON[Purchase](ctx, s, "/v1/purchases")
}

func (s *Session) GetPurchase(ctx context.Context, id string) (*Purchase, error) {
	return getJSON[Purchase](ctx, s, "/v1/purchases/"+escape(id))
}

func (s *Session) ListOrders(ctx context.Context) ([]Order, error) {
	return listJSON[Order](ctx, s, "/v1/orders")
}

func (s *Session) GetOrder(ctx context.Context, id string) (*Order, error) {
	return getJSON[Order](ctx, s, "/v1/orders/"+escape(id))
}

func (s *Session) ListPendingRequests(ctx context.Context) ([]PendingRequest, error) {
	return listJSON[PendingRequest](ctx, s, "/v1/pending-requests")
}

func (s *Session) GetPendingRequest(ctx context.Context, id string) (*PendingRequest, error) {
	return getJSON[PendingRequest](ctx, s, "/v1/pending-requests/"+escape(id))
}
