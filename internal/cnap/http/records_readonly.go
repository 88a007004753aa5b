package http

import "net/http"

// HandleListOrganizations handles GET /v1/organizations
//
//	@Summary	List organizations
//	@Tags		Records
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	cnapsdk.ListResponse[cnapsdk.Organization]
//	@Router		/v1/organizations [get].
func (h *RecordsHandler) HandleListOrganizations(w http.ResponseWriter, r *http.Request) {
	writeList(w, r, h.RecordsService.ListOrganizations, toOrganization, "list organizations")
}

// HandleGetOrganization handles GET /v1/organizations/{id}
//
//	@Summary	Get organization
//	@Tags		Records
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Organization ID (ULID)"
//	@Success	200	{object}	cnapsdk.Organization
//	@Failure	404	{object}	cnapsdk.APIError
//	@Router		/v1/organizations/{id} [get].
func (h *RecordsHandler) HandleGetOrganization(w http.ResponseWriter, r *http.Request) {
	writeOne(w, r, h.RecordsService.GetOrganization, toOrganization, "get organization")
}

// HandleListResearchGroups handles GET /v1/groups
//
//	@Summary	List research groups
//	@Tags		Records
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	cnapsdk.ListResponse[cnapsdk.ResearchGroup]
//	@Router		/v1/groups [get].
func (h *RecordsHandler) HandleListResearchGroups(w http.ResponseWriter, r *http.Request) {
	writeList(w, r, h.RecordsService.ListResearchGroups, toResearchGroup, "list research groups")
}

// HandleGetResearchGroup handles GET /v1/groups/{id}
//
//	@Summary	Get research group
//	@Tags		Records
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Research group ID (ULID)"
//	@Success	200	{object}	cnapsdk.ResearchGroup
//	@Failure	404	{object}	cnapsdk.APIError
//	@Router		/v1/groups/{id} [get].
func (h *RecordsHandler) HandleGetResearchGroup(w http.ResponseWriter, r *http.Request) {
	writeOne(w, r, h.RecordsService.GetResearchGroup, toResearchGroup, "get research group")
}

// HandleListMembers handles GET /v1/members
//
//	@Summary	List lab memberships
//	@Tags		Records
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	cnapsdk.ListResponse[cnapsdk.Member]
//	@Router		/v1/members [get].
func (h *RecordsHandler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	writeList(w, r, h.RecordsService.ListMembers, toMember, "list members")
}

// HandleGetMember handles GET /v1/members/{id}
//
//	@Summary	Get lab membership
//	@Tags		Records
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Membership ID (ULID)"
//	@Success	200	{object}	cnapsdk.Member
//	@Failure	404	{object}	cnapsdk.APIError
//	@Router		/v1/members/{id} [get].
func (h *RecordsHandler) HandleGetMember(w http.ResponseWriter, r *http.Request) {
	writeOne(w, r, h.RecordsService.GetMember, toMember, "get member")
}

// HandleListPurchases handles GET /v1/purchases
//
//	@Summary	List purchases
//	@Tags		Records
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	cnapsdk.ListResponse[cnapsdk.Purchase]
//	@Router		/v1/purchases [get].
func (h *RecordsHandler) HandleListPurchases(w http.ResponseWriter, r *http.Request) {
	writeList(w, r, h.RecordsService.ListPurchases, toPurchase, "list purchases")
}

// HandleGetPurchase handles GET /v1/purchases/{id}
//
//	@Summary	Get purchase
//	@Tags		Records
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Purchase ID (ULID)"
//	@Success	200	{object}	cnapsdk.Purchase
//	@Failure	404	{object}	cnapsdk.APIError
//	@Router		/v1/purchases/{id} [get].
func (h *RecordsHandler) HandleGetPurchase(w http.ResponseWriter, r *http.Request) {
	writeOne(w, r, h.RecordsService.GetPurchase, toPurchase, "get purchase")
}

// HandleListOrders handles GET /v1/orders
//
//	@Summary	List orders
//	@Tags		Records
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	cnapsdk.ListResponse[cnapsdk.Order]
//	@Router		/v1/orders [get].
func (h *RecordsHandler) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	writeList(w, r, h.RecordsService.ListOrders, toOrder, "list orders")
}

// HandleGetOrder handles GET /v1/orders/{id}
//
//	@Summary	Get order
//	@Tags		Records
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Order ID (ULID)"
//	@Success	200	{object}	cnapsdk.Order
//	@Failure	404	{object}	cnapsdk.APIError
//	@Router		/v1/orders/{id} [get].
func (h *RecordsHandler) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	writeOne(w, r, h.RecordsService.GetOrder, toOrder, "get order")
}

// HandleListPendingRequests handles GET /v1/pending-requests
//
//	@Summary		List account requests
//	@Description	Every account request with its approval status, oldest first.
//	@Tags			Approvals
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	cnapsdk.ListResponse[cnapsdk.PendingRequest]
//	@Router			/v1/pending-requests [get].
func (h *RecordsHandler) HandleListPendingRequests(w http.ResponseWriter, r *http.Request) {
	writeList(w, r, h.RecordsService.ListPendingRequests, toPendingRequest, "list pending requests")
}

// HandleGetPendingRequest handles GET /v1/pending-requests/{id}
//
//	@Summary	Get account request
//	@Tags		Approvals
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Pending request ID (ULID)"
//	@Success	200	{object}	cnapsdk.PendingRequest
//	@Failure	404	{object}	cnapsdk.APIError
//	@Router		/v1/pending-requests/{id} [get].
func (h *RecordsHandler) HandleGetPendingRequest(w http.ResponseWriter, r *http.Request) {
	writeOne(w, r, h.RecordsService.GetPendingRequest, toPendingRequest, "get pending request")
}
