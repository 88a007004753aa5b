package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/cnap/internal/cnap/metrics"
	"github.com/aussiebroadwan/cnap/internal/cnap/service"
	"github.com/aussiebroadwan/cnap/internal/cnap/store"
	"github.com/aussiebroadwan/cnap/pkg/httpx"
	"github.com/aussiebroadwan/cnap/pkg/jwtx"
	"github.com/aussiebroadwan/cnap/pkg/slogx"

	_ "github.com/aussiebroadwan/cnap/api/cnap" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *metrics.Metrics

	store          store.Store
	AccountService *service.AccountService
	RecordsService *service.RecordsService
	Dispatcher     service.Dispatcher
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		metrics:      m,
		logger:       logger,
	}

	// Instrument sits inside the logger so it sees the request the mux routes.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		r.metrics.Instrument,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerApprovals()
	r.registerRecords()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			CNAP Facility Service API
//	@version		0.1.0
//	@description	Approval links and staff record management for the genomics core facility.
//	@description
//	@description				Staff endpoints require an HS256 bearer token carrying the "staff" scope.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/cnap
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Staff JWT. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// staff wraps h with bearer authentication and the staff scope.
func (r *Router) staff(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope(jwtx.ScopeStaff),
		httpx.RateLimitBySubject(httpx.StaffLimit),
	)
}

func (r *Router) registerApprovals() {
	h := &ApprovalsHandler{
		AccountService: r.AccountService,
		Store:          r.store,
		Dispatcher:     r.Dispatcher,
	}

	// Staff links are opened from email, so the token may ride in the query.
	r.Mux.Handle("GET /v1/approvals/staff/{id}", r.staff(h.HandleStaffGet))
	r.Mux.Handle("POST /v1/approvals/staff/{id}", r.staff(h.HandleStaffPost))

	// PI links are public; the token is the credential.
	r.Mux.Handle("GET /v1/approvals/pi/{token}",
		httpx.Chain(http.HandlerFunc(h.HandlePIGet),
			httpx.RateLimitByIP(httpx.ApprovalLimit),
		),
	)
	r.Mux.Handle("POST /v1/approvals/pi/{token}",
		httpx.Chain(http.HandlerFunc(h.HandlePIPost),
			httpx.RateLimitByIP(httpx.ApprovalLimit),
		),
	)
}

func (r *Router) registerRecords() {
	h := &RecordsHandler{RecordsService: r.RecordsService}

	r.Mux.Handle("POST /v1/products", r.staff(h.HandleCreateProduct))
	r.Mux.Handle("GET /v1/products", r.staff(h.HandleListProducts))
	r.Mux.Handle("GET /v1/products/{id}", r.staff(h.HandleGetProduct))
	r.Mux.Handle("PUT /v1/products/{id}", r.staff(h.HandleUpdateProduct))
	r.Mux.Handle("DELETE /v1/products/{id}", r.staff(h.HandleDeleteProduct))

	r.Mux.Handle("POST /v1/payments", r.staff(h.HandleCreatePayment))
	r.Mux.Handle("GET /v1/payments", r.staff(h.HandleListPayments))
	r.Mux.Handle("GET /v1/payments/{id}", r.staff(h.HandleGetPayment))
	r.Mux.Handle("PUT /v1/payments/{id}", r.staff(h.HandleUpdatePayment))
	r.Mux.Handle("DELETE /v1/payments/{id}", r.staff(h.HandleDeletePayment))

	r.Mux.Handle("GET /v1/organizations", r.staff(h.HandleListOrganizations))
	r.Mux.Handle("GET /v1/organizations/{id}", r.staff(h.HandleGetOrganization))
	r.Mux.Handle("GET /v1/groups", r.staff(h.HandleListResearchGroups))
	r.Mux.Handle("GET /v1/groups/{id}", r.staff(h.HandleGetResearchGroup))
	r.Mux.Handle("GET /v1/members", r.staff(h.HandleListMembers))
	r.Mux.Handle("GET /v1/members/{id}", r.staff(h.HandleGetMember))
	r.Mux.Handle("GET /v1/purchases", r.staff(h.HandleListPurchases))
	r.Mux.Handle("GET /v1/purchases/{id}", r.staff(h.HandleGetPurchase))
	r.Mux.Handle("GET /v1/orders", r.staff(h.HandleListOrders))
	r.Mux.Handle("GET /v1/orders/{id}", r.staff(h.HandleGetOrder))
	r.Mux.Handle("GET /v1/pending-requests", r.staff(h.HandleListPendingRequests))
	r.Mux.Handle("GET /v1/pending-requests/{id}", r.staff(h.HandleGetPendingRequest))
}

func (r *Router) registerSystem() {
	// Health check endpoints - monitoring systems may poll frequently
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /metrics", r.metrics.Handler())
}
