package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/cache"
	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/metrics"
	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"

	_ "github.com/aussiebroadwan/storefront/api/storefront" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// DefaultPrefix is where the API routes are mounted when no prefix is configured.
const DefaultPrefix = "/api/v1"

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       jwtx.Signer
	verifier     jwtx.Verifier
	prefix       string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store       store.Store
	Cache       cache.Client     // Optional: probed by /readyz when set
	Metrics     *metrics.Metrics // Optional: enables /metrics and request metrics
	CORSOrigins []string

	AuthService    *service.AuthService
	UserService    *service.UserService
	RolesService   *service.RolesService
	CatalogService *service.CatalogService
}

func NewRouter(
	signer jwtx.Signer,
	verifier jwtx.Verifier,
	prefix, buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	prefix = "/" + strings.Trim(prefix, "/")
	if prefix == "/" {
		prefix = ""
	}

	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		verifier:     verifier,
		prefix:       prefix,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	if r.Metrics != nil {
		r.middlewares = append(r.middlewares, r.Metrics.Middleware)
	}
	if len(r.CORSOrigins) > 0 {
		r.middlewares = append(r.middlewares, httpx.CORS(r.CORSOrigins))
	}

	r.registerAuth()
	r.registerUsers()
	r.registerRoles()
	r.registerCatalog()
	r.registerSystem()

	r.Mux.Handle("GET /swagger/", httpSwagger.Handler())
	r.Mux.HandleFunc("/", notFound)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Storefront API
//	@version		0.1.0
//	@description	E-commerce backend: account registration and login with JWT session tokens,
//	@description	role-guarded user administration and a read-only product catalog.
//	@description
//	@description				Tokens are signed using HS256 and carry the account id, email and role id.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/storefront
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:3000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) route(method, path string) string {
	return method + " " + r.prefix + path
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// POST /auth/register - strict rate limit by IP (public signup endpoint)
	r.Mux.Handle(r.route(http.MethodPost, "/auth/register"),
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /auth/login - strict rate limit by IP + email to prevent brute force
	r.Mux.Handle(r.route(http.MethodPost, "/auth/login"),
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)

	r.Mux.Handle(r.route(http.MethodGet, "/auth/profile"),
		httpx.Chain(http.HandlerFunc(h.HandleProfile),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.LenientLimit),
		),
	)
	r.Mux.Handle(r.route(http.MethodGet, "/auth/me"),
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{
		UserService: r.UserService,
		AuthService: r.AuthService,
	}

	// Admin endpoints - moderate rate limit by account
	r.Mux.Handle(r.route(http.MethodGet, "/users"),
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyRole(r.RolesService, domain.RoleAdmin),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle(r.route(http.MethodGet, "/users/{id}"),
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyRole(r.RolesService, domain.RoleAdmin),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)

	// Any authenticated caller
	r.Mux.Handle(r.route(http.MethodGet, "/users/me"),
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyRole(r.RolesService),
			httpx.RateLimitByAccount(httpx.LenientLimit),
		),
	)

	r.Mux.Handle(r.route(http.MethodGet, "/users/public"),
		httpx.Chain(http.HandlerFunc(h.HandlePublic),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerRoles() {
	h := &RolesHandler{RolesService: r.RolesService}

	// GET /roles - moderate rate limit by account (admin read operation)
	r.Mux.Handle(r.route(http.MethodGet, "/roles"),
		httpx.Chain(h,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyRole(r.RolesService, domain.RoleAdmin),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerCatalog() {
	h := &CatalogHandler{CatalogService: r.CatalogService}

	// Public catalog reads - high limit by IP
	r.Mux.Handle(r.route(http.MethodGet, "/categories"),
		httpx.Chain(http.HandlerFunc(h.HandleCategories),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle(r.route(http.MethodGet, "/products"),
		httpx.Chain(http.HandlerFunc(h.HandleProducts),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle(r.route(http.MethodGet, "/products/{slug}"),
		httpx.Chain(http.HandlerFunc(h.HandleProduct),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	var cachePinger Pinger
	if r.Cache != nil {
		cachePinger = r.Cache
	}
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, cachePinger, r.signer),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	if r.Metrics != nil {
		r.Mux.Handle("GET /metrics", r.Metrics.Handler())
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	httpx.WriteError(w, r, http.StatusNotFound, "Cannot "+r.Method+" "+r.URL.Path)
}
