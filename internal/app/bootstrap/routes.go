// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	accountsfeature "github.com/dalemusser/meethub/internal/app/features/accounts"
	healthfeature "github.com/dalemusser/meethub/internal/app/features/health"
	meetingsfeature "github.com/dalemusser/meethub/internal/app/features/meetings"
	pushfeature "github.com/dalemusser/meethub/internal/app/features/push"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed, so the long-lived services built in
// Startup are available here.
//
// MeetHub mounts three surfaces: the JSON API under /api, the websocket
// push endpoint at /ws, and the health check at /health.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	r := chi.NewRouter()

	// Global auth middleware: loads the token's user into context if the
	// request carries a valid bearer token. Route groups decide whether an
	// anonymous request is fatal.
	r.Use(services.tokens.LoadTokenUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MeetHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// JSON API
	accountsHandler := accountsfeature.NewHandler(services.users, services.tokens, services.mail, appCfg.BaseURL, logger)
	r.Mount("/api/account", accountsfeature.Routes(accountsHandler))

	meetingsHandler := meetingsfeature.NewHandler(services.meetings, services.users, logger)
	r.Mount("/api", meetingsfeature.Routes(meetingsHandler))

	// Real-time push
	pushHandler := pushfeature.NewHandler(services.hub, logger)
	r.Mount("/ws", pushfeature.Routes(pushHandler))

	return r, nil
}
