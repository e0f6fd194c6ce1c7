package wire

import (
	"net/http"

	"github.com/gorilla/mux"

	"vidtube/internal/comment"
	"vidtube/internal/common"
	"vidtube/internal/config"
	"vidtube/internal/dashboard"
	"vidtube/internal/health"
	"vidtube/internal/like"
	"vidtube/internal/playlist"
	"vidtube/internal/ratelimit"
	"vidtube/internal/subscription"
	"vidtube/internal/tweet"
	"vidtube/internal/user"
	"vidtube/internal/video"
)

// Handlers groups every route owner mounted under /api/v1.
type Handlers struct {
	Health       *health.Handler
	User         *user.Handler
	Video        *video.Handler
	Comment      *comment.Handler
	Like         *like.Handler
	Subscription *subscription.Handler
	Playlist     *playlist.Handler
	Tweet        *tweet.Handler
	Dashboard    *dashboard.Handler
}

type routeRegistrar interface {
	RegisterRoutes(r *mux.Router)
}

type Router struct {
	http.Handler
}

// NewRouter mounts the API. The healthcheck is public, channel profiles
// accept anonymous callers and everything else requires an access token.
func NewRouter(cfg *config.Config, limiter *ratelimit.Limiter, h *Handlers) *Router {
	secret := []byte(cfg.Auth.JWTSecret)

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	api := router.PathPrefix("/api/v1").Subrouter()
	h.Health.RegisterRoutes(api)

	public := api.NewRoute().Subrouter()
	public.Use(common.OptionalAuth(secret))
	h.User.RegisterRoutes(public)

	protected := api.NewRoute().Subrouter()
	protected.Use(common.AuthMiddleware(secret))
	for _, rr := range []routeRegistrar{
		h.Video,
		h.Comment,
		h.Like,
		h.Subscription,
		h.Playlist,
		h.Tweet,
		h.Dashboard,
	} {
		rr.RegisterRoutes(protected)
	}

	var handler http.Handler = router
	handler = limiter.Middleware(handler)
	handler = common.CORS(cfg.Server.CORSOrigin)(handler)
	handler = common.Recover(handler)
	handler = common.AccessLog(handler)
	handler = common.RequestID(handler)
	return &Router{Handler: handler}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	common.WriteError(w, common.NewNotFoundError("Route not found"))
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	common.WriteError(w, &common.APIError{StatusCode: http.StatusMethodNotAllowed, Message: "Method not allowed"})
}
