package api

// Backend routes consumed by the client.
const (
	RouteOAuthURL       = "/api/oauth/url"
	RouteOAuthLogin     = "/api/oauth/login"
	RouteAuthLogin      = "/api/auth/login"
	RouteAuthRefresh    = "/api/auth/refresh"
	RouteChangePassword = "/api/auth/change-password"
	RoutePostKey        = "/api/post_key"
	RoutePosts          = "/api/posts"
)
