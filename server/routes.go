package server

const (
	RouteHealth = "/health"

	RouteOrganizations      = "/api/organizations"
	RouteOrganizationByName = "/api/organizations/{name}"

	RouteAuthLogin   = "/api/auth/login"
	RouteAuthRefresh = "/api/auth/refresh"
)

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())

	// Session API
	s.RegisterRouteFunc("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteAuthRefresh, ChainMiddleware(s.RefreshHandler(), s.APIMiddleware(s.RequireAuth())...))

	// Organization API. Creation is the public signup path; everything else
	// requires an authenticated principal.
	s.RegisterRouteFunc("POST "+RouteOrganizations, ChainMiddleware(s.CreateOrganizationHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteOrganizationByName, ChainMiddleware(s.GetOrganizationHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteFunc("PUT "+RouteOrganizationByName, ChainMiddleware(s.UpdateOrganizationHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteFunc("DELETE "+RouteOrganizationByName, ChainMiddleware(s.DeleteOrganizationHandler(), s.APIMiddleware(s.RequireAuth())...))
}
