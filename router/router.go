package router

import (
	"net/http"

	"edu-platform-api/handler"

	_ "edu-platform-api/docs"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// NewRouter wires every route to its handler chain. Role gating lives in the
// middleware; handlers below it can trust the principal in the context.
func NewRouter(userHandler *handler.UserHandler, authMW *handler.AuthMiddleware) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("/swagger/", httpSwagger.Handler())

	// Public auth surface.
	mux.Handle("POST /api/v1/user/signup", handler.ErrorHandlingMiddleware(userHandler.Signup))
	mux.Handle("POST /api/v1/user/login", handler.ErrorHandlingMiddleware(userHandler.Login))

	// Any valid session, no role requirement.
	mux.Handle("POST /api/v1/user/logout",
		authMW.RequireAuth(handler.ErrorHandlingMiddleware(userHandler.Logout)))
	mux.Handle("GET /api/v1/user/auth-status",
		authMW.RequireAuth(handler.ErrorHandlingMiddleware(userHandler.AuthStatus)))

	// Role-scoped surfaces.
	mux.Handle("GET /api/v1/user/profile",
		authMW.RequireUser(handler.ErrorHandlingMiddleware(userHandler.Profile)))
	mux.Handle("GET /api/v1/admin/users",
		authMW.RequireAdmin(handler.ErrorHandlingMiddleware(userHandler.ListUsers)))
	mux.Handle("PUT /api/v1/admin/users/{id}/role",
		authMW.RequireAdmin(handler.ErrorHandlingMiddleware(userHandler.UpdateUserRole)))

	return mux
}
