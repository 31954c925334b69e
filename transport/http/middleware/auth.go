package middleware

import (
	"context"
	"errors"
	"net/http"

	"hotelbooking/config"
	"hotelbooking/infras/jwt"
	"hotelbooking/infras/otel"
	authRepo "hotelbooking/internal/domains/auth/repository"
	"hotelbooking/permissions"
	"hotelbooking/shared/constant"
	"hotelbooking/shared/failure"
	"hotelbooking/shared/role"
	"hotelbooking/shared/session"
	"hotelbooking/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type SkipAuthKey string

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

// Role defines the interface for role-based access control middleware
type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole combines all middleware interfaces
type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	tokenRepo  authRepo.Token
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(
	jwtService jwt.JWT,
	tokenRepo authRepo.Token,
	otel otel.Otel,
	permissions *permissions.PermissionData,
	cfg *config.Config,
) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		tokenRepo:  tokenRepo,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

// Auth validates the bearer token and attaches the session to the request.
// Routes marked optional pass through anonymously when no token is sent.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")

		if skip, _ := ctx.Value(SkipAuthKey("skip")).(bool); skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		path := m.routePath(request)
		permission := m.find(path, request.Method)

		if permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       path,
			"http.method":     request.Method,
		})

		authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
		if authHeader == "" {
			if permission.Optional {
				scope.End()
				next.ServeHTTP(writer, request)

				return
			}

			m.reject(writer, scope, failure.Unauthorized("Missing authorization header"))

			return
		}

		tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
		if err != nil {
			m.reject(writer, scope, failure.Unauthorized("Invalid authorization header format"))

			return
		}

		claims, err := m.jwtService.ValidateToken(ctx, tokenString, jwt.AccessToken)
		if err != nil {
			var message string

			switch {
			case errors.Is(err, jwt.ErrExpiredToken):
				message = "Token has expired"
			case errors.Is(err, jwt.ErrInvalidToken):
				message = "Invalid token"
			case errors.Is(err, jwt.ErrInvalidClaim):
				message = "Invalid token claims"
			default:
				message = "Token validation failed"
			}

			m.reject(writer, scope, failure.Unauthorized(message))

			return
		}

		current, err := sessionFromClaims(claims)
		if err != nil {
			log.Error().Err(err).Msg("JWT claims are incomplete")
			m.reject(writer, scope, failure.Unauthorized("Invalid token claims"))

			return
		}

		revoked, err := m.tokenRepo.IsRevoked(ctx, claims.TokenID)
		if err != nil {
			// revocation lives in redis; an outage must not lock every user out
			log.Warn().Err(err).Str("user_id", claims.UserID).Msg("failed to check token revocation")
		}

		if revoked {
			m.reject(writer, scope, failure.Unauthorized("Token has been revoked"))

			return
		}

		scope.SetAttribute("user.role", current.Role.String())
		scope.End()

		next.ServeHTTP(writer, request.WithContext(session.WithSession(ctx, current)))
	})
}

// RBAC checks the session role against the roles listed for the route.
// Requires prior authentication via Auth middleware.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")

		if skip, _ := ctx.Value(SkipAuthKey("skip")).(bool); skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission == nil {
			m.reject(writer, scope, failure.ForbiddenError)

			return
		}

		if m.permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		permission := m.permission.FindPermissions(m.routePath(request), request.Method)
		if !permission.Restricted() {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		current := session.FromContext(ctx)
		if !current.Authenticated() {
			m.reject(writer, scope, failure.Unauthorized("Authentication required"))

			return
		}

		if !permission.Allows(current.Role.String()) {
			scope.SetAttributes(map[string]any{
				"user_role":     current.Role.String(),
				"allowed_roles": permission.Permissions,
				"reason":        "role_not_allowed",
			})
			m.reject(writer, scope, failure.ForbiddenError)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}

// APIKey for internal service-to-service authentication using API key
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "api_key.middleware")

		ctx = context.WithValue(ctx, SkipAuthKey("skip"), false)
		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)

		if apiKey == "" {
			scope.SetAttribute("http.source", "client")
			scope.End()
			next.ServeHTTP(writer, request.WithContext(ctx))

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.cfg.App.APIKey == "" || apiKey != m.cfg.App.APIKey {
			m.reject(writer, scope, failure.ForbiddenError)

			return
		}

		ctx = context.WithValue(ctx, SkipAuthKey("skip"), true)

		scope.End()
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func (m *authRoleImpl) reject(writer http.ResponseWriter, scope otel.Scope, err error) {
	scope.TraceError(err)
	scope.End()

	response.WithError(writer, err)
}

func (m *authRoleImpl) find(path, method string) permissions.Permission {
	if m.permission == nil {
		return permissions.Permission{}
	}

	return m.permission.FindPermissions(path, method)
}

// routePath resolves the registered pattern, e.g. /v1/hotels/{id}, for the request.
func (m *authRoleImpl) routePath(request *http.Request) string {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil {
		return request.URL.Path
	}

	return rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)
}

func sessionFromClaims(claims *jwt.Claims) (session.Session, error) {
	if claims.UserID == "" {
		return session.Session{}, errors.New("user id is empty")
	}

	if claims.Email == "" {
		return session.Session{}, errors.New("email is empty")
	}

	r, err := role.Parse(claims.Role)
	if err != nil {
		return session.Session{}, err
	}

	if !r.Assignable() {
		return session.Session{}, errors.New("role is empty")
	}

	return session.Session{
		UserID:  claims.UserID,
		Email:   claims.Email,
		Role:    r,
		TokenID: claims.TokenID,
	}, nil
}
