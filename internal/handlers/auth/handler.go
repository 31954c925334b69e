package auth

import (
	"net/http"

	"hotelbooking/infras/otel"
	"hotelbooking/internal/domains/auth/model/dto"
	"hotelbooking/internal/domains/auth/service"
	"hotelbooking/shared/constant"
	"hotelbooking/shared/validator"
	"hotelbooking/transport/http/middleware"
	"hotelbooking/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Auth
	otel       otel.Otel
	middleware middleware.AppMiddleware
}

func New(service service.Auth, otel otel.Otel, middleware middleware.AppMiddleware) Handler {
	return Handler{
		service:    service,
		otel:       otel,
		middleware: middleware,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.With(handler.middleware.LoginThrottle).Post("/register", handler.Register)
		r.With(handler.middleware.LoginThrottle).Post("/login", handler.Login)
		r.Post("/refresh-token", handler.RefreshToken)
		r.Get("/session", handler.Session)
		r.Post("/logout", handler.Logout)
		r.Patch("/password", handler.ChangePassword)
	})
}

// Register handles user registration
// @Summary Register a new user
// @Description Register a traveler or agent account.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Register Request"
// @Success 201 {object} response.Data[dto.RegisterResponse] "User registered successfully"
// @Failure 400 {object} response.Error
// @Failure 429 {object} response.Message
// @Failure 500 {object} response.Error
// @Router /v1/auth/register [post]
func (handler *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Register")
	defer scope.End()

	req := dto.RegisterRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Register(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to register user")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User registered successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// Login handles user login
// @Summary Login a user
// @Description Login with email and password. Role picks the sign-in screen and must match the account.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Data[dto.TokenResponse] "User logged in successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 429 {object} response.Message
// @Failure 500 {object} response.Error
// @Router /v1/auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req := dto.LoginRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to login user")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User logged in successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// RefreshToken handles token refresh
// @Summary Refresh user token
// @Description Rotate the token pair. The presented refresh token is revoked.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token Request"
// @Success 200 {object} response.Data[dto.TokenResponse] "Token refreshed successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/refresh-token [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshToken")
	defer scope.End()

	req := dto.RefreshTokenRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.RefreshToken(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to refresh token")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Token refreshed successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// Session reports the identity of the caller
// @Summary Current session
// @Description Returns the session attached to the request. Anonymous callers get authenticated=false.
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Data[dto.SessionResponse]
// @Router /v1/auth/session [get]
// @Security BearerAuth
func (handler *Handler) Session(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Session")
	defer scope.End()

	response.WithJSON(w, http.StatusOK, handler.service.Session(ctx))
}

// Logout revokes the current session
// @Summary Logout
// @Description Revoke the access token and, when given, the refresh token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LogoutRequest false "Logout Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/logout [post]
// @Security BearerAuth
func (handler *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Logout")
	defer scope.End()

	req := dto.LogoutRequest{}

	if r.ContentLength > 0 {
		if err := validator.Validate(r.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(w, err)

			return
		}
	}

	if err := handler.service.Logout(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to logout")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Logged out successfully")
}

// ChangePassword updates the password of the current user
// @Summary Change password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Change Password Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/password [patch]
// @Security BearerAuth
func (handler *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChangePassword")
	defer scope.End()

	req := dto.ChangePasswordRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.ChangePassword(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to change password")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Password changed successfully")
}
