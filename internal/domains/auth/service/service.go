package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"hotelbooking/config"
	"hotelbooking/infras/jwt"
	"hotelbooking/infras/otel"
	"hotelbooking/internal/domains/auth/model/dto"
	authRepo "hotelbooking/internal/domains/auth/repository"
	userModel "hotelbooking/internal/domains/user/model"
	userRepo "hotelbooking/internal/domains/user/repository"
	"hotelbooking/shared"
	"hotelbooking/shared/constant"
	"hotelbooking/shared/failure"
	"hotelbooking/shared/password"
	"hotelbooking/shared/session"
	"hotelbooking/shared/timezone"

	"github.com/rs/zerolog/log"
)

const invalidCredentials = "invalid email or password"

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.RegisterResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.TokenResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.TokenResponse, error)
	Session(ctx context.Context) dto.SessionResponse
	Logout(ctx context.Context, req dto.LogoutRequest) error
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	userRepo   userRepo.User
	tokenRepo  authRepo.Token
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, tokenRepo authRepo.Token, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.RegisterResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exists, err := s.userRepo.Exist(ctx, userRepo.EmailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.BadRequestFromString("email already registered")
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToUserModel(hashedPassword)

	if err = s.userRepo.Insert(ctx, user); err != nil {
		if failure.GetCode(err) == http.StatusConflict {
			return res, failure.BadRequestFromString("email already registered")
		}

		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	scope.SetAttribute("user.role", user.Role)
	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, failure.BadRequestFromString(invalidCredentials)
	}

	if err = password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.BadRequestFromString(invalidCredentials)
	}

	if !user.Active {
		return res, failure.BadRequestFromString("user account is deactivated")
	}

	if req.Role != "" && req.Role != user.Role {
		log.Warn().Str("user_id", user.ID).Str("wanted", req.Role).Msg("login attempt through the wrong portal")

		return res, failure.Forbidden(fmt.Sprintf("this account cannot sign in as %s", req.Role))
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	lastLogin := dto.UpdateLastLoginRequest{LastLogin: timezone.Now()}
	updatedFields := shared.TransformFields(lastLogin, user.ID)

	if err = s.userRepo.Update(ctx, updatedFields, shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); err != nil {
		// a stale last_login must not block sign in
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

// RefreshToken rotates the pair. The presented refresh token is revoked so it
// cannot be replayed, and the role is re-read from the account.
func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, err := s.jwtService.ValidateToken(ctx, req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("invalid refresh token")

		return res, failure.Unauthorized("invalid refresh token")
	}

	revoked, err := s.tokenRepo.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check refresh token")

		return res, fmt.Errorf("failed to check refresh token: %w", err)
	}

	if revoked {
		return res, failure.Unauthorized("refresh token has been revoked")
	}

	user, err := s.userRepo.Get(ctx, shared.FilterByID(claims.UserID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" || !user.Active {
		return res, failure.Unauthorized("user account is not available")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err = s.tokenRepo.Revoke(ctx, claims.TokenID, claims.ExpiresIn(timezone.Now())); err != nil {
		log.Error().Err(err).Str("token_id", claims.TokenID).Msg("failed to revoke rotated refresh token")

		return res, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) Session(ctx context.Context) (res dto.SessionResponse) {
	res.FromSession(session.FromContext(ctx))

	return res
}

// Logout revokes the access token of the current session and, when given, the refresh token.
func (s *serviceImpl) Logout(ctx context.Context, req dto.LogoutRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current := session.FromContext(ctx)
	if !current.Authenticated() {
		return failure.Unauthorized("no active session")
	}

	accessTTL := time.Duration(s.cfg.JWT.AccessExpireMin) * time.Minute
	if err = s.tokenRepo.Revoke(ctx, current.TokenID, accessTTL); err != nil {
		log.Error().Err(err).Str("user_id", current.UserID).Msg("failed to revoke access token")

		return fmt.Errorf("failed to revoke access token: %w", err)
	}

	if req.RefreshToken == "" {
		return nil
	}

	claims, err := s.jwtService.ValidateToken(ctx, req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil
		}

		return failure.BadRequestFromString("invalid refresh token")
	}

	if claims.UserID != current.UserID {
		return failure.Forbidden("refresh token belongs to another user")
	}

	if err = s.tokenRepo.Revoke(ctx, claims.TokenID, claims.ExpiresIn(timezone.Now())); err != nil {
		log.Error().Err(err).Str("user_id", current.UserID).Msg("failed to revoke refresh token")

		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current := session.FromContext(ctx)
	if !current.Authenticated() {
		return failure.Unauthorized("no active session")
	}

	filter := shared.FilterByID(current.UserID, userModel.FieldID, userModel.TableName)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		return failure.NotFound("user not found")
	}

	if err = password.Verify(req.CurrentPassword, user.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect")
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatedFields := shared.TransformFields(dto.UpdatePasswordRequest{Password: hashedPassword}, current.UserID)

	if err = s.userRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
