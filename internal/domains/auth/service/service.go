package service

import (
	"context"
	"fmt"
	"strings"

	"hotelier/config"
	"hotelier/infras/jwt"
	"hotelier/infras/otel"
	"hotelier/internal/domains/auth/model/dto"
	customerModel "hotelier/internal/domains/customer/model"
	customerRepo "hotelier/internal/domains/customer/repository"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/password"

	"github.com/rs/zerolog/log"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (int64, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, customerID int64) error
}

type serviceImpl struct {
	customerRepo customerRepo.Customer
	cfg          *config.Config
	otel         otel.Otel
	jwtService   jwt.JWT
}

func New(customerRepo customerRepo.Customer, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		customerRepo: customerRepo,
		cfg:          cfg,
		otel:         otel,
		jwtService:   jwt,
	}
}

// Register is the self-service signup path. New accounts are customers; admin
// identity only ever comes from configuration.
func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (id int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	email := strings.ToLower(req.Email)

	if email == strings.ToLower(s.cfg.App.Admin.Email) {
		return 0, failure.Conflict("email is already registered") // nolint:wrapcheck
	}

	exists, err := s.customerRepo.Exist(ctx, emailFilter(email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if customer exists")

		return 0, fmt.Errorf("failed to check if customer exists: %w", err)
	}

	if exists {
		return 0, failure.Conflict("email is already registered") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err = s.customerRepo.Insert(ctx, req.ToCustomerModel(constant.ContextGuest, hashedPassword))
	if err != nil {
		log.Error().Err(err).Msg("failed to create customer")

		return 0, fmt.Errorf("failed to create customer: %w", err)
	}

	return id, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	email := strings.ToLower(req.Email)

	if email == strings.ToLower(s.cfg.App.Admin.Email) {
		return s.loginAdmin(ctx, email, req.Password)
	}

	return s.loginCustomer(ctx, email, req.Password)
}

func (s *serviceImpl) loginAdmin(ctx context.Context, email, plainPassword string) (res dto.LoginResponse, err error) {
	if err := password.Verify(plainPassword, s.cfg.App.Admin.PasswordHash); err != nil {
		log.Warn().Str("email", email).Msg("admin login attempt with wrong password")

		return res, failure.InvalidCredentials() // nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(0, email, constant.RoleAdmin)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair, constant.RoleAdmin, 0, email)

	return res, nil
}

// loginCustomer checks the credential before the ban status so that a banned
// account with the right password is told about the ban, not about a bad
// password.
func (s *serviceImpl) loginCustomer(ctx context.Context, email, plainPassword string) (res dto.LoginResponse, err error) {
	customer, err := s.customerRepo.Get(ctx, emailFilter(email))
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer")

		return res, fmt.Errorf("failed to get customer: %w", err)
	}

	if customer.ID == 0 {
		log.Warn().Str("email", email).Msg("login attempt with unknown email")

		return res, failure.InvalidCredentials() // nolint:wrapcheck
	}

	if err := password.Verify(plainPassword, customer.Password); err != nil {
		log.Warn().Str("email", email).Msg("login attempt with wrong password")

		return res, failure.InvalidCredentials() // nolint:wrapcheck
	}

	if customer.Status == customerModel.StatusBanned {
		log.Warn().Str("email", email).Msg("login attempt on banned account")

		return res, failure.AccountBanned() // nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(customer.ID, customer.Email, constant.RoleCustomer)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair, constant.RoleCustomer, customer.ID, customer.Email)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	tokenPair, err := s.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, customerID int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(customerID, customerModel.FieldID, customerModel.TableName)

	customer, err := s.customerRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer")

		return fmt.Errorf("failed to get customer: %w", err)
	}

	if customer.ID == 0 {
		return failure.NotFound(customerModel.EntityName) // nolint:wrapcheck
	}

	if err := password.Verify(req.CurrentPassword, customer.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatePassword := dto.UpdatePasswordRequest{Password: hashedPassword}
	updatedFields := shared.TransformFields(updatePassword, customer.Email)

	if err = s.customerRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func emailFilter(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    customerModel.FieldEmail,
				Table:    customerModel.TableName,
				Operator: gDto.FilterOperatorEq,
				Value:    email,
			},
		},
	}
}
