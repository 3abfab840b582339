// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	deliverycontext "jobboard/internal/delivery/context"
	"jobboard/internal/domain/entity"
	domainerrors "jobboard/internal/domain/errors"
	"jobboard/internal/domain/repository"
	"jobboard/internal/domain/service"
	"jobboard/internal/errors"
	"jobboard/internal/usecase"

	"go.uber.org/fx"
)

// timingEqualizerPassword is hashed once and compared against on logins for
// unknown emails, so both failure paths pay for one bcrypt comparison.
const timingEqualizerPassword = "jobboard-timing-equalizer"

// userService implements the UserUsecase interface.
type userService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger

	dummyHashOnce sync.Once
	dummyHash     string
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates an account. A taken email is reported before any password
// policy applies. The email pre-check is a fast path; the store's unique
// constraint decides races between concurrent registrations.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	email := entity.NormalizeEmail(input.Email)

	role := input.Role
	if role == "" {
		role = entity.RoleJobSeeker
	}
	if !role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("userType must be one of: jobseeker, employer")
	}

	_, err := srv.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		srv.log(ctx).Info("Registration rejected, email already registered", slog.String("email", email))

		return nil, domainerrors.ErrUserAlreadyExists
	case !errors.Is(err, repository.ErrUserNotFound):
		return nil, errors.Wrap(err, "failed to check existing user")
	}

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password rejected during registration", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrapf(domainerrors.ErrPasswordHashFailed, "hash password: %v", err)
	}

	newUser := &entity.User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, domainerrors.ErrUserAlreadyExists) {
			srv.log(ctx).Info("Registration lost a duplicate-email race", slog.String("email", email))

			return nil, domainerrors.ErrUserAlreadyExists
		}

		return nil, errors.Wrapf(domainerrors.ErrUserCreationFailed, "create user: %v", err)
	}

	srv.log(ctx).Info("User registered", slog.Any("userID", newUser.ID), slog.String("role", role.String()))

	return &usecase.RegisterOutput{User: newUser}, nil
}

// Login verifies credentials and issues a bearer token. Unknown emails and
// wrong passwords return the same error.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := entity.NormalizeEmail(input.Email)

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(err, "failed to find user by email")
		}

		srv.hasher.Check(input.Password, srv.timingEqualizerHash())
		srv.log(ctx).Info("Login failed", slog.String("email", email))

		return nil, domainerrors.ErrInvalidCredentials
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Info("Login failed", slog.String("email", email))

		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := srv.tokenService.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}

	srv.log(ctx).Debug("User logged in", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		Token:     token,
		Role:      user.Role,
		ExpiresAt: time.Now().Add(srv.tokenService.TokenTTL()),
	}, nil
}

func (srv *userService) timingEqualizerHash() string {
	srv.dummyHashOnce.Do(func() {
		hash, err := srv.hasher.Hash(timingEqualizerPassword)
		if err != nil {
			srv.logger.Warn("Failed to prepare timing equalizer hash", slog.Any("error", err))

			return
		}
		srv.dummyHash = hash
	})

	return srv.dummyHash
}
