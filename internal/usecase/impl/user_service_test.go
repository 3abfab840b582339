package impl

import (
	"context"
	"testing"
	"time"

	"jobboard/internal/domain/entity"
	domainerrors "jobboard/internal/domain/errors"
	"jobboard/internal/domain/repository"
	mockRepo "jobboard/internal/mocks/repository"
	mockSvc "jobboard/internal/mocks/service"
	"jobboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service      usecase.UserUsecase
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
}

func createTestUserService(t *testing.T) userServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)

	service := NewUserService(UserServiceParams{
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       newDiscardLogger(),
	})

	return userServiceFixtures{
		service:      service,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

func TestUserService_Register_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Name:     "A",
		Email:    " A@Example.com ",
		Password: "pw",
		Role:     entity.RoleEmployer,
	}

	fx.hasher.EXPECT().ValidatePasswordStrength("pw").Return(nil)
	fx.userRepo.EXPECT().FindByEmail(ctx, "a@example.com").Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash("pw").Return("hashed_password", nil)
	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(_ context.Context, user *entity.User) {
			user.ID = uuid.New()
		}).
		Return(nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "a@example.com", output.User.Email)
	assert.Equal(t, "hashed_password", output.User.PasswordHash)
	assert.Equal(t, entity.RoleEmployer, output.User.Role)
	assert.NotEqual(t, uuid.Nil, output.User.ID)
}

func TestUserService_Register_DefaultsToJobSeeker(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().ValidatePasswordStrength("pw").Return(nil)
	fx.userRepo.EXPECT().FindByEmail(ctx, "b@example.com").Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash("pw").Return("digest", nil)
	fx.userRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(user *entity.User) bool {
			return user.Role == entity.RoleJobSeeker
		})).
		Return(nil)

	output, err := fx.service.Register(ctx, &usecase.RegisterInput{Name: "B", Email: "b@example.com", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleJobSeeker, output.User.Role)
}

func TestUserService_Register_InvalidRole(t *testing.T) {
	fx := createTestUserService(t)

	_, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Name: "A", Email: "a@example.com", Password: "pw", Role: entity.Role("admin"),
	})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestUserService_Register_WeakPassword(t *testing.T) {
	fx := createTestUserService(t)
	weak := domainerrors.ErrPasswordStrength.WithDetails("must be at least 8 characters long")

	ctx := context.Background()

	fx.userRepo.EXPECT().FindByEmail(ctx, "a@example.com").Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().ValidatePasswordStrength("pw").Return(weak)

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Name: "A", Email: "a@example.com", Password: "pw",
	})

	assert.ErrorIs(t, err, domainerrors.ErrPasswordStrength)
}

func TestUserService_Register_DuplicateEmailPreCheck(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByEmail(ctx, "a@example.com").Return(&entity.User{ID: uuid.New()}, nil)

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{Name: "A", Email: "a@example.com", Password: "other"})

	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserService_Register_DuplicateEmailWinsOverWeakPassword(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	// No strength expectation: the mock fails the test if the policy runs.
	fx.userRepo.EXPECT().FindByEmail(ctx, "a@example.com").Return(&entity.User{ID: uuid.New()}, nil)

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{Name: "A", Email: "A@Example.com", Password: "x"})

	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
	assert.NotErrorIs(t, err, domainerrors.ErrPasswordStrength)
}

func TestUserService_Register_DuplicateEmailRace(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().ValidatePasswordStrength("pw").Return(nil)
	fx.userRepo.EXPECT().FindByEmail(ctx, "a@example.com").Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash("pw").Return("digest", nil)
	fx.userRepo.EXPECT().Create(ctx, mock.Anything).Return(domainerrors.ErrUserAlreadyExists)

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{Name: "A", Email: "a@example.com", Password: "pw"})

	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserService_Register_StoreFailures(t *testing.T) {
	t.Run("lookup error", func(t *testing.T) {
		fx := createTestUserService(t)
		ctx := context.Background()

		fx.userRepo.EXPECT().FindByEmail(ctx, "a@example.com").Return(nil, errors.New("connection reset"))

		_, err := fx.service.Register(ctx, &usecase.RegisterInput{Name: "A", Email: "a@example.com", Password: "pw"})

		require.Error(t, err)
		var appErr domainerrors.AppError
		assert.False(t, errors.As(err, &appErr), "unexpected failures are not AppErrors")
	})

	t.Run("hash error", func(t *testing.T) {
		fx := createTestUserService(t)
		ctx := context.Background()

		fx.hasher.EXPECT().ValidatePasswordStrength("pw").Return(nil)
		fx.userRepo.EXPECT().FindByEmail(ctx, "a@example.com").Return(nil, repository.ErrUserNotFound)
		fx.hasher.EXPECT().Hash("pw").Return("", errors.New("entropy exhausted"))

		_, err := fx.service.Register(ctx, &usecase.RegisterInput{Name: "A", Email: "a@example.com", Password: "pw"})

		assert.ErrorIs(t, err, domainerrors.ErrPasswordHashFailed)
	})

	t.Run("create error", func(t *testing.T) {
		fx := createTestUserService(t)
		ctx := context.Background()

		fx.hasher.EXPECT().ValidatePasswordStrength("pw").Return(nil)
		fx.userRepo.EXPECT().FindByEmail(ctx, "a@example.com").Return(nil, repository.ErrUserNotFound)
		fx.hasher.EXPECT().Hash("pw").Return("digest", nil)
		fx.userRepo.EXPECT().Create(ctx, mock.Anything).Return(errors.New("disk full"))

		_, err := fx.service.Register(ctx, &usecase.RegisterInput{Name: "A", Email: "a@example.com", Password: "pw"})

		assert.ErrorIs(t, err, domainerrors.ErrUserCreationFailed)
		assert.Contains(t, err.Error(), "disk full")
	})
}

func TestUserService_Login_Success(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "a@example.com", PasswordHash: "digest", Role: entity.RoleEmployer}

	fx.userRepo.EXPECT().FindByEmail(ctx, "a@example.com").Return(user, nil)
	fx.hasher.EXPECT().Check("pw", "digest").Return(true)
	fx.tokenService.EXPECT().GenerateToken(user.ID, entity.RoleEmployer).Return("signed.token.value", nil)
	fx.tokenService.EXPECT().TokenTTL().Return(time.Hour)

	before := time.Now()
	output, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "A@example.com", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, "signed.token.value", output.Token)
	assert.Equal(t, entity.RoleEmployer, output.Role)
	assert.WithinDuration(t, before.Add(time.Hour), output.ExpiresAt, time.Minute)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByEmail(ctx, "a@example.com").
		Return(&entity.User{ID: uuid.New(), PasswordHash: "digest"}, nil)
	fx.hasher.EXPECT().Check("wrong", "digest").Return(false)

	_, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "a@example.com", Password: "wrong"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Login_UnknownEmailStillComparesHash(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByEmail(ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound).Twice()
	fx.hasher.EXPECT().Hash(timingEqualizerPassword).Return("dummy-digest", nil).Once()
	fx.hasher.EXPECT().Check("pw", "dummy-digest").Return(false).Twice()

	for range 2 {
		_, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "ghost@example.com", Password: "pw"})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	}
}

func TestUserService_Login_StoreError(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByEmail(ctx, "a@example.com").Return(nil, errors.New("timeout"))

	_, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "a@example.com", Password: "pw"})

	require.Error(t, err)
	assert.NotErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Login_TokenError(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), PasswordHash: "digest", Role: entity.RoleJobSeeker}

	fx.userRepo.EXPECT().FindByEmail(ctx, "a@example.com").Return(user, nil)
	fx.hasher.EXPECT().Check("pw", "digest").Return(true)
	fx.tokenService.EXPECT().GenerateToken(user.ID, entity.RoleJobSeeker).Return("", errors.New("signing failed"))

	_, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "a@example.com", Password: "pw"})

	assert.ErrorContains(t, err, "signing failed")
}
