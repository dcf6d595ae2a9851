package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/storefront-api/dto"
	"github.com/storefront-api/metrics"
	"github.com/storefront-api/models"
	"github.com/storefront-api/repositories"
	"github.com/storefront-api/utils"
	"gorm.io/gorm"
)

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// burnPasswordCheck spends one bcrypt comparison so that unknown emails take
// as long to reject as wrong passwords.
func burnPasswordCheck(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = utils.HashPassword("storefront-dummy-password")
	})
	utils.CheckPassword(dummyHash, password)
}

// UserService owns registration, login and the user directory
type UserService struct {
	users  *repositories.UserRepository
	tokens *TokenService
}

// NewUserService creates a new user service
func NewUserService(db *gorm.DB, tokens *TokenService) *UserService {
	return &UserService{
		users:  repositories.NewUserRepository(db),
		tokens: tokens,
	}
}

// Register creates an account and signs a token for it
func (s *UserService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	user, err := s.CreateAccount(ctx, req)
	if err != nil {
		metrics.ObserveAuthAttempt("register", "failure")
		return nil, err
	}

	metrics.ObserveAuthAttempt("register", "success")
	return s.issue(user)
}

// CreateAccount stores a new user with a hashed password. The role defaults
// to USER when the request leaves it empty.
func (s *UserService) CreateAccount(ctx context.Context, req dto.RegisterRequest) (models.User, error) {
	email := normalizeEmail(req.Email)
	nationalID := strings.TrimSpace(req.NationalID)
	if email == "" {
		return models.User{}, NewValidationError("email", "email is required")
	}
	if len(req.Password) < 6 {
		return models.User{}, NewValidationError("password", "password must be at least 6 characters")
	}

	role := models.RoleUser
	if req.Role != "" {
		role = models.Role(strings.ToUpper(req.Role))
		if !role.Valid() {
			return models.User{}, NewValidationError("role", "role must be USER or ADMIN")
		}
	}

	if err := s.checkUnique(ctx, email, nationalID, 0); err != nil {
		return models.User{}, err
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:      email,
		Password:   hashed,
		Name:       strings.TrimSpace(req.Name),
		LastName:   strings.TrimSpace(req.LastName),
		NationalID: nationalID,
		Phone:      strings.TrimSpace(req.Phone),
		Role:       role,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, conflict("email or national id already registered")
		}
		return models.User{}, err
	}
	return user, nil
}

// Login authenticates a user and returns a token. Unknown emails and wrong
// passwords yield the same error.
func (s *UserService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		burnPasswordCheck(req.Password)
		metrics.ObserveAuthAttempt("login", "failure")
		return nil, ErrUnauthenticated
	}

	if !utils.CheckPassword(user.Password, req.Password) {
		metrics.ObserveAuthAttempt("login", "failure")
		return nil, ErrUnauthenticated
	}

	metrics.ObserveAuthAttempt("login", "success")
	return s.issue(user)
}

func (s *UserService) issue(user models.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(strconv.FormatUint(uint64(user.ID), 10))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &dto.AuthResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
		User:      dto.NewUserResponse(user),
	}, nil
}

// Authenticate resolves a bearer token to the acting user. The role is read
// from the database so role changes apply to tokens already issued.
func (s *UserService) Authenticate(ctx context.Context, token string) (Actor, error) {
	subject, err := s.tokens.Resolve(token)
	if err != nil {
		return Actor{}, err
	}

	id, err := strconv.ParseUint(subject, 10, 64)
	if err != nil {
		return Actor{}, fmt.Errorf("%w: malformed subject", ErrUnauthenticated)
	}

	user, err := s.users.FindByID(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Actor{}, fmt.Errorf("%w: unknown user", ErrUnauthenticated)
		}
		return Actor{}, err
	}
	return Actor{UserID: user.ID, Role: user.Role}, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uint) (models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return models.User{}, lookupErr(err, "user")
	}
	return user, nil
}

// ListUsers returns every account
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.FindAll(ctx)
}

// UpdateSelf applies the caller's partial profile update
func (s *UserService) UpdateSelf(ctx context.Context, actor Actor, req dto.UpdateSelfRequest) (models.User, error) {
	user, err := s.GetUser(ctx, actor.UserID)
	if err != nil {
		return models.User{}, err
	}

	if req.NationalID != nil {
		if err := s.checkUnique(ctx, "", strings.TrimSpace(*req.NationalID), user.ID); err != nil {
			return models.User{}, err
		}
	}

	utils.AssignTrimmed(&user.Name, req.Name)
	utils.AssignTrimmed(&user.LastName, req.LastName)
	utils.AssignTrimmed(&user.Phone, req.Phone)
	utils.AssignTrimmed(&user.NationalID, req.NationalID)
	if err := requireProfile(user); err != nil {
		return models.User{}, err
	}
	if err := setPassword(&user, req.Password); err != nil {
		return models.User{}, err
	}

	return user, s.save(ctx, &user)
}

// UpdateUser applies an admin's partial update to any user
func (s *UserService) UpdateUser(ctx context.Context, id uint, req dto.AdminUpdateUserRequest) (models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	var email, nationalID string
	if req.Email != nil {
		email = normalizeEmail(*req.Email)
	}
	if req.NationalID != nil {
		nationalID = strings.TrimSpace(*req.NationalID)
	}
	if err := s.checkUnique(ctx, email, nationalID, user.ID); err != nil {
		return models.User{}, err
	}

	if req.Email != nil {
		user.Email = email
	}
	utils.AssignTrimmed(&user.Name, req.Name)
	utils.AssignTrimmed(&user.LastName, req.LastName)
	utils.AssignTrimmed(&user.Phone, req.Phone)
	utils.AssignTrimmed(&user.NationalID, req.NationalID)
	if req.Role != nil {
		role := models.Role(strings.ToUpper(*req.Role))
		if !role.Valid() {
			return models.User{}, NewValidationError("role", "role must be USER or ADMIN")
		}
		user.Role = role
	}
	if err := requireProfile(user); err != nil {
		return models.User{}, err
	}
	if err := setPassword(&user, req.Password); err != nil {
		return models.User{}, err
	}

	return user, s.save(ctx, &user)
}

// DeleteUser removes a user and, through FK cascades, everything they own
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return notFound("user")
	}
	return nil
}

// checkUnique rejects email or nationalID already held by a user other than
// excludeID. Empty values are not checked.
func (s *UserService) checkUnique(ctx context.Context, email, nationalID string, excludeID uint) error {
	if email != "" {
		taken, err := s.users.EmailTaken(ctx, email, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return conflict("email already registered")
		}
	}
	if nationalID != "" {
		taken, err := s.users.NationalIDTaken(ctx, nationalID, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return conflict("national id already registered")
		}
	}
	return nil
}

func (s *UserService) save(ctx context.Context, user *models.User) error {
	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return conflict("email or national id already registered")
		}
		return err
	}
	return nil
}

// requireProfile rejects an update that blanks a required profile field
func requireProfile(user models.User) error {
	fields := []struct{ name, value string }{
		{"email", user.Email},
		{"name", user.Name},
		{"lastName", user.LastName},
		{"nationalId", user.NationalID},
		{"phone", user.Phone},
	}
	for _, f := range fields {
		if f.value == "" {
			return NewValidationError(f.name, f.name+" must not be blank")
		}
	}
	return nil
}

func setPassword(user *models.User, password *string) error {
	if password == nil || *password == "" {
		return nil
	}
	hashed, err := utils.HashPassword(*password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hashed
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
