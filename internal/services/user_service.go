package services

import (
	"context"

	"pg-backend/internal/auth"
	"pg-backend/internal/models"
	"pg-backend/internal/repositories"
)

type UserService struct {
	Users      *repositories.UserRepository
	Tenants    *repositories.TenantRepository
	JWTManager *auth.JWTManager
}

func NewUserService(users *repositories.UserRepository, tenants *repositories.TenantRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{
		Users:      users,
		Tenants:    tenants,
		JWTManager: jwtManager,
	}
}

// Register creates a new account. Tenant registrations get an empty profile
// (no room) in the same transaction as the user row.
func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, invalid("name, email, and password are required")
	}

	role := req.Role
	if role == "" {
		role = models.RoleTenant
	}
	if role != models.RoleAdmin && role != models.RoleTenant {
		return nil, invalid("invalid role")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         role,
	}

	name := req.Name
	if role == models.RoleTenant {
		profile := &models.TenantProfile{
			Name:  req.Name,
			Phone: req.Phone,
		}
		if err := s.Tenants.CreateWithUser(ctx, user, profile); err != nil {
			return nil, err
		}
	} else {
		if existing, _ := s.Users.GetByEmail(ctx, req.Email); existing != nil {
			return nil, repositories.ErrEmailTaken
		}
		if err := s.Users.Create(ctx, user); err != nil {
			return nil, err
		}
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User: &models.AuthUser{
			ID:    user.ID,
			Email: user.Email,
			Role:  user.Role,
			Name:  name,
		},
	}, nil
}

// Login authenticates a user and returns a JWT token
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, invalid("email and password are required")
	}

	user, err := s.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, invalid("invalid email or password")
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, invalid("invalid email or password")
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	name := ""
	if user.Role == models.RoleTenant {
		if profile, err := s.Tenants.GetByUserID(ctx, user.ID); err == nil {
			name = profile.Name
		}
	}

	return &models.AuthResponse{
		Token: token,
		User: &models.AuthUser{
			ID:    user.ID,
			Email: user.Email,
			Role:  user.Role,
			Name:  name,
		},
	}, nil
}

// GetUser returns the account for the authenticated id (the /auth/me view)
func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	return s.Users.Get(ctx, id)
}
