package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/lokumhouse/sweets-api/internal/application/dto"
	"github.com/lokumhouse/sweets-api/internal/domain"
	"github.com/lokumhouse/sweets-api/internal/domain/entity"
	"github.com/lokumhouse/sweets-api/internal/domain/repository"
	"github.com/lokumhouse/sweets-api/pkg/jwt"
)

// JWTConfig token generation settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase registration and login for portal profiles. The identity
// protocol itself is out of scope; this is the token plumbing the portals need.
type AuthUseCase struct {
	profileRepo repository.ProfileRepository
	firmaRepo   repository.FirmaRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase builds the auth use case.
func NewAuthUseCase(profileRepo repository.ProfileRepository, firmaRepo repository.FirmaRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{profileRepo: profileRepo, firmaRepo: firmaRepo, jwtCfg: jwtCfg}
}

// Register creates a profile: hashes the password with bcrypt and persists.
// Partner profiles must reference an existing firma; back-office roles carry
// no tenant. Returns ErrEmailAlreadyExists on a taken email.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.ProfileResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.profileRepo.FindByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	role := in.Role
	if role == "" {
		role = entity.RolePartner
	}
	switch role {
	case entity.RoleAdmin, entity.RoleStaff, entity.RolePartner:
	default:
		return nil, domain.ErrInvalidInput
	}

	firmaID := ""
	if role == entity.RolePartner {
		if in.FirmaID == "" {
			return nil, domain.ErrInvalidInput
		}
		firma, err := uc.firmaRepo.GetByID(in.FirmaID)
		if err != nil {
			return nil, err
		}
		if firma == nil {
			return nil, domain.ErrNotFound
		}
		firmaID = firma.ID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	profile := &entity.Profile{
		ID:           uuid.New().String(),
		FirmaID:      firmaID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.profileRepo.Create(profile); err != nil {
		return nil, err
	}
	return toProfileResponse(profile), nil
}

// Login verifies email/password, issues a JWT and returns token + profile.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	profile, err := uc.profileRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrProfileNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if profile.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, profile.ID, profile.FirmaID, profile.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   token,
		Profile: *toProfileResponse(profile),
	}, nil
}

func toProfileResponse(p *entity.Profile) *dto.ProfileResponse {
	if p == nil {
		return nil
	}
	return &dto.ProfileResponse{
		ID:        p.ID,
		FirmaID:   p.FirmaID,
		Email:     p.Email,
		Name:      p.Name,
		Role:      p.Role,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
