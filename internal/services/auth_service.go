package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/medatlas/medatlas-backend/internal/cache"
	"github.com/medatlas/medatlas-backend/internal/config"
	"github.com/medatlas/medatlas-backend/internal/dto"
	"github.com/medatlas/medatlas-backend/internal/models"
	"github.com/medatlas/medatlas-backend/internal/validation"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrInvalidCode        = errors.New("invalid or expired code")
	ErrUserNotFound       = errors.New("user not found")
	ErrValidation         = errors.New("validation failed")
)

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type AuthService struct {
	db    *gorm.DB
	cfg   *config.Config
	cache *cache.Cache
	oauth *oauth2.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config, c *cache.Cache) *AuthService {
	var oc *oauth2.Config
	if cfg.GoogleClientID != "" {
		oc = &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}
	return &AuthService{db: db, cfg: cfg, cache: c, oauth: oc}
}

func validationErr(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// Register creates a principal and then its role row. The two steps are
// deliberately separate: EnsureProfile is idempotent, so a failed second step
// can be retried without string-matching on error messages.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if msg := validation.Email(req.Email); msg != "" {
		return nil, validationErr(msg)
	}
	if msg := validation.Password(req.Password); msg != "" {
		return nil, validationErr(msg)
	}
	if msg := validation.Phone(req.Phone); msg != "" {
		return nil, validationErr(msg)
	}
	switch req.UserType {
	case models.UserTypePatient:
		if msg := validation.DateOfBirth(req.DateOfBirth); msg != "" {
			return nil, validationErr(msg)
		}
	case models.UserTypeDoctor:
		if req.Specialty == "" {
			return nil, validationErr("Specialty is required")
		}
	case models.UserTypeAdmin:
		// no extra fields
	default:
		return nil, validationErr("user_type must be patient, doctor or admin")
	}
	if req.FirstName == "" || req.LastName == "" {
		return nil, validationErr("First and last name are required")
	}

	var existing models.Principal
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	principal := models.Principal{
		ID:           uuid.New(),
		Email:        req.Email,
		Password:     string(hash),
		UserType:     req.UserType,
		AuthProvider: "email",
	}

	if err := s.db.Create(&principal).Error; err != nil {
		// The email lookup above races with concurrent signups; the unique
		// index is the backstop.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create principal: %w", err)
	}

	if err := s.EnsureProfile(&principal, req); err != nil {
		return nil, fmt.Errorf("failed to create role profile: %w", err)
	}

	return s.generateTokenPair(&principal)
}

// EnsureProfile creates the role row for a principal if it does not exist.
// Safe to call again after a partial signup.
func (s *AuthService) EnsureProfile(p *models.Principal, req *dto.RegisterRequest) error {
	switch p.UserType {
	case models.UserTypeDoctor:
		doctor := models.Doctor{
			ID:              p.ID,
			Email:           p.Email,
			FirstName:       req.FirstName,
			LastName:        req.LastName,
			Phone:           req.Phone,
			Specialty:       req.Specialty,
			YearsExperience: req.YearsExperience,
			Bio:             req.Bio,
			Status:          models.DoctorStatusPending,
			Tier:            models.TierBasic,
		}
		return s.db.Where("id = ?", p.ID).FirstOrCreate(&doctor).Error
	case models.UserTypeAdmin:
		admin := models.Admin{
			ID:        p.ID,
			Email:     p.Email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Role:      models.AdminRoleAdmin,
		}
		return s.db.Where("id = ?", p.ID).FirstOrCreate(&admin).Error
	default:
		patient := models.Patient{
			ID:          p.ID,
			Email:       p.Email,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Phone:       req.Phone,
			DateOfBirth: req.DateOfBirth,
		}
		return s.db.Where("id = ?", p.ID).FirstOrCreate(&patient).Error
	}
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var principal models.Principal
	if err := s.db.Where("email = ?", req.Email).First(&principal).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(principal.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokenPair(&principal)
}

func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	s.db.Model(&stored).Update("revoked", true)

	var principal models.Principal
	if err := s.db.First(&principal, "id = ?", stored.PrincipalID).Error; err != nil {
		return nil, fmt.Errorf("principal not found: %w", err)
	}

	return s.generateTokenPair(&principal)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

// RequestPasswordReset issues a single-use reset code. The response to the
// caller is identical whether or not the email exists.
func (s *AuthService) RequestPasswordReset(email string) (string, error) {
	var principal models.Principal
	if err := s.db.Where("email = ?", email).First(&principal).Error; err != nil {
		return "", ErrUserNotFound
	}
	return s.issueTicket(principal.ID, models.TicketKindPasswordReset, 30*time.Minute)
}

// UpdatePasswordWithCode consumes a password_reset ticket and sets the new
// password.
func (s *AuthService) UpdatePasswordWithCode(code, newPassword string) error {
	if msg := validation.Password(newPassword); msg != "" {
		return validationErr(msg)
	}

	ticket, err := s.consumeTicket(code, models.TicketKindPasswordReset)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.Model(&models.Principal{}).
		Where("id = ?", ticket.PrincipalID).
		Update("password", string(hash)).Error
}

// UpdatePassword sets a new password for an authenticated principal.
func (s *AuthService) UpdatePassword(principalID uuid.UUID, newPassword string) error {
	if msg := validation.Password(newPassword); msg != "" {
		return validationErr(msg)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	result := s.db.Model(&models.Principal{}).
		Where("id = ?", principalID).
		Update("password", string(hash))
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return result.Error
}

// --- OAuth (Google) ---

// GoogleConfigured reports whether the Google provider is wired.
func (s *AuthService) GoogleConfigured() bool {
	return s.oauth != nil
}

// GoogleAuthURL stores a random state (with the requested role for new
// accounts) and returns the provider redirect URL.
func (s *AuthService) GoogleAuthURL(ctx context.Context, userType string) (string, error) {
	if s.oauth == nil {
		return "", errors.New("google oauth not configured")
	}
	state, err := randomToken()
	if err != nil {
		return "", err
	}
	if err := s.cache.SetJSON(ctx, "oauth:state:"+state, userType, 10*time.Minute); err != nil {
		return "", fmt.Errorf("failed to store oauth state: %w", err)
	}
	return s.oauth.AuthCodeURL(state), nil
}

// ExchangeGoogle trades the provider code for the principal, creating one
// (with its role row) on first sign-in.
func (s *AuthService) ExchangeGoogle(ctx context.Context, code, state string) (*models.Principal, error) {
	if s.oauth == nil {
		return nil, errors.New("google oauth not configured")
	}

	var userType string
	if err := s.cache.GetJSON(ctx, "oauth:state:"+state, &userType); err != nil {
		return nil, ErrInvalidCode
	}
	_ = s.cache.Delete(ctx, "oauth:state:"+state)

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	resp, err := s.oauth.Client(ctx, token).Get(googleUserinfoURL)
	if err != nil {
		return nil, fmt.Errorf("userinfo fetch failed: %w", err)
	}
	defer resp.Body.Close()

	var info struct {
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("userinfo decode failed: %w", err)
	}
	if info.Email == "" {
		return nil, errors.New("provider returned no email")
	}

	var principal models.Principal
	err = s.db.Where("email = ?", info.Email).First(&principal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if userType != models.UserTypeDoctor && userType != models.UserTypeAdmin {
			userType = models.UserTypePatient
		}
		principal = models.Principal{
			ID:           uuid.New(),
			Email:        info.Email,
			Password:     "",
			UserType:     userType,
			AuthProvider: "google",
		}
		if err := s.db.Create(&principal).Error; err != nil {
			return nil, fmt.Errorf("failed to create principal: %w", err)
		}
		if err := s.EnsureProfile(&principal, &dto.RegisterRequest{
			FirstName: info.GivenName,
			LastName:  info.FamilyName,
		}); err != nil {
			slog.Error("role profile creation failed after oauth signup",
				"user_id", principal.ID.String(), "error", err)
		}
	} else if err != nil {
		return nil, err
	}

	return &principal, nil
}

// --- One-time login tickets ---

// IssueLoginTicket creates a short-lived single-use code exchangeable at the
// auth callback.
func (s *AuthService) IssueLoginTicket(principalID uuid.UUID) (string, error) {
	return s.issueTicket(principalID, models.TicketKindLogin, 5*time.Minute)
}

// RequestLoginLink issues a login ticket for the account with this email.
// Delivery happens out of band; the caller gets the same response whether or
// not the account exists.
func (s *AuthService) RequestLoginLink(email string) (string, error) {
	var principal models.Principal
	if err := s.db.Where("email = ?", email).First(&principal).Error; err != nil {
		return "", ErrUserNotFound
	}
	return s.IssueLoginTicket(principal.ID)
}

// ExchangeLoginTicket consumes a login ticket and returns the principal.
func (s *AuthService) ExchangeLoginTicket(code string) (*models.Principal, error) {
	ticket, err := s.consumeTicket(code, models.TicketKindLogin)
	if err != nil {
		return nil, err
	}
	var principal models.Principal
	if err := s.db.First(&principal, "id = ?", ticket.PrincipalID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &principal, nil
}

func (s *AuthService) issueTicket(principalID uuid.UUID, kind string, ttl time.Duration) (string, error) {
	raw, err := randomToken()
	if err != nil {
		return "", err
	}
	ticket := models.LoginTicket{
		ID:          uuid.New(),
		PrincipalID: principalID,
		CodeHash:    hashToken(raw),
		Kind:        kind,
		ExpiresAt:   time.Now().Add(ttl),
	}
	if err := s.db.Create(&ticket).Error; err != nil {
		return "", fmt.Errorf("failed to store ticket: %w", err)
	}
	return raw, nil
}

func (s *AuthService) consumeTicket(code, kind string) (*models.LoginTicket, error) {
	var ticket models.LoginTicket
	if err := s.db.Where("code_hash = ? AND kind = ? AND consumed = false", hashToken(code), kind).
		First(&ticket).Error; err != nil {
		return nil, ErrInvalidCode
	}
	if time.Now().After(ticket.ExpiresAt) {
		s.db.Model(&ticket).Update("consumed", true)
		return nil, ErrInvalidCode
	}
	if err := s.db.Model(&ticket).Update("consumed", true).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// --- Tokens ---

// SessionFor issues a token pair for an already-resolved principal (used by
// the auth callback after a code exchange).
func (s *AuthService) SessionFor(p *models.Principal) (*dto.AuthResponse, error) {
	return s.generateTokenPair(p)
}

func (s *AuthService) generateTokenPair(p *models.Principal) (*dto.AuthResponse, error) {
	accessToken, err := s.GenerateAccessToken(p)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(p)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserResponse{
			ID:       p.ID,
			Email:    p.Email,
			UserType: p.UserType,
		},
	}, nil
}

func (s *AuthService) GenerateAccessToken(p *models.Principal) (string, error) {
	claims := jwt.MapClaims{
		"sub":       p.ID.String(),
		"email":     p.Email,
		"user_type": p.UserType,
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(p *models.Principal) (string, error) {
	rawToken, err := randomToken()
	if err != nil {
		return "", err
	}

	record := models.RefreshToken{
		ID:          uuid.New(),
		PrincipalID: p.ID,
		TokenHash:   hashToken(rawToken),
		ExpiresAt:   time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func randomToken() (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.URLEncoding.EncodeToString(rawBytes), nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
