package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jinzhu/copier"
	"github.com/lshigami/Placemate/config"
	"github.com/lshigami/Placemate/internal/dto"
	"github.com/lshigami/Placemate/internal/model"
	"github.com/lshigami/Placemate/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenIssuer = "placemate"

// Claims are carried by every access token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// UserID returns the numeric user id stored in the subject.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid subject %q: %w", c.Subject, err)
	}
	return uint(id), nil
}

type AuthService interface {
	SignupStudent(req dto.SignupRequest) (*dto.AuthResponse, error)
	SignupInterviewer(req dto.InterviewerSignupRequest) (*dto.AuthResponse, error)
	Login(req dto.LoginRequest) (*dto.AuthResponse, error)
	ParseToken(token string) (*Claims, error)
}

type authService struct {
	userRepo   repository.UserRepository
	secret     []byte
	ttl        time.Duration
	bcryptCost int
	now        func() time.Time
}

func NewAuthService(cfg *config.Config, userRepo repository.UserRepository) AuthService {
	ttl := cfg.Auth.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &authService{
		userRepo:   userRepo,
		secret:     []byte(cfg.Auth.JWTSecret),
		ttl:        ttl,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

func (s *authService) SignupStudent(req dto.SignupRequest) (*dto.AuthResponse, error) {
	user := model.User{
		Name: strings.TrimSpace(req.Name),
		Role: model.RoleStudent,
		USN:  strings.TrimSpace(req.USN),
		Year: strings.TrimSpace(req.Year),
	}
	return s.signup(&user, req.Email, req.Password)
}

func (s *authService) SignupInterviewer(req dto.InterviewerSignupRequest) (*dto.AuthResponse, error) {
	user := model.User{
		Name:        strings.TrimSpace(req.Name),
		Role:        model.RoleInterviewer,
		CompanyName: strings.TrimSpace(req.CompanyName),
	}
	return s.signup(&user, req.Email, req.Password)
}

func (s *authService) signup(user *model.User, email, password string) (*dto.AuthResponse, error) {
	user.Email = normalizeEmail(email)

	_, err := s.userRepo.FindByEmail(user.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Str("email", user.Email).Msg("Signup: Failed to check existing user")
		return nil, fmt.Errorf("error checking existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}
	user.PasswordHash = string(hash)

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		log.Error().Err(err).Str("email", user.Email).Msg("Signup: Failed to create user")
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	log.Info().Uint("userID", user.ID).Str("role", user.Role).Msg("Signup: User registered")
	return s.issue(user)
}

func (s *authService) Login(req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		log.Warn().Uint("userID", user.ID).Msg("Login: Wrong password")
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

func (s *authService) issue(user *model.User) (*dto.AuthResponse, error) {
	now := s.now()
	expires := now.Add(s.ttl)
	claims := &Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("error signing token: %w", err)
	}

	resp := dto.AuthResponse{AccessToken: signed, ExpiresAt: expires}
	if err := copier.Copy(&resp.User, user); err != nil {
		return nil, fmt.Errorf("error preparing user response: %w", err)
	}
	return &resp, nil
}

func (s *authService) ParseToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
