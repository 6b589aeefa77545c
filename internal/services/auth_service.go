package services

import (
	"fmt"
	"log"
	"time"

	"saveup/internal/models"
	"saveup/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles authentication for staff back-office accounts.
type AuthService struct {
	staffRepo  repositories.StaffRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(staffRepo repositories.StaffRepository, jwtSecret string) *AuthService {
	return &AuthService{
		staffRepo:  staffRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour, // Token valid for 24 hours
	}
}

// RegisterStaff registers a new staff account, hashes the password, and saves it.
func (s *AuthService) RegisterStaff(staff *models.StaffUser) error {
	// Check if username or email already exists
	if existing, err := s.staffRepo.GetByUsername(staff.Username); err == nil && existing != nil {
		return fmt.Errorf("username '%s' already taken", staff.Username)
	}
	if existing, err := s.staffRepo.GetByEmail(staff.Email); err == nil && existing != nil {
		return fmt.Errorf("email '%s' already registered", staff.Email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(staff.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	staff.Password = string(hashedPassword)

	if err := s.staffRepo.Create(staff); err != nil {
		return fmt.Errorf("failed to register staff user: %w", err)
	}
	return nil
}

// LoginStaff authenticates a staff account and returns a JWT token if successful.
func (s *AuthService) LoginStaff(username, password string) (string, error) {
	staff, err := s.staffRepo.GetByUsername(username)
	if err != nil {
		// Do not reveal whether the username exists
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"staff_id": staff.ID,
		"username": staff.Username,
		"exp":      time.Now().Add(s.tokenDurat).Unix(),
		"iat":      time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
