package services_test

import (
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"saveup/internal/models"
	"saveup/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockStaffRepository is a mock implementation of repositories.StaffRepository
type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) Create(staff *models.StaffUser) error {
	args := m.Called(staff)
	return args.Error(0)
}

func (m *MockStaffRepository) GetByUsername(username string) (*models.StaffUser, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StaffUser), args.Error(1)
}

func (m *MockStaffRepository) GetByEmail(email string) (*models.StaffUser, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StaffUser), args.Error(1)
}

func (m *MockStaffRepository) GetByID(id string) (*models.StaffUser, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StaffUser), args.Error(1)
}

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

func TestAuthService_RegisterStaff(t *testing.T) {
	mockRepo := new(MockStaffRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	// Test successful registration
	staff := &models.StaffUser{
		Username: "clerk",
		Email:    "clerk@saveup.test",
		Password: "password123",
	}

	mockRepo.On("GetByUsername", staff.Username).Return(nil, nil).Once()
	mockRepo.On("GetByEmail", staff.Email).Return(nil, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.StaffUser")).Return(nil).Once()

	err := authService.RegisterStaff(staff)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test username already taken
	mockRepo.On("GetByUsername", staff.Username).Return(&models.StaffUser{ID: "1"}, nil).Once()
	err = authService.RegisterStaff(staff)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "username 'clerk' already taken")
	mockRepo.AssertExpectations(t)

	// Test email already registered
	mockRepo.On("GetByUsername", staff.Username).Return(nil, nil).Once()
	mockRepo.On("GetByEmail", staff.Email).Return(&models.StaffUser{ID: "1"}, nil).Once()
	err = authService.RegisterStaff(staff)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "email 'clerk@saveup.test' already registered")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginStaff(t *testing.T) {
	mockRepo := new(MockStaffRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	staff := &models.StaffUser{
		ID:       "staff-123",
		Username: "clerk",
		Email:    "clerk@saveup.test",
		Password: string(hashedPassword),
	}

	// Test successful login
	mockRepo.On("GetByUsername", staff.Username).Return(staff, nil).Once()

	token, err := authService.LoginStaff("clerk", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// Validate the token structure
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, staff.ID, claims["staff_id"])
	assert.Equal(t, staff.Username, claims["username"])
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (wrong password)
	mockRepo.On("GetByUsername", staff.Username).Return(staff, nil).Once()
	_, err = authService.LoginStaff("clerk", "wrongpassword")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (staff user not found)
	mockRepo.On("GetByUsername", "nobody").Return(nil, fmt.Errorf("staff user with username nobody not found")).Once()
	_, err = authService.LoginStaff("nobody", "password123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockStaffRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	// Generate a valid token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"staff_id": "staff-123",
		"username": "clerk",
		"exp":      jwt.TimeFunc().Add(time.Hour).Unix(), // Expires in 1 hour
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	// Test valid token
	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, "staff-123", claims["staff_id"])
	assert.Equal(t, "clerk", claims["username"])

	// Test invalid token (malformed)
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	// Test expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"staff_id": "staff-123",
		"username": "clerk",
		"exp":      jwt.TimeFunc().Add(-time.Hour).Unix(), // Expired 1 hour ago
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}
