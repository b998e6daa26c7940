package usecase

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"fleamarket/internal/domain/entity"
	"fleamarket/internal/domain/repository"
	"fleamarket/pkg/errors"
	"fleamarket/pkg/logger"
)

type AuthUseCase struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	jwtExpiry time.Duration
}

func NewAuthUseCase(userRepo repository.UserRepository, jwtSecret string, jwtExpirySeconds int64) *AuthUseCase {
	return &AuthUseCase{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		jwtExpiry: time.Duration(jwtExpirySeconds) * time.Second,
	}
}

type RegisterInput struct {
	Username     string
	Password     string
	Nickname     string
	ProfileImage string
}

type AuthResult struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

type sessionClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	existing, err := uc.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, errors.Internal("Failed to look up username", err)
	}
	if existing != nil {
		return nil, errors.Conflict("Username is already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	user := &entity.User{
		Username:     input.Username,
		Nickname:     input.Nickname,
		Password:     string(hash),
		ProfileImage: input.ProfileImage,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Internal("Failed to create user", err)
	}

	token, err := uc.issueToken(user.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("User registered: %s (%d)", user.Username, user.ID)
	return &AuthResult{User: user, Token: token}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, errors.Internal("Failed to look up user", err)
	}
	if user == nil {
		return nil, errors.Unauthorized("Invalid username or password", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errors.Unauthorized("Invalid username or password", err)
	}

	token, err := uc.issueToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (uc *AuthUseCase) GetUser(ctx context.Context, userID int64) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.Internal("Failed to load user", err)
	}
	if user == nil {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

type UpdateProfileInput struct {
	Nickname     string
	ProfileImage string
}

func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID int64, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Nickname != "" {
		user.Nickname = input.Nickname
	}
	if input.ProfileImage != "" {
		user.ProfileImage = input.ProfileImage
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Internal("Failed to update profile", err)
	}
	return user, nil
}

// VerifyToken parses a session token and returns the user id it carries.
func (uc *AuthUseCase) VerifyToken(tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Unauthorized("Unexpected signing method", nil)
		}
		return uc.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, errors.Unauthorized("Invalid or expired token", err)
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || claims.UserID == 0 {
		return 0, errors.Unauthorized("Invalid token claims", nil)
	}
	return claims.UserID, nil
}

func (uc *AuthUseCase) issueToken(userID int64) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(uc.jwtExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(uc.jwtSecret)
	if err != nil {
		return "", errors.Internal("Failed to sign token", err)
	}
	return signed, nil
}
