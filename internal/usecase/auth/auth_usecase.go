package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dateit-app/dateit-backend/internal/domain"
	"github.com/dateit-app/dateit-backend/internal/repository"
	"github.com/dateit-app/dateit-backend/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Mailer delivers the account verification email.
type Mailer interface {
	SendVerification(ctx context.Context, to, name, link string) error
}

type AuthUseCase struct {
	userRepo  repository.UserRepository
	mailer    Mailer
	jwtSecret string
	publicURL string

	tokenExpiry  time.Duration
	verifyExpiry time.Duration
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	mailer Mailer,
	jwtSecret string,
	publicURL string,
	tokenExpiryDays int,
	verifyExpiryMin int,
) *AuthUseCase {
	if tokenExpiryDays <= 0 {
		tokenExpiryDays = 7
	}
	if verifyExpiryMin <= 0 {
		verifyExpiryMin = 15
	}
	return &AuthUseCase{
		userRepo:     userRepo,
		mailer:       mailer,
		jwtSecret:    jwtSecret,
		publicURL:    publicURL,
		tokenExpiry:  time.Duration(tokenExpiryDays) * 24 * time.Hour,
		verifyExpiry: time.Duration(verifyExpiryMin) * time.Minute,
	}
}

// RegistrationRequest carries the pending account until the email link
// is clicked. The password is hashed before it is embedded in the
// verification token.
type RegistrationRequest struct {
	Name       string  `json:"name" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=8"`
	Age        *int    `json:"age"`
	Bio        *string `json:"bio"`
	PhotoURL   *string `json:"photo_url"`
	Gender     string  `json:"gender" binding:"required"`
	FindGender string  `json:"find_gender" binding:"required"`
}

// PreRegister validates the registration, signs a short-lived token
// holding it and emails a verification link. No user row is created
// until Verify.
func (uc *AuthUseCase) PreRegister(ctx context.Context, req *RegistrationRequest) error {
	if !domain.ValidGender(domain.Gender(req.Gender)) {
		return fmt.Errorf("%w: gender", domain.ErrInvalidInput)
	}
	if !domain.ValidFindGender(domain.Gender(req.FindGender)) {
		return fmt.Errorf("%w: find_gender", domain.ErrInvalidInput)
	}

	if _, err := uc.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"purpose":       "verify",
		"name":          req.Name,
		"email":         req.Email,
		"password_hash": string(hash),
		"age":           req.Age,
		"bio":           req.Bio,
		"photo_url":     req.PhotoURL,
		"gender":        req.Gender,
		"find_gender":   req.FindGender,
		"exp":           now.Add(uc.verifyExpiry).Unix(),
		"iat":           now.Unix(),
	})
	signed, err := token.SignedString([]byte(uc.jwtSecret))
	if err != nil {
		return fmt.Errorf("sign verification token: %w", err)
	}

	link := fmt.Sprintf("%s/api/auth/verify/%s", uc.publicURL, signed)
	if err := uc.mailer.SendVerification(ctx, req.Email, req.Name, link); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}

	logger.L().Info("verification email sent", zap.String("email", req.Email))
	return nil
}

// Verify finishes registration from a verification token.
func (uc *AuthUseCase) Verify(ctx context.Context, tokenString string) (*domain.User, error) {
	claims, err := uc.parseClaims(tokenString)
	if err != nil {
		return nil, err
	}
	if purpose, _ := claims["purpose"].(string); purpose != "verify" {
		return nil, domain.ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	passwordHash, _ := claims["password_hash"].(string)
	name, _ := claims["name"].(string)
	gender, _ := claims["gender"].(string)
	findGender, _ := claims["find_gender"].(string)
	if email == "" || passwordHash == "" || name == "" || gender == "" || findGender == "" {
		return nil, domain.ErrInvalidToken
	}

	if _, err := uc.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Age:          claimInt(claims, "age"),
		Bio:          claimString(claims, "bio"),
		PhotoURL:     claimString(claims, "photo_url"),
		Gender:       domain.Gender(gender),
		FindGender:   domain.Gender(findGender),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.L().Info("user registered", zap.Int("user_id", user.ID))
	return user, nil
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	expiresAt := now.Add(uc.tokenExpiry)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"exp":     expiresAt.Unix(),
		"iat":     now.Unix(),
	})
	signed, err := token.SignedString([]byte(uc.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &LoginResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// VerifyToken validates a login token and returns the user id.
func (uc *AuthUseCase) VerifyToken(tokenString string) (int, error) {
	claims, err := uc.parseClaims(tokenString)
	if err != nil {
		return 0, err
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, domain.ErrInvalidToken
	}
	return int(userID), nil
}

func (uc *AuthUseCase) Profile(ctx context.Context, userID int) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// ProfileUpdate holds the mutable profile fields; nil means unchanged.
type ProfileUpdate struct {
	Name       *string `json:"name"`
	Bio        *string `json:"bio"`
	Age        *int    `json:"age"`
	PhotoURL   *string `json:"photo_url"`
	Gender     *string `json:"gender"`
	FindGender *string `json:"find_gender"`
}

func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID int, upd *ProfileUpdate) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Bio != nil {
		user.Bio = upd.Bio
	}
	if upd.Age != nil {
		user.Age = upd.Age
	}
	if upd.PhotoURL != nil {
		user.PhotoURL = upd.PhotoURL
	}
	if upd.Gender != nil {
		g := domain.Gender(*upd.Gender)
		if !domain.ValidGender(g) {
			return nil, fmt.Errorf("%w: gender", domain.ErrInvalidInput)
		}
		user.Gender = g
	}
	if upd.FindGender != nil {
		g := domain.Gender(*upd.FindGender)
		if !domain.ValidFindGender(g) {
			return nil, fmt.Errorf("%w: find_gender", domain.ErrInvalidInput)
		}
		user.FindGender = g
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *AuthUseCase) ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return uc.userRepo.List(ctx, limit, offset)
}

func (uc *AuthUseCase) GetUser(ctx context.Context, id int) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

func (uc *AuthUseCase) DeleteUser(ctx context.Context, id int) error {
	return uc.userRepo.Delete(ctx, id)
}

func (uc *AuthUseCase) parseClaims(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return []byte(uc.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

func claimString(claims jwt.MapClaims, key string) *string {
	if v, ok := claims[key].(string); ok && v != "" {
		return &v
	}
	return nil
}

func claimInt(claims jwt.MapClaims, key string) *int {
	if v, ok := claims[key].(float64); ok {
		n := int(v)
		return &n
	}
	return nil
}
