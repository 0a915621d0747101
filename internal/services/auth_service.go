package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"eballot/internal/apperror"
	"eballot/internal/auth"
	"eballot/internal/mailer"
	"eballot/internal/models"
	"eballot/internal/storage"
)

const otpTTL = 5 * time.Minute

// OTPIssued is the metadata returned after a successful OTP request.
type OTPIssued struct {
	Success   bool   `json:"success"`
	Email     string `json:"email"`
	ExpiresIn int    `json:"expiresIn"`
}

// AuthService runs the institutional-email OTP flow: a 6-digit code is
// mailed out, its bcrypt hash is cached for five minutes, and a single
// successful verification mints a bearer token and upserts the user.
type AuthService struct {
	users  storage.UserStore
	otp    KV
	mailer mailer.Sender
	tokens *auth.TokenManager
	domain string
	log    *logrus.Logger
}

func NewAuthService(users storage.UserStore, otp KV, sender mailer.Sender, tokens *auth.TokenManager, domain string, log *logrus.Logger) *AuthService {
	return &AuthService{
		users:  users,
		otp:    otp,
		mailer: sender,
		tokens: tokens,
		domain: domain,
		log:    log,
	}
}

func (s *AuthService) RequestOTP(ctx context.Context, email string) (*OTPIssued, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.HasSuffix(email, "@"+s.domain) {
		return nil, apperror.InvalidInput("email", "Only institutional accounts are allowed")
	}
	if !s.otp.Available() {
		return nil, apperror.Unconfigured("OTP store")
	}

	code, err := generateOTP()
	if err != nil {
		return nil, fmt.Errorf("generating OTP: %w", err)
	}

	// Mail first; the code is only recorded once it has actually gone out.
	if err := s.mailer.SendOTP(email, code, otpTTL); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing OTP: %w", err)
	}
	s.otp.Set(ctx, email, string(hash), otpTTL)

	s.log.Infof("OTP issued for %s", email)
	return &OTPIssued{
		Success:   true,
		Email:     email,
		ExpiresIn: int(otpTTL.Seconds()),
	}, nil
}

// VerifyOTP consumes the cached code: a correct code works exactly once,
// a wrong code leaves the entry in place for a retry within the TTL.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var hash string
	if !s.otp.Get(ctx, email, &hash) {
		return "", nil, apperror.Unauthenticated("Invalid or expired OTP")
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) != nil {
		return "", nil, apperror.Unauthenticated("Invalid or expired OTP")
	}
	s.otp.Delete(ctx, email)

	user, err := s.upsertUser(ctx, email)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return "", nil, fmt.Errorf("signing token: %w", err)
	}
	return token, user, nil
}

func (s *AuthService) upsertUser(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		if user.Name == "" {
			user.Name = localPart(email)
			if err := s.users.Save(ctx, user); err != nil {
				return nil, err
			}
		}
		return user, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	user = &models.User{
		Email: email,
		Name:  localPart(email),
		Role:  models.RoleStudent,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func localPart(email string) string {
	return strings.SplitN(email, "@", 2)[0]
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
