// Package service implements registration and credential verification.
package service

import (
	"context"
	"errors"
	"regexp"
	"time"
	"unicode"

	"github.com/google/uuid"

	accountmetrics "pingmap/internal/account/metrics"
	"pingmap/internal/account/models"
	"pingmap/internal/account/password"
	"pingmap/internal/account/store"
	id "pingmap/pkg/domain"
	dErrors "pingmap/pkg/domain-errors"
	"pingmap/pkg/platform/sentinel"
	"pingmap/pkg/requestcontext"
)

// Matches local@domain.tld with a TLD of at least two letters.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegisterRequest carries the eight registration form fields.
type RegisterRequest struct {
	GivenName       string
	Surname         string
	NationalID      string
	Phone           string
	Region          string
	Email           string
	Password        string
	PasswordConfirm string
}

// AccountService handles registration validation and credential
// verification. It never reveals whether a failed login was caused by an
// unknown email or a wrong password.
type AccountService struct {
	users   store.UserStore
	hasher  *password.Hasher
	metrics *accountmetrics.Metrics
}

// New constructs an AccountService. metrics may be nil.
func New(users store.UserStore, hasher *password.Hasher, metrics *accountmetrics.Metrics) *AccountService {
	return &AccountService{users: users, hasher: hasher, metrics: metrics}
}

// Register validates the request and creates the user record. The checks
// run in a fixed order and the first failure wins, each with its own
// user-facing reason. No partial record is ever persisted: the store insert
// is the only side effect and it is atomic.
func (s *AccountService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	if err := s.validateRegistration(req); err != nil {
		s.metrics.IncrementRegistrationFailed()
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.metrics.IncrementRegistrationFailed()
		return nil, err
	}

	user := &models.User{
		ID:           id.UserID(uuid.New()),
		GivenName:    req.GivenName,
		Surname:      req.Surname,
		NationalID:   req.NationalID,
		Phone:        req.Phone,
		Region:       req.Region,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    requestcontext.Now(ctx),
	}

	if err := s.users.CreateIfEmailAvailable(ctx, user); err != nil {
		s.metrics.IncrementRegistrationFailed()
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "El correo electrónico ya está registrado")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}

	s.metrics.IncrementRegistered()
	return user, nil
}

// Login verifies credentials by exact email lookup and bcrypt comparison.
// Unknown email and wrong password both produce the same generic error so
// the response never discloses which one was wrong.
func (s *AccountService) Login(ctx context.Context, email, plaintext string) (*models.User, error) {
	start := time.Now()
	defer s.metrics.ObserveLogin(start)

	if email == "" || plaintext == "" {
		s.metrics.IncrementLoginFailed()
		return nil, dErrors.New(dErrors.CodeValidation, "Por favor ingrese correo y contraseña")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.metrics.IncrementLoginFailed()
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, errBadCredentials()
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
	}

	ok, err := s.hasher.Verify(user.PasswordHash, plaintext)
	if err != nil {
		s.metrics.IncrementLoginFailed()
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify password")
	}
	if !ok {
		s.metrics.IncrementLoginFailed()
		return nil, errBadCredentials()
	}

	s.metrics.IncrementLogin()
	return user, nil
}

func errBadCredentials() error {
	return dErrors.New(dErrors.CodeUnauthorized, "Correo o contraseña incorrectos")
}

func (s *AccountService) validateRegistration(req RegisterRequest) error {
	allPresent := req.GivenName != "" && req.Surname != "" && req.NationalID != "" &&
		req.Phone != "" && req.Region != "" && req.Email != "" &&
		req.Password != "" && req.PasswordConfirm != ""
	if !allPresent {
		return dErrors.New(dErrors.CodeValidation, "Todos los campos son obligatorios")
	}

	if !emailPattern.MatchString(req.Email) {
		return dErrors.New(dErrors.CodeValidation, "Correo electrónico inválido")
	}

	if req.Password != req.PasswordConfirm {
		return dErrors.New(dErrors.CodeValidation, "Las contraseñas no coinciden")
	}

	if !strongPassword(req.Password) {
		return dErrors.New(dErrors.CodeValidation,
			"La contraseña debe tener al menos 8 caracteres, una mayúscula, una minúscula y un número")
	}

	return nil
}

func strongPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}
