package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gharsapp/ghars-backend/internal/metrics"
	"github.com/gharsapp/ghars-backend/internal/model"
)

// Common auth errors.
var (
	// ErrInvalidCredentials means the submitted password matched no account.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenInvalid is the single error kind returned for every token
	// verification failure. Signature mismatch, structural corruption,
	// unsupported algorithm, and expiry are not distinguished for callers;
	// telling them apart would help an attacker probe tokens.
	ErrTokenInvalid = errors.New("token could not be validated")

	// ErrUnknownPermission means a claim set or a route guard referenced a
	// permission name outside the fixed set.
	ErrUnknownPermission = errors.New("unknown permission name")

	// ErrRoleMismatch means the claims carry the wrong role for an operation.
	ErrRoleMismatch = errors.New("insufficient role")

	// ErrPasswordTaken means another account already uses the password.
	// Passwords are the sole credential, so uniqueness across the
	// admin/student union is a store invariant.
	ErrPasswordTaken = errors.New("password already in use")
)

// PermissionError is the denial produced when an admin's claims lack a
// required permission. The missing permission is named: the caller has
// already proven identity, so this detail is safe to surface.
type PermissionError struct {
	Missing model.Permission
}

func (e *PermissionError) Error() string {
	return "missing permission: " + string(e.Missing)
}

// Claims is the verified token payload: identity, role, and (for admins)
// the permission flags frozen at login. Claims are never mutated after
// issuance; permission changes in the store take effect only on the next
// login. That staleness window is deliberate — authorization must not
// touch the store.
type Claims struct {
	jwt.RegisteredClaims
	Role        model.Role      `json:"role"`
	UserID      int             `json:"user_id"`
	Permissions map[string]bool `json:"permissions,omitempty"` // Admin only
}

// HasPermission reports whether the claims carry the named permission.
// A flag absent from the map (e.g. a token issued before the permission
// existed) reads as false, never as an error.
func (c *Claims) HasPermission(p model.Permission) bool {
	return c.Permissions[string(p)]
}

// AdminCredentialStore is the read side of the admins table needed for
// authentication.
type AdminCredentialStore interface {
	ListCredentials(ctx context.Context) ([]model.Admin, error)
}

// StudentCredentialStore is the read side of the students table needed for
// authentication.
type StudentCredentialStore interface {
	ListCredentials(ctx context.Context) ([]model.Student, error)
}

// AuthService is the authentication and authorization core: it verifies
// passwords against the credential stores, issues signed tokens, and
// validates tokens on every request. Token operations are pure and safe
// for concurrent use; Authenticate only reads.
type AuthService struct {
	secret   []byte
	ttl      time.Duration
	verifier PasswordVerifier
	admins   AdminCredentialStore
	students StudentCredentialStore
	log      zerolog.Logger
}

// NewAuthService creates an AuthService. The signing secret is fixed for
// the life of the process; rotation means a restart with new configuration.
func NewAuthService(
	secret string,
	ttl time.Duration,
	verifier PasswordVerifier,
	admins AdminCredentialStore,
	students StudentCredentialStore,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		secret:   []byte(secret),
		ttl:      ttl,
		verifier: verifier,
		admins:   admins,
		students: students,
		log:      log.With().Str("component", "auth").Logger(),
	}
}

// HashPassword produces the storable form of a password under the
// configured scheme.
func (s *AuthService) HashPassword(password string) (string, error) {
	return s.verifier.Hash(password)
}

// Authenticate resolves a submitted password to a principal. The password
// is the sole credential — there is no username — so the admins table is
// scanned first, then students; the first verified match wins. Returns
// (nil, nil) when nothing matches; callers surface that uniformly as an
// invalid-credential rejection.
func (s *AuthService) Authenticate(ctx context.Context, password string) (*model.Principal, error) {
	admins, err := s.admins.ListCredentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("list admin credentials: %w", err)
	}
	for i := range admins {
		if s.verifier.Verify(admins[i].Password, password) == nil {
			return &model.Principal{Role: model.RoleAdmin, Admin: &admins[i]}, nil
		}
	}

	students, err := s.students.ListCredentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("list student credentials: %w", err)
	}
	for i := range students {
		if s.verifier.Verify(students[i].Password, password) == nil {
			return &model.Principal{Role: model.RoleStudent, Student: &students[i]}, nil
		}
	}

	return nil, nil
}

// CheckPasswordAvailable returns ErrPasswordTaken if any existing account
// (admin or student) would authenticate with the candidate password.
// Create and update paths call this before persisting, keeping password
// uniqueness a store invariant instead of an accident of scan order.
func (s *AuthService) CheckPasswordAvailable(ctx context.Context, password string) error {
	p, err := s.Authenticate(ctx, password)
	if err != nil {
		return err
	}
	if p != nil {
		return ErrPasswordTaken
	}
	return nil
}

// CheckPasswordAvailableFor is the update-path variant of
// CheckPasswordAvailable: the account identified by role and id may
// keep (re-submit) its own current password without a conflict, but a
// password held by any other account is still ErrPasswordTaken.
func (s *AuthService) CheckPasswordAvailableFor(ctx context.Context, password string, role model.Role, id int) error {
	p, err := s.Authenticate(ctx, password)
	if err != nil {
		return err
	}
	if p != nil && !(p.Role == role && p.ID() == id) {
		return ErrPasswordTaken
	}
	return nil
}

// IssueToken builds a claim set for the principal and signs it. Admin
// tokens embed the full permission-flag map; student tokens carry none.
func (s *AuthService) IssueToken(p *model.Principal) (string, error) {
	claims, err := s.newClaims(p, time.Now())
	if err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// newClaims constructs the claim set at a fixed instant. Permission names
// are validated here so a drifted flag mapping fails at issuance instead
// of silently authorizing nothing.
func (s *AuthService) newClaims(p *model.Principal, now time.Time) (*Claims, error) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   strconv.Itoa(p.ID()),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Role:   p.Role,
		UserID: p.ID(),
	}

	if p.Role == model.RoleAdmin {
		perms := p.Admin.Flags.AsMap()
		for name := range perms {
			if !model.ValidPermission(name) {
				return nil, fmt.Errorf("%w: %s", ErrUnknownPermission, name)
			}
		}
		claims.Permissions = perms
	}

	return claims, nil
}

// VerifyToken parses and verifies a bearer token. Every failure collapses
// into ErrTokenInvalid; expiry is only distinguished internally for logs
// and metrics. An unverified payload is never returned.
func (s *AuthService) VerifyToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			metrics.TokenValidationsTotal.WithLabelValues("expired").Inc()
			s.log.Debug().Msg("expired token presented")
		} else {
			metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
		return nil, ErrTokenInvalid
	}

	metrics.TokenValidationsTotal.WithLabelValues("ok").Inc()
	return claims, nil
}

// Authorize is the pure authorization predicate: it checks an optional
// role requirement, then requires every listed permission (logical AND).
// It performs no I/O — the decision depends only on what is inside the
// token. Returns nil on allow, ErrRoleMismatch or *PermissionError on deny.
func Authorize(claims *Claims, requiredRole model.Role, required ...model.Permission) error {
	if requiredRole != "" && claims.Role != requiredRole {
		return ErrRoleMismatch
	}
	for _, p := range required {
		if !claims.HasPermission(p) {
			return &PermissionError{Missing: p}
		}
	}
	return nil
}
