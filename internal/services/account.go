package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"valentine-backend/internal/identity"
	"valentine-backend/internal/models"
	"valentine-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

// AccountService handles signup, signin, identity resolution and
// profile updates
type AccountService struct {
	profiles      *repository.ProfileRepository
	provider      identity.Provider
	adminPasscode string
}

// NewAccountService creates a new account service
func NewAccountService(profiles *repository.ProfileRepository, provider identity.Provider, adminPasscode string) *AccountService {
	return &AccountService{
		profiles:      profiles,
		provider:      provider,
		adminPasscode: adminPasscode,
	}
}

// Identity is a resolved caller: provider user, owning username and the
// stored profile (nil when no profile record exists yet).
type Identity struct {
	User     identity.User
	Username string
	Profile  *models.UserProfile
}

// Role returns the caller's stored role, defaulting to member
func (i *Identity) Role() string {
	if i.Profile != nil && i.Profile.Role != "" {
		return i.Profile.Role
	}
	return models.RoleMember
}

// SignUpInput are the signup request fields
type SignUpInput struct {
	Username      string
	Password      string
	Email         string
	PartnerName   string
	Role          string
	AdminPasscode string
}

// NormalizeUsername lowercases, trims and strips all whitespace
func NormalizeUsername(username string) string {
	return strings.Join(strings.Fields(strings.ToLower(username)), "")
}

// NormalizeEmail trims and lowercases
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isEmail(identifier string) bool {
	return strings.Contains(identifier, "@")
}

// SignUp registers a new creator: provider account, profile record,
// reverse indices and the username index. The steps are not atomic; a
// failed secondary write is surfaced to the caller with the earlier
// steps already committed.
func (s *AccountService) SignUp(ctx context.Context, in SignUpInput) (*models.UserProfile, error) {
	username := NormalizeUsername(in.Username)
	if username == "" {
		return nil, ErrInvalidUsername
	}
	email := NormalizeEmail(in.Email)

	role := models.RoleMember
	if in.Role == models.RoleAdmin {
		if s.adminPasscode == "" || in.AdminPasscode != s.adminPasscode {
			return nil, ErrInvalidPasscode
		}
		role = models.RoleAdmin
	}

	existing, err := s.profiles.Profile(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	user, err := s.provider.CreateUser(ctx, email, in.Password, identity.Metadata{
		Username:    username,
		PartnerName: in.PartnerName,
		Role:        role,
	})
	if err != nil {
		if errors.Is(err, identity.ErrEmailRegistered) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create provider account: %w", err)
	}

	profile := &models.UserProfile{
		Username:    username,
		Email:       email,
		UserID:      user.ID,
		Role:        role,
		PartnerName: in.PartnerName,
		Message:     "",
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.profiles.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	if err := s.profiles.SetProviderIndex(ctx, user.ID, username); err != nil {
		return nil, err
	}
	if err := s.profiles.SetEmailIndex(ctx, email, username); err != nil {
		return nil, err
	}
	if err := s.profiles.AddUsername(ctx, username); err != nil {
		return nil, err
	}

	log.Info().Str("username", username).Str("role", role).Msg("Creator registered")

	return profile, nil
}

// SignIn resolves the identifier to a provider email, delegates the
// credential check and returns the session token with the stored
// profile. Credential failures are uniform regardless of cause.
func (s *AccountService) SignIn(ctx context.Context, identifier, password string) (string, *models.UserProfile, error) {
	// Same normalization as signup, so "Al Ice" matches "alice".
	loginIdentifier := NormalizeUsername(identifier)
	if loginIdentifier == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	resolvedEmail := loginIdentifier
	if isEmail(loginIdentifier) {
		// The provider matches emails case-sensitively; route through the
		// index to recover the exact stored casing.
		username, err := s.profiles.UsernameByEmail(ctx, loginIdentifier)
		if err != nil {
			return "", nil, err
		}
		if username != "" {
			profile, err := s.profiles.Profile(ctx, username)
			if err != nil {
				return "", nil, err
			}
			if profile != nil && profile.Email != "" {
				resolvedEmail = profile.Email
			}
		}
	} else {
		profile, err := s.profiles.Profile(ctx, loginIdentifier)
		if err != nil {
			return "", nil, err
		}
		if profile == nil || profile.Email == "" {
			return "", nil, ErrInvalidCredentials
		}
		resolvedEmail = profile.Email
	}

	session, err := s.provider.SignIn(ctx, resolvedEmail, password)
	if err != nil && errors.Is(err, identity.ErrInvalidLogin) && isEmail(loginIdentifier) {
		// Accounts created before email normalization may be stored with
		// a different casing; scan the index and retry with each match.
		session, err = s.retrySignInByEmail(ctx, loginIdentifier, password, err)
	}
	if err != nil {
		if errors.Is(err, identity.ErrInvalidLogin) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to sign in: %w", err)
	}

	username, err := s.usernameForUser(ctx, &session.User)
	if err != nil {
		return "", nil, err
	}

	var profile *models.UserProfile
	if username != "" {
		profile, err = s.profiles.Profile(ctx, username)
		if err != nil {
			return "", nil, err
		}
	}
	if profile == nil {
		profile = &models.UserProfile{Username: username, Email: session.User.Email}
	}

	return session.AccessToken, profile, nil
}

func (s *AccountService) retrySignInByEmail(ctx context.Context, email, password string, signInErr error) (*identity.Session, error) {
	usernames, err := s.profiles.Usernames(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range usernames {
		profile, err := s.profiles.Profile(ctx, u)
		if err != nil {
			return nil, err
		}
		if profile == nil || profile.Email == "" || !strings.EqualFold(profile.Email, email) {
			continue
		}
		session, err := s.provider.SignIn(ctx, profile.Email, password)
		if err == nil {
			return session, nil
		}
	}
	return nil, signInErr
}

// ResolveIdentity resolves an access token to the owning creator. The
// username comes from the provider-id index first, then from the
// token-embedded hint.
func (s *AccountService) ResolveIdentity(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	user, err := s.provider.VerifyToken(ctx, token)
	if err != nil {
		return nil, ErrInvalidSession
	}

	username, err := s.usernameForUser(ctx, user)
	if err != nil {
		return nil, err
	}
	if username == "" {
		return nil, ErrInvalidSession
	}

	profile, err := s.profiles.Profile(ctx, username)
	if err != nil {
		return nil, err
	}

	return &Identity{User: *user, Username: username, Profile: profile}, nil
}

func (s *AccountService) usernameForUser(ctx context.Context, user *identity.User) (string, error) {
	username, err := s.profiles.UsernameByProviderID(ctx, user.ID)
	if err != nil {
		return "", err
	}
	if username == "" {
		username = user.Metadata.Username
	}
	return username, nil
}

// UpdateProfile merges caller-supplied fields into the stored profile.
// Username, userId and role are re-pinned to their stored values so the
// endpoint cannot be used for identity or privilege escalation.
func (s *AccountService) UpdateProfile(ctx context.Context, id *Identity, updates map[string]interface{}) (*models.UserProfile, error) {
	current := map[string]interface{}{}
	if id.Profile != nil {
		raw, err := json.Marshal(id.Profile)
		if err != nil {
			return nil, fmt.Errorf("failed to encode profile: %w", err)
		}
		if err := json.Unmarshal(raw, &current); err != nil {
			return nil, fmt.Errorf("failed to decode profile: %w", err)
		}
	}

	for k, v := range updates {
		current[k] = v
	}
	current["username"] = id.Username
	current["userId"] = id.User.ID
	current["role"] = id.Role()

	merged, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("failed to encode merged profile: %w", err)
	}
	var profile models.UserProfile
	if err := json.Unmarshal(merged, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode merged profile: %w", err)
	}

	if err := s.profiles.SaveProfile(ctx, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
