package identity

import (
	"context"
	"fmt"
	"time"

	"valentine-backend/internal/kvstore"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const accountKeyPrefix = "auth_account_"

// account is the stored credential record, keyed by exact email.
type account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"passwordHash"`
	Metadata     Metadata  `json:"metadata"`
	CreatedAt    time.Time `json:"createdAt"`
}

// KVProvider is a Provider that keeps bcrypt credential records in the
// key-value store and issues HS256 tokens.
type KVProvider struct {
	kv        kvstore.Store
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewKVProvider creates a KV-backed identity provider
func NewKVProvider(kv kvstore.Store, jwtSecret string, tokenTTL time.Duration) *KVProvider {
	return &KVProvider{
		kv:        kv,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// CreateUser registers a new account for email
func (p *KVProvider) CreateUser(ctx context.Context, email, password string, meta Metadata) (*User, error) {
	key := accountKeyPrefix + email

	var existing account
	found, err := kvstore.GetInto(ctx, p.kv, key, &existing)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if found {
		return nil, ErrEmailRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	acc := account{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Metadata:     meta,
		CreatedAt:    time.Now().UTC(),
	}
	if err := p.kv.Set(ctx, key, acc); err != nil {
		return nil, fmt.Errorf("failed to store account: %w", err)
	}

	return &User{ID: acc.ID, Email: acc.Email, Metadata: acc.Metadata}, nil
}

// SignIn verifies email/password and returns a fresh session token
func (p *KVProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var acc account
	found, err := kvstore.GetInto(ctx, p.kv, accountKeyPrefix+email, &acc)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if !found {
		return nil, ErrInvalidLogin
	}

	if err := bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidLogin
	}

	token, err := p.issueToken(&acc)
	if err != nil {
		return nil, err
	}

	return &Session{
		AccessToken: token,
		User:        User{ID: acc.ID, Email: acc.Email, Metadata: acc.Metadata},
	}, nil
}

// VerifyToken resolves an access token back to its user
func (p *KVProvider) VerifyToken(ctx context.Context, tokenString string) (*User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return p.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	return &User{
		ID:    sub,
		Email: email,
		Metadata: Metadata{
			Username: username,
			Role:     role,
		},
	}, nil
}

func (p *KVProvider) issueToken(acc *account) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      acc.ID,
		"email":    acc.Email,
		"username": acc.Metadata.Username,
		"role":     acc.Metadata.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(p.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
