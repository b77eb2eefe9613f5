package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	jwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/erasmocarlospd-hash/COPIA-DO-SISTEMA-DELLTS/internal/entity"
)

type sessionClaims struct {
	AccessLevel entity.AccessLevel `json:"accessLevel"`
	jwt.RegisteredClaims
}

// Authenticate matches the username case-insensitively and the password
// against the stored bcrypt hash. The error never reveals which of the two
// was wrong. Hashes restored from pre-hashing backups are plaintext; those
// are compared directly and upgraded on the next account update.
func (s *Service) Authenticate(ctx context.Context, username, password string) (entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range s.accounts {
		if !account.MatchesUsername(username) {
			continue
		}

		if passwordMatches(account.PasswordHash, password) {
			slog.InfoContext(ctx, "login succeeded",
				"account_id", account.ID, "access_level", account.AccessLevel)

			return account, nil
		}

		break
	}

	slog.WarnContext(ctx, "login failed", "username", username)

	return entity.Account{}, entity.ErrAuthFailed
}

func passwordMatches(stored, password string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}

	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

// IssueToken creates the HS256 session token for a logged-in account.
func (s *Service) IssueToken(account entity.Account) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.cfg.SessionTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		AccessLevel: account.AccessLevel,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}

	return signed, expiresAt, nil
}

// AccountFromToken validates a session token and resolves its account. The
// account is re-read from the directory so a username or level change takes
// effect on the next request.
func (s *Service) AccountFromToken(ctx context.Context, tokenStr string) (entity.Account, error) {
	var claims sessionClaims

	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}

		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		slog.WarnContext(ctx, "session token rejected", "error", err)
		return entity.Account{}, entity.ErrUnauthorized
	}

	accountID, err := uuid.FromString(claims.Subject)
	if err != nil {
		return entity.Account{}, entity.ErrUnauthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range s.accounts {
		if account.ID == accountID {
			return account, nil
		}
	}

	return entity.Account{}, entity.ErrUnauthorized
}

type AccountInput struct {
	Username        string
	Password        string
	ConfirmPassword string
	AccessLevel     entity.AccessLevel
}

// UpdateAccount replaces the matching record in place. There is no account
// create or delete; the directory always holds the accounts it was loaded
// with.
func (s *Service) UpdateAccount(ctx context.Context, id uuid.UUID, in AccountInput) (entity.Account, error) {
	if err := ValidateRequired(in.Username, "usuário"); err != nil {
		return entity.Account{}, err
	}

	if err := ValidateRequired(in.Password, "senha"); err != nil {
		return entity.Account{}, err
	}

	if in.Password != in.ConfirmPassword {
		return entity.Account{}, fmt.Errorf("%w: as senhas não coincidem", entity.ErrPasswordsDiff)
	}

	if !in.AccessLevel.IsValid() {
		return entity.Account{}, fmt.Errorf("%w: nível de acesso desconhecido: %s", entity.ErrValidation, in.AccessLevel)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return entity.Account{}, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1

	for i := range s.accounts {
		if s.accounts[i].ID == id {
			idx = i
			break
		}
	}

	if idx < 0 {
		slog.WarnContext(ctx, "account not found for update", "account_id", id)
		return entity.Account{}, fmt.Errorf("%w: account %s", entity.ErrNotFound, id)
	}

	previous := s.accounts[idx]
	s.accounts[idx] = entity.Account{
		ID:           id,
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: string(hash),
		AccessLevel:  in.AccessLevel,
	}

	if err := s.store.SaveAccounts(ctx, s.accounts); err != nil {
		s.accounts[idx] = previous
		slog.ErrorContext(ctx, "failed to persist accounts", "account_id", id, "error", err)

		return entity.Account{}, err
	}

	slog.InfoContext(ctx, "account updated", "account_id", id, "access_level", in.AccessLevel)

	return s.accounts[idx], nil
}
