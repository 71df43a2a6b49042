package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/todolist-auth/internal/domain/entity"
	"github.com/oksasatya/todolist-auth/pkg/helpers"
)

// Principal is the authenticated account attached to a request.
type Principal struct {
	AccountID string
	Email     string
	SessionID string
	Roles     []string
}

func (p *Principal) HasRole(role string) bool {
	return p != nil && hasRole(p.Roles, role)
}

// SessionService opens, resolves and closes cookie sessions. The cookie holds a signed
// JWT (uid+sid); the session itself is a Redis hash keyed by account id, so opening a
// new session invalidates the previous one.
type SessionService struct {
	Redis  *redis.Client
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
	TTL    time.Duration
}

func NewSessionService(rdb *redis.Client, jwt *helpers.JWTManager, logger *logrus.Logger) *SessionService {
	return &SessionService{Redis: rdb, JWT: jwt, Logger: logger, TTL: jwt.SessionTTL}
}

func sessionKey(accountID string) string { return "account:session:" + accountID }

func nowRFC3339() string { return time.Now().UTC().Format(time.RFC3339) }

// Open records a new session for a and returns the signed cookie value.
func (s *SessionService) Open(ctx context.Context, a *entity.Account) (string, time.Time, error) {
	sid := uuid.NewString()
	token, exp, err := s.JWT.GenerateSessionToken(a.ID, sid)
	if err != nil {
		s.Logger.WithError(err).WithField("account_id", a.ID).Error("generate session token failed")
		return "", time.Time{}, err
	}

	key := sessionKey(a.ID)
	pipe := s.Redis.Pipeline()
	pipe.HSet(ctx, key, map[string]any{
		"account_id": a.ID,
		"email":      a.Email,
		"roles":      strings.Join(a.GetRoles(), ","),
		"sid":        sid,
		"created_at": nowRFC3339(),
	})
	pipe.Expire(ctx, key, s.TTL)
	if _, err := pipe.Exec(ctx); err != nil {
		s.Logger.WithError(err).WithField("key", key).Error("redis pipeline failed")
		return "", time.Time{}, err
	}
	return token, exp, nil
}

// Resolve maps a cookie value back to its Principal. Any mismatch yields ErrSessionNotFound.
func (s *SessionService) Resolve(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	claims, err := s.JWT.ParseSessionToken(token)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	data, err := s.Redis.HGetAll(ctx, sessionKey(claims.UserID)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || data["sid"] != claims.SessionID {
		return nil, ErrSessionNotFound
	}
	var roles []string
	if data["roles"] != "" {
		roles = strings.Split(data["roles"], ",")
	}
	return &Principal{
		AccountID: claims.UserID,
		Email:     data["email"],
		SessionID: claims.SessionID,
		Roles:     roles,
	}, nil
}

// Close drops the session if it is still the current one for the account.
func (s *SessionService) Close(ctx context.Context, p *Principal) error {
	if p == nil {
		return nil
	}
	key := sessionKey(p.AccountID)
	sid, err := s.Redis.HGet(ctx, key, "sid").Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}
	if sid != p.SessionID {
		return nil
	}
	return s.Redis.Del(ctx, key).Err()
}
