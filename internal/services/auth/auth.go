package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"log/slog"
	"math/big"
	"time"

	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/storage"

	"github.com/golang-jwt/jwt/v5"
)

const codeLength = 6

type UserProvider interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	MarkEmailVerified(ctx context.Context, id int64) error
}

// CodeStore keeps single-use, time-limited confirmation codes. Consume must
// invalidate the code on success so that re-use fails.
type CodeStore interface {
	Set(ctx context.Context, userID int64, code string) error
	Consume(ctx context.Context, userID int64, code string) (bool, error)
}

type MailProvider interface {
	Send(recipient string, tmplName string, tmplData any) error
}

type TaskExecutor interface {
	Add(task func())
}

type Options struct {
	Secret            string
	TokenTTL          time.Duration
	CodeTTL           time.Duration
	MarkEmailVerified bool
}

type AuthService struct {
	log          *slog.Logger
	users        UserProvider
	codes        CodeStore
	mailer       MailProvider
	taskExecutor TaskExecutor
	opts         Options
}

func New(
	log *slog.Logger,
	users UserProvider,
	codes CodeStore,
	mailer MailProvider,
	taskExecutor TaskExecutor,
	opts Options,
) *AuthService {
	return &AuthService{
		log:          log,
		users:        users,
		codes:        codes,
		mailer:       mailer,
		taskExecutor: taskExecutor,
		opts:         opts,
	}
}

func generateCode() (string, error) {
	digits := make([]byte, codeLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0') + byte(n.Int64())
	}
	return string(digits), nil
}

// RequestCode generates and stores a confirmation code for the alias and
// emails it off-request. An unknown alias is not an error: the caller acks
// uniformly either way, so registration status never leaks.
func (a *AuthService) RequestCode(ctx context.Context, email string) error {
	const op = "auth.AuthService.RequestCode"
	log := a.log.With("op", op)
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("confirmation code requested for unknown alias")
			return nil
		}
		log.Error(err.Error())
		return err
	}
	if !user.IsActive {
		log.Info("confirmation code requested for inactive user", "user_id", user.ID)
		return nil
	}
	code, err := generateCode()
	if err != nil {
		log.Error(err.Error())
		return err
	}
	if err := a.codes.Set(ctx, user.ID, code); err != nil {
		log.Error(err.Error())
		return err
	}
	a.taskExecutor.Add(func() {
		a.sendConfirmationEmail(user, code)
	})
	return nil
}

func (a *AuthService) sendConfirmationEmail(user *models.User, code string) {
	a.log.Info("sending confirmation code email", "user_id", user.ID)
	err := a.mailer.Send(
		user.Email,
		"confirmation_code.html",
		map[string]any{
			"username":   user.Username,
			"code":       code,
			"ttlMinutes": int(a.opts.CodeTTL.Minutes()),
		})
	if err != nil {
		a.log.Error("Error sending confirmation code email", "errMsg", err.Error())
	}
}

// ObtainToken exchanges (alias, confirmation code) for an access token. Every
// failure path collapses into ErrInvalidCredentials so the response gives no
// hint about which lookup failed.
func (a *AuthService) ObtainToken(ctx context.Context, email, code string) (string, error) {
	const op = "auth.AuthService.ObtainToken"
	log := a.log.With("op", op)
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("token requested for unknown alias")
			return "", ErrInvalidCredentials
		}
		log.Error(err.Error())
		return "", err
	}
	if !user.IsActive {
		log.Info("token requested for inactive user", "user_id", user.ID)
		return "", ErrInvalidCredentials
	}
	ok, err := a.codes.Consume(ctx, user.ID, code)
	if err != nil {
		log.Error(err.Error())
		return "", err
	}
	if !ok {
		log.Info("confirmation code mismatch", "user_id", user.ID)
		return "", ErrInvalidCredentials
	}
	if a.opts.MarkEmailVerified && !user.EmailVerified {
		if err := a.users.MarkEmailVerified(ctx, user.ID); err != nil {
			log.Error(err.Error())
			return "", err
		}
	}
	return a.issueAccessToken(user)
}

func (a *AuthService) issueAccessToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": user.ID,
		"iat": now.Unix(),
		"exp": now.Add(a.opts.TokenTTL).Unix(),
	})
	return token.SignedString([]byte(a.opts.Secret))
}

// Authenticate resolves a bearer token to its user. Used by the Authenticate
// middleware.
func (a *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	const op = "auth.AuthService.Authenticate"
	log := a.log.With("op", op)
	parsedToken, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(a.opts.Secret), nil
	})
	if err != nil || !parsedToken.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, ok := claims["uid"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}
	user, err := a.users.GetByID(ctx, int64(userID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Warn("token for missing user", "user_id", int64(userID))
			return nil, ErrInvalidToken
		}
		log.Error(err.Error())
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidToken
	}
	return user, nil
}
