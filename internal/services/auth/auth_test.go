package auth

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"reviewhub/proj/internal/domain/models"
	"reviewhub/proj/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	users    map[string]*models.User
	verified []int64
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, storage.ErrNotFound
}

func (f *fakeUsers) MarkEmailVerified(_ context.Context, id int64) error {
	f.verified = append(f.verified, id)
	return nil
}

type fakeCodes struct {
	codes map[int64]string
}

func (f *fakeCodes) Set(_ context.Context, userID int64, code string) error {
	f.codes[userID] = code
	return nil
}

func (f *fakeCodes) Consume(_ context.Context, userID int64, code string) (bool, error) {
	stored, ok := f.codes[userID]
	if !ok || stored != code {
		return false, nil
	}
	delete(f.codes, userID)
	return true, nil
}

type fakeMailer struct {
	sent []string
}

func (f *fakeMailer) Send(recipient string, _ string, _ any) error {
	f.sent = append(f.sent, recipient)
	return nil
}

// syncExecutor runs tasks inline so tests see email sends immediately.
type syncExecutor struct{}

func (syncExecutor) Add(task func()) { task() }

func newTestService() (*AuthService, *fakeUsers, *fakeCodes, *fakeMailer) {
	users := &fakeUsers{users: map[string]*models.User{
		"test@example.com": {ID: 1, Username: "test", Email: "test@example.com", Role: models.RoleUser, IsActive: true},
	}}
	codes := &fakeCodes{codes: make(map[int64]string)}
	mailer := &fakeMailer{}
	svc := New(slog.Default(), users, codes, mailer, syncExecutor{}, Options{
		Secret:            "test-secret",
		TokenTTL:          time.Hour,
		CodeTTL:           15 * time.Minute,
		MarkEmailVerified: true,
	})
	return svc, users, codes, mailer
}

func TestRequestCodeStoresAndSends(t *testing.T) {
	svc, _, codes, mailer := newTestService()
	require.NoError(t, svc.RequestCode(context.Background(), "test@example.com"))
	assert.Len(t, codes.codes[1], codeLength)
	assert.Equal(t, []string{"test@example.com"}, mailer.sent)
}

func TestRequestCodeUnknownAliasAcksUniformly(t *testing.T) {
	svc, _, codes, mailer := newTestService()
	require.NoError(t, svc.RequestCode(context.Background(), "nobody@example.com"))
	assert.Empty(t, codes.codes)
	assert.Empty(t, mailer.sent)
}

func TestObtainTokenHappyPath(t *testing.T) {
	svc, users, codes, _ := newTestService()
	codes.codes[1] = "123456"
	token, err := svc.ObtainToken(context.Background(), "test@example.com", "123456")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, []int64{1}, users.verified)

	user, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
}

func TestObtainTokenSingleUse(t *testing.T) {
	svc, _, codes, _ := newTestService()
	codes.codes[1] = "123456"
	_, err := svc.ObtainToken(context.Background(), "test@example.com", "123456")
	require.NoError(t, err)

	_, err = svc.ObtainToken(context.Background(), "test@example.com", "123456")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestObtainTokenUniformFailures(t *testing.T) {
	svc, users, codes, _ := newTestService()
	codes.codes[1] = "123456"
	users.users["inactive@example.com"] = &models.User{ID: 2, Email: "inactive@example.com", Role: models.RoleUser}

	// wrong code, unknown alias and inactive user must be indistinguishable
	_, errWrongCode := svc.ObtainToken(context.Background(), "test@example.com", "000000")
	_, errUnknown := svc.ObtainToken(context.Background(), "nobody@example.com", "123456")
	_, errInactive := svc.ObtainToken(context.Background(), "inactive@example.com", "123456")
	assert.ErrorIs(t, errWrongCode, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errInactive, ErrInvalidCredentials)
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	svc, _, _, _ := newTestService()
	_, err := svc.Authenticate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
