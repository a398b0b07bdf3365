package test

import (
	"sync"
	"testing"
	"time"

	"darna/internal/auth/usecase"
	"darna/internal/metrics"
	"darna/pkg/crypto"
	"darna/pkg/mailer"
	"darna/pkg/password"
	"darna/pkg/token"

	"github.com/bluele/gcache"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	testPassword  = "Password123!"
	testCipherKey = "0123456789abcdef0123456789abcdef"
)

type mockMailer struct {
	mu        sync.Mutex
	sendCalls []sendCall
}

var _ mailer.Mailer = (*mockMailer)(nil)

type sendCall struct {
	to       string
	template string
	data     map[string]any
}

func (m *mockMailer) SendMail(to string, id string, data map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendCalls = append(m.sendCalls, sendCall{to: to, template: id, data: data})
	return nil
}

// SendMailAsync runs inline so assertions see the call.
func (m *mockMailer) SendMailAsync(to string, id string, data map[string]any, _ string) {
	_ = m.SendMail(to, id, data)
}

func (m *mockMailer) templates() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.sendCalls))
	for _, c := range m.sendCalls {
		out = append(out, c.template)
	}
	return out
}

// testClock is shared by the issuer, the services and the denylist.
type testClock struct {
	fake gcache.FakeClock
}

func newTestClock() *testClock {
	return &testClock{fake: gcache.NewFakeClock()}
}

func (c *testClock) Now() time.Time          { return c.fake.Now() }
func (c *testClock) Advance(d time.Duration) { c.fake.Advance(d) }

func newTestIssuer(clock *testClock) *token.Issuer {
	return token.NewIssuer(token.Config{
		AccessSecret:  []byte("access-secret-access-secret-0001"),
		RefreshSecret: []byte("refresh-secret-refresh-secret-01"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		Issuer:        "darna-test",
	}).WithClock(clock.Now)
}

func newTestSealer(t *testing.T) *crypto.SecretCipher {
	t.Helper()
	c, err := crypto.NewSecretCipher(testCipherKey)
	require.NoError(t, err)
	return c
}

func newTestHasher() password.Hasher {
	return password.NewBcryptHasher(bcrypt.MinCost)
}

type fixture struct {
	store     *memoryStore
	clock     *testClock
	issuer    *token.Issuer
	mailer    *mockMailer
	denylist  *usecase.CacheDenylist
	twoFactor *usecase.TwoFactorService
	service   *usecase.AuthService
}

// newFixture wires the real services over the in-memory store.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := newTestClock()
	store := newMemoryStore(clock.Now)
	m := &mockMailer{}
	mt := metrics.NewNop()
	log := zap.NewNop()
	issuer := newTestIssuer(clock)
	denylist := usecase.NewCacheDenylist(128, clock.fake)

	tf := usecase.NewTwoFactorService(store, newTestSealer(t), m, mt, log, "Darna").WithClock(clock.Now)
	svc := usecase.NewAuthService(usecase.Dependencies{
		Repo:      store,
		Hasher:    newTestHasher(),
		Issuer:    issuer,
		TwoFactor: tf,
		Denylist:  denylist,
		Mailer:    m,
		Metrics:   mt,
		Logger:    log,
	}).WithClock(clock.Now)

	return &fixture{
		store:     store,
		clock:     clock,
		issuer:    issuer,
		mailer:    m,
		denylist:  denylist,
		twoFactor: tf,
		service:   svc,
	}
}
