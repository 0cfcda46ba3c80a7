package client

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/filemeta/internal/server/auth"
)

// renewBefore is how long before expiry a cached token is replaced.
const renewBefore = 30 * time.Second

// TokenSource mints HS256 service tokens and caches them until shortly
// before they expire.
type TokenSource struct {
	mu       sync.Mutex
	subject  string
	secret   []byte
	validity time.Duration
	token    string
	expires  time.Time
	now      func() time.Time
}

func NewTokenSource(subject string, secret []byte, validity time.Duration) *TokenSource {
	return &TokenSource{subject: subject, secret: secret, validity: validity, now: time.Now}
}

// Token returns a token valid for at least renewBefore.
func (t *TokenSource) Token() (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if t.token != "" && now.Add(renewBefore).Before(t.expires) {
		return t.token, nil
	}

	token, err := auth.GenerateToken(t.subject, t.secret, t.validity)
	if err != nil {
		return "", err
	}
	t.token = token
	t.expires = now.Add(t.validity)
	return token, nil
}
