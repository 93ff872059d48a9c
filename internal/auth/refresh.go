package auth

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

const refreshTokenFile = "refresh_tokens.json"

// refreshTokenTTL is how long a refresh token stays usable without a login.
const refreshTokenTTL = 30 * 24 * time.Hour

type refreshEntry struct {
	Username string    `json:"username"`
	IssuedAt time.Time `json:"issued_at"`
}

var (
	refreshTokenStore = map[string]refreshEntry{}
	mu                sync.Mutex
	loaded            bool
)

// IssueRefreshToken creates and persists a refresh token for a username.
func IssueRefreshToken(username string) (string, error) {
	mu.Lock()
	defer mu.Unlock()
	ensureLoaded()

	token := uuid.NewString()
	refreshTokenStore[token] = refreshEntry{Username: username, IssuedAt: time.Now().UTC()}
	return token, saveRefreshTokens()
}

// RedeemRefreshToken validates a refresh token, rotates it, and returns the
// username it belongs to together with the replacement token.
func RedeemRefreshToken(token string) (string, string, error) {
	mu.Lock()
	defer mu.Unlock()
	ensureLoaded()

	entry, ok := refreshTokenStore[token]
	if !ok || time.Since(entry.IssuedAt) > refreshTokenTTL {
		delete(refreshTokenStore, token)
		return "", "", errors.New("invalid or expired refresh token")
	}

	delete(refreshTokenStore, token)
	next := uuid.NewString()
	refreshTokenStore[next] = refreshEntry{Username: entry.Username, IssuedAt: time.Now().UTC()}
	return entry.Username, next, saveRefreshTokens()
}

// StartRefreshTokenCleaner drops expired refresh tokens on the given
// interval. Runs forever; start it in a goroutine.
func StartRefreshTokenCleaner(interval time.Duration) {
	for {
		time.Sleep(interval)
		mu.Lock()
		ensureLoaded()
		for token, entry := range refreshTokenStore {
			if time.Since(entry.IssuedAt) > refreshTokenTTL {
				delete(refreshTokenStore, token)
			}
		}
		if err := saveRefreshTokens(); err != nil {
			log.Printf("failed to save refresh tokens: %v", err)
		}
		mu.Unlock()
	}
}

func ensureLoaded() {
	if loaded {
		return
	}
	loaded = true
	if err := loadRefreshTokens(); err != nil {
		log.Printf("failed to load refresh tokens: %v", err)
	}
}

func loadRefreshTokens() error {
	data, err := os.ReadFile(refreshTokenFile)
	if err != nil {
		if os.IsNotExist(err) {
			refreshTokenStore = map[string]refreshEntry{}
			return nil
		}
		return err
	}
	return json.Unmarshal(data, &refreshTokenStore)
}

func saveRefreshTokens() error {
	data, err := json.MarshalIndent(refreshTokenStore, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(refreshTokenFile, data, 0600)
}
