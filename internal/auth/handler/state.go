package handler

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/duyng2512/devmeet/internal/utils"
)

const (
	statePrefix = "oauth_state:"
	stateTTL    = 5 * time.Minute
)

var errStateNotFound = errors.New("oauth state not found or already used")

// flowState holds the server-side half of an in-flight OAuth handshake.
type flowState struct {
	Provider     string `json:"provider"`
	CodeVerifier string `json:"code_verifier"`
}

// StateStore keeps one-time OAuth state and PKCE verifier records in Redis.
// Records expire after five minutes and are deleted on first read, so a
// state value cannot be replayed.
type StateStore struct {
	client *goredis.Client
}

func NewStateStore(client *goredis.Client) *StateStore {
	return &StateStore{client: client}
}

// Begin creates a state record for the provider and returns the state value
// and the PKCE code challenge to embed in the authorization URL.
func (s *StateStore) Begin(
	ctx context.Context,
	providerName string,
) (state string, codeChallenge string, err error) {

	state = utils.RandomString(32)
	verifier := utils.RandomString(32)

	hash := sha256.Sum256([]byte(verifier))
	codeChallenge = base64.RawURLEncoding.EncodeToString(hash[:])

	data, err := json.Marshal(flowState{
		Provider:     providerName,
		CodeVerifier: verifier,
	})
	if err != nil {
		return "", "", fmt.Errorf("marshal oauth state: %w", err)
	}

	if err := s.client.Set(ctx, statePrefix+state, data, stateTTL).Err(); err != nil {
		return "", "", fmt.Errorf("store oauth state: %w", err)
	}

	return state, codeChallenge, nil
}

// Consume loads and deletes the record for the given state value.
func (s *StateStore) Consume(
	ctx context.Context,
	state string,
) (*flowState, error) {

	if state == "" {
		return nil, errStateNotFound
	}

	val, err := s.client.GetDel(ctx, statePrefix+state).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, errStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load oauth state: %w", err)
	}

	var fs flowState
	if err := json.Unmarshal([]byte(val), &fs); err != nil {
		return nil, fmt.Errorf("unmarshal oauth state: %w", err)
	}

	return &fs, nil
}
