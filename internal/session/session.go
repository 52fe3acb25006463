// Package session keeps per-session UI convenience state (last selected
// seller and movement kind, movements recorded this session) in Redis. The
// reconciliation engine has no dependency on it; losing this state loses
// nothing but form pre-fills.
package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// State is the transient UI state carried between requests of one session.
type State struct {
	Seller  string `json:"seller"`
	Kind    string `json:"kind"`
	Counter int    `json:"counter"`
}

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// NewSessionID issues an opaque session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// Get returns the session state, or a zero state when the session is new or
// has expired.
func (s *Store) Get(ctx context.Context, sessionID string) (*State, error) {
	data, err := s.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return &State{}, nil
	}
	if err != nil {
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *Store) Save(ctx context.Context, sessionID string, state *State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyPrefix+sessionID, data, s.ttl).Err()
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, keyPrefix+sessionID).Err()
}

// Touch records a successful movement against the session: the counter
// resets when the seller or kind changed since the last one, then increments.
func (st *State) Touch(seller, kind string) {
	if st.Seller != seller || st.Kind != kind {
		st.Counter = 0
	}
	st.Seller = seller
	st.Kind = kind
	st.Counter++
}
