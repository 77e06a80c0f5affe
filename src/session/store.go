// Package session owns the interactive-session lifecycle: Redis-backed
// metadata with an idle TTL, and one in-memory result cache per live session.
// Cached grading results never leave process memory; only metadata is shared
// through Redis.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"www.github.com/Wanderer0074348/SheetGrader/src/models"
)

const sessionKeyPrefix = "grading_session:"

// ErrNotFound is returned when a session ID is unknown or expired.
var ErrNotFound = fmt.Errorf("session not found")

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Create registers a new session and returns its metadata.
func (s *Store) Create(ctx context.Context) (*models.Session, error) {
	now := time.Now()
	session := &models.Session{
		SessionID:   "sess_" + uuid.New().String(),
		CreatedAt:   now,
		LastSeen:    now,
		Evaluations: 0,
	}

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// Get retrieves session metadata by ID.
func (s *Store) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// Touch refreshes the session's last-seen time and TTL.
func (s *Store) Touch(ctx context.Context, sessionID string) error {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	session.LastSeen = time.Now()
	return s.save(ctx, session)
}

// RecordEvaluation bumps the remote-call counter for the session.
func (s *Store) RecordEvaluation(ctx context.Context, sessionID string) error {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	session.Evaluations++
	session.LastSeen = time.Now()
	return s.save(ctx, session)
}

// Delete removes the session metadata.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}

func (s *Store) save(ctx context.Context, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKeyPrefix+session.SessionID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}
