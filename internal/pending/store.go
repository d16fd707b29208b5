// Package pending holds transaction proposals that await a confirm or
// cancel button press. Entries live in process memory only: a restart
// expires every open proposal, which the confirm handler reports as such.
package pending

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/bexly/bexly-bot/internal/models"
)

// Proposal is the parse result snapshot taken when the preview was sent.
// WalletCurrency records the default wallet's currency at proposal time so
// the preview and the commit agree on what "no explicit currency" meant.
type Proposal struct {
	Parsed         models.ParsedTransaction
	WalletCurrency string
	CreatedAt      time.Time
}

// Store is an in-memory TTL store keyed by opaque tokens that fit in
// Telegram's 64-byte callback data limit.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]Proposal
	now     func() time.Time
}

// NewStore creates a store whose entries expire after ttl.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		entries: make(map[string]Proposal),
		now:     time.Now,
	}
}

// Put stores a proposal and returns its token. Expired entries are swept
// opportunistically on every insert.
func (s *Store) Put(p Proposal) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	p.CreatedAt = now

	for token, entry := range s.entries {
		if now.Sub(entry.CreatedAt) > s.ttl {
			delete(s.entries, token)
		}
	}

	token := fmt.Sprintf("%d_%s", now.UnixMilli(), randomSuffix())
	s.entries[token] = p
	return token
}

// Take atomically removes and returns the proposal for token. The second
// return is false when the token is unknown or the entry has expired, so a
// second confirm press on the same message cannot commit twice.
func (s *Store) Take(token string) (Proposal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[token]
	if !ok {
		return Proposal{}, false
	}
	delete(s.entries, token)

	if s.now().Sub(entry.CreatedAt) > s.ttl {
		return Proposal{}, false
	}
	return entry, true
}

// Restore puts a taken proposal back under its original token so the user
// can retry after a transient failure (conversion or persistence).
func (s *Store) Restore(token string, p Proposal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = p
}

// Len reports the number of live entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func randomSuffix() string {
	var buf [3]byte
	_, _ = rand.Read(buf[:])
	return hex.EncodeToString(buf[:])
}
