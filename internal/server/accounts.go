package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken = errors.New("username already taken")
	ErrUnknownUser   = errors.New("unknown user")
)

// Account is one registered player with a bcrypt credential and the
// cross-match win tally feeding the leaderboard.
type Account struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
	Wins         int    `json:"wins"`
}

type LeaderboardEntry struct {
	Username string `json:"username"`
	Wins     int    `json:"wins"`
}

// AccountStore keeps accounts in memory and mirrors them to a JSON
// file. An empty path disables persistence.
type AccountStore struct {
	mu       sync.Mutex
	path     string
	accounts map[string]*Account
}

func NewAccountStore(path string) (*AccountStore, error) {
	s := &AccountStore{path: path, accounts: make(map[string]*Account)}
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read accounts file: %w", err)
	}
	var list []*Account
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse accounts file: %w", err)
	}
	for _, a := range list {
		s.accounts[a.Username] = a
	}
	return s, nil
}

// Register creates an account with a bcrypt-hashed password.
func (s *AccountStore) Register(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[username]; ok {
		return fmt.Errorf("%q: %w", username, ErrUsernameTaken)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	s.accounts[username] = &Account{Username: username, PasswordHash: string(hash)}
	return s.saveLocked()
}

// Login verifies the credential.
func (s *AccountStore) Login(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[username]
	if !ok {
		return fmt.Errorf("%q: %w", username, ErrUnknownUser)
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return fmt.Errorf("%q: %w", username, ErrWrongPassword)
	}
	return nil
}

// AddWin bumps the win tally for a match winner. Bot seats have no
// account and are ignored.
func (s *AccountStore) AddWin(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[username]
	if !ok {
		return nil
	}
	a.Wins++
	return s.saveLocked()
}

// Leaderboard returns all accounts ordered by wins descending, names
// breaking ties.
func (s *AccountStore) Leaderboard() []LeaderboardEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]LeaderboardEntry, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, LeaderboardEntry{Username: a.Username, Wins: a.Wins})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		return out[i].Username < out[j].Username
	})
	return out
}

func (s *AccountStore) saveLocked() error {
	if s.path == "" {
		return nil
	}
	list := make([]*Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Username < list[j].Username })

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("encode accounts: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create accounts dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write accounts file: %w", err)
	}
	return nil
}
