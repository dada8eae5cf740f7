package services

import (
	"slices"
	"sync"
)

// keyedMutex hands out one mutex per integer key and forgets keys nobody holds.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[int]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[int]*refMutex)}
}

func (k *keyedMutex) Lock(key int) (unlock func()) {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

// Locks serializes work per category and per player inside one process.
// Category locks are always taken before player locks.
type Locks struct {
	categories *keyedMutex
	players    *keyedMutex
}

func NewLocks() *Locks {
	return &Locks{
		categories: newKeyedMutex(),
		players:    newKeyedMutex(),
	}
}

func (l *Locks) LockCategory(categoryID int) func() {
	return l.categories.Lock(categoryID)
}

// LockPlayers locks the given players in ascending id order; duplicates are ignored.
func (l *Locks) LockPlayers(playerIDs ...int) func() {
	ids := slices.Clone(playerIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	unlocks := make([]func(), 0, len(ids))
	for _, id := range ids {
		unlocks = append(unlocks, l.players.Lock(id))
	}
	return func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
}
