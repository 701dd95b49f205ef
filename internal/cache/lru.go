// Kinographus - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinographus

// Package cache provides a thread-safe LRU response cache with TTL support,
// used to avoid recomputing recommendation responses for repeated requests.
package cache

import (
	"sync"
	"time"
)

// entry is a node in the doubly-linked recency list.
type entry struct {
	key       string
	value     []byte
	prev      *entry
	next      *entry
	expiresAt time.Time
}

// LRU implements a thread-safe Least Recently Used cache with TTL support.
// It provides O(1) Get, Set and eviction using a doubly-linked list for
// ordering and a hashmap for lookups. Expired entries are dropped lazily on
// access and in bulk by CleanupExpired.
type LRU struct {
	mu sync.RWMutex

	capacity int
	ttl      time.Duration

	items map[string]*entry

	// head and tail are sentinel nodes; head.next is the most recently
	// used, tail.prev the least.
	head *entry
	tail *entry

	hits   int64
	misses int64
}

// NewLRU creates a cache with the given capacity and TTL. Non-positive
// arguments fall back to 1024 entries and 5 minutes.
func NewLRU(capacity int, ttl time.Duration) *LRU {
	if capacity <= 0 {
		capacity = 1024
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	c := &LRU{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*entry, capacity),
		head:     &entry{},
		tail:     &entry{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// Get retrieves a cached response, moving it to the front on a hit.
// Expired entries count as misses and are removed.
func (c *LRU) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, exists := c.items[key]; exists {
		if time.Now().After(e.expiresAt) {
			c.removeEntry(e)
			c.misses++
			return nil, false
		}
		c.moveToFront(e)
		c.hits++
		return e.value, true
	}

	c.misses++
	return nil, false
}

// Set adds or refreshes a cached response, evicting the least recently used
// entries when over capacity.
func (c *LRU) Set(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := time.Now().Add(c.ttl)

	if e, exists := c.items[key]; exists {
		e.value = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value, expiresAt: expiresAt}
	c.addToFront(e)
	c.items[key] = e

	for len(c.items) > c.capacity {
		c.evictOldest()
	}
}

// Remove deletes an entry, reporting whether it existed.
func (c *LRU) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, exists := c.items[key]; exists {
		c.removeEntry(e)
		return true
	}
	return false
}

// Len returns the current number of entries.
func (c *LRU) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Clear removes all entries. Called after a model rebuild so stale
// recommendations are never served against fresh models.
func (c *LRU) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*entry, c.capacity)
	c.head.next = c.tail
	c.tail.prev = c.head
}

// CleanupExpired removes all expired entries, returning the count removed.
func (c *LRU) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for e := c.tail.prev; e != c.head; {
		prev := e.prev
		if now.After(e.expiresAt) {
			c.removeEntry(e)
			removed++
		}
		e = prev
	}
	return removed
}

// Stats returns hit/miss counters and the current size.
func (c *LRU) Stats() (hits, misses int64, size int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses, len(c.items)
}

// Internal methods (must be called with lock held)

func (c *LRU) addToFront(e *entry) {
	e.prev = c.head
	e.next = c.head.next
	c.head.next.prev = e
	c.head.next = e
}

func (c *LRU) moveToFront(e *entry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	c.addToFront(e)
}

func (c *LRU) removeEntry(e *entry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	delete(c.items, e.key)
}

func (c *LRU) evictOldest() {
	oldest := c.tail.prev
	if oldest == c.head {
		return
	}
	c.removeEntry(oldest)
}
