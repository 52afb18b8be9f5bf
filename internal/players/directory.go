package players

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fortuna/vsteams/internal/provider"
)

// Directory is a read-only table of known players. It is loaded from its
// source on Reload and never refreshes on its own; owners decide when to call
// Reload (at startup, and on an explicit request).
type Directory struct {
	source provider.PlayerSource

	mu       sync.RWMutex
	sorted   []provider.Player
	byName   map[string]provider.Player
	byID     map[int]provider.Player
	loadedAt time.Time
}

// NewDirectory creates an empty directory backed by source
func NewDirectory(source provider.PlayerSource) *Directory {
	return &Directory{
		source: source,
		byName: make(map[string]provider.Player),
		byID:   make(map[int]provider.Player),
	}
}

// Reload replaces the table with a fresh copy from the source. On failure
// the previous table stays in place.
func (d *Directory) Reload(ctx context.Context) error {
	list, err := d.source.Players(ctx)
	if err != nil {
		return fmt.Errorf("loading players: %w", err)
	}

	sorted := make([]provider.Player, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FullName < sorted[j].FullName
	})

	byName := make(map[string]provider.Player, len(sorted))
	byID := make(map[int]provider.Player, len(sorted))
	for _, p := range sorted {
		// Duplicate names resolve to the first entry in sorted order.
		if _, dup := byName[p.FullName]; !dup {
			byName[p.FullName] = p
		}
		byID[p.ID] = p
	}

	d.mu.Lock()
	d.sorted = sorted
	d.byName = byName
	d.byID = byID
	d.loadedAt = time.Now()
	d.mu.Unlock()

	log.Printf("[players] ✓ loaded %d players", len(sorted))
	return nil
}

// Names returns every player's full name in sorted order
func (d *Directory) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, len(d.sorted))
	for i, p := range d.sorted {
		names[i] = p.FullName
	}
	return names
}

// Lookup finds a player by exact full name
func (d *Directory) Lookup(name string) (provider.Player, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	p, ok := d.byName[name]
	return p, ok
}

// ByID finds a player by ID
func (d *Directory) ByID(id int) (provider.Player, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	p, ok := d.byID[id]
	return p, ok
}

// Search returns players whose name contains query, case-insensitively
func (d *Directory) Search(query string) []provider.Player {
	q := strings.ToLower(strings.TrimSpace(query))

	d.mu.RLock()
	defer d.mu.RUnlock()

	matches := make([]provider.Player, 0)
	for _, p := range d.sorted {
		if strings.Contains(strings.ToLower(p.FullName), q) {
			matches = append(matches, p)
		}
	}
	return matches
}

// Len returns the number of loaded players
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.sorted)
}

// LoadedAt returns when the table was last loaded, zero if never
func (d *Directory) LoadedAt() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loadedAt
}
