// Package snapshot persists the shape of finalized classes (resolution
// order and provider chains) keyed by a digest of the definition
// closure. Bodies are process-local callables and are never serialized;
// a snapshot records shape, not behavior.
package snapshot

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"weave/internal/compose"
	"weave/internal/member"
	"weave/internal/unit"
)

// Current schema version - increment when Payload format changes
const schemaVersion uint16 = 1

// ChainEntry is one provider in a serialized chain.
type ChainEntry struct {
	Unit      string
	Kind      uint8
	Delegates bool
}

// Payload stores a finalized class's derived shape for fast inspection
// without recomputing the hierarchy.
type Payload struct {
	Schema uint16
	Class  string
	Order  []string
	Chains map[string][]ChainEntry
}

// ForArtifacts converts finalized artifacts into a serializable payload.
func ForArtifacts(g *unit.Graph, art *compose.Artifacts) *Payload {
	p := &Payload{
		Schema: schemaVersion,
		Class:  art.Name,
		Order:  append([]string(nil), art.OrderNames...),
		Chains: make(map[string][]ChainEntry),
	}
	for _, name := range art.Table.Members() {
		ch, _ := art.Table.Chain(name)
		entries := make([]ChainEntry, 0, len(ch))
		for _, prov := range ch {
			entries = append(entries, ChainEntry{
				Unit:      g.Name(prov.Unit),
				Kind:      uint8(prov.Kind),
				Delegates: prov.Delegates,
			})
		}
		p.Chains[name] = entries
	}
	return p
}

// KindString renders a serialized member kind.
func (e ChainEntry) KindString() string {
	return member.Kind(e.Kind).String()
}

// Cache хранит снапшоты финализированных классов на диске.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open initializes a cache rooted at dir.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// OpenDefault initializes a cache at the standard user cache location.
func OpenDefault(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return Open(filepath.Join(base, app))
}

func (c *Cache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Подкаталог для удобства очистки.
	return filepath.Join(c.dir, "classes", hexKey+".mp")
}

// Put serializes and writes a payload, atomically replacing any previous
// snapshot under the same key.
func (c *Cache) Put(key Digest, payload *Payload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err := os.Remove(f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Printf("failed to remove temp file: %v", err)
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload. The boolean reports a hit.
func (c *Cache) Get(key Digest, out *Payload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			panic(closeErr)
		}
	}()
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != schemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
