// Package symcache keeps built symbol tables on disk so that an unchanged
// project skips symbol resolution on the next run.
package symcache

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/vmihailenco/msgpack/v5"

	"cs2ts/internal/frontend"
	"cs2ts/internal/options"
	"cs2ts/internal/symtab"
)

// schemaVersion changes whenever the payload or the naming rules change.
const schemaVersion uint16 = 1

// Digest identifies one set of documents and options.
type Digest [32]byte

// String returns the digest in hex.
func (d Digest) String() string { return hex.EncodeToString(d[:]) }

type payload struct {
	Schema uint16           `msgpack:"schema"`
	Key    Digest           `msgpack:"key"`
	Tables *symtab.Snapshot `msgpack:"tables"`
}

// Cache is a directory of msgpack payloads. Safe for concurrent use;
// a nil *Cache stores nothing and finds nothing.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// DefaultDir is $XDG_CACHE_HOME/cs2ts, falling back to ~/.cache/cs2ts.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "locate cache directory")
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "cs2ts"), nil
}

// Open prepares the cache under dir, or under DefaultDir when dir is empty.
func Open(dir string) (*Cache, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "symbols"), 0o755); err != nil {
		return nil, errors.Wrapf(err, "create cache directory %s", dir)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// Key digests everything symbol tables depend on: document paths and
// contents in order, the rename rules and the symbol overrides.
func Key(docs []*frontend.Document, opts *options.CompilerOptions) Digest {
	if opts == nil {
		opts = options.Default()
	}
	h := sha256.New()
	enc := msgpack.NewEncoder(h)
	_ = enc.EncodeUint16(schemaVersion)
	for _, d := range docs {
		_ = enc.EncodeString(d.Path)
		sum := d.Hash()
		_ = enc.EncodeBytes(sum[:])
	}
	_ = enc.Encode(opts.RenameRules)
	overrides := slices.Clone(opts.SymbolTableOverrides)
	slices.SortStableFunc(overrides, func(a, b options.Override) int {
		return cmp.Compare(a.Symbol, b.Symbol)
	})
	_ = enc.Encode(overrides)
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// Cacheable reports whether every document carries content to digest.
// A document without a loaded file hashes to zeros, so two different
// projects could share a key.
func Cacheable(docs []*frontend.Document) bool {
	for _, d := range docs {
		if d.File == nil || d.Hash() == ([32]byte{}) {
			return false
		}
	}
	return true
}

func (c *Cache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "symbols", key.String()+".mp")
}

// Put writes tables under key. The file is replaced atomically.
func (c *Cache) Put(key Digest, tables *symtab.Tables) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return errors.Wrap(err, "create cache entry")
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()
	if err = msgpack.NewEncoder(f).Encode(&payload{Schema: schemaVersion, Key: key, Tables: tables.Snapshot()}); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "encode symbol tables")
	}
	if err = f.Close(); err != nil {
		return errors.Wrap(err, "write cache entry")
	}
	return errors.Wrap(os.Rename(f.Name(), p), "commit cache entry")
}

// Get loads the tables stored under key. A missing entry or one written
// by another schema is a miss, not an error.
func (c *Cache) Get(key Digest) (*symtab.Tables, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "open cache entry")
	}
	defer f.Close()

	var p payload
	if err := msgpack.NewDecoder(f).Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(err, "decode cache entry %s", key)
	}
	if p.Schema != schemaVersion || p.Key != key || p.Tables == nil {
		return nil, false, nil
	}
	return symtab.FromSnapshot(p.Tables), true, nil
}

// DropAll removes every entry.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.RemoveAll(filepath.Join(c.dir, "symbols")); err != nil {
		return errors.Wrap(err, "drop symbol cache")
	}
	return errors.Wrap(os.MkdirAll(filepath.Join(c.dir, "symbols"), 0o755), "recreate symbol cache")
}
