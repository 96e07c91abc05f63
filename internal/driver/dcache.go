package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"stcheck/internal/diag"
	"stcheck/internal/source"
)

// Bump when the payload format changes; stale entries are simply missed.
const diskCacheSchemaVersion uint16 = 1

// DiskCache persists per-file diagnostics keyed by content hash and config
// digest, so an unchanged file under an unchanged configuration is never
// re-checked. Thread-safe for concurrent workers.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// cachedDiag is the serialized form of one diagnostic. Spans are stored as
// byte offsets only; the FileID is rebound on load since IDs are per-run.
type cachedDiag struct {
	Severity uint8
	Code     uint16
	Start    uint32
	End      uint32
	Message  string
	Fixes    []cachedFix
}

type cachedFix struct {
	Title string
	Edits []cachedEdit
}

type cachedEdit struct {
	Start   uint32
	End     uint32
	NewText string
}

type diskPayload struct {
	Schema uint16
	Diags  []cachedDiag
}

// OpenDiskCache creates or reuses the cache directory.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// cacheKey folds the file content hash and the config digest into one key.
func cacheKey(contentHash [32]byte, configDigest string) [32]byte {
	h := sha256.New()
	h.Write(contentHash[:])
	h.Write([]byte(configDigest))
	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}

func (c *DiskCache) pathFor(key [32]byte) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".mp")
}

// Put atomically writes one file's diagnostics.
func (c *DiskCache) Put(key [32]byte, diags []diag.Diagnostic) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := diskPayload{
		Schema: diskCacheSchemaVersion,
		Diags:  make([]cachedDiag, 0, len(diags)),
	}
	for _, d := range diags {
		cd := cachedDiag{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Message:  d.Message,
		}
		for _, fix := range d.Fixes {
			cf := cachedFix{Title: fix.Title}
			for _, e := range fix.Edits {
				cf.Edits = append(cf.Edits, cachedEdit{
					Start: e.Span.Start, End: e.Span.End, NewText: e.NewText,
				})
			}
			cd.Fixes = append(cd.Fixes, cf)
		}
		payload.Diags = append(payload.Diags, cd)
	}

	p := c.pathFor(key)
	tmp, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := msgpack.NewEncoder(tmp).Encode(&payload); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p)
}

// Get loads one file's diagnostics, rebinding spans to the given FileID.
// A miss, schema mismatch or unreadable entry returns (nil, false).
func (c *DiskCache) Get(key [32]byte, id source.FileID) ([]diag.Diagnostic, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		return nil, false
	}
	defer f.Close()

	var payload diskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false
	}

	diags := make([]diag.Diagnostic, 0, len(payload.Diags))
	for _, cd := range payload.Diags {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code),
			source.Span{File: id, Start: cd.Start, End: cd.End}, cd.Message)
		for _, cf := range cd.Fixes {
			edits := make([]diag.FixEdit, 0, len(cf.Edits))
			for _, e := range cf.Edits {
				edits = append(edits, diag.FixEdit{
					Span:    source.Span{File: id, Start: e.Start, End: e.End},
					NewText: e.NewText,
				})
			}
			d = d.WithFix(cf.Title, edits...)
		}
		diags = append(diags, d)
	}
	return diags, true
}

// DropAll wipes the cache directory's entries.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".mp" {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// cacheGet adapts a hit back into a Bag. Cached bags were sorted before Put.
func (c *Checker) cacheGet(key [32]byte, id source.FileID, maxDiags int) (*diag.Bag, bool) {
	if c.Cache == nil {
		return nil, false
	}
	diags, ok := c.Cache.Get(key, id)
	if !ok {
		return nil, false
	}
	bag := diag.NewBag(maxDiags)
	for _, d := range diags {
		bag.Add(d)
	}
	return bag, true
}

func (c *Checker) cachePut(key [32]byte, bag *diag.Bag) {
	if c.Cache == nil {
		return
	}
	// best effort: a failed write only costs a future re-check
	_ = c.Cache.Put(key, bag.Items())
}
