package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"lintel/internal/diag"
	"lintel/internal/source"
)

// diskCacheSchemaVersion is bumped whenever DiskPayload changes shape.
const diskCacheSchemaVersion uint16 = 1

// DiskCache persists per-file check results as msgpack files named after
// combineDigest(content, rule set). A nil *DiskCache is a valid no-op cache.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached outcome of checking one file. Spans are stored
// as offsets; the file ID is reattached on load.
type DiskPayload struct {
	Schema      uint16
	Path        string
	ContentHash Digest
	RuleHash    Digest
	Diagnostics []cachedDiagnostic
}

type cachedSpan struct {
	Start, End uint32
}

func spanOf(s source.Span) cachedSpan { return cachedSpan{Start: s.Start, End: s.End} }

func (s cachedSpan) in(file source.FileID) source.Span {
	return source.Span{File: file, Start: s.Start, End: s.End}
}

type cachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Category string
	Message  string
	Span     cachedSpan
	Notes    []cachedNote
	Fixes    []cachedFix
}

type cachedNote struct {
	Span cachedSpan
	Msg  string
}

type cachedFix struct {
	Title         string
	Applicability uint8
	Edits         []cachedEdit
}

type cachedEdit struct {
	Span    cachedSpan
	NewText string
	OldText string
}

// OpenDiskCache opens app's directory under the user cache dir
// ($XDG_CACHE_HOME on Linux).
func OpenDiskCache(app string) (*DiskCache, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("locate cache dir: %w", err)
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string { return c.dir }

// entryPath fans entries out over 256 subdirectories.
func (c *DiskCache) entryPath(key Digest) string {
	name := key.String()
	return filepath.Join(c.dir, "files", name[:2], name+".mp")
}

// Put writes payload under key. The entry appears atomically.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return writeAtomic(c.entryPath(key), data)
}

func writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()
	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// Get loads the entry for key into out. A missing entry or one written
// under another schema is a miss, not an error.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	data, err := os.ReadFile(c.entryPath(key))
	c.mu.RUnlock()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, err
	}
	if err := msgpack.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll removes every entry and leaves an empty cache directory.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.RemoveAll(c.dir); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// diagnosticsToPayload converts diagnostics of one file for caching.
func diagnosticsToPayload(path string, content, rules Digest, diags []diag.Diagnostic) *DiskPayload {
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        path,
		ContentHash: content,
		RuleHash:    rules,
		Diagnostics: make([]cachedDiagnostic, 0, len(diags)),
	}
	for _, d := range diags {
		payload.Diagnostics = append(payload.Diagnostics, cacheDiagnostic(d))
	}
	return payload
}

func cacheDiagnostic(d diag.Diagnostic) cachedDiagnostic {
	cd := cachedDiagnostic{
		Severity: uint8(d.Severity),
		Code:     uint16(d.Code),
		Category: d.Category,
		Message:  d.Message,
		Span:     spanOf(d.Primary),
	}
	for _, n := range d.Notes {
		cd.Notes = append(cd.Notes, cachedNote{Span: spanOf(n.Span), Msg: n.Msg})
	}
	for _, fx := range d.Fixes {
		cf := cachedFix{Title: fx.Title, Applicability: uint8(fx.Applicability)}
		for _, e := range fx.Edits {
			cf.Edits = append(cf.Edits, cachedEdit{Span: spanOf(e.Span), NewText: e.NewText, OldText: e.OldText})
		}
		cd.Fixes = append(cd.Fixes, cf)
	}
	return cd
}

// payloadToDiagnostics restores diagnostics anchored in file.
func payloadToDiagnostics(payload *DiskPayload, file source.FileID) []diag.Diagnostic {
	if payload == nil || payload.Schema != diskCacheSchemaVersion {
		return nil
	}
	out := make([]diag.Diagnostic, 0, len(payload.Diagnostics))
	for _, cd := range payload.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code), cd.Span.in(file), cd.Message)
		d.Category = cd.Category
		for _, n := range cd.Notes {
			d = d.WithNote(n.Span.in(file), n.Msg)
		}
		for _, cf := range cd.Fixes {
			edits := make([]diag.FixEdit, 0, len(cf.Edits))
			for _, e := range cf.Edits {
				edits = append(edits, diag.FixEdit{Span: e.Span.in(file), NewText: e.NewText, OldText: e.OldText})
			}
			d = d.WithFix(cf.Title, diag.Applicability(cf.Applicability), edits...)
		}
		out = append(out, d)
	}
	return out
}
