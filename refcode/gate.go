// Package refcode gates account signup behind a flat-file allow-list of
// referral codes held in memory for the life of the process.
package refcode

import (
	"os"
	"strings"
	"sync"

	"github.com/ndesc/ndesc-api/utils"
)

// Gate owns the in-memory code set and its backing file. Codes are loaded
// once at construction and only ever appended; removal requires editing the
// file and restarting (or calling Reload). The file and the set are updated
// non-transactionally, which is acceptable under the single-instance,
// low-write-rate deployment this service assumes.
type Gate struct {
	path string

	mu    sync.RWMutex
	codes map[string]struct{}
}

// New builds a Gate over the newline-delimited code file at path. A missing
// or unreadable file is not fatal: the gate starts with no valid codes and
// signup stays closed until codes are admitted or the file appears.
func New(path string) *Gate {
	g := &Gate{path: path, codes: map[string]struct{}{}}
	if err := g.Reload(); err != nil {
		utils.Warnf("referral codes not loaded from %s: %v", path, err)
	}
	return g
}

// Reload re-reads the backing file, replacing the in-memory set. Blank lines
// and surrounding whitespace are ignored.
func (g *Gate) Reload() error {
	b, err := os.ReadFile(g.path)
	if err != nil {
		return err
	}

	codes := map[string]struct{}{}
	for _, line := range strings.Split(string(b), "\n") {
		if code := strings.TrimSpace(line); code != "" {
			codes[code] = struct{}{}
		}
	}

	g.mu.Lock()
	g.codes = codes
	g.mu.Unlock()
	return nil
}

// Check reports whether code is currently valid. Codes are reusable; a
// successful signup does not consume one.
func (g *Gate) Check(code string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.codes[code]
	return ok
}

// Admit appends code to the backing file and adds it to the set. The two
// updates are not atomic: a crash in between leaves the file ahead of
// memory, which Reload or a restart reconciles.
func (g *Gate) Admit(code string) error {
	f, err := os.OpenFile(g.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString("\n" + code); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	g.mu.Lock()
	g.codes[code] = struct{}{}
	g.mu.Unlock()
	return nil
}

// Len returns the number of currently valid codes.
func (g *Gate) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.codes)
}
