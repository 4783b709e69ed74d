// Package surrogate turns a detected sensitive value into a stable,
// deterministic replacement identifier (spec §4.4).
package surrogate

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Namespace is the fixed application namespace UUID every surrogate is
// derived from. It is a constant of this deployment, not a secret: changing
// it would change every surrogate identifier this pipeline has ever
// produced, breaking cross-document stability (spec §4.4 rationale).
var Namespace = uuid.MustParse("6ba7b814-9dad-11d1-80b4-00c04fd430c8")

// binding is the key a (original, category) pair maps to, after the
// case-folding spec §4.4/§9 requires.
type binding struct {
	original string
	category string
}

// Mapper is the process-local, cross-document surrogate registry (spec §3
// SurrogateBinding, §5 "the SurrogateMapper cache is the only state shared
// across documents within a process"). The zero value is ready to use; the
// cache is safe for concurrent reads and writes.
type Mapper struct {
	mu    sync.RWMutex
	cache map[binding]string
}

// NewMapper returns a ready-to-use Mapper.
func NewMapper() *Mapper {
	return &Mapper{cache: make(map[binding]string)}
}

// UUIDFor returns the deterministic surrogate identifier for (original,
// category): a version-5 (name-based, SHA-1) UUID computed from Namespace
// and lower(original)+"_"+category, in canonical hyphenated text form
// (spec §4.4). It is deterministic and idempotent within and across
// processes, and safe to call concurrently.
//
// Case-folding note (spec §9 open question): the key folds case with
// strings.ToLower, which is not full Unicode case-folding (no NFC
// normalisation pass). This is deliberate and documented rather than left
// implicit: two original values that differ only by a normalisation form
// the catalogue never produces (detections always come from the document's
// own normalised block text) will not collide in practice, and the simpler
// rule keeps the mapping trivially reproducible from either Go or any other
// language re-implementing the same scheme.
func (m *Mapper) UUIDFor(original, category string) string {
	key := binding{original: strings.ToLower(original), category: category}

	m.mu.RLock()
	if v, ok := m.cache[key]; ok {
		m.mu.RUnlock()
		return v
	}
	m.mu.RUnlock()

	name := key.original + "_" + key.category
	id := uuid.NewSHA1(Namespace, []byte(name)).String()

	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.cache[key]; ok {
		return v
	}
	m.cache[key] = id
	return id
}

// Bindings returns a snapshot of every (original, category) -> uuid
// binding produced so far, for ReportBuilder's ledger generation.
func (m *Mapper) Bindings() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.cache))
	for k, v := range m.cache {
		out[k.original+"\x00"+k.category] = v
	}
	return out
}
