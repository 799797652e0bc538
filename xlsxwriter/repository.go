package xlsxwriter

import "sync"

// StyleRepository canonicalizes styles by structural hash: two styles built
// independently with identical content resolve to one shared instance.
//
// A repository is safe for concurrent use; lookups are guarded by one
// coarse lock, favouring simplicity over parallelism since deduplication is
// not latency-critical. Pass a repository explicitly where test isolation
// or reentrancy matters; the package-level DefaultRepository mirrors the
// legacy process-wide cache.
type StyleRepository struct {
	mu     sync.Mutex
	styles map[uint64]*Style
}

// NewStyleRepository creates an empty repository.
func NewStyleRepository() *StyleRepository {
	return &StyleRepository{styles: make(map[uint64]*Style)}
}

// AddStyle looks the style up by structural hash, inserting it if absent,
// and returns the stored canonical instance. The returned style must not be
// mutated.
func (r *StyleRepository) AddStyle(s *Style) *Style {
	key := s.Hash()
	r.mu.Lock()
	defer r.mu.Unlock()
	if canonical, ok := r.styles[key]; ok {
		return canonical
	}
	canonical := s.Normalize()
	r.styles[key] = canonical
	return canonical
}

// StyleByHash returns the canonical style stored under the given structural
// hash. A miss is a StyleError: it signals an internal table or reference
// inconsistency, not bad user input.
func (r *StyleRepository) StyleByHash(hash uint64) (*Style, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.styles[hash]; ok {
		return s, nil
	}
	return nil, NewStyleError("no style registered under hash %#x", hash)
}

// Len returns the number of canonical styles held.
func (r *StyleRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.styles)
}

// Flush clears the cache. Call between independent save operations or test
// runs that must not observe each other's canonical instances.
func (r *StyleRepository) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.styles = make(map[uint64]*Style)
}

// DefaultRepository is the shared process-wide style cache used by
// NewWorkbook. Use NewStyleRepository plus NewWorkbookWithRepository for
// isolated caches.
var DefaultRepository = NewStyleRepository()
