// internal/app/features/uploads/progress.go
package uploads

import (
	"io"
	"sync"
)

// progressState is the reported state of one upload.
type progressState struct {
	Received int64 `json:"received"`
	Total    int64 `json:"total"`
	Done     bool  `json:"done"`
}

// Percent returns completion as 0-100. Unknown totals report 0 until
// done.
func (s progressState) Percent() int {
	if s.Done {
		return 100
	}
	if s.Total <= 0 {
		return 0
	}
	p := int(s.Received * 100 / s.Total)
	if p > 100 {
		p = 100
	}
	return p
}

// progressTracker records upload progress keyed by a client-chosen
// upload id. Reported byte counts only ever grow: when a dropped
// connection forces the client to retry an upload under the same id,
// the restarted stream begins at zero internally but the tracker keeps
// reporting the high-water mark, so the progress bar never runs
// backwards.
type progressTracker struct {
	mu      sync.Mutex
	uploads map[string]*progressState
}

func newProgressTracker() *progressTracker {
	return &progressTracker{uploads: make(map[string]*progressState)}
}

// Start registers an upload attempt. The total sticks at the largest
// value seen, and a restart never lowers the received count.
func (t *progressTracker) Start(id string, total int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.uploads[id]
	if !ok {
		t.uploads[id] = &progressState{Total: total}
		return
	}
	if total > s.Total {
		s.Total = total
	}
}

// Advance raises the received count to received if it is higher than
// the current high-water mark.
func (t *progressTracker) Advance(id string, received int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s, ok := t.uploads[id]; ok && received > s.Received {
		s.Received = received
	}
}

// Finish marks the upload complete.
func (t *progressTracker) Finish(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s, ok := t.uploads[id]; ok {
		s.Done = true
		if s.Total > 0 {
			s.Received = s.Total
		}
	}
}

// Get returns the current state for an upload id.
func (t *progressTracker) Get(id string) (progressState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.uploads[id]
	if !ok {
		return progressState{}, false
	}
	return *s, true
}

// Forget drops a finished upload's state.
func (t *progressTracker) Forget(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.uploads, id)
}

// progressReader counts bytes as the blob streams through and feeds the
// tracker.
type progressReader struct {
	r       io.Reader
	id      string
	tracker *progressTracker
	read    int64
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	if n > 0 {
		pr.read += int64(n)
		pr.tracker.Advance(pr.id, pr.read)
	}
	return n, err
}
