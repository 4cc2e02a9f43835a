package switcher

import (
	"strconv"
	"sync"
	"time"
)

// idSource hands out millisecond timestamps, bumped forward when two
// requests land in the same millisecond.
type idSource struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

var processIDs = &idSource{now: time.Now}

func (s *idSource) next() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms := s.now().UnixMilli()
	if ms <= s.last {
		ms = s.last + 1
	}
	s.last = ms
	return strconv.FormatInt(ms, 10)
}
