package session

import "bytes"

// markerScanner reports when a marker string appears in a byte stream that
// arrives in arbitrary chunks.
type markerScanner struct {
	marker []byte
	tail   []byte
	seen   bool
}

func newMarkerScanner(marker string) *markerScanner {
	return &markerScanner{marker: []byte(marker)}
}

// Feed consumes one chunk and returns true the first time the marker is
// complete. Later calls always return false.
func (s *markerScanner) Feed(chunk []byte) bool {
	if s.seen || len(s.marker) == 0 {
		return false
	}
	buf := append(s.tail, chunk...)
	if bytes.Contains(buf, s.marker) {
		s.seen = true
		s.tail = nil
		return true
	}
	// keep just enough to match a marker split across chunks
	keep := len(s.marker) - 1
	if len(buf) > keep {
		buf = buf[len(buf)-keep:]
	}
	s.tail = append(s.tail[:0:0], buf...)
	return false
}
