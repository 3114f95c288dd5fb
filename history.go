package tinysh

// historyRing is a fixed-capacity circular log of executed lines. head is
// the next slot to write and count grows up to HistorySize, after which the
// oldest entry is silently evicted. A separate browse cursor (logical index
// from the oldest entry, or -1 when not browsing) and a saved snapshot of
// the live line support Up/Down traversal without corrupting the log.
type historyRing struct {
	lines [HistorySize][LineBufSize]byte
	lens  [HistorySize]int
	head  int
	count int

	browse   int // -1 = not browsing, else 0..count-1 (0 = oldest)
	saved    [LineBufSize]byte
	savedLen int
}

func (h *historyRing) reset() {
	h.head = 0
	h.count = 0
	h.browse = -1
}

// slot maps a logical index (0 = oldest) to an array slot.
func (h *historyRing) slot(logical int) int {
	return (h.head + HistorySize - h.count + logical) % HistorySize
}

// add appends line to the log. Empty lines and duplicates of the most
// recent entry are suppressed. Lines longer than the line buffer are
// truncated to fit.
func (h *historyRing) add(line string) {
	if line == "" {
		return
	}
	if len(line) > LineBufSize-1 {
		line = line[:LineBufSize-1]
	}
	if h.count > 0 {
		last := h.slot(h.count - 1)
		if string(h.lines[last][:h.lens[last]]) == line {
			return
		}
	}
	n := copy(h.lines[h.head][:], line)
	h.lens[h.head] = n
	h.head = (h.head + 1) % HistorySize
	if h.count < HistorySize {
		h.count++
	}
}

// entry returns the stored line at logical index (0 = oldest).
func (h *historyRing) entry(index int) (string, bool) {
	if index < 0 || index >= h.count {
		return "", false
	}
	s := h.slot(index)
	return string(h.lines[s][:h.lens[s]]), true
}

// entryBytes is entry without the string copy, for the editor's hot path.
func (h *historyRing) entryBytes(index int) []byte {
	s := h.slot(index)
	return h.lines[s][:h.lens[s]]
}

// prev steps the browse cursor toward older entries. The first call
// snapshots the live line and lands on the most recent entry; at the oldest
// entry it reports false and moves nothing.
func (h *historyRing) prev(live []byte) ([]byte, bool) {
	if h.count == 0 {
		return nil, false
	}
	if h.browse == -1 {
		h.savedLen = copy(h.saved[:], live)
		h.browse = h.count - 1
	} else if h.browse > 0 {
		h.browse--
	} else {
		return nil, false
	}
	return h.entryBytes(h.browse), true
}

// next steps the browse cursor toward newer entries. Stepping past the
// newest entry restores the saved live line and exits browse mode.
func (h *historyRing) next() ([]byte, bool) {
	if h.browse == -1 {
		return nil, false
	}
	if h.browse < h.count-1 {
		h.browse++
		return h.entryBytes(h.browse), true
	}
	h.browse = -1
	return h.saved[:h.savedLen], true
}

// stopBrowsing abandons any traversal in progress, keeping the live line.
func (h *historyRing) stopBrowsing() {
	h.browse = -1
}
