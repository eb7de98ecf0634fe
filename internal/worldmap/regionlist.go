package worldmap

import "github.com/appengine-ltd/worldmap/internal/region"

type pageResult struct {
	regions []region.Region
	failed  bool
}

// RegionList accumulates paged list responses. Pages are appended in page
// order even when their responses arrive out of order.
type RegionList struct {
	limit     int
	next      int
	applied   int
	inFlight  int
	exhausted bool
	pending   map[int]pageResult
	regions   []region.Region
}

func NewRegionList(limit int) *RegionList {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	return &RegionList{
		limit:   limit,
		next:    1,
		pending: make(map[int]pageResult),
	}
}

// Request reserves the next page number. The counter advances immediately
// so back-to-back requests never ask for the same page twice.
func (l *RegionList) Request() int {
	n := l.next
	l.next++
	l.inFlight++
	return n
}

func (l *RegionList) Deliver(page int, regions []region.Region) {
	l.settle(page, pageResult{regions: regions})
}

// Fail records a page that could not be fetched so later pages are not held
// back behind it.
func (l *RegionList) Fail(page int) {
	l.settle(page, pageResult{failed: true})
}

func (l *RegionList) settle(page int, res pageResult) {
	if page <= l.applied {
		return
	}
	if _, dup := l.pending[page]; dup {
		return
	}
	if l.inFlight > 0 {
		l.inFlight--
	}
	l.pending[page] = res
	for {
		next, ok := l.pending[l.applied+1]
		if !ok {
			return
		}
		delete(l.pending, l.applied+1)
		l.applied++
		if next.failed {
			continue
		}
		l.regions = append(l.regions, next.regions...)
		if len(next.regions) < l.limit {
			l.exhausted = true
		}
	}
}

func (l *RegionList) Regions() []region.Region {
	out := make([]region.Region, len(l.regions))
	copy(out, l.regions)
	return out
}

func (l *RegionList) Len() int { return len(l.regions) }

func (l *RegionList) Limit() int { return l.limit }

// NextPage is the page number the next Request will return.
func (l *RegionList) NextPage() int { return l.next }

func (l *RegionList) Loading() bool { return l.inFlight > 0 }

// Exhausted reports that a page came back shorter than the page limit.
func (l *RegionList) Exhausted() bool { return l.exhausted }

// Replace swaps the entry with the same ID, if present.
func (l *RegionList) Replace(r region.Region) bool {
	for i := range l.regions {
		if l.regions[i].ID == r.ID {
			l.regions[i] = r
			return true
		}
	}
	return false
}

func (l *RegionList) Remove(id string) bool {
	for i := range l.regions {
		if l.regions[i].ID == id {
			l.regions = append(l.regions[:i], l.regions[i+1:]...)
			return true
		}
	}
	return false
}

func (l *RegionList) Clear() {
	l.regions = nil
}
