package worldmap

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/appengine-ltd/worldmap/internal/region"
	"github.com/appengine-ltd/worldmap/internal/regionapi"
)

// fakeClient serves a fixed world. chunk returns every region within rng of
// the centre.
type fakeClient struct {
	mu      sync.Mutex
	world   []region.Region
	pages   map[int][]region.Region
	fail    map[string]error
	calls   []string
	created int
}

func newFakeClient(world ...region.Region) *fakeClient {
	return &fakeClient{world: world, pages: map[int][]region.Region{}, fail: map[string]error{}}
}

func (f *fakeClient) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.fail[call]
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) ListChunk(_ context.Context, x, y, rng int) ([]region.Region, error) {
	if err := f.record(fmt.Sprintf("chunk %d,%d,%d", x, y, rng)); err != nil {
		return nil, err
	}
	var out []region.Region
	for _, r := range f.world {
		if abs(r.X-x) <= rng && abs(r.Y-y) <= rng {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeClient) GetByID(_ context.Context, id string) (region.Region, error) {
	if err := f.record("get " + id); err != nil {
		return region.Region{}, err
	}
	for _, r := range f.world {
		if r.ID == id {
			return r, nil
		}
	}
	return region.Region{}, &regionapi.StatusError{StatusCode: 404, Status: "404 Not Found"}
}

func (f *fakeClient) ListPage(_ context.Context, pageNum, pageLimit int) ([]region.Region, error) {
	if err := f.record(fmt.Sprintf("page %d,%d", pageNum, pageLimit)); err != nil {
		return nil, err
	}
	return f.pages[pageNum], nil
}

func (f *fakeClient) ListByFilter(_ context.Context, flt regionapi.Filter) ([]region.Region, error) {
	if err := f.record("filter " + flt.Name); err != nil {
		return nil, err
	}
	return f.world, nil
}

func (f *fakeClient) Create(context.Context) (region.Region, error) {
	if err := f.record("create"); err != nil {
		return region.Region{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created++
	return region.Region{ID: fmt.Sprintf("new-%d", f.created)}, nil
}

func (f *fakeClient) Update(_ context.Context, r region.Region, id string) (region.Region, error) {
	if err := f.record("update " + id); err != nil {
		return region.Region{}, err
	}
	return r, nil
}

func (f *fakeClient) DeleteByID(_ context.Context, id string) error {
	return f.record("delete " + id)
}

func (f *fakeClient) DeleteAll(context.Context) error {
	return f.record("delete-all")
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

var errBoom = errors.New("boom")

func syncRunner(job func()) { job() }

// heldRunner keeps jobs until the test releases them, in any order.
type heldRunner struct {
	jobs []func()
}

func (h *heldRunner) run(job func()) { h.jobs = append(h.jobs, job) }

func (h *heldRunner) release(i int) {
	job := h.jobs[i]
	h.jobs[i] = func() {}
	job()
}

func (h *heldRunner) releaseAll() {
	for len(h.jobs) > 0 {
		job := h.jobs[0]
		h.jobs = h.jobs[1:]
		job()
	}
}

func countKind(objs []Object, kind ObjectKind) int {
	n := 0
	for _, o := range objs {
		if o.Kind == kind {
			n++
		}
	}
	return n
}

func findKind(objs []Object, kind ObjectKind) (Object, bool) {
	for _, o := range objs {
		if o.Kind == kind {
			return o, true
		}
	}
	return Object{}, false
}
