package gui

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/worldmap/internal/region"
	"github.com/appengine-ltd/worldmap/internal/regionsearch"
	uitheme "github.com/appengine-ltd/worldmap/internal/ui/theme"
)

const (
	layoutPadding = 12
	layoutGap     = 10
	sidebarWidth  = 340
	sidebarHeader = 44
	statusHeight  = 46
	rangeValueW   = 64
	detailWidth   = 560
	detailRowH    = 40
)

type mapLayout struct {
	Map        rl.Rectangle
	Sidebar    rl.Rectangle
	Search     rl.Rectangle
	List       rl.Rectangle
	LoadMore   rl.Rectangle
	RangeMinus rl.Rectangle
	RangeValue rl.Rectangle
	RangePlus  rl.Rectangle
	RangeApply rl.Rectangle
	Create     rl.Rectangle
	Status     rl.Rectangle
}

// mapScreenLayout splits the window into the map on the left and the
// sidebar on the right. The sidebar stacks from both ends; the region list
// takes whatever height remains.
func mapScreenLayout(width, height int32) mapLayout {
	pad := float32(layoutPadding)
	gap := float32(layoutGap)
	outerH := float32(height) - pad*2

	sidebar := rl.NewRectangle(float32(width)-pad-sidebarWidth, pad, sidebarWidth, outerH)
	mapW := sidebar.X - gap - pad
	if mapW < 0 {
		mapW = 0
	}
	m := mapLayout{
		Map:     rl.NewRectangle(pad, pad, mapW, outerH),
		Sidebar: sidebar,
	}

	innerX := sidebar.X + spaceM
	innerW := sidebar.Width - spaceM*2
	rowH := uitheme.ButtonHeight

	m.Search = rl.NewRectangle(innerX, sidebar.Y+sidebarHeader, innerW, uitheme.InputHeight)

	bottom := sidebar.Y + sidebar.Height - spaceM
	m.Status = rl.NewRectangle(innerX, bottom-statusHeight, innerW, statusHeight)
	m.Create = rl.NewRectangle(innerX, m.Status.Y-gap-rowH, innerW, rowH)

	rangeY := m.Create.Y - gap - rowH
	m.RangeMinus = rl.NewRectangle(innerX, rangeY, rowH, rowH)
	m.RangeValue = rl.NewRectangle(m.RangeMinus.X+rowH+spaceXS, rangeY, rangeValueW, rowH)
	m.RangePlus = rl.NewRectangle(m.RangeValue.X+rangeValueW+spaceXS, rangeY, rowH, rowH)
	applyX := m.RangePlus.X + rowH + spaceXS
	m.RangeApply = rl.NewRectangle(applyX, rangeY, innerX+innerW-applyX, rowH)

	m.LoadMore = rl.NewRectangle(innerX, rangeY-gap-rowH, innerW, rowH)

	listY := m.Search.Y + m.Search.Height + gap
	listH := m.LoadMore.Y - gap - listY
	if listH < 0 {
		listH = 0
	}
	m.List = rl.NewRectangle(innerX, listY, innerW, listH)
	return m
}

func listCapacity(list rl.Rectangle) int {
	n := int(list.Height / uitheme.RowHeight)
	if n < 0 {
		return 0
	}
	return n
}

// listRowAt maps a y position inside the list to an entry index, or -1.
func listRowAt(list rl.Rectangle, y float32, scroll, count int) int {
	if y < list.Y || y >= list.Y+list.Height {
		return -1
	}
	i := scroll + int((y-list.Y)/uitheme.RowHeight)
	if i < 0 || i >= count {
		return -1
	}
	return i
}

func clampScroll(scroll, count, visible int) int {
	maxScroll := count - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	return clampInt(scroll, 0, maxScroll)
}

type detailLayout struct {
	Panel   rl.Rectangle
	Rows    [4]rl.Rectangle
	Save    rl.Rectangle
	ShowMap rl.Rectangle
	Delete  rl.Rectangle
	Back    rl.Rectangle
	Status  rl.Rectangle
}

func detailScreenLayout(width, height int32) detailLayout {
	panelH := float32(sidebarHeader) + 4*detailRowH + layoutGap*3 + uitheme.ButtonHeight*2 + statusHeight + spaceL + 22
	w := float32(detailWidth)
	if maxW := float32(width) - layoutPadding*2; w > maxW {
		w = maxW
	}
	panel := rl.NewRectangle((float32(width)-w)/2, (float32(height)-panelH)/2, w, panelH)
	if panel.Y < layoutPadding {
		panel.Y = layoutPadding
	}

	d := detailLayout{Panel: panel}
	innerX := panel.X + spaceL
	innerW := panel.Width - spaceL*2
	y := panel.Y + sidebarHeader + spaceS
	for i := range d.Rows {
		d.Rows[i] = rl.NewRectangle(innerX, y, innerW, detailRowH)
		y += detailRowH
	}
	y += layoutGap
	half := (innerW - layoutGap) / 2
	d.Save = rl.NewRectangle(innerX, y, half, uitheme.ButtonHeight)
	d.ShowMap = rl.NewRectangle(innerX+half+layoutGap, y, half, uitheme.ButtonHeight)
	y += uitheme.ButtonHeight + layoutGap
	d.Delete = rl.NewRectangle(innerX, y, half, uitheme.ButtonHeight)
	d.Back = rl.NewRectangle(innerX+half+layoutGap, y, half, uitheme.ButtonHeight)
	y += uitheme.ButtonHeight + layoutGap
	d.Status = rl.NewRectangle(innerX, y, innerW, statusHeight)
	return d
}

// parseQuery splits "type:water north" style input into a name query and a
// type filter.
func parseQuery(raw string) (string, region.Type) {
	var name []string
	var t region.Type
	for _, field := range strings.Fields(raw) {
		if v, ok := strings.CutPrefix(strings.ToLower(field), "type:"); ok {
			t = region.ParseType(v)
			continue
		}
		name = append(name, field)
	}
	return strings.Join(name, " "), t
}

// sidebarEntries chooses what the list shows: server search results once a
// query has been submitted, otherwise loaded regions ranked against the text
// being typed, otherwise every loaded region.
func sidebarEntries(loaded, server []region.Region, submitted bool, query string) []region.Region {
	name, t := parseQuery(query)
	if submitted && strings.TrimSpace(query) != "" {
		return server
	}
	if name == "" && t == "" {
		return loaded
	}
	filtered := loaded
	if t != "" {
		filtered = make([]region.Region, 0, len(loaded))
		for _, r := range loaded {
			if r.Type == t {
				filtered = append(filtered, r)
			}
		}
	}
	if name == "" {
		return filtered
	}
	matches := regionsearch.Rank(filtered, name, 0)
	out := make([]region.Region, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Region)
	}
	return out
}

// cycleType steps through the known terrain types. An unknown type starts
// from the first known one.
func cycleType(current region.Type, delta int) region.Type {
	known := region.KnownTypes()
	idx := -1
	for i, t := range known {
		if t == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return known[0]
	}
	return known[wrapIndex(idx+delta, len(known))]
}

func wrapIndex(i int, size int) int {
	if size <= 0 {
		return 0
	}
	i %= size
	if i < 0 {
		i += size
	}
	return i
}

func clampInt(v int, min int, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func safeText(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// wrapLines breaks text on spaces so each line fits width. A single word
// wider than width gets a line to itself.
func wrapLines(text string, width int32, measure func(string) int32) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		next := line + " " + w
		if measure(next) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line = next
	}
	return append(lines, line)
}
