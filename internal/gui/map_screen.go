package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/worldmap/internal/region"
	uitheme "github.com/appengine-ltd/worldmap/internal/ui/theme"
	"github.com/appengine-ltd/worldmap/internal/worldmap"
)

const searchMaxLen = 48

func (ui *mapUI) updateMap() {
	layout := mapScreenLayout(ui.width, ui.height)
	scene := ui.page.Scene()
	scene.Resize(layout.Map.Width, layout.Map.Height)

	ui.updateMapPointer(layout, scene)
	ui.updateSidebar(layout)

	if !HotkeysEnabled(ui) {
		return
	}
	if ui.side.ConfirmDeleteAll && cancelsConfirm(rl.GetKeyPressed()) {
		ui.side.ConfirmDeleteAll = false
		ui.side.Notice = ""
	}
	switch {
	case rl.IsKeyPressed(rl.KeyLeftBracket):
		ui.adjustRange(-1)
	case rl.IsKeyPressed(rl.KeyRightBracket):
		ui.adjustRange(1)
	case rl.IsKeyPressed(rl.KeyEnter):
		ui.applyRange()
	case rl.IsKeyPressed(rl.KeyL):
		ui.page.LoadNextPage()
	case rl.IsKeyPressed(rl.KeyN):
		ui.createRegion()
	case rl.IsKeyPressed(rl.KeyR):
		scene.Refresh()
	case ModifiedPressedKey(rl.KeyDelete):
		ui.deleteAll()
	case rl.IsKeyPressed(rl.KeySlash):
		ui.side.SearchFocused = true
	case rl.IsKeyPressed(rl.KeyEscape):
		if _, ok := scene.Overlay(); ok {
			scene.ClearSelection()
			return
		}
		ui.quit = true
	}
}

// updateMapPointer feeds the mouse to the scene in map-local coordinates.
// A drag that leaves the map keeps panning until the button is released.
func (ui *mapUI) updateMapPointer(layout mapLayout, scene *worldmap.Scene) {
	mouse := rl.GetMousePosition()
	local := worldmap.Point{X: mouse.X - layout.Map.X, Y: mouse.Y - layout.Map.Y}
	inMap := rl.CheckCollisionPointRec(mouse, layout.Map)

	if inMap && rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		ui.side.SearchFocused = false
		ui.dragging = true
		scene.PointerDown(local)
	}
	if (inMap || ui.dragging) && local != ui.lastLocal {
		scene.PointerMove(local)
	}
	if ui.dragging && rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		ui.dragging = false
		scene.PointerUp(local)
	}
	if ui.overMap && !inMap && !ui.dragging {
		scene.PointerLeave()
	}
	ui.overMap = inMap
	ui.lastLocal = local
}

func (ui *mapUI) updateSidebar(layout mapLayout) {
	mouse := rl.GetMousePosition()

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && rl.CheckCollisionPointRec(mouse, layout.Sidebar) {
		ui.side.SearchFocused = rl.CheckCollisionPointRec(mouse, layout.Search)
	}
	if ui.side.SearchFocused {
		before := ui.side.Query
		captureTextInput(&ui.side.Query, searchMaxLen)
		if ui.side.Query != before {
			ui.side.Submitted = false
			ui.side.Scroll = 0
		}
		switch {
		case rl.IsKeyPressed(rl.KeyEnter):
			ui.submitSearch()
		case rl.IsKeyPressed(rl.KeyEscape):
			ui.side.SearchFocused = false
		}
	}

	entries := ui.listEntries()
	visible := listCapacity(layout.List)
	if rl.CheckCollisionPointRec(mouse, layout.List) {
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			ui.side.Scroll -= int(wheel)
		}
		if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
			if i := listRowAt(layout.List, mouse.Y, ui.side.Scroll, len(entries)); i >= 0 {
				ui.side.Notice = ""
				ui.page.GoToRegion(entries[i])
			}
		}
	}
	ui.side.Scroll = clampScroll(ui.side.Scroll, len(entries), visible)

	switch {
	case clicked(layout.LoadMore):
		ui.page.LoadNextPage()
	case clicked(layout.RangeMinus):
		ui.adjustRange(-1)
	case clicked(layout.RangePlus):
		ui.adjustRange(1)
	case clicked(layout.RangeApply):
		ui.applyRange()
	case clicked(layout.Create):
		ui.createRegion()
	}
}

func (ui *mapUI) listEntries() []region.Region {
	return sidebarEntries(ui.page.Regions(), ui.page.SearchResults(), ui.side.Submitted, ui.side.Query)
}

func (ui *mapUI) submitSearch() {
	name, t := parseQuery(ui.side.Query)
	ui.page.Search(name, t)
	ui.side.Submitted = name != "" || t != ""
	ui.side.Scroll = 0
	ui.side.Notice = ""
}

func (ui *mapUI) adjustRange(delta int) {
	next := ui.page.Range() + delta
	if err := ui.page.SetRange(next); err != nil {
		ui.side.Notice = fmt.Sprintf("Range stays at %d (%d-%d)", ui.page.Range(), worldmap.MinRange, worldmap.MaxRange)
		return
	}
	ui.side.Notice = ""
}

func (ui *mapUI) applyRange() {
	if _, ok := ui.page.Selected(); !ok {
		ui.side.Notice = "Pick a region from the list first"
		return
	}
	ui.side.Notice = ""
	ui.page.ApplyRange()
}

func cancelsConfirm(key int32) bool {
	switch key {
	case 0, rl.KeyDelete, rl.KeyLeftControl, rl.KeyRightControl, rl.KeyLeftShift, rl.KeyRightShift:
		return false
	}
	return true
}

// deleteAll needs the chord twice in a row.
func (ui *mapUI) deleteAll() {
	if !ui.side.ConfirmDeleteAll {
		ui.side.ConfirmDeleteAll = true
		ui.side.Notice = "Press Ctrl+Delete again to delete every region"
		return
	}
	ui.side.ConfirmDeleteAll = false
	ui.side.Notice = ""
	ui.page.DeleteAllRegions()
}

func (ui *mapUI) createRegion() {
	ui.side.Notice = ""
	ui.page.CreateRegion(func(r region.Region) {
		ui.openDetail(r.ID)
	})
}

func (ui *mapUI) drawMap() {
	layout := mapScreenLayout(ui.width, ui.height)
	scene := ui.page.Scene()

	rl.DrawRectangleRec(layout.Map, AppTheme.MapBackground)
	rl.BeginScissorMode(int32(layout.Map.X), int32(layout.Map.Y), int32(layout.Map.Width), int32(layout.Map.Height))
	rl.BeginMode2D(sceneCamera(scene.View(), layout.Map))
	for _, obj := range scene.Objects() {
		drawSceneObject(obj)
	}
	rl.EndMode2D()
	rl.EndScissorMode()
	rl.DrawRectangleLinesEx(layout.Map, 1, AppTheme.Border)

	if scene.Loading() {
		DrawHintText("Loading regions...", int32(layout.Map.X+spaceS), int32(layout.Map.Y+spaceS))
	} else if scene.Tiles().Len() == 0 {
		DrawHintText("Pick a region from the list to show the map", int32(layout.Map.X+spaceS), int32(layout.Map.Y+spaceS))
	}
	if tile, ok := scene.Hovered(); ok {
		DrawHintText(tile.Region.Label(), int32(layout.Map.X+spaceS), int32(layout.Map.Y+layout.Map.Height-spaceS-float32(typeScale.Small)))
	}

	ui.drawSidebar(layout)
}

// sceneCamera maps the viewport onto a map rectangle: the viewport centre
// (scroll + half size) lands on the rectangle's centre.
func sceneCamera(view worldmap.Viewport, area rl.Rectangle) rl.Camera2D {
	return rl.Camera2D{
		Offset: rl.NewVector2(area.X+view.Width/2, area.Y+view.Height/2),
		Target: rl.NewVector2(view.ScrollX+view.Width/2, view.ScrollY+view.Height/2),
		Zoom:   view.Zoom,
	}
}

func toRect(r worldmap.Rect) rl.Rectangle {
	return rl.NewRectangle(r.X, r.Y, r.W, r.H)
}

func drawSceneObject(obj worldmap.Object) {
	rect := toRect(obj.Bounds)
	switch obj.Kind {
	case worldmap.KindTile:
		uitheme.DrawTile(obj.Frame, rect, obj.Hovered)
	case worldmap.KindMarker:
		rl.DrawRectangleRec(rect, AppTheme.Marker)
	case worldmap.KindInfoBackground:
		rl.DrawRectangleRec(rect, AppTheme.InfoPanel)
	case worldmap.KindInfoButton:
		rl.DrawRectangleRec(rect, AppTheme.InfoButton)
		drawWorldLines(obj.Lines, rect.X, rect.Y)
	case worldmap.KindInfoText:
		drawWorldLines(obj.Lines, rect.X, rect.Y)
	}
}

func drawWorldLines(lines []string, x, y float32) {
	lineH := float32(textLineHeight(typeScale.Map))
	for i, line := range lines {
		drawTextF(line, x, y+float32(i)*lineH, typeScale.Map, AppTheme.InfoText)
	}
}

func (ui *mapUI) drawSidebar(layout mapLayout) {
	DrawPanel(layout.Sidebar, "Regions", false)

	DrawInputField(layout.Search, ui.side.Query, "Search (/)  e.g. type:water bay", ui.side.SearchFocused)

	entries := ui.listEntries()
	visible := listCapacity(layout.List)
	selected, hasSelected := ui.page.Selected()
	mouse := rl.GetMousePosition()
	hover := -1
	if rl.CheckCollisionPointRec(mouse, layout.List) {
		hover = listRowAt(layout.List, mouse.Y, ui.side.Scroll, len(entries))
	}
	for row := 0; row < visible; row++ {
		i := ui.side.Scroll + row
		if i >= len(entries) {
			break
		}
		r := entries[i]
		state := listStateNormal
		switch {
		case hasSelected && r.ID == selected.ID:
			state = listStateSelected
		case i == hover:
			state = listStateHovered
		}
		rect := rl.NewRectangle(layout.List.X, layout.List.Y+float32(row)*uitheme.RowHeight, layout.List.Width, uitheme.RowHeight-2)
		DrawListItem(rect, state, safeText(r.Name), fmt.Sprintf("%s (%d,%d)", safeText(string(r.Type)), r.X, r.Y))
	}
	if len(entries) == 0 {
		DrawHintText("No regions", int32(layout.List.X+spaceS), int32(layout.List.Y+spaceS))
	}

	list := ui.page.List()
	loadLabel := fmt.Sprintf("Load page %d (L)", list.NextPage())
	if list.Loading() {
		loadLabel = "Loading..."
	}
	DrawButton(layout.LoadMore, loadLabel, !list.Loading())

	DrawButton(layout.RangeMinus, "-", ui.page.Range() > worldmap.MinRange)
	rl.DrawRectangleRec(layout.RangeValue, uitheme.DisabledPanel)
	value := fmt.Sprintf("%d", ui.page.Range())
	vw := measureText(value, typeScale.Body)
	drawText(value, int32(layout.RangeValue.X+(layout.RangeValue.Width-float32(vw))/2), int32(layout.RangeValue.Y+(layout.RangeValue.Height-float32(typeScale.Body))/2), typeScale.Body, AppTheme.TextPrimary)
	DrawButton(layout.RangePlus, "+", ui.page.Range() < worldmap.MaxRange)
	DrawButton(layout.RangeApply, "Apply range", hasSelected)

	DrawButton(layout.Create, "New region (N)", true)

	msg, isErr := ui.statusLine()
	clr := AppTheme.TextSecondary
	if isErr {
		clr = AppTheme.Danger
	}
	DrawDivider(layout.Status.X, layout.Status.Y-spaceXS/2, layout.Status.X+layout.Status.Width, layout.Status.Y-spaceXS/2)
	for i, line := range wrapText(msg, typeScale.Small, int32(layout.Status.Width)) {
		if i == 2 {
			break
		}
		drawText(line, int32(layout.Status.X), int32(layout.Status.Y)+int32(i)*textLineHeight(typeScale.Small)+4, typeScale.Small, clr)
	}
}
