package gui

import (
	"fmt"
	"strconv"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/worldmap/internal/region"
)

const nameMaxLen = 40

const (
	detailRowName = iota
	detailRowType
	detailRowX
	detailRowY
)

type detailState struct {
	ID      string
	Region  region.Region
	Saved   region.Region
	Loaded  bool
	Loading bool
	Err     error

	EditingName   bool
	NameBuffer    string
	ConfirmDelete bool
	Status        string
	Cursor        int
}

func (d *detailState) load(r region.Region) {
	d.Region = r
	d.Saved = r
	d.Loaded = true
	d.Loading = false
	d.Err = nil
	d.NameBuffer = r.Name
}

func (d *detailState) dirty() bool {
	return d.Loaded && d.Region != d.Saved
}

func (d *detailState) moveCursor(delta int) {
	d.Cursor = wrapIndex(d.Cursor+delta, len(detailLayout{}.Rows))
}

// adjust changes the field under the cursor: the type cycles, coordinates
// step by one.
func (d *detailState) adjust(delta int) {
	if !d.Loaded {
		return
	}
	switch d.Cursor {
	case detailRowType:
		d.Region.Type = cycleType(d.Region.Type, delta)
	case detailRowX:
		d.Region.X += delta
	case detailRowY:
		d.Region.Y += delta
	default:
		return
	}
	d.ConfirmDelete = false
	d.Status = ""
}

func (d *detailState) beginNameEdit() {
	if !d.Loaded {
		return
	}
	d.Cursor = detailRowName
	d.EditingName = true
	d.NameBuffer = d.Region.Name
}

func (d *detailState) commitName() {
	d.EditingName = false
	if d.NameBuffer != d.Region.Name {
		d.Region.Name = d.NameBuffer
		d.Status = ""
	}
}

func (d *detailState) cancelNameEdit() {
	d.EditingName = false
	d.NameBuffer = d.Region.Name
}

// openDetail switches to the detail screen and loads a fresh copy of the
// region. A response for a region the user has already left is dropped.
func (ui *mapUI) openDetail(id string) {
	ui.screen = screenDetail
	ui.side.SearchFocused = false
	ui.detail = detailState{ID: id, Loading: true}
	ui.page.FetchRegion(id, func(r region.Region, err error) {
		if ui.screen != screenDetail || ui.detail.ID != id {
			return
		}
		if err != nil {
			ui.detail.Loading = false
			ui.detail.Err = err
			return
		}
		if r.ID == "" {
			r.ID = id
		}
		ui.detail.load(r)
	})
}

func (ui *mapUI) closeDetail() {
	ui.screen = screenMap
	ui.detail = detailState{}
}

func (ui *mapUI) saveDetail() {
	d := &ui.detail
	if !d.Loaded {
		return
	}
	if d.EditingName {
		d.commitName()
	}
	id := d.ID
	d.Status = "Saving..."
	ui.page.SaveRegion(d.Region, func(saved region.Region) {
		if ui.detail.ID != id {
			return
		}
		ui.detail.load(saved)
		ui.detail.Status = "Saved"
	})
}

func (ui *mapUI) deleteDetail() {
	d := &ui.detail
	if !d.Loaded {
		return
	}
	if !d.ConfirmDelete {
		d.ConfirmDelete = true
		d.Status = "Delete again to confirm"
		return
	}
	id := d.ID
	d.ConfirmDelete = false
	d.Status = "Deleting..."
	ui.page.DeleteRegion(id, func() {
		if ui.detail.ID == id {
			ui.closeDetail()
		}
	})
}

func (ui *mapUI) showDetailOnMap() {
	if !ui.detail.Loaded {
		return
	}
	r := ui.detail.Region
	ui.closeDetail()
	ui.page.GoToRegion(r)
}

func (ui *mapUI) updateDetail() {
	layout := detailScreenLayout(ui.width, ui.height)
	d := &ui.detail

	wasEditing := d.EditingName
	if d.EditingName {
		captureTextInput(&d.NameBuffer, nameMaxLen)
		switch {
		case rl.IsKeyPressed(rl.KeyEnter):
			d.commitName()
		case rl.IsKeyPressed(rl.KeyEscape):
			d.cancelNameEdit()
		}
	}

	for i, row := range layout.Rows {
		if !clicked(row) || !d.Loaded {
			continue
		}
		if d.EditingName && i != detailRowName {
			d.commitName()
		}
		d.Cursor = i
		if i == detailRowName && !d.EditingName {
			d.beginNameEdit()
		}
	}

	switch {
	case clicked(layout.Save):
		ui.saveDetail()
		return
	case clicked(layout.ShowMap):
		ui.showDetailOnMap()
		return
	case clicked(layout.Delete):
		ui.deleteDetail()
		return
	case clicked(layout.Back):
		ui.closeDetail()
		return
	}

	if wasEditing || !HotkeysEnabled(ui) {
		return
	}
	switch {
	case ModifiedPressedKey(rl.KeyS):
		ui.saveDetail()
	case rl.IsKeyPressed(rl.KeyUp):
		d.moveCursor(-1)
	case rl.IsKeyPressed(rl.KeyDown):
		d.moveCursor(1)
	case rl.IsKeyPressed(rl.KeyLeft):
		d.adjust(-1)
	case rl.IsKeyPressed(rl.KeyRight):
		d.adjust(1)
	case rl.IsKeyPressed(rl.KeyEnter):
		if d.Cursor == detailRowName {
			d.beginNameEdit()
		}
	case rl.IsKeyPressed(rl.KeyM):
		ui.showDetailOnMap()
	case rl.IsKeyPressed(rl.KeyDelete):
		ui.deleteDetail()
	case rl.IsKeyPressed(rl.KeyEscape), rl.IsKeyPressed(rl.KeyBackspace):
		ui.closeDetail()
	}
}

func (ui *mapUI) drawDetail() {
	layout := detailScreenLayout(ui.width, ui.height)
	d := ui.detail

	title := "Region " + safeText(d.ID)
	if d.dirty() {
		title += " *"
	}
	DrawPanel(layout.Panel, title, true)

	switch {
	case d.Loading:
		DrawHintText("Loading...", int32(layout.Rows[0].X), int32(layout.Rows[0].Y+spaceS))
	case d.Err != nil:
		for i, line := range wrapText("Failed to load region: "+d.Err.Error(), typeScale.Body, int32(layout.Rows[0].Width)) {
			drawText(line, int32(layout.Rows[0].X), int32(layout.Rows[0].Y)+int32(i)*textLineHeight(typeScale.Body), typeScale.Body, AppTheme.Danger)
		}
	default:
		ui.drawDetailRows(layout, d)
	}

	DrawButton(layout.Save, "Save (Ctrl+S)", d.Loaded)
	DrawButton(layout.ShowMap, "Show on map (M)", d.Loaded)
	if d.ConfirmDelete {
		DrawDangerButton(layout.Delete, "Confirm delete")
	} else {
		DrawButton(layout.Delete, "Delete (Del)", d.Loaded)
	}
	DrawButton(layout.Back, "Back (Esc)", true)

	msg, isErr := d.Status, false
	if pageMsg, err := ui.page.Status(); err != nil {
		msg, isErr = pageMsg, true
	}
	clr := AppTheme.TextSecondary
	switch {
	case isErr:
		clr = AppTheme.Danger
	case d.ConfirmDelete:
		clr = AppTheme.Warning
	}
	for i, line := range wrapText(msg, typeScale.Small, int32(layout.Status.Width)) {
		if i == 2 {
			break
		}
		drawText(line, int32(layout.Status.X), int32(layout.Status.Y)+int32(i)*textLineHeight(typeScale.Small), typeScale.Small, clr)
	}
	DrawHintText("Up/Down pick a field, Left/Right change it, Enter edits the name", int32(layout.Panel.X+spaceL), int32(layout.Panel.Y+layout.Panel.Height-spaceS-float32(typeScale.Small)))
}

func (ui *mapUI) drawDetailRows(layout detailLayout, d detailState) {
	values := [4]string{
		d.Region.Name,
		"< " + safeText(string(d.Region.Type)) + " >",
		"< " + strconv.Itoa(d.Region.X) + " >",
		"< " + strconv.Itoa(d.Region.Y) + " >",
	}
	labels := [4]string{"Name", "Type", "X", "Y"}

	for i, row := range layout.Rows {
		if i == d.Cursor {
			rl.DrawRectangleRec(row, rl.Fade(AppTheme.Accent, 0.12))
		}
		y := int32(row.Y + (row.Height-float32(typeScale.Body))/2)
		x := int32(row.X + spaceS)
		if i == detailRowName {
			field := rl.NewRectangle(row.X+110, row.Y+3, row.Width-110-spaceS, row.Height-6)
			drawText(labels[i], x, y, typeScale.Body, AppTheme.TextSecondary)
			text := values[i]
			if d.EditingName {
				text = d.NameBuffer
			}
			DrawInputField(field, text, "(unnamed)", d.EditingName)
			continue
		}
		DrawLabelValue(labels[i], values[i], x, y, AppTheme.TextPrimary)
	}
	if d.dirty() {
		DrawHintText(fmt.Sprintf("Unsaved changes to %s", d.Saved.Label()), int32(layout.Rows[3].X+spaceS), int32(layout.Rows[3].Y+layout.Rows[3].Height+2))
	}
}
