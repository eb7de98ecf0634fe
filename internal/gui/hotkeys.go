package gui

import rl "github.com/gen2brain/raylib-go/raylib"

// HotkeysEnabled is false while a text field owns the keyboard.
func HotkeysEnabled(ui *mapUI) bool {
	if ui == nil {
		return true
	}
	switch ui.screen {
	case screenMap:
		return !ui.side.SearchFocused
	case screenDetail:
		return !ui.detail.EditingName
	}
	return true
}

func ModifiedPressedKey(key int32) bool {
	return (shiftDown() || ctrlDown()) && rl.IsKeyPressed(key)
}

func shiftDown() bool {
	return rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
}

func ctrlDown() bool {
	return rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
}

func captureTextInput(target *string, maxLen int) {
	for ch := rl.GetCharPressed(); ch > 0; ch = rl.GetCharPressed() {
		if ch >= 32 && ch <= 126 && len(*target) < maxLen {
			*target += string(rune(ch))
		}
	}
	if (rl.IsKeyPressed(rl.KeyBackspace) || rl.IsKeyPressedRepeat(rl.KeyBackspace)) && len(*target) > 0 {
		*target = (*target)[:len(*target)-1]
	}
}
