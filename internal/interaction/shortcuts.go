package interaction

// Shortcut is one row of the keyboard reference.
type Shortcut struct {
	Keys        string
	Description string
}

// ShortcutGroup is a titled block of shortcuts.
type ShortcutGroup struct {
	Title     string
	Shortcuts []Shortcut
}

// Shortcuts is the reference shown in the help overlay and by the
// shortcuts command.
var Shortcuts = []ShortcutGroup{
	{
		Title: "Drawing Mode",
		Shortcuts: []Shortcut{
			{"Alt + F", "Toggle drawing mode on/off"},
			{"Click & Drag", "Draw a rectangle"},
			{"Alt (while drawing)", "Draw from center outward"},
			{"Shift (while drawing)", "Constrain to a square"},
			{"Cmd/Ctrl (while drawing)", "Lock to one axis"},
			{"Spacebar (while drawing)", "Move the rectangle instead of resizing"},
		},
	},
	{
		Title: "Rectangle Operations",
		Shortcuts: []Shortcut{
			{"Drag an edge or corner", "Resize a rectangle"},
			{"Alt + Drag", "Duplicate a rectangle"},
			{"Cmd/Ctrl + Drag", "Move a rectangle"},
			{"Cmd/Ctrl + Drag, then Alt", "Switch the move to a duplicate"},
			{"Shift (while moving)", "Lock movement to one axis"},
			{"Tab", "Cycle the rectangle color"},
			{"Delete / Backspace", "Remove the rectangle under the pointer"},
			{"U", "Restore the last removed rectangle"},
			{"Right-click + Drag", "Keep existing rectangles while drawing"},
		},
	},
	{
		Title: "Element Inspection",
		Shortcuts: []Shortcut{
			{"F (hold)", "Outline the element under the pointer"},
			{"Arrow Up", "Select the parent element"},
			{"Arrow Down", "Go back to the child element"},
			{"Arrow Left", "Select the previous sibling"},
			{"Arrow Right", "Select the next sibling"},
			{"Tab", "Cycle the rectangle color"},
		},
	},
	{
		Title: "General",
		Shortcuts: []Shortcut{
			{"?", "Toggle this shortcuts and settings panel"},
			{"Escape", "Close the panel or leave the current mode"},
		},
	},
}
