package editor

import "sort"

// Role names a display element by what it does in the editor.
type Role string

// Element roles.
const (
	RoleInput        Role = "input"
	RoleBinarization Role = "binarization"
	RoleInvert       Role = "invert"
	RoleSave         Role = "save"
	RoleUndo         Role = "undo"
	RoleRedo         Role = "redo"
	RoleRecognize    Role = "recognize"
)

// DisplayElement is anything the editor can enable or disable.
type DisplayElement interface {
	SetEnabled(enabled bool)
}

// Button is a clickable control.
type Button struct {
	ID       string
	disabled bool
}

// SetEnabled implements DisplayElement.
func (b *Button) SetEnabled(enabled bool) { b.disabled = !enabled }

// Disabled reports the button's disabled attribute.
func (b *Button) Disabled() bool { return b.disabled }

// Input is a file input control.
type Input struct {
	ID       string
	Accept   string
	disabled bool
}

// SetEnabled implements DisplayElement.
func (i *Input) SetEnabled(enabled bool) { i.disabled = !enabled }

// Disabled reports the input's disabled attribute.
func (i *Input) Disabled() bool { return i.disabled }

// Label cannot be disabled itself; it is styled by a "disabled" class.
type Label struct {
	ID      string
	classes map[string]bool
}

// SetEnabled implements DisplayElement by toggling the "disabled" class.
func (l *Label) SetEnabled(enabled bool) {
	if l.classes == nil {
		l.classes = make(map[string]bool)
	}
	if enabled {
		delete(l.classes, "disabled")
	} else {
		l.classes["disabled"] = true
	}
}

// HasClass reports whether the label carries the class.
func (l *Label) HasClass(name string) bool { return l.classes[name] }

// Elements maps roles to their display elements.
type Elements map[Role]DisplayElement

// DefaultElements returns the editor's standard controls. The file input is
// presented through a label, as browsers do for styled file pickers.
func DefaultElements() Elements {
	return Elements{
		RoleInput:        &Input{ID: "file_input", Accept: "image/*"},
		RoleBinarization: &Button{ID: "binarization"},
		RoleInvert:       &Button{ID: "invert"},
		RoleSave:         &Button{ID: "save"},
		RoleUndo:         &Button{ID: "back"},
		RoleRedo:         &Button{ID: "forward"},
		RoleRecognize:    &Label{ID: "recognize"},
	}
}

// Enabled reports whether the element for role is currently enabled. Roles
// without an element report false.
func (e Elements) Enabled(role Role) bool {
	switch el := e[role].(type) {
	case *Button:
		return !el.Disabled()
	case *Input:
		return !el.Disabled()
	case *Label:
		return !el.HasClass("disabled")
	default:
		return false
	}
}

// States returns the enabled state of every element keyed by role name.
func (e Elements) States() map[string]bool {
	out := make(map[string]bool, len(e))
	for role := range e {
		out[string(role)] = e.Enabled(role)
	}
	return out
}

// Roles returns the registered roles in a stable order.
func (e Elements) Roles() []Role {
	roles := make([]Role, 0, len(e))
	for r := range e {
		roles = append(roles, r)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles
}

// setAll enables or disables every element.
func (e Elements) setAll(enabled bool) {
	for _, el := range e {
		el.SetEnabled(enabled)
	}
}

func (e Elements) set(role Role, enabled bool) {
	if el, ok := e[role]; ok {
		el.SetEnabled(enabled)
	}
}
