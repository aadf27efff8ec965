// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package tui

// Action names a user command independent of the key that triggers it.
type Action int

const (
	ActionNone Action = iota
	ActionDown
	ActionUp
	ActionPageDown
	ActionPageUp
	ActionTop
	ActionBottom
	ActionColumns
	ActionHeader
	ActionJump
	ActionHelp
	ActionCopy
	ActionCopyRaw
	ActionRetry
	ActionQuit
)

var actionKeys = map[Action][]string{
	ActionDown:     {"j", "down"},
	ActionUp:       {"k", "up"},
	ActionPageDown: {"ctrl+d", "pgdown", " "},
	ActionPageUp:   {"ctrl+u", "pgup"},
	ActionTop:      {"g", "home"},
	ActionBottom:   {"G", "end"},
	ActionColumns:  {"c"},
	ActionHeader:   {"h"},
	ActionJump:     {":"},
	ActionHelp:     {"?"},
	ActionCopy:     {"y"},
	ActionCopyRaw:  {"Y"},
	ActionRetry:    {"r"},
	ActionQuit:     {"q", "ctrl+c"},
}

var actionLabels = map[Action]string{
	ActionDown:     "down",
	ActionUp:       "up",
	ActionPageDown: "page down",
	ActionPageUp:   "page up",
	ActionTop:      "top",
	ActionBottom:   "bottom",
	ActionColumns:  "columns",
	ActionHeader:   "header",
	ActionJump:     "jump to row",
	ActionHelp:     "help",
	ActionCopy:     "copy row",
	ActionCopyRaw:  "copy raw",
	ActionRetry:    "retry load",
	ActionQuit:     "quit",
}

var keyToAction = func() map[string]Action {
	out := make(map[string]Action)
	for a, keys := range actionKeys {
		for _, k := range keys {
			out[k] = a
		}
	}
	return out
}()

// actionFor returns the action bound to key, or ActionNone.
func actionFor(key string) Action {
	return keyToAction[key]
}

// KeyKind indicates whether a binding is part of the quick (always shown) or full (overlay) set.
type KeyKind int

const (
	KeyKindQuick KeyKind = iota
	KeyKindFull
)

// KeyBinding represents a key (or set of keys) and its label/group.
type KeyBinding struct {
	Keys  []string
	Label string
	Kind  KeyKind
	Group string
}

// ActionBinding builds the binding for a, using its default keys and label.
func ActionBinding(a Action, kind KeyKind, group string) KeyBinding {
	keys := actionKeys[a]
	// The space key reads poorly in help text
	display := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == " " {
			k = "space"
		}
		display = append(display, k)
	}
	return KeyBinding{Keys: display, Label: actionLabels[a], Kind: kind, Group: group}
}

// ViewKeymap returns the bindings for the current mode.
func (m Model) ViewKeymap() []KeyBinding {
	switch m.mode {
	case modeJump:
		return []KeyBinding{
			{Keys: []string{"enter"}, Label: "jump", Kind: KeyKindQuick},
			{Keys: []string{"esc"}, Label: "cancel", Kind: KeyKindQuick},
		}
	case modeHelp:
		return []KeyBinding{
			{Keys: []string{"j/k"}, Label: "scroll", Kind: KeyKindQuick},
			{Keys: []string{"esc", "?"}, Label: "close", Kind: KeyKindQuick},
		}
	}
	return []KeyBinding{
		ActionBinding(ActionDown, KeyKindQuick, "Scroll"),
		ActionBinding(ActionUp, KeyKindFull, "Scroll"),
		ActionBinding(ActionPageDown, KeyKindFull, "Scroll"),
		ActionBinding(ActionPageUp, KeyKindFull, "Scroll"),
		ActionBinding(ActionTop, KeyKindFull, "Scroll"),
		ActionBinding(ActionBottom, KeyKindFull, "Scroll"),
		ActionBinding(ActionJump, KeyKindQuick, "Scroll"),
		ActionBinding(ActionColumns, KeyKindQuick, "Layout"),
		ActionBinding(ActionHeader, KeyKindQuick, "Layout"),
		ActionBinding(ActionCopy, KeyKindQuick, "Clipboard"),
		ActionBinding(ActionCopyRaw, KeyKindFull, "Clipboard"),
		ActionBinding(ActionRetry, KeyKindFull, "System"),
		ActionBinding(ActionQuit, KeyKindQuick, "System"),
	}
}

// QuickBindings returns the bindings to show in the help bar (max quickLimit, prepend help when enabled).
func (m Model) QuickBindings() []KeyBinding {
	const quickLimit = 7
	bindings := filterByKind(m.ViewKeymap(), KeyKindQuick)

	if m.mode == modeList {
		bindings = append([]KeyBinding{ActionBinding(ActionHelp, KeyKindQuick, "")}, bindings...)
	}

	if len(bindings) > quickLimit {
		return bindings[:quickLimit]
	}
	return bindings
}

// FullBindings returns the full set of bindings for the list view.
func (m Model) FullBindings() []KeyBinding {
	list := m
	list.mode = modeList
	return list.ViewKeymap()
}

func filterByKind(bindings []KeyBinding, kind KeyKind) []KeyBinding {
	var out []KeyBinding
	for _, b := range bindings {
		if b.Kind == kind {
			out = append(out, b)
		}
	}
	return out
}
