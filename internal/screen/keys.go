package screen

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings screens react to. Global bindings live in the
// app package.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	HalfUp   key.Binding
	HalfDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PrevTab  key.Binding
	NextTab  key.Binding

	Stage        key.Binding
	Unstage      key.Binding
	StageAll     key.Binding
	Commit       key.Binding
	EditorCommit key.Binding
	Push         key.Binding
	Fetch        key.Binding

	Checkout   key.Binding
	Delete     key.Binding
	NewBranch  key.Binding
	PullHead   key.Binding
	PullBranch key.Binding
	Merge      key.Binding
	CherryPick key.Binding
	Filter     key.Binding

	Revert key.Binding
	Copy   key.Binding
	Detail key.Binding

	Mark        key.Binding
	Confirm     key.Binding
	Cancel      key.Binding
	SwitchField key.Binding
	Yes         key.Binding
	No          key.Binding
	DeleteWord  key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	HalfUp:   key.NewBinding(key.WithKeys("ctrl+u", "pgup"), key.WithHelp("ctrl+u", "half page up")),
	HalfDown: key.NewBinding(key.WithKeys("ctrl+d", "pgdown"), key.WithHelp("ctrl+d", "half page down")),
	Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
	Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
	PrevTab:  key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h", "local")),
	NextTab:  key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l", "remote")),

	Stage:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stage")),
	Unstage:      key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "unstage")),
	StageAll:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "stage all")),
	Commit:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "commit")),
	EditorCommit: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "commit in editor")),
	Push:         key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "push")),
	Fetch:        key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fetch")),

	Checkout:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "checkout")),
	Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	NewBranch:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new branch")),
	PullHead:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pull")),
	PullBranch: key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "pull selected")),
	Merge:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "fast-forward")),
	CherryPick: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "cherry-pick")),
	Filter:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),

	Revert: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "revert")),
	Copy:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy hash")),
	Detail: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),

	Mark:        key.NewBinding(key.WithKeys("s", " ", "space"), key.WithHelp("s/space", "select")),
	Confirm:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	SwitchField: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
	Yes:         key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
	No:          key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "no")),
	DeleteWord:  key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "delete word")),
}

// helpLine joins the help text of bindings.
func helpLine(bindings ...key.Binding) string {
	var out string
	for i, b := range bindings {
		h := b.Help()
		if i > 0 {
			out += " • "
		}
		out += h.Key + " " + h.Desc
	}
	return out
}
