package screen

// base holds the focus flag and viewport every screen needs.
type base struct {
	focused bool
	width   int
	height  int
}

func (b *base) Focus(focused bool) {
	b.focused = focused
}

func (b *base) SetViewport(width, height int) {
	b.width, b.height = width, height
}

// Focused reports whether the screen owns keyboard focus.
func (b *base) Focused() bool {
	return b.focused
}
