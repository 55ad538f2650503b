package screen

// cursor is a selection over a list with an offset that follows it, for
// lists where the highlighted row is what the user acts on.
type cursor struct {
	pos    int
	offset int
	size   int
	height int
}

func (c *cursor) SetSize(n int) {
	c.size = max(n, 0)
	c.clamp()
}

func (c *cursor) SetHeight(h int) {
	c.height = max(h, 0)
	c.clamp()
}

func (c *cursor) Move(delta int) {
	c.pos += delta
	c.clamp()
}

func (c *cursor) Top() {
	c.pos = 0
	c.clamp()
}

func (c *cursor) Bottom() {
	c.pos = c.size - 1
	c.clamp()
}

// Index returns the selected index, or false for an empty list.
func (c *cursor) Index() (int, bool) {
	if c.size == 0 {
		return 0, false
	}
	return c.pos, true
}

// Visible returns the half-open range of rows to draw.
func (c *cursor) Visible() (start, end int) {
	return c.offset, min(c.offset+max(c.height, 1), c.size)
}

func (c *cursor) clamp() {
	if c.size == 0 {
		c.pos, c.offset = 0, 0
		return
	}
	c.pos = min(max(c.pos, 0), c.size-1)

	h := max(c.height, 1)
	if c.pos < c.offset {
		c.offset = c.pos
	}
	if c.pos >= c.offset+h {
		c.offset = c.pos - h + 1
	}
	c.offset = min(c.offset, max(c.size-h, 0))
}
