package interaction

// inspectID is the surface ID of the outline that follows the inspected
// element. It never enters the store.
const inspectID = "inspect"

type inspection struct {
	path  []Element
	index int
}

func (in *inspection) current() Element { return in.path[in.index] }

func (c *Controller) enterInspection() {
	if c.inspector == nil || c.session != nil {
		return
	}
	el := c.inspector.ElementAt(c.pointer)
	if el == nil {
		return
	}
	c.inspect = &inspection{path: []Element{el}}
	c.showInspection()
}

func (c *Controller) exitInspection() {
	if c.inspect == nil {
		return
	}
	c.inspect = nil
	c.surface.RemoveRectangle(inspectID)
}

func (c *Controller) showInspection() {
	style := Style{BorderWidth: c.prefs.BorderWidth, ColorIndex: c.prefs.DefaultColor, Inspect: true}
	c.surface.UpsertRectangle(inspectID, c.inspect.current().Bounds().Trunc(), style)
}

// traverseUp moves to the parent, extending the path when walking past
// its end.
func (c *Controller) traverseUp() {
	in := c.inspect
	parent := in.current().Parent()
	if parent == nil {
		return
	}
	if in.index == len(in.path)-1 {
		in.path = append(in.path, parent)
	}
	in.index++
	c.showInspection()
}

func (c *Controller) traverseDown() {
	in := c.inspect
	if in.index <= 0 {
		return
	}
	in.index--
	c.showInspection()
}

// traverseSibling steps through the parent's children with wrap-around.
func (c *Controller) traverseSibling(dir int) {
	in := c.inspect
	el := in.current()
	sibs := el.Siblings()
	if len(sibs) <= 1 {
		return
	}
	at := -1
	for i, s := range sibs {
		if s == el {
			at = i
			break
		}
	}
	if at < 0 {
		return
	}
	next := sibs[(at+dir+len(sibs))%len(sibs)]
	in.path[in.index] = next
	c.showInspection()
}

// InspectedElement returns the element being inspected or nil.
func (c *Controller) InspectedElement() Element {
	if c.inspect == nil {
		return nil
	}
	return c.inspect.current()
}
