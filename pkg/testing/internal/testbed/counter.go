// Package testbed provides internal test widgets for the testing framework.
package testbed

import (
	"strconv"

	"github.com/go-drift/ember/pkg/layout"
	"github.com/go-drift/ember/pkg/widgets"
)

// Counter is a column showing a count above an increment button.
type Counter struct {
	widgets.Flex
	Count  int
	OnTap  func(count int)
	Label  *widgets.Label
	Button *widgets.Button
}

// NewCounter creates a counter starting at initial.
func NewCounter(initial int, onTap func(int)) *Counter {
	c := &Counter{Count: initial, OnTap: onTap}
	c.Axis = layout.AxisVertical
	c.SetSelf(c)
	c.Label = widgets.NewLabel(strconv.Itoa(initial))
	c.Button = widgets.NewButton("+", c.increment).WithSize(20, 20)
	if err := c.AppendChild(c.Label); err != nil {
		panic(err)
	}
	if err := c.AppendChild(c.Button); err != nil {
		panic(err)
	}
	return c
}

func (c *Counter) increment() {
	c.Count++
	c.Label.SetText(strconv.Itoa(c.Count))
	if c.OnTap != nil {
		c.OnTap(c.Count)
	}
}
