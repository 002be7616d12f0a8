package observable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetNotifiesEveryAssignment(t *testing.T) {
	v := New("")
	var seen []string
	v.Subscribe(func(s string) { seen = append(seen, s) })

	v.Set("a")
	v.Set("a")
	v.Set("")

	assert.Equal(t, []string{"a", "a", ""}, seen)
	assert.Equal(t, "", v.Get())
}

func TestUnsubscribe(t *testing.T) {
	v := New(0)
	var calls int
	unsub := v.Subscribe(func(int) { calls++ })
	v.Set(1)
	unsub()
	unsub()
	v.Set(2)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, v.Get())
}

func TestListenersRunInOrder(t *testing.T) {
	v := New(0)
	var order []string
	v.Subscribe(func(int) { order = append(order, "first") })
	v.Subscribe(func(int) { order = append(order, "second") })
	v.Set(1)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestListenerMaySetOtherValue(t *testing.T) {
	content := New("")
	empty := New(true)
	content.Subscribe(func(s string) { empty.Set(len(s) == 0) })

	content.Set("x")
	assert.False(t, empty.Get())
	content.Set("")
	assert.True(t, empty.Get())
}
