package initchecker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type provider interface {
	Do()
}

type impl struct{}

func (impl) Do() {}

func TestCheckInit(t *testing.T) {
	var initialized provider = impl{}
	var empty provider

	require.NotPanics(t, func() {
		CheckInit("initialized", initialized)
	})
	require.PanicsWithValue(t, "зависимость empty не инициализирована", func() {
		CheckInit("initialized", initialized, "empty", empty)
	})
	require.Panics(t, func() {
		CheckInit("initialized")
	})
	require.Panics(t, func() {
		CheckInit(1, initialized)
	})
}
