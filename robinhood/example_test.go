package robinhood_test

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bdragon300/ordered-hash/hashing"
	"github.com/bdragon300/ordered-hash/robinhood"
)

func Example() {
	actions := robinhood.NewString[string]()
	_, _ = actions.Insert("jump", "space")
	_, _ = actions.Insert("fire", "mouse1")
	_, _ = actions.Insert("crouch", "ctrl")
	actions.Erase("fire")
	_, _ = actions.Insert("jump", "w") // keeps its place

	for action, key := range actions.All() {
		fmt.Println(action, key)
	}

	if _, err := actions.Get("fire"); errors.Is(err, robinhood.ErrKeyNotFound) {
		fmt.Println("fire is unbound")
	}
	// Output:
	// jump w
	// crouch ctrl
	// fire is unbound
}

func ExampleNewWith() {
	// Case-insensitive keys
	hasher := hashing.HasherFunc[string](func(key string) uint32 {
		return hashing.String{}.Hash(strings.ToLower(key))
	})
	m := robinhood.NewWith[string, int](hasher, hashing.ComparatorFunc[string](strings.EqualFold))
	_, _ = m.Insert("Texture", 1)

	fmt.Println(m.Has("TEXTURE"), m.Len())
	// Output: true 1
}

func ExampleEntry() {
	m := robinhood.NewInteger[int, string]()
	for i, name := range []string{"root", "camera", "light"} {
		_, _ = m.Insert(i, name)
	}
	_, _ = m.InsertFront(-1, "world")

	for e := m.Back(); e.Valid(); e = e.Prev() {
		fmt.Print(e.Value(), " ")
	}
	fmt.Println()
	// Output: light camera root world
}
