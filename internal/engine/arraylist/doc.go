// Package arraylist provides a doubly linked list stored in a slice of slots.
//
// Every element is addressed by an [Index] that stays valid until that element
// is removed, no matter how many other elements are inserted or removed around
// it. Removed slots are kept on a free list and handed out again by later
// insertions, so an index must not be used after its element was removed.
//
// # Usage
//
//	l := arraylist.New[string]()
//	a := l.PushBack("a")
//	c := l.PushBack("c")
//	b, _ := l.InsertBefore(c, "b")
//
//	for idx, v := range l.All() {
//	    fmt.Println(idx, *v)
//	}
//
//	_, _ = l.Remove(a)
//
// All mutations are O(1). Iteration is forward only.
//
// # Thread Safety
//
// A List is not safe for concurrent use. Callers that share one across
// goroutines must serialize all access.
package arraylist
