package view

// A Bag holds the named values a view renders.
type Bag map[string]any

// Get returns the value named key, or nil.
func (b Bag) Get(key string) any { return b[key] }

// Set names val by key.
func (b Bag) Set(key string, val any) { b[key] = val }

// Del removes the value named key.
func (b Bag) Del(key string) { delete(b, key) }

// Has asserts whether a value is named key, even if that value is nil.
func (b Bag) Has(key string) bool {
	_, ok := b[key]
	return ok
}
