// Package ui holds the state of the portal's page components: the resource
// tree view, the upload flow, the tab selectors and the footer.
//
// Component values are not safe for concurrent use. Callers serialize access
// to one instance, the same way a browser runs one event handler at a time.
package ui

// Opener opens a URL or path in a new external context. It is fire-and-forget:
// there is no result and no retry.
type Opener interface {
	Open(target string)
}

// OpenerFunc adapts a function to the Opener interface
type OpenerFunc func(target string)

// Open calls f(target)
func (f OpenerFunc) Open(target string) {
	f(target)
}
