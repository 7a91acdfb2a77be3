// Package container holds service definitions before anything is instantiated.
//
// A Registry owns Definitions in registration order and keeps a tag index that is
// updated as tags are added, so compiler passes can discover tagged services without
// scanning every definition. Passes rewrite definition arguments in place; they never
// construct the services themselves.
//
// A Registry is not safe for concurrent mutation. It is meant to be populated and then
// compiled once, on a single goroutine, before the application starts.
package container
