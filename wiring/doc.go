// Package wiring resolves the serializer's loosely declared contributions into the
// concrete arguments of the serializer service before it is instantiated.
//
// The Resolver is a container.CompilerPass. Given a populated registry it:
//   - orders services tagged serializer.normalizer and serializer.encoder by
//     descending priority (ties keep registration order) and writes the reference
//     lists to arguments 0 and 1 of the "serializer" definition,
//   - fails when either list would be empty,
//   - injects a reference to the single service tagged serializer.ContextTag into the
//     consumer's context slot when its class declares one and the slot is empty.
//
// Running the resolver again on a wired registry changes nothing.
package wiring
