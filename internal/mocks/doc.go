// Package mocks provides hand-rolled test doubles for the store interfaces.
// Each mock exposes function fields to override individual methods and a
// map-backed default implementation that behaves like a small in-memory
// store, including the uniqueness constraints the real storage layer
// enforces.
package mocks
