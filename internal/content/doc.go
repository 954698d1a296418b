// Package content defines the static reference data seeded into a world
// before its first tick: traits, professions, cultures, and species.
//
// A Catalog is an explicit registry. Entries are added in declaration order
// and seeded in that same order; there is no runtime type scanning. Seeding
// returns a structured event log alongside the new store instead of writing
// to a logger, so callers decide what to do with the registration record.
//
// Catalog keys are NFC-normalized on entry, so visually identical keys with
// different Unicode compositions collide instead of silently coexisting.
package content
