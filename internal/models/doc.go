// Package models defines domain entities and persistence interfaces for the bandolera reconciliation service.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs carrying external catalog data
//   - [Track] : A single catalog track (identifier, title, artists, canonical link)
//   - [CollectionPage] : One page of the target playlist with a continuation cursor
//   - [PlaylistInfo] : Summary metadata for the target playlist
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [HistoryEntry] : One mutating reconciliation outcome (add/remove)
//
// All persistent entities implement the [Model] interface providing ID generation, timestamps, and validation.
// The Repository[T] interface defines standard CRUD operations for database access.
//
// Tracks are deliberately NOT persistent: the catalog is the source of truth
// and only identifiers and display labels cross the persistence boundary.
package models
