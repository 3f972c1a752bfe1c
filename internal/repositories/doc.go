// Package repositories implements local persistence for client-side state.
//
// Only the session token is persisted. Posters, catalog snapshots, and
// review sets live in controller memory and are re-fetched per mount;
// screens reconcile by re-navigation, never through a shared cache.
package repositories
