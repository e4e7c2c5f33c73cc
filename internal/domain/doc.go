// Package domain contains the core model types and component interfaces.
// It has no dependencies on adapters; adapters depend on it.
package domain
