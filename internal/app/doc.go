// Package app is the application layer: it orchestrates the mood engine,
// rate limiter, command classifier and collaborators into the three use
// cases (scheduled refresh, interaction processing, cooldown resolution).
// No other package references more than one domain component.
package app
