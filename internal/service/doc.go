// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and the stores
// defined in internal/store to fulfill application features.
//
// The account service is the sole authority for validating and applying
// state changes to Account entities: it enforces the username and email
// uniqueness rules at registration, mediates partial profile updates, and
// owns the active/inactive lifecycle transition. Every failure condition is
// reported to the caller as a typed error; the service performs no local
// recovery, retries, or fallbacks.
package service
