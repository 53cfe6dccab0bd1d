// Package services provides domain services that implement business logic
// spanning multiple aggregates of the parcel logistics core.
//
// The package includes:
//   - SLAPolicy: pure evaluation of service-level thresholds against a shipment
//   - TimelineBuilder: best-effort reconstruction of a shipment's tracking history
//   - Authorizer: a pure permit/deny check for actor, action and target ownership
//
// All services here are side-effect free. Persistence, caching and messaging
// concerns stay in the application layer and its adapters.
package services
