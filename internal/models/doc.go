// Package models defines the core domain models for Vibe Walk.
//
// # Models
//
//   - User: Registered account, identified by a unique username
//   - Plan: A saved itinerary (ordered stops) shared to the community feed
//   - Stop: One point of interest inside a plan, stored embedded in the plan
//   - Meetup: A group walk organized around an existing plan
//
// # Design Principles
//
// 1. **Stops are values**: A plan's stops are serialized as one JSON document and
//    never edited after the plan is saved
// 2. **Avoid circular references**: Use ID strings instead of pointers for relationships
// 3. **Reviews are separate from stops**: Review fields change independently of route data
//
// The JSON field names on Stop and Transport match the payload the completion
// provider returns, so a generated route can be stored as-is once validated.
package models
