// Package models defines the core domain models for the home game ledger.
//
// # Entities
//
//   - Group: a circle of players sharing an invite code and a leaderboard
//   - GroupMember: one user's membership and role within a group
//   - Game: a single poker night belonging to a group
//   - GameSession: one participant's buy-in and cash-out within a game
//   - ClaimRequest: a registered user's request to take over a guest's history
//   - PayoutAck: a user's acknowledgement that a game's payout was settled
//   - User: a registered account known to the identity provider
//
// # Guests
//
// Players without an account are recorded by name only, or under a synthetic
// member id carrying GuestIDPrefix. Whether a session belongs to a guest is
// decided in exactly one place, GameSession.Participant, which folds the
// three historical markers (missing user id, guest id prefix, explicit guest
// role) into a Participant value.
//
// # Design Principles
//
//  1. Use ID strings instead of pointers for relationships
//  2. Timestamps are Unix seconds
//  3. Stored player names are history; display names are resolved at read time
package models
