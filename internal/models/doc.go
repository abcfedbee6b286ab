// Package models defines the core domain models for Qitta.
//
// # Models
//
//   - Trip: an outing with a shared fund, its participants and its expenses
//   - TripParticipant: a person expected to contribute a fee to the fund
//   - Expense: a ledger line charged to the fund
//   - MasterParticipant: an entry of the remote roster the trip is built from
//
// # Design Principles
//
// 1. **One blob**: the whole trip collection is serialized as a single JSON
// document, so JSON field names follow the historical storage format.
// 2. **Owned children**: participants and expenses only exist inside their trip
// and are referenced by ID strings, never by pointer.
// 3. **Exact money**: every amount is a decimal.Decimal.
package models
