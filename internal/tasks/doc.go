// Package tasks implements reconciliation of the managed playlist against
// user requests.
//
// The core abstraction is [ReconcileEngine], which orchestrates resolution,
// membership checks, and playlist mutations. Both operations converge state:
// Add ends with the track present, Remove ends with it absent, and repeating
// either is a no-op reported as such.
//
// [Membership] answers presence questions by paging through the live
// collection. Removal requests that miss an exact member fall back to its
// fuzzy scan, which ranks every member by label similarity; strong matches
// are removed as approximate, weak ones become suggestions in the
// [OutcomeNotPresent] result.
//
// Every operation returns a [Result] rather than an error. Failures travel in
// the result as [OutcomeFailed] with the cause attached, so the messaging
// layer renders every outcome the same way and history records all of them.
package tasks
