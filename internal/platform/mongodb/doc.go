// Package mongodb provides MongoDB implementations of the store interfaces.
//
// Accounts live in the "accounts" collection with a unique index on email;
// tasks live in "taskRecords" keyed by ObjectID. Any task id that is not a
// 24 character hex ObjectID is rejected with domain.ErrInvalidID before a
// query is sent.
package mongodb
