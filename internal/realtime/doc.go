// Package realtime pushes task change notifications to connected browsers
// over websockets.
//
// A Hub keeps one room per account email. Clients join their own room after
// connecting and receive a {"event":"task-updated-<email>"} message whenever
// one of that account's tasks changes. Delivery is best effort: slow clients
// lose messages rather than blocking publishers.
package realtime
