// Package domain contains the core business entities of the task tracker:
// accounts, tasks and the partial updates applied to them. It is independent
// of any specific storage engine or delivery mechanism.
package domain
