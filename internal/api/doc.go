// Package api handles incoming HTTP requests: session credentials, account
// registration and owner-scoped task records. It translates HTTP concerns to
// calls on the service layer and maps service errors to status codes.
package api
