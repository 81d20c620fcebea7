// Package events provides types and interfaces for an event-driven architecture.
//
// Services emit events after they change state without knowing which
// handlers will process them. The realtime hub is the main handler: it turns
// task change events into websocket notifications for the owning account.
//
// The primary components are:
//   - TaskChangedEvent: a task owned by an account was created, updated or deleted
//   - EventHandler: interface for components that can handle events
//   - EventEmitter: interface for components that can emit events
package events
