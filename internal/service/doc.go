// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// Key components:
//
// 1. TaskService:
//   - Creates, lists, updates and deletes tasks on behalf of a verified identity
//   - Takes ownership from the session, never from request bodies
//   - Emits a task changed event after every successful mutation
//
// 2. AccountService:
//   - Registers accounts idempotently by email
//   - Lists every account
//
// 3. Error Handling:
//   - Expected conditions are sentinel errors (ErrForbidden, store.ErrTaskNotFound,
//     domain validation errors) checked with errors.Is
//   - Unexpected failures are wrapped in ServiceError with the operation name
//
// The service layer depends on domain entities and repository interfaces (from store),
// but never on specific infrastructure implementations.
package service
