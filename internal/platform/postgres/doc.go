// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces (repositories) defined in the internal/store package.
// It handles the details of query execution, schema migrations and data
// mapping between domain entities and database records.
//
// The schema lives in migrations/ and is embedded into the binary; Migrate
// applies it with goose at startup. Connections are opened by the caller
// through database/sql with the pgx stdlib driver.
package postgres
