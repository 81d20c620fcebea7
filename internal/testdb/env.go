package testdb

import "os"

// Environment variables consulted for test database connections, in order.
const (
	EnvDatabaseURL         = "DATABASE_URL"
	EnvTaskmateTestDBURL   = "TASKMATE_TEST_DB_URL"
	EnvMongoURI            = "MONGODB_URI"
	EnvTaskmateTestMongoDB = "TASKMATE_TEST_MONGODB_URI"
)

// PostgresURL returns the first configured Postgres test URL, or "".
func PostgresURL() string {
	return firstEnv(EnvDatabaseURL, EnvTaskmateTestDBURL)
}

// MongoURI returns the first configured MongoDB test URI, or "".
func MongoURI() string {
	return firstEnv(EnvMongoURI, EnvTaskmateTestMongoDB)
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// isCIEnvironment returns true if running in any type of CI environment.
func isCIEnvironment() bool {
	ciVars := []string{
		"CI",             // Generic
		"GITHUB_ACTIONS", // GitHub Actions
		"GITLAB_CI",      // GitLab CI
		"JENKINS_URL",    // Jenkins
		"CIRCLECI",       // Circle CI
	}

	for _, envVar := range ciVars {
		if os.Getenv(envVar) != "" {
			return true
		}
	}
	return false
}
