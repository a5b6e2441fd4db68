// Package email provides the EMAIL notification channel adapter, backed by
// Postmark in production and any Sender implementation in tests.
package email
