// Package redispush provides the MOBILE_PUSH notification channel adapter,
// publishing payloads to per-recipient Redis pub/sub channels consumed by
// out-of-process push gateways.
package redispush
