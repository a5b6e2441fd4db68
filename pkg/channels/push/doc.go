// Package push provides the PUSH notification channel adapter: an
// in-process websocket hub that delivers payloads to every open connection
// of a recipient.
package push
