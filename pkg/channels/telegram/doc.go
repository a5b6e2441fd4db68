// Package telegram provides the TELEGRAM notification channel adapter over
// the Bot API sendMessage endpoint.
package telegram
