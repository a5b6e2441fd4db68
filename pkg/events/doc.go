// Package events publishes committed order transition events to Kafka for
// downstream consumers such as the bot service and CMS synchronization.
package events
