// Package redis provides Redis connectivity for the keyed
// push-subscription store.
package redis
