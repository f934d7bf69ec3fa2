// Package notifier fans billing events out to guardians over four
// independent delivery channels: live session push, a durable per-user
// inbox, browser web push, and email with the invoice document
// attached.
//
// The dispatcher runs every channel concurrently, detached from the
// triggering request, and contains each channel's failure: a dead push
// endpoint or an SMTP outage never blocks the other channels and never
// surfaces to the caller that approved the enrollment or settled the
// invoice. Channels with no way to reach the recipient report skipped,
// which is an expected outcome, not an error.
package notifier
