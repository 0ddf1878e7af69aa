package database

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/sirupsen/logrus"
)

var newBackOff = func() backoff.BackOff {
	return backoff.NewExponentialBackOff()
}

// waitFor retries probe with exponential backoff until it succeeds, ctx is
// done, or maxTries attempts have failed.
func waitFor(ctx context.Context, log logrus.FieldLogger, target string, maxTries int, probe func(context.Context) error) error {
	if maxTries <= 0 {
		maxTries = 1
	}
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, probe(ctx)
	},
		backoff.WithBackOff(newBackOff()),
		backoff.WithMaxTries(uint(maxTries)),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.WithError(err).WithFields(logrus.Fields{
				"component": "database",
				"target":    target,
				"retry_in":  next.String(),
			}).Warn("store not reachable yet")
		}),
	)
	return err
}
