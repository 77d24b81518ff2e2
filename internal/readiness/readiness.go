// Package readiness holds the dependency probes behind GET /ready. Each
// probe is optional; only the dependencies present in configuration are
// wired at startup.
package readiness

import "context"

type Check func(ctx context.Context) error

// Combine runs checks in order and stops at the first failure.
func Combine(checks ...Check) Check {
	filtered := make([]Check, 0, len(checks))
	for _, check := range checks {
		if check != nil {
			filtered = append(filtered, check)
		}
	}
	return func(ctx context.Context) error {
		for _, check := range filtered {
			if err := check(ctx); err != nil {
				return err
			}
		}
		return nil
	}
}
