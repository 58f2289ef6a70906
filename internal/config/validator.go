package config

import "fmt"

// Validate rejects settings the harness would refuse anyway, so the CLI can
// fail with a clear message before any workload is built.
func (s Settings) Validate() error {
	if s.Trials < 1 {
		return fmt.Errorf("trials must be positive, got %d", s.Trials)
	}
	if s.Reps < 1 {
		return fmt.Errorf("reps must be positive, got %d", s.Reps)
	}
	if s.Size < 1 {
		return fmt.Errorf("size must be positive, got %d", s.Size)
	}
	if s.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", s.Timeout)
	}
	return nil
}
