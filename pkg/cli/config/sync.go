package config

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/urfave/cli/v3"
)

// Sync holds sync script and scan task configuration
type Sync struct {
	Script  string
	Timeout time.Duration
	Workers int
	ScanTTL time.Duration
}

// Flags returns CLI flags for sync configuration
func (c *Sync) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sync-script",
			Usage:       "Executable run after a push to the configured branch",
			Destination: &c.Script,
			Sources:     cli.EnvVars("DIRHOOK_SYNC_SCRIPT"),
		},
		&cli.DurationFlag{
			Name:        "sync-timeout",
			Usage:       "Kill the sync script after this duration (0 disables)",
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("DIRHOOK_SYNC_TIMEOUT"),
		},
		&cli.IntFlag{
			Name:        "sync-workers",
			Usage:       "Number of sync scripts allowed to run at once",
			Value:       1,
			Destination: &c.Workers,
			Sources:     cli.EnvVars("DIRHOOK_SYNC_WORKERS"),
		},
		&cli.DurationFlag{
			Name:        "scan-ttl",
			Usage:       "Forget finished scan tasks after this duration (0 keeps them)",
			Destination: &c.ScanTTL,
			Sources:     cli.EnvVars("DIRHOOK_SCAN_TTL"),
		},
	}
}

// Validate validates the sync configuration
func (c *Sync) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
		validation.Field(&c.Workers, validation.Required, validation.Min(1)),
		validation.Field(&c.ScanTTL, validation.Min(time.Duration(0))),
	)
}
