package config

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub webhook configuration
type GitHub struct {
	WebhookSecret string `masq:"secret"`
	Branch        string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-webhook-secret",
			Usage:       "GitHub webhook secret",
			Destination: &c.WebhookSecret,
			Sources:     cli.EnvVars("DIRHOOK_GITHUB_WEBHOOK_SECRET"),
		},
		&cli.StringFlag{
			Name:        "github-branch",
			Usage:       "Branch whose pushes trigger the sync script",
			Value:       "main",
			Destination: &c.Branch,
			Sources:     cli.EnvVars("DIRHOOK_GITHUB_BRANCH"),
		},
	}
}

// Validate validates the GitHub configuration
func (c *GitHub) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.WebhookSecret, validation.Required),
		validation.Field(&c.Branch, validation.Required),
	)
}
