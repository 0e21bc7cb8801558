package config

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/urfave/cli/v3"
)

// Project holds the served directory configuration
type Project struct {
	RootDir    string
	Exclusions []string
	ConfigFile string
}

// Flags returns CLI flags for project configuration
func (c *Project) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Config file (.toml, .yaml, .yml or .json)",
			Destination: &c.ConfigFile,
			Sources:     cli.EnvVars("DIRHOOK_CONFIG"),
		},
		&cli.StringFlag{
			Name:        "root-dir",
			Usage:       "Project directory to serve",
			Destination: &c.RootDir,
			Sources:     cli.EnvVars("DIRHOOK_ROOT_DIR"),
		},
		&cli.StringSliceFlag{
			Name:        "exclude",
			Usage:       "Substring excluding matching directories and file names (repeatable)",
			Destination: &c.Exclusions,
			Sources:     cli.EnvVars("DIRHOOK_EXCLUDE"),
		},
	}
}

// Validate validates the project configuration
func (c *Project) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.RootDir, validation.Required),
		validation.Field(&c.Exclusions, validation.Each(validation.Required)),
	)
}
