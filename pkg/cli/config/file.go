package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// File is the on-disk configuration. Keys follow the config.json layout of
// earlier deployments.
type File struct {
	RootDirectory       string   `toml:"root_directory" yaml:"root_directory" json:"root_directory"`
	Exclusions          []string `toml:"exclusions" yaml:"exclusions" json:"exclusions"`
	GitHubWebhookSecret string   `toml:"github_webhook_secret" yaml:"github_webhook_secret" json:"github_webhook_secret" masq:"secret"`
	Branch              string   `toml:"branch" yaml:"branch" json:"branch"`
	SyncScript          string   `toml:"sync_script" yaml:"sync_script" json:"sync_script"`
}

// LoadFile reads a config file, expanding ${VAR} references. The format is
// chosen by extension.
func LoadFile(path string) (*File, error) {
	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}
	data := []byte(os.ExpandEnv(string(raw)))

	var file File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &file)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	case ".json":
		err = json.Unmarshal(data, &file)
	default:
		return nil, goerr.New("unsupported config file format", goerr.V("path", path), goerr.V("ext", ext))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
	}

	return &file, nil
}

// Apply copies file values into the flag-backed configs. A value is taken
// from the file only when isSet reports that its flag was not given on the
// command line or through the environment.
func (f *File) Apply(isSet func(name string) bool, project *Project, gh *GitHub, sync *Sync) {
	if f.RootDirectory != "" && !isSet("root-dir") {
		project.RootDir = f.RootDirectory
	}
	if len(f.Exclusions) > 0 && !isSet("exclude") {
		project.Exclusions = f.Exclusions
	}
	if f.GitHubWebhookSecret != "" && !isSet("github-webhook-secret") {
		gh.WebhookSecret = f.GitHubWebhookSecret
	}
	if f.Branch != "" && !isSet("github-branch") {
		gh.Branch = f.Branch
	}
	if f.SyncScript != "" && !isSet("sync-script") {
		sync.Script = f.SyncScript
	}
}
