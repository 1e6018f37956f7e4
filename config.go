package tree_installer

import (
	"log"

	"gopkg.in/yaml.v2"
)

const configFilename = "config.yml"

// Config holds the installer settings from the embedded config.yml: the name
// of the script to install (split into base name and extension, the
// installed file is the base name alone), the fallback install folder under
// the user's home directory, and a variable map for message templates.
type Config struct {
	SourceBase  string    `yaml:"source_base"`
	SourceExt   string    `yaml:"source_ext"`
	FallbackDir string    `yaml:"fallback_dir"`
	Variables   StringMap `yaml:"variables"`
}

// NewConfig parses the embedded config file.
func NewConfig() (*Config, error) {
	configFile := MustGetResource(configFilename)
	config := &Config{}
	err := yaml.Unmarshal([]byte(configFile), config)
	if err != nil {
		log.Printf("Unable to parse config file %s\n", configFilename)
		return config, err
	}
	if config.SourceBase == "" {
		config.SourceBase = "tree"
	}
	if config.SourceExt == "" {
		config.SourceExt = ".py"
	}
	if config.FallbackDir == "" {
		config.FallbackDir = "bin"
	}
	if config.Variables == nil {
		config.Variables = make(StringMap)
	}
	return config, nil
}

// SourceFilename returns the name of the file to be installed, as it has to
// exist in the working directory before installation.
func (c *Config) SourceFilename() string { return c.SourceBase + c.SourceExt }
