package config

// Config represents a clipfrag.yaml configuration file.
// All values are optional and act as defaults for clipfrag flags.
// CLI flags always override config values.
type Config struct {
	Unit      string          `yaml:"unit"`
	Max       int             `yaml:"max"`
	Oversize  string          `yaml:"oversize"`
	Header    *bool           `yaml:"header,omitempty"`
	Footer    string          `yaml:"footer"`
	Clipboard ClipboardConfig `yaml:"clipboard"`
	Messages  MessagesConfig  `yaml:"messages"`
	Journal   string          `yaml:"journal"`
	Log       LogConfig       `yaml:"log"`
	S3        S3Config        `yaml:"s3"`
}

// ClipboardConfig selects the clipboard backend.
type ClipboardConfig struct {
	Backend string   `yaml:"backend"`
	Command []string `yaml:"command,omitempty"`
}

// MessagesConfig overrides header and footer templates.
type MessagesConfig struct {
	Header        string `yaml:"header"`
	Footer        string `yaml:"footer"`
	FooterUnnamed string `yaml:"footer_unnamed"`
}

// LogConfig holds structured log settings.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// S3Config holds client settings for s3:// sources.
type S3Config struct {
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	PathStyle bool   `yaml:"path_style"`
}

// HeaderEnabled reports the header setting, defaulting to true.
func (c *Config) HeaderEnabled() bool {
	return c.Header == nil || *c.Header
}
