package config

// Game configuration types

type Config struct {
	Name     string         // Derived from filename (without .yml extension)
	Title    string         `yaml:"title"` // Display name, defaults to Name
	URL      string         `yaml:"url"`
	Settings ConfigSettings `yaml:"settings"`
	Message  ConfigMessage  `yaml:"message"`
}

type ConfigSettings struct {
	Enabled         bool   `yaml:"enabled"`
	RefreshInterval int    `yaml:"refresh_interval"` // seconds
	Timeout         int    `yaml:"timeout"`          // seconds
	StoreFile       string `yaml:"store_file"`       // relative to data dir, derived from title when empty
}

type ConfigMessage struct {
	Format   string   `yaml:"format"` // "compact" or "detailed"
	Hashtags []string `yaml:"hashtags"`
}
