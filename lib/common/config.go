package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// --------------------------------------------------------------------------
// Document formats
// --------------------------------------------------------------------------

const (
	FormatJSON = "json" // JSON-tree document
	FormatXML  = "xml"  // XML-tree document

	DefaultJSONFileName = "settings.json"
	DefaultXMLFileName  = "portable.config"

	// EnvPrefix is the prefix of all environment variables read by LoadConfig
	EnvPrefix = "psettings"
)

// DefaultFileName returns the default settings file name of a format
func DefaultFileName(format string) string {
	if strings.ToLower(format) == FormatXML {
		return DefaultXMLFileName
	}
	return DefaultJSONFileName
}

// --------------------------------------------------------------------------
// Provider configuration struct
// --------------------------------------------------------------------------

// Config holds all parameters of a settings provider.
// It is handed to the provider factory once; changing it afterwards has no
// effect on providers that were already created.
type Config struct {
	// Format of the settings document (json or xml)
	Format string
	// Directory containing the settings file
	Directory string
	// FileName of the settings file within Directory
	FileName string
	// AllRoaming forces every persisted setting into the roaming branch
	AllRoaming bool
	// MachineName overrides the local host name used for the machine branch
	MachineName string

	// Logging configuration
	LogLevel string
}

// DefaultConfig returns the configuration used when nothing else is specified:
// the settings file lives next to the running executable.
func DefaultConfig(format string) Config {
	format = strings.ToLower(format)
	if format == "" {
		format = FormatJSON
	}
	return Config{
		Format:    format,
		Directory: ApplicationDirectory(),
		FileName:  DefaultFileName(format),
		LogLevel:  "info",
	}
}

// ApplicationDirectory returns the directory of the running executable.
// If it cannot be determined the current working directory is used.
func ApplicationDirectory() string {
	if exe, err := os.Executable(); err == nil {
		return filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// Path returns the full path of the settings file
func (c *Config) Path() string {
	return filepath.Join(c.Directory, c.FileName)
}

// Validate checks the configuration for unusable values
func (c *Config) Validate() error {
	switch c.Format {
	case FormatJSON, FormatXML:
	default:
		return NewError(RetCInvalidValue, fmt.Sprintf("invalid format %q, must be one of json, xml", c.Format))
	}
	if c.FileName == "" {
		return NewError(RetCInvalidValue, "file name must not be empty")
	}
	if c.LogLevel != "" {
		if _, err := parseLogLevel(c.LogLevel); err != nil {
			return err
		}
	}
	return nil
}

// String returns a formatted string representation of the configuration
func (c *Config) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	machine := c.MachineName
	if machine == "" {
		machine = "<local host name>"
	}

	// Document settings
	addSection("Settings Document")
	addField("Format", c.Format)
	addField("Directory", c.Directory)
	addField("File Name", c.FileName)

	// Location settings
	addSection("Location")
	addField("All Roaming", fmt.Sprintf("%t", c.AllRoaming))
	addField("Machine Name", machine)

	// Logging configuration
	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}

// --------------------------------------------------------------------------
// Environment
// --------------------------------------------------------------------------

// LoadConfig reads the configuration from environment variables.
// The files .env and .env.local are loaded first if they exist. Variables use
// the format PSETTINGS_<key> (e.g. PSETTINGS_ALL_ROAMING=true). Keys that are
// not set keep the values of DefaultConfig.
func LoadConfig() (Config, error) {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv() // read in environment variables that match

	v.SetDefault("format", FormatJSON)
	format := strings.ToLower(v.GetString("format"))
	defaults := DefaultConfig(format)

	v.SetDefault("directory", defaults.Directory)
	v.SetDefault("file-name", defaults.FileName)
	v.SetDefault("all-roaming", false)
	v.SetDefault("machine-name", "")
	v.SetDefault("log-level", defaults.LogLevel)

	conf := Config{
		Format:      format,
		Directory:   v.GetString("directory"),
		FileName:    v.GetString("file-name"),
		AllRoaming:  v.GetBool("all-roaming"),
		MachineName: v.GetString("machine-name"),
		LogLevel:    v.GetString("log-level"),
	}

	if err := conf.Validate(); err != nil {
		return Config{}, err
	}
	return conf, nil
}
