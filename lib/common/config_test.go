package common

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	tests := map[string]string{
		"":     DefaultJSONFileName,
		"json": DefaultJSONFileName,
		"JSON": DefaultJSONFileName,
		"xml":  DefaultXMLFileName,
	}

	for format, fileName := range tests {
		conf := DefaultConfig(format)
		if conf.FileName != fileName {
			t.Errorf("format %q: expected file name %s, got %s", format, fileName, conf.FileName)
		}
		if conf.Directory == "" {
			t.Errorf("format %q: expected a default directory", format)
		}
		if err := conf.Validate(); err != nil {
			t.Errorf("format %q: default config should be valid: %v", format, err)
		}
	}
}

func TestConfigPath(t *testing.T) {
	conf := Config{Directory: filepath.Join("a", "b"), FileName: "settings.json"}
	if got, want := conf.Path(), filepath.Join("a", "b", "settings.json"); got != want {
		t.Errorf("Expected path %s, got %s", want, got)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		conf Config
		ok   bool
	}{
		{"valid json", Config{Format: FormatJSON, FileName: "s.json"}, true},
		{"valid xml", Config{Format: FormatXML, FileName: "s.config", LogLevel: "warn"}, true},
		{"unknown format", Config{Format: "yaml", FileName: "s.yaml"}, false},
		{"empty file name", Config{Format: FormatJSON}, false},
		{"bad log level", Config{Format: FormatJSON, FileName: "s.json", LogLevel: "loud"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.conf.Validate()
			if tc.ok && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatalf("Expected an error")
				}
				if !errors.Is(err, ErrInvalidValue) {
					t.Errorf("Expected invalid value error, got %v", err)
				}
			}
		})
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PSETTINGS_FORMAT", "xml")
	t.Setenv("PSETTINGS_DIRECTORY", dir)
	t.Setenv("PSETTINGS_ALL_ROAMING", "true")
	t.Setenv("PSETTINGS_MACHINE_NAME", "WORKSTATION")
	t.Setenv("PSETTINGS_LOG_LEVEL", "debug")

	conf, err := LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if conf.Format != FormatXML {
		t.Errorf("Expected format xml, got %s", conf.Format)
	}
	if conf.Directory != dir {
		t.Errorf("Expected directory %s, got %s", dir, conf.Directory)
	}
	if conf.FileName != DefaultXMLFileName {
		t.Errorf("Expected default xml file name, got %s", conf.FileName)
	}
	if !conf.AllRoaming {
		t.Errorf("Expected all roaming to be set")
	}
	if conf.MachineName != "WORKSTATION" {
		t.Errorf("Expected machine name WORKSTATION, got %s", conf.MachineName)
	}
	if conf.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %s", conf.LogLevel)
	}
}

func TestLoadConfigRejectsInvalidFormat(t *testing.T) {
	t.Setenv("PSETTINGS_FORMAT", "ini")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("Expected an error for an unknown format")
	}
}

func TestConfigString(t *testing.T) {
	conf := DefaultConfig(FormatJSON)
	out := conf.String()
	for _, section := range []string{"SETTINGS DOCUMENT", "LOCATION", "LOGGING", "<local host name>"} {
		if !strings.Contains(out, section) {
			t.Errorf("Expected %q in config string:\n%s", section, out)
		}
	}
}
