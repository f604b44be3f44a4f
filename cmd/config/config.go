// Package config contains the commands to read and write the global config
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const (
	configKindString = iota
	configKindBool
	configKindInt
	configKindDuration
)

type configEntry struct {
	key  string
	kind int
	help string
}

// File is the config file `set` writes to. It is set by the root command
var File string

var config = map[string]configEntry{}

func init() {
	entries := []configEntry{
		{"home", configKindString, "base directory for all data (default ~/.shard)"},
		{"nonInteractive", configKindBool, "disable spinners and emojis"},
		{"verboseLogging", configKindBool, "log debug messages"},
		{"java", configKindString, "java executable used when a profile does not set one"},
		{"download.workers", configKindInt, "concurrent asset downloads"},
		{"manifestTTL", configKindDuration, "how long the version manifest is cached"},
		{"urls.versionManifest", configKindString, ""},
		{"urls.libraries", configKindString, ""},
		{"urls.resources", configKindString, ""},
		{"urls.fabricMeta", configKindString, ""},
		{"urls.quiltMeta", configKindString, ""},
		{"urls.forgeMaven", configKindString, ""},
		{"urls.forgePromotions", configKindString, ""},
		{"urls.neoforgeMaven", configKindString, ""},
	}
	// viper keys are case insensitive
	for _, entry := range entries {
		config[strings.ToLower(entry.key)] = entry
	}
}

var SubCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage global config options",
}

// lookup returns the entry for key (case insensitive)
func lookup(key string) (configEntry, error) {
	entry, ok := config[strings.ToLower(key)]
	if !ok {
		return configEntry{}, fmt.Errorf("config key \"%s\" does not exist", key)
	}
	return entry, nil
}

// parse converts a cli value to the type of the entry
func (e configEntry) parse(value string) (interface{}, error) {
	switch e.kind {
	case configKindBool:
		return parseBool(value)
	case configKindString:
		return value, nil
	case configKindInt:
		return strconv.Atoi(value)
	case configKindDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, err
		}
		if d <= 0 {
			return nil, fmt.Errorf("%s has to be positive", e.key)
		}
		return d.String(), nil
	}
	return nil, fmt.Errorf("what? uncovered config values type")
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "ja", "on", "1":
		return true, nil
	case "false", "no", "nein", "off", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value. Use \"true\" or \"false\"")
	}
}
