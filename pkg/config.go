package dupescan

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-ini/ini"
)

// Config represents the dupescan configuration file
type Config struct {
	configPath string
	ini        *ini.File
}

// HashConfig represents hash algorithm configuration
type HashConfig struct {
	Default string // Default hash algorithm
}

// OutputConfig represents output configuration
type OutputConfig struct {
	Format string // Default output format
	Report bool   // Print the summary report to stderr
}

// VerboseConfig represents verbosity configuration
type VerboseConfig struct {
	Level int    // Default verbose level (0=errors, 1=info, 2=debug, 3=trace)
	Debug string // Default debug flags (comma-separated)
}

// ScanConfig represents file selection defaults. Empty size and depth
// values mean unbounded.
type ScanConfig struct {
	MinSize     string
	MaxSize     string
	Depth       string
	NoEmpty     bool
	HardLinks   bool
	RFactor     string
	ExcludeFrom string // file of exclude regexes, one per line
}

// PerformanceConfig represents performance-related configuration
type PerformanceConfig struct {
	Workers         int // 0 = pick from the disk heuristic
	ChannelCapacity int
}

// AllConfig represents all configuration options
type AllConfig struct {
	Hash        *HashConfig
	Output      *OutputConfig
	Verbose     *VerboseConfig
	Scan        *ScanConfig
	Performance *PerformanceConfig
}

// configKey locates an override key inside the ini file
type configKey struct {
	section  string
	key      string
	validate func(string) error
}

// configKeys maps the short override names to their sections
var configKeys = map[string]configKey{
	"default":          {"filehash", "default", ValidateHashAlgorithm},
	"format":           {"output", "format", ValidateOutputFormat},
	"report":           {"output", "report", validateBool},
	"level":            {"verbose", "level", validateVerboseLevelString},
	"debug":            {"verbose", "debug", ValidateDebugFlags},
	"min":              {"scan", "min", validateOptionalSize},
	"max":              {"scan", "max", validateOptionalSize},
	"depth":            {"scan", "depth", validateOptionalDepth},
	"no_empty":         {"scan", "no_empty", validateBool},
	"hard_links":       {"scan", "hard_links", validateBool},
	"rfactor":          {"scan", "rfactor", validateRFactor},
	"exclude_from":     {"scan", "exclude_from", validateExcludeFile},
	"workers":          {"performance", "workers", validateWorkersString},
	"channel_capacity": {"performance", "channel_capacity", validateCapacityString},
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/dupescan/config or the
// platform equivalent
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, "dupescan", "config"), nil
}

// LoadConfig loads configuration from configPath, or from the default
// location when configPath is empty. A missing file yields the defaults
// without creating anything on disk.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		configPath = defaultPath
	}

	cfg := &Config{
		configPath: configPath,
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg.ini = ini.Empty()
		if err := cfg.setDefaults(); err != nil {
			return nil, fmt.Errorf("failed to set default config: %w", err)
		}
	} else {
		iniFile, err := ini.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		cfg.ini = iniFile
	}

	return cfg, nil
}

// setDefaults sets default configuration values
func (c *Config) setDefaults() error {
	defaults := []struct {
		section, key, value string
	}{
		{"filehash", "default", DefaultAlgorithm},
		{"output", "format", FormatFdupes.String()},
		{"output", "report", "false"},
		{"verbose", "level", "0"},
		{"verbose", "debug", ""},
		{"scan", "min", ""},
		{"scan", "max", ""},
		{"scan", "depth", ""},
		{"scan", "no_empty", "false"},
		{"scan", "hard_links", "false"},
		{"scan", "rfactor", DefaultFactor.String()},
		{"scan", "exclude_from", ""},
		{"performance", "workers", "0"},
		{"performance", "channel_capacity", strconv.Itoa(DefaultChannelCapacity)},
	}

	for _, d := range defaults {
		section, err := c.ini.NewSection(d.section)
		if err != nil {
			return fmt.Errorf("failed to create %s section: %w", d.section, err)
		}
		if _, err := section.NewKey(d.key, d.value); err != nil {
			return fmt.Errorf("failed to set default %s.%s: %w", d.section, d.key, err)
		}
	}
	return nil
}

// Path returns the file this configuration is loaded from and saved to
func (c *Config) Path() string {
	return c.configPath
}

// GetHashConfig returns the hash configuration
func (c *Config) GetHashConfig() *HashConfig {
	hashConfig := &HashConfig{
		Default: DefaultAlgorithm, // fallback default
	}

	if c.ini.HasSection("filehash") {
		section := c.ini.Section("filehash")
		if section.HasKey("default") {
			hashConfig.Default = section.Key("default").String()
		}
	}

	return hashConfig
}

// GetOutputConfig returns the output configuration
func (c *Config) GetOutputConfig() *OutputConfig {
	outputConfig := &OutputConfig{
		Format: FormatFdupes.String(), // fallback default
	}

	if c.ini.HasSection("output") {
		section := c.ini.Section("output")
		if section.HasKey("format") {
			outputConfig.Format = section.Key("format").String()
		}
		if section.HasKey("report") {
			if report, err := section.Key("report").Bool(); err == nil {
				outputConfig.Report = report
			}
		}
	}

	return outputConfig
}

// GetVerboseConfig returns the verbose configuration
func (c *Config) GetVerboseConfig() *VerboseConfig {
	verboseConfig := &VerboseConfig{}

	if c.ini.HasSection("verbose") {
		section := c.ini.Section("verbose")
		if section.HasKey("level") {
			if level, err := section.Key("level").Int(); err == nil {
				verboseConfig.Level = level
			}
		}
		if section.HasKey("debug") {
			verboseConfig.Debug = section.Key("debug").String()
		}
	}

	return verboseConfig
}

// GetScanConfig returns the file selection defaults
func (c *Config) GetScanConfig() *ScanConfig {
	scanConfig := &ScanConfig{
		RFactor: DefaultFactor.String(), // fallback default
	}

	if c.ini.HasSection("scan") {
		section := c.ini.Section("scan")
		scanConfig.MinSize = section.Key("min").String()
		scanConfig.MaxSize = section.Key("max").String()
		scanConfig.Depth = section.Key("depth").String()
		if noEmpty, err := section.Key("no_empty").Bool(); err == nil {
			scanConfig.NoEmpty = noEmpty
		}
		if hardLinks, err := section.Key("hard_links").Bool(); err == nil {
			scanConfig.HardLinks = hardLinks
		}
		if rfactor := section.Key("rfactor").String(); rfactor != "" {
			scanConfig.RFactor = rfactor
		}
		scanConfig.ExcludeFrom = section.Key("exclude_from").String()
	}

	return scanConfig
}

// GetPerformanceConfig returns the performance configuration
func (c *Config) GetPerformanceConfig() *PerformanceConfig {
	performanceConfig := &PerformanceConfig{
		ChannelCapacity: DefaultChannelCapacity, // fallback default
	}

	if c.ini.HasSection("performance") {
		section := c.ini.Section("performance")
		if workers, err := section.Key("workers").Int(); err == nil {
			performanceConfig.Workers = workers
		}
		if capacity, err := section.Key("channel_capacity").Int(); err == nil && capacity > 0 {
			performanceConfig.ChannelCapacity = capacity
		}
	}

	return performanceConfig
}

// GetAllConfig returns all configuration options
func (c *Config) GetAllConfig() *AllConfig {
	return &AllConfig{
		Hash:        c.GetHashConfig(),
		Output:      c.GetOutputConfig(),
		Verbose:     c.GetVerboseConfig(),
		Scan:        c.GetScanConfig(),
		Performance: c.GetPerformanceConfig(),
	}
}

// Get returns the raw value stored under an override name
func (c *Config) Get(key string) (string, error) {
	location, ok := configKeys[key]
	if !ok {
		return "", fmt.Errorf("unsupported config key '%s' (supported: %s)", key, strings.Join(ConfigKeys(), ", "))
	}
	return c.ini.Section(location.section).Key(location.key).String(), nil
}

// Set validates and stores one value by its override name
func (c *Config) Set(key, value string) error {
	location, ok := configKeys[key]
	if !ok {
		return fmt.Errorf("unsupported config key '%s' (supported: %s)", key, strings.Join(ConfigKeys(), ", "))
	}
	if err := location.validate(value); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	c.ini.Section(location.section).Key(location.key).SetValue(value)
	return nil
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return c.ini.SaveTo(c.configPath)
}

// ApplyOverrides applies command-line overrides to the configuration
// Accepts strings like "default:blake3", "format:json", "level:2", "min:4K"
func (c *Config) ApplyOverrides(overrides []string) error {
	for _, override := range overrides {
		parts := strings.SplitN(override, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid override format '%s', expected 'key:value'", override)
		}

		if err := c.Set(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])); err != nil {
			return err
		}
	}

	return nil
}

// ConfigKeys lists the supported override names in a stable order
func ConfigKeys() []string {
	return []string{
		"default", "format", "report", "level", "debug",
		"min", "max", "depth", "no_empty", "hard_links", "rfactor", "exclude_from",
		"workers", "channel_capacity",
	}
}

// ValidateOutputFormat validates that an output format is supported
func ValidateOutputFormat(format string) error {
	_, err := ParseFormat(format)
	return err
}

// ValidateVerboseLevel validates that a verbose level is valid
func ValidateVerboseLevel(level int) error {
	if level < 0 || level > 3 {
		return fmt.Errorf("invalid verbose level: %d (supported: 0-3)", level)
	}
	return nil
}

// ValidateDebugFlags validates debug flags against the known categories
func ValidateDebugFlags(debug string) error {
	for _, flag := range strings.Split(debug, ",") {
		name := strings.ToLower(strings.TrimSpace(strings.SplitN(flag, ":", 2)[0]))
		switch name {
		case "", DebugScan, DebugFilter, DebugDedupe, DebugDisk:
		default:
			return fmt.Errorf("unknown debug flag: %s (supported: %s, %s, %s, %s)",
				name, DebugScan, DebugFilter, DebugDedupe, DebugDisk)
		}
	}
	return nil
}

// ValidateWorkers validates that the worker count is reasonable; 0 means automatic
func ValidateWorkers(workers int) error {
	if workers < 0 {
		return fmt.Errorf("workers must not be negative, got: %d", workers)
	}
	if workers > 256 {
		return fmt.Errorf("workers should not exceed 256, got: %d", workers)
	}
	return nil
}

func validateBool(value string) error {
	if _, err := strconv.ParseBool(value); err != nil {
		return fmt.Errorf("expected a boolean, got: %s", value)
	}
	return nil
}

func validateVerboseLevelString(value string) error {
	level, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("expected an integer, got: %s", value)
	}
	return ValidateVerboseLevel(level)
}

func validateOptionalSize(value string) error {
	if value == "" {
		return nil
	}
	_, err := ParseHumanSize(value)
	return err
}

func validateOptionalDepth(value string) error {
	if value == "" {
		return nil
	}
	depth, err := strconv.Atoi(value)
	if err != nil || depth < 0 {
		return fmt.Errorf("expected a non-negative integer, got: %s", value)
	}
	return nil
}

func validateRFactor(value string) error {
	_, err := ParseFactor(value)
	return err
}

func validateExcludeFile(value string) error {
	if value == "" {
		return nil
	}
	_, err := LoadExcludeFile(value)
	return err
}

func validateWorkersString(value string) error {
	workers, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("expected an integer, got: %s", value)
	}
	return ValidateWorkers(workers)
}

func validateCapacityString(value string) error {
	capacity, err := strconv.Atoi(value)
	if err != nil || capacity < 1 {
		return fmt.Errorf("expected a positive integer, got: %s", value)
	}
	return nil
}
