package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/cachetrace/simulator/pkg/cerr"
)

// Configuration holds every invocation knob for a simulation run.
type Configuration struct {
	Global     GlobalConfig     `yaml:"global"`
	Cache      CacheConfig      `yaml:"cache"`
	NHit       NHitConfig       `yaml:"nhit"`
	Trace      TraceConfig      `yaml:"trace"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
}

// GlobalConfig holds process-wide settings.
type GlobalConfig struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// CacheConfig holds the capacity and page-granularity knobs shared by
// every policy.
type CacheConfig struct {
	CapacitySize int `yaml:"capacity"`
	PageSize     int `yaml:"page_size"`
}

// NHitConfig holds the admission knobs for both N-Hit variants.
type NHitConfig struct {
	TriggerThreshold  float64 `yaml:"trigger_threshold"`
	InsertionThreshold int    `yaml:"insertion_threshold"`
	TrackingRatio     int     `yaml:"tracking_ratio"`
}

// TraceConfig holds the optional trace time-window filter.
type TraceConfig struct {
	StartTime float64 `yaml:"start_time"`
	EndTime   float64 `yaml:"end_time"`
}

// MonitoringConfig holds the optional observability sub-config.
type MonitoringConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig controls the optional Prometheus collector.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// NewDefault returns a configuration with the defaults named in the
// invocation surface: capacity 10000, page size 4096, trigger threshold
// 80%, insertion threshold/N 2, tracking ratio 2.
func NewDefault() *Configuration {
	return &Configuration{
		Global: GlobalConfig{
			LogLevel: "INFO",
		},
		Cache: CacheConfig{
			CapacitySize: 10000,
			PageSize:     4096,
		},
		NHit: NHitConfig{
			TriggerThreshold:   80.0,
			InsertionThreshold: 2,
			TrackingRatio:      2,
		},
		Monitoring: MonitoringConfig{
			Metrics: MetricsConfig{
				Enabled: false,
				Addr:    ":9090",
			},
		},
	}
}

// LoadFromFile loads configuration from a YAML file.
func (c *Configuration) LoadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return cerr.New(cerr.CodeConfigLoad, "failed to read config file").WithCause(err).WithDetail("path", filename)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return cerr.New(cerr.CodeConfigLoad, "failed to parse config file").WithCause(err).WithDetail("path", filename)
	}

	return nil
}

// LoadFromEnv overlays environment variables onto the configuration.
func (c *Configuration) LoadFromEnv() error {
	if val := os.Getenv("TRACESIM_LOG_LEVEL"); val != "" {
		c.Global.LogLevel = val
	}
	if val := os.Getenv("TRACESIM_LOG_FILE"); val != "" {
		c.Global.LogFile = val
	}
	if val := os.Getenv("TRACESIM_CAPACITY"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.Cache.CapacitySize = n
		}
	}
	if val := os.Getenv("TRACESIM_PAGE_SIZE"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.Cache.PageSize = n
		}
	}
	if val := os.Getenv("TRACESIM_TRIGGER_THRESHOLD"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.NHit.TriggerThreshold = f
		}
	}
	if val := os.Getenv("TRACESIM_METRICS_ENABLED"); val != "" {
		c.Monitoring.Metrics.Enabled = strings.ToLower(val) == "true"
	}

	return nil
}

// SaveToFile persists the configuration as YAML.
func (c *Configuration) SaveToFile(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return cerr.New(cerr.CodeConfigSave, "failed to marshal config").WithCause(err)
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0750); err != nil {
		return cerr.New(cerr.CodeConfigSave, "failed to create config directory").WithCause(err)
	}

	if err := os.WriteFile(filename, data, 0600); err != nil {
		return cerr.New(cerr.CodeConfigSave, "failed to write config file").WithCause(err).WithDetail("path", filename)
	}

	return nil
}

// Validate rejects non-positive capacity, invalid page sizes, and
// out-of-range thresholds per the error handling design.
func (c *Configuration) Validate() error {
	if c.Cache.CapacitySize <= 0 {
		return cerr.New(cerr.CodeInvalidCapacity, "capacity must be greater than 0").WithDetail("capacity", c.Cache.CapacitySize)
	}
	if c.Cache.PageSize <= 0 {
		return cerr.New(cerr.CodeInvalidConfig, "page_size must be greater than 0").WithDetail("page_size", c.Cache.PageSize)
	}
	if c.NHit.TriggerThreshold < 0 || c.NHit.TriggerThreshold > 100 {
		return cerr.New(cerr.CodeInvalidThreshold, "trigger_threshold must be between 0 and 100").WithDetail("trigger_threshold", c.NHit.TriggerThreshold)
	}
	if c.NHit.InsertionThreshold <= 0 {
		return cerr.New(cerr.CodeInvalidThreshold, "insertion_threshold must be greater than 0").WithDetail("insertion_threshold", c.NHit.InsertionThreshold)
	}
	if c.NHit.TrackingRatio <= 0 {
		return cerr.New(cerr.CodeInvalidThreshold, "tracking_ratio must be greater than 0").WithDetail("tracking_ratio", c.NHit.TrackingRatio)
	}

	validLogLevels := []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL"}
	logLevelValid := false
	for _, level := range validLogLevels {
		if c.Global.LogLevel == level {
			logLevelValid = true
			break
		}
	}
	if !logLevelValid {
		return cerr.New(cerr.CodeInvalidConfig, fmt.Sprintf("invalid log_level: %s (must be one of: %s)", c.Global.LogLevel, strings.Join(validLogLevels, ", ")))
	}

	return nil
}
