/*
Package config provides layered configuration for the simulator: compiled-in
defaults, optionally overridden by a YAML file, then by environment
variables, then by flags parsed in cmd/tracesim.

# Usage

	cfg := config.NewDefault()
	if err := cfg.LoadFromFile(path); err != nil {
		log.Fatal(err)
	}
	if err := cfg.LoadFromEnv(); err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

# Environment variables

	TRACESIM_LOG_LEVEL
	TRACESIM_LOG_FILE
	TRACESIM_CAPACITY
	TRACESIM_PAGE_SIZE
	TRACESIM_TRIGGER_THRESHOLD
	TRACESIM_METRICS_ENABLED
*/
package config
