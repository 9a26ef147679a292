package main

import (
	"fmt"

	"github.com/dashpatch/dashpatch/internal/grafana/config"
)

// resolveManagerConfig picks exactly one of --conf, --conf-path, --url,
// in that order: the fullest, most explicit source wins when more than
// one is supplied.
func resolveManagerConfig() (config.ManagerConfig, error) {
	switch {
	case flagConfig != "":
		return config.FromJSON([]byte(flagConfig))
	case flagConfigPath != "":
		return config.FromFile(flagConfigPath)
	case flagURL != "":
		return config.FromURL(flagURL)
	default:
		return config.ManagerConfig{}, fmt.Errorf("one of --conf, --conf-path, or --url must be supplied")
	}
}
