// Package config provides configuration loading for the genre analytics
// pipeline.
//
// Configuration is assembled from three sources, in increasing precedence:
// struct-tag defaults, an optional YAML config file (config.yaml, or the
// path in VGP_CONFIG_FILE), and VGP_-prefixed environment variables.
//
// The package also resolves and creates the output directory layout used by
// every pipeline run (data/, reports/, logs/). Input table locations are
// explicit configuration; no stage reads from ambient working-directory
// state.
package config
