// Package globals holds the state the cli commands share. It is filled by the root command
package globals

import (
	"github.com/shardmc/shard/internals/endpoints"
	"github.com/shardmc/shard/internals/ownhttp"
	"github.com/shardmc/shard/internals/paths"
	"go.uber.org/zap"
)

var (
	// Version of shard
	Version = "dev"
	// ConfigDir contains config.toml and the credential file fallback
	ConfigDir string
	// Paths is the data directory layout
	Paths      *paths.Paths
	Endpoints  = endpoints.Default()
	HTTPClient = ownhttp.New()
	Logger     = zap.NewNop()
)
