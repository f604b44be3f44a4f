package main

import (
	"net/http"

	"github.com/shardmc/shard/cmd"
	"github.com/shardmc/shard/internals/ownhttp"
)

// set by goreleaser
var version string

func main() {
	if version != "" {
		cmd.Version = version
		ownhttp.Version = version
	}

	// replace default http client
	http.DefaultClient = ownhttp.New()

	cmd.Execute()
}
