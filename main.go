// main is the entry point of the ytdash CLI.
package main

import (
	"github.com/huangsam/ytdash/cmd"
	"github.com/huangsam/ytdash/internal/contract"
	"github.com/huangsam/ytdash/internal/iocache"
)

func main() {
	defer iocache.CloseStores()
	if err := cmd.Execute(); err != nil {
		_ = cmd.StopProfiling()
		iocache.CloseStores()
		contract.LogFatal("ytdash failed", err)
	}
	if err := cmd.StopProfiling(); err != nil {
		contract.LogWarn("Failed to stop profiling", err)
	}
}
