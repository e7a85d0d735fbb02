// Package main is the entry point for the heatgate CLI.
package main

import (
	"github.com/huangsam/heatgate/cmd"
	"github.com/huangsam/heatgate/internal/contract"
	"github.com/huangsam/heatgate/internal/iocache"
)

func main() {
	cmd.SetStoreManager(iocache.Manager)
	err := cmd.Execute()
	iocache.CloseStores()
	if err != nil {
		contract.LogFatal("heatgate", err)
	}
}
