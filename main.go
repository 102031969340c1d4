package main

import (
	"time"

	"github.com/ndesc/ndesc-api/config"
	"github.com/ndesc/ndesc-api/refcode"
	"github.com/ndesc/ndesc-api/routes"
	"github.com/ndesc/ndesc-api/store"
	"github.com/ndesc/ndesc-api/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	rdb := store.NewClient(cfg)
	gate := refcode.New(cfg.RefCodeFile)
	utils.Sugar.Infof("referral gate loaded with %d codes from %s", gate.Len(), cfg.RefCodeFile)

	r := routes.SetupRouter(rdb, gate)

	grace := time.Duration(cfg.ShutdownGraceSec) * time.Second
	kill := time.Duration(cfg.ShutdownKillSec) * time.Second

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	err := utils.GraceServer(":"+cfg.AppPort, r, grace, kill, func() {
		if err := rdb.Close(); err != nil {
			utils.Sugar.Warnf("record store close: %v", err)
		} else {
			utils.Sugar.Info("record store connection closed")
		}
	})
	if err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
