package main

import (
	"context"

	"github.com/GGP1/pinpoint/config"
	"github.com/GGP1/pinpoint/http/rest/router"
	"github.com/GGP1/pinpoint/internal/log"
	"github.com/GGP1/pinpoint/server"
	"github.com/GGP1/pinpoint/storage/memcached"
	"github.com/GGP1/pinpoint/storage/postgres"
	"github.com/GGP1/pinpoint/storage/redis"

	_ "github.com/lib/pq"
)

var (
	version = "development"
	commit  = ""
	branch  = ""
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New()
	if err != nil {
		log.Sugar().Fatalf("Failed creating the configuration: %v", err)
	}
	defer log.Sync() // Flush buffered entries

	db, err := postgres.Connect(ctx, cfg.Postgres)
	if err != nil {
		log.Sugar().Fatalf("Failed connecting to postgres: %v", err)
	}
	defer db.Close()

	cache, err := memcached.NewClient(cfg.Memcached)
	if err != nil {
		log.Sugar().Fatalf("Failed connecting to memcached: %v", err)
	}

	rdb, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Sugar().Fatalf("Failed connecting to redis: %v", err)
	}
	defer rdb.Close()

	router := router.New(cfg, db, rdb, cache)
	server := server.New(cfg.Server, router)

	log.Sugar().Infof("Server started: version %q, branch %q, commit %q", version, branch, commit)
	if err := server.Run(ctx); err != nil {
		log.Sugar().Fatalf("Failed running server: %v", err)
	}
}
