package main

import (
	"context"
	"flag"
	"os"
	"time"

	"reviewhub/proj/internal/api/tasks"
	"reviewhub/proj/internal/config"
	"reviewhub/proj/internal/lib/logger"
	"reviewhub/proj/internal/services"
	"reviewhub/proj/internal/storage/postgres"
	redisstorage "reviewhub/proj/internal/storage/redis"

	"github.com/joho/godotenv"
)

const version = "1.0.0"

func main() {
	cfgPath := flag.String("config", "config/local.yml", "path to config file")
	flag.Parse()
	godotenv.Load()
	cfg := config.MustLoad(*cfgPath)
	log := logger.SetupLogger(cfg.Debug)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	storage, err := postgres.New(ctx, cfg.DB.Dsn, cfg.DB.MaxConns, cfg.DB.MaxConnIdleTime)
	if err != nil {
		panic(err)
	}
	defer storage.Conn.Close()
	log.Info("database connection established")
	rdb, err := redisstorage.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		panic(err)
	}
	defer rdb.Client.Close()
	log.Info("redis connection established", "addr", cfg.Redis.Addr)
	bgTasks := tasks.New(log, cfg.BgTasks.MaxWorkers, cfg.BgTasks.MaxQueueSize)
	bgTasks.Run()
	svcs := services.New(log, cfg, storage, rdb, bgTasks)
	app := NewApplication(cfg, log, svcs, bgTasks)
	if err := app.serve(); err != nil {
		log.Error("server error", "reason", err.Error())
		os.Exit(1)
	}
}
