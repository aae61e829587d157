package main

import (
	"fmt"
	"os"

	"anti-portfolio/internal/api"
	"anti-portfolio/internal/config"
	"anti-portfolio/internal/db"
	"anti-portfolio/internal/llm"
	"anti-portfolio/internal/profile"
	redisdb "anti-portfolio/internal/redis"
	"anti-portfolio/internal/simulation"
)

func main() {
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := db.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	rdb := redisdb.NewClient(cfg)

	completer := llm.NewClient(cfg.Anthropic)
	engine := simulation.NewEngine(db.DB, completer)
	profiles := profile.NewGenerator(db.DB, completer)

	r := api.SetupRouter(cfg, rdb, db.DB, engine, profiles)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("Starting server on %s\n", addr)
	if err := r.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
