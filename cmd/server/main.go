package main

import (
	"context"
	"log"

	"github.com/awnumar/memguard"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/szrnka-peter/give-my-secret/internal/server"
	"github.com/szrnka-peter/give-my-secret/internal/server/config"
)

func main() {

	defer memguard.Purge()

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
