package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/cardvault/internal/wallet/cli"
	"github.com/dmitrijs2005/cardvault/internal/wallet/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
