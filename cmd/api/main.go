package main

import (
	"context"
	"log"

	"github.com/marketcore/go-gin-market-server/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("market API failed: %v", err)
	}
}
