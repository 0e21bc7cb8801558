package main

import (
	"context"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/m-mizutani/dirhook/pkg/cli"
)

func main() {
	if err := cli.Run(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}
