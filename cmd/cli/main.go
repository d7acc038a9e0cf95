package main

import (
	"context"
	"log"
	"os"

	"github.com/mfintake/intakecli/internal/buildinfo"
	"github.com/mfintake/intakecli/internal/cli"
	"github.com/mfintake/intakecli/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg, nil)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
