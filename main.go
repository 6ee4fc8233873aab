package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/traj/cli"
	"github.com/ardnew/traj/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		log.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}
