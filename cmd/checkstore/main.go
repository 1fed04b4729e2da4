// Command checkstore counts every collection of the configured table store and prints
// which ones are reachable.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"

	"github.com/mamadbah2/retailsheet/internal/config"
	"github.com/mamadbah2/retailsheet/internal/repository/stores"
	"github.com/mamadbah2/retailsheet/internal/service/dataset"
	"github.com/mamadbah2/retailsheet/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	envFile := flag.String("env", "", "path to an env file")
	timeout := flag.Duration("timeout", 30*time.Second, "overall probe timeout")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	store, closeStore, err := stores.Open(ctx, cfg, baseLogger.Named("repo.store"))
	if err != nil {
		baseLogger.Error("failed to init table store", zap.Error(err))
		return 2
	}
	defer func() { _ = closeStore(context.Background()) }()

	registry := dataset.NewDefaultRegistry(store, dataset.Options{Logger: baseLogger.Named("svc.dataset")})

	failed := 0
	for _, d := range registry.All() {
		n, err := d.Count(ctx)
		if err != nil {
			failed++
			fmt.Printf("%-16s missing (%v)\n", d.Kind().Collection(), err)
			continue
		}
		fmt.Printf("%-16s ok, %d records\n", d.Kind().Collection(), n)
	}

	if failed > 0 {
		return 1
	}
	return 0
}
