package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"hotelindigo/internal/config"
	"hotelindigo/internal/storage"
)

// session_cleanup prunes persisted client state. By default it removes rows
// of every namespace untouched for -max-age; -wipe clears the configured
// namespace whatever its age.
func main() {
	maxAge := flag.Duration("max-age", 30*24*time.Hour, "remove entries not written for this long")
	wipe := flag.Bool("wipe", false, "clear the configured STORAGE_NAMESPACE instead of pruning by age")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	store, err := storage.Open(ctx, cfg.StorageURL, cfg.StorageNamespace)
	if err != nil {
		log.Fatalf("storage open failed: %v", err)
	}

	if *wipe {
		if err := store.Clear(ctx); err != nil {
			log.Fatalf("clear namespace=%s failed: %v", cfg.StorageNamespace, err)
		}
		log.Printf("session cleanup completed: namespace=%s cleared", cfg.StorageNamespace)
		return
	}

	gs, ok := store.(*storage.GormStore)
	if !ok {
		log.Printf("storage %T keeps no write times, use -wipe", store)
		os.Exit(2)
	}
	n, err := gs.DeleteStale(ctx, time.Now().Add(-*maxAge))
	if err != nil {
		log.Fatalf("cleanup client_storage failed: %v", err)
	}
	log.Printf("session cleanup completed: client_storage=%d max_age=%s", n, *maxAge)
}
