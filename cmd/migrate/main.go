package main

import (
	"context"
	"flag"
	"log"
	"os"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/damoang/rokn-storefront/internal/config"
	"github.com/damoang/rokn-storefront/internal/database"
	"github.com/damoang/rokn-storefront/internal/migration"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "configs/config.local.yaml", "config file path")
	seed := flag.Bool("seed", true, "seed default catalog when the products table is empty")
	verify := flag.Bool("verify", false, "verify stored products against catalog rules")
	rollback := flag.Bool("rollback", false, "drop storefront tables")
	dryRun := flag.Bool("dry-run", false, "show current table counts without executing")
	verbose := flag.Bool("verbose", false, "verbose SQL logging")
	flag.Parse()

	if _, err := config.LoadDotEnv("."); err != nil {
		log.Fatalf("Failed to load env files: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logLevel := gormlogger.Warn
	if *verbose {
		logLevel = gormlogger.Info
	}

	db, err := database.Open(cfg.Database, logLevel)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get underlying DB: %v", err)
	}
	defer sqlDB.Close()

	switch {
	case *rollback:
		if err := migration.Rollback(db); err != nil {
			log.Fatalf("Rollback failed: %v", err)
		}
		return
	case *dryRun:
		printCounts(db)
		return
	}

	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Storefront schema is up to date")

	if *seed {
		if _, err := migration.Seed(context.Background(), db); err != nil {
			log.Fatalf("Seed failed: %v", err)
		}
	}

	if *verify {
		issues, err := migration.Verify(db)
		if err != nil {
			log.Fatalf("Verify failed: %v", err)
		}
		for _, issue := range issues {
			log.Printf("[verify] %s", issue)
		}
		if len(issues) > 0 {
			log.Printf("[verify] %d invalid products", len(issues))
			os.Exit(1)
		}
		log.Println("[verify] OK")
	}

	printCounts(db)
}

func printCounts(db *gorm.DB) {
	counts, err := migration.Counts(db)
	if err != nil {
		log.Printf("Count failed (tables may not exist yet): %v", err)
		return
	}
	for table, n := range counts {
		log.Printf("  %-24s %d rows", table, n)
	}
}
