package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"telegram_initdata/internal/db"
	"telegram_initdata/internal/logger"
	"telegram_initdata/internal/migrations"

	"github.com/joho/godotenv"
)

func main() {
	apply := flag.Bool("apply", false, "apply migrations instead of listing them")
	flag.Parse()

	_ = godotenv.Load()
	names, err := db.Migrations(migrations.FS)
	if err != nil {
		logger.Fatal("list migrations", "error", err)
	}
	if !*apply {
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, dsn)
	if err != nil {
		logger.Fatal("connect database", "error", err)
	}
	defer pool.Close()

	if err := db.Apply(ctx, pool, migrations.FS); err != nil {
		logger.Fatal("apply migrations", "error", err)
	}
}
