// cmd/adduser/main.go
// Creates an API operator, or resets the password of an existing one.
//
// Usage:
//
//	go run ./cmd/adduser -username clerk -password s3cret
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/cocodems/elections/config"
	bundb "github.com/cocodems/elections/db"
	"github.com/cocodems/elections/handlers"
	"github.com/cocodems/elections/models"
)

func main() {
	username := flag.String("username", "", "username (required)")
	password := flag.String("password", "", "plain-text password (required)")
	flag.Parse()

	hash, err := handlers.HashPasswordForUser(*username, *password)
	if err != nil {
		log.Fatal(err)
	}

	cfg, err := config.LoadIngest()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	db, err := bundb.Setup(ctx, cfg.Database)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := bundb.CreateTables(ctx, db); err != nil {
		log.Fatal("create tables:", err)
	}

	user := &models.User{
		Username:  *username,
		Password:  hash,
		CreatedAt: time.Now().UTC(),
	}

	_, err = db.NewInsert().Model(user).
		On("CONFLICT (username) DO UPDATE").
		Set("password = EXCLUDED.password").
		Exec(ctx)
	if err != nil {
		log.Fatal("insert user:", err)
	}

	fmt.Printf("user %q saved\n", *username)
}
