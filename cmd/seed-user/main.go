// Command seed-user creates a user directly in the store and prints an
// access token for it.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"vidtube/internal/config"
	"vidtube/internal/dbmongo"
	"vidtube/internal/logging"
	"vidtube/internal/user"
	"vidtube/internal/wire"
)

func main() {
	_ = godotenv.Load()

	var in user.SeedInput
	flag.StringVar(&in.Username, "username", "", "username (lowercase letters, digits, underscores)")
	flag.StringVar(&in.Email, "email", "", "email address")
	flag.StringVar(&in.FullName, "name", "", "full name")
	flag.StringVar(&in.Password, "password", "", "password")
	flag.StringVar(&in.Avatar, "avatar", "", "avatar URL")
	flag.Parse()

	if err := run(config.LoadConfig(), in); err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config, in user.SeedInput) (err error) {
	if _, closeLog, logErr := logging.Init(cfg.Logging); logErr == nil {
		defer closeLog()
	}
	defer func() {
		if err != nil {
			log.Error().Err(err).Msg("failed to seed user")
		}
	}()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	mongoClient, err := dbmongo.NewMongoConnection(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	defer mongoClient.Close(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := mongoClient.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to ensure indexes: %w", err)
	}

	svc := user.NewService(user.NewRepository(mongoClient), wire.TokenOptions(cfg), cfg.Auth.BcryptCost)
	u, token, err := svc.RegisterUser(ctx, in)
	if err != nil {
		return err
	}
	fmt.Printf("user %s created with id %s\naccess token: %s\n", u.Username, u.ID.Hex(), token)
	return nil
}
