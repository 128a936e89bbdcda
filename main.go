package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	applog "linkboard/app/log"
	"linkboard/app/repositories"
	"linkboard/app/routes"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("linkboard version %s\n", cliVersion)
	case "serve":
		serve()
	case "admin":
		if len(os.Args) < 3 {
			fmt.Println("Error: username is required for admin command")
			os.Exit(1)
		}
		promoteAdmin(os.Args[2])
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: linkboard <command> [options]
Commands:
  help                Display this help message.
  version             Show version information.
  serve               Run the JSON API server.
  admin <username>    Grant moderation rights to an existing user.

Environment (read from .env when present):
  LINKBOARD_ADDR        listen address (default :8080)
  LINKBOARD_DB_PATH     badger data directory (default ./data)
  LINKBOARD_REDIS_ADDR  optional redis address for the feed cache
  LINKBOARD_CACHE_TTL   feed cache TTL (default 30s)
`
	fmt.Println(helpText)
}

func serve() {
	loadEnv()

	addr := envOr("LINKBOARD_ADDR", ":8080")
	dbPath := envOr("LINKBOARD_DB_PATH", "./data")

	db, err := repositories.Open(dbPath)
	if err != nil {
		applog.Error.Fatalf("failed to open store at %s: %v", dbPath, err)
	}
	defer db.Close()

	var redisClient *redis.Client
	if redisAddr := os.Getenv("LINKBOARD_REDIS_ADDR"); redisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: redisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			applog.Warn.Printf("redis unreachable at %s, serving without feed cache: %v", redisAddr, err)
			redisClient = nil
		}
	}

	cacheTTL := 30 * time.Second
	if ttl := os.Getenv("LINKBOARD_CACHE_TTL"); ttl != "" {
		parsed, err := time.ParseDuration(ttl)
		if err != nil {
			applog.Error.Fatalf("invalid LINKBOARD_CACHE_TTL %q: %v", ttl, err)
		}
		cacheTTL = parsed
	}

	router := routes.SetupRoutes(db, redisClient, cacheTTL)
	applog.Info.Printf("listening on %s", addr)
	if err := routes.StartServer(addr, router); err != nil {
		applog.Error.Fatalf("server stopped: %v", err)
	}
}

// promoteAdmin flags an existing user as moderator. Admin rights are granted
// out of band, never through the API.
func promoteAdmin(username string) {
	loadEnv()

	dbPath := envOr("LINKBOARD_DB_PATH", "./data")
	db, err := repositories.Open(dbPath)
	if err != nil {
		applog.Error.Fatalf("failed to open store at %s: %v", dbPath, err)
	}
	defer db.Close()

	profileRepo := repositories.NewBadgerProfileRepository(db)
	profile, err := profileRepo.GetByUsername(username)
	if err != nil {
		applog.Error.Fatalf("failed to look up %s: %v", username, err)
	}
	if profile.IsAdmin {
		fmt.Printf("%s is already an admin\n", username)
		return
	}

	profile.IsAdmin = true
	if err := profileRepo.Update(profile); err != nil {
		applog.Error.Fatalf("failed to update %s: %v", username, err)
	}
	fmt.Printf("%s is now an admin\n", username)
}

func loadEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		applog.Warn.Printf("could not load .env: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
