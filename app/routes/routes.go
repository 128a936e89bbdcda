package routes

import (
	"net/http"
	"time"

	"linkboard/app/controllers"
	"linkboard/app/middleware"
	"linkboard/app/repositories"
	"linkboard/app/repositories/cache"
	"linkboard/app/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
)

// SetupRoutes wires the JSON API against the given badger DB. When a redis
// client is provided, the approved feed reads through it.
func SetupRoutes(db *badger.DB, redisClient *redis.Client, cacheTTL time.Duration) *mux.Router {
	postRepo := repositories.PostRepository(repositories.NewBadgerPostRepository(db))
	voteRepo := repositories.VoteRepository(repositories.NewBadgerVoteRepository(db))
	profileRepo := repositories.NewBadgerProfileRepository(db)
	sessionRepo := repositories.NewBadgerSessionRepository(db)

	if redisClient != nil {
		feed := cache.NewFeedCache(redisClient, cacheTTL)
		postRepo = cache.NewCachedPostRepository(postRepo, feed)
		voteRepo = cache.NewCachedVoteRepository(voteRepo, feed)
	}

	postService := services.NewPostService(postRepo, profileRepo)
	voteService := services.NewVoteService(voteRepo, postRepo)
	authService := services.NewAuthService(profileRepo, sessionRepo)

	postController := controllers.NewPostController(postService, voteService)
	voteController := controllers.NewVoteController(voteService)
	authController := controllers.NewAuthController(authService)

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Authenticate(authService))

	// API routes
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)

	// Auth endpoints
	api.HandleFunc("/register", authController.Register).Methods("POST")
	api.HandleFunc("/login", authController.Login).Methods("POST")
	api.HandleFunc("/logout", authController.Logout).Methods("POST")
	api.HandleFunc("/me", authController.Me).Methods("GET")

	// Post endpoints
	posts := api.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", postController.Index).Methods("GET")
	posts.HandleFunc("", postController.Create).Methods("POST")
	posts.HandleFunc("/{id}", postController.Show).Methods("GET")
	posts.HandleFunc("/{id}/decision", postController.Decide).Methods("POST")
	posts.HandleFunc("/{id}/vote", voteController.Cast).Methods("POST")

	// Moderation queue
	api.HandleFunc("/admin/pending", postController.Pending).Methods("GET")

	return router
}

// StartServer starts the HTTP server on the specified address with the given router.
func StartServer(addr string, router http.Handler) error {
	return http.ListenAndServe(addr, router)
}
