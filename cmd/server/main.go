package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chitramadarakhandi/minimart/internal/config"
	"github.com/chitramadarakhandi/minimart/internal/handlers"
	"github.com/chitramadarakhandi/minimart/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

func main() {
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init DB
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}

	// The migration files are the schema's single source of truth for
	// the server; InitSchema only backs the CLI and tests.
	if err := db.Migrate("migrations"); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 3. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 4. Init Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 5. Setup Handlers
	authHandler := &handlers.AuthHandler{
		Store:        db,
		SessionStore: sessionStore,
		Templates:    templates,
	}
	homeHandler := &handlers.HomeHandler{
		Store:        db,
		Templates:    templates,
		SessionStore: sessionStore,
	}
	catalogHandler := &handlers.CatalogHandler{
		Store:        db,
		Templates:    templates,
		SessionStore: sessionStore,
	}
	cartHandler := &handlers.CartHandler{
		Store:        db,
		Templates:    templates,
		SessionStore: sessionStore,
	}
	checkoutHandler := &handlers.CheckoutHandler{
		Store:        db,
		Templates:    templates,
		SessionStore: sessionStore,
	}
	orderHandler := &handlers.OrderHandler{
		Store:        db,
		Templates:    templates,
		SessionStore: sessionStore,
	}
	adminHandler := &handlers.AdminHandler{
		Store:        db,
		SessionStore: sessionStore,
		Templates:    templates,
		UploadDir:    cfg.UploadDir,
	}

	mux := http.NewServeMux()

	// Static Files
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))
	mux.Handle("/images/", http.StripPrefix("/images", http.FileServer(http.Dir(cfg.UploadDir))))

	rateLimiter := handlers.NewRateLimiter(10 * time.Second)

	// Public Routes
	mux.HandleFunc("/{$}", homeHandler.Index)
	mux.HandleFunc("GET /products", catalogHandler.List)
	mux.HandleFunc("GET /product/{id}", catalogHandler.Detail)

	mux.HandleFunc("GET /register", authHandler.RegisterGet)
	mux.HandleFunc("POST /register", rateLimiter.Middleware(authHandler.RegisterPost))
	mux.HandleFunc("GET /login", authHandler.LoginGet)
	mux.HandleFunc("POST /login", rateLimiter.Middleware(authHandler.LoginPost))
	mux.HandleFunc("GET /logout", authHandler.Logout)

	mux.HandleFunc("GET /cart", cartHandler.View)
	mux.HandleFunc("POST /cart/add/{id}", cartHandler.Add)
	mux.HandleFunc("POST /cart/remove/{id}", cartHandler.Remove)

	// Logged-in Routes
	mux.HandleFunc("GET /checkout", authHandler.RequireUser(checkoutHandler.Form))
	mux.HandleFunc("POST /checkout", authHandler.RequireUser(checkoutHandler.Place))
	mux.HandleFunc("GET /orders", authHandler.RequireUser(orderHandler.List))

	// Admin Routes
	mux.HandleFunc("GET /admin", authHandler.RequireAdmin(adminHandler.Dashboard))
	mux.HandleFunc("GET /admin/products", authHandler.RequireAdmin(adminHandler.ManageProducts))
	mux.HandleFunc("GET /admin/products/new", authHandler.RequireAdmin(adminHandler.AddProductForm))
	mux.HandleFunc("POST /admin/products", authHandler.RequireAdmin(adminHandler.CreateProduct))
	mux.HandleFunc("POST /admin/products/delete", authHandler.RequireAdmin(adminHandler.DeleteProduct))

	// 6. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(mux),
		),
	)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
