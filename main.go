package main

import (
	"context"
	"net/http"
	"os"

	"github.com/rs/cors"

	"taskpilot/backend/ai"
	"taskpilot/backend/billing"
	"taskpilot/backend/calendar"
	"taskpilot/backend/config"
	"taskpilot/backend/email"
	"taskpilot/backend/handlers"
	"taskpilot/backend/middleware"
	"taskpilot/backend/routes"
	"taskpilot/backend/supabase"
)

func main() {
	config.InitLogger()
	config.LoadEnv()
	supabase.Init()
	billing.Init()

	var inserter calendar.Inserter
	if tok := os.Getenv("GOOGLE_ACCESS_TOKEN"); tok != "" {
		gi, err := calendar.NewGoogleInserter(context.Background(), tok)
		if err != nil {
			config.Logger.Warn("Google Calendar insertion disabled:", err)
		} else {
			inserter = gi
		}
	}

	handlers.Init(
		ai.New(os.Getenv("OPENROUTER_API_KEY")),
		calendar.NewAdapter(inserter),
		email.New(),
	)

	mux := http.NewServeMux()
	routes.RegisterAllRoutes(mux)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Requested-With"},
		MaxAge:         86400,
	})

	handler := c.Handler(middleware.Chain(middleware.RequestLogger)(mux))

	addr := config.Port()
	config.Logger.Info("Server is running on ", addr)
	config.Logger.Fatal(http.ListenAndServe(addr, handler))
}
