package supabase

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/supabase-community/supabase-go"

	"taskpilot/backend/config"
)

var Client *supabase.Client

func Init() {
	apiURL := os.Getenv("SUPABASE_URL")
	apiKey := os.Getenv("SUPABASE_KEY")

	if apiURL == "" || apiKey == "" {
		config.Logger.Fatal("SUPABASE_URL or SUPABASE_KEY is missing")
	}

	var err error
	Client, err = supabase.NewClient(apiURL, apiKey, &supabase.ClientOptions{})
	if err != nil {
		config.Logger.Fatal("Failed to create Supabase client:", err)
	}
}

// ClientFromRequest builds a Supabase client that carries the
// caller's bearer token, and returns the user id and email from the
// token claims. The JWT is parsed unverified: row-level security on
// the Supabase side is what actually enforces access.
func ClientFromRequest(r *http.Request) (*supabase.Client, string, string, error) {
	apiURL := os.Getenv("SUPABASE_URL")
	apiKey := os.Getenv("SUPABASE_KEY")

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, "", "", fmt.Errorf("missing Authorization header")
	}

	jwtString := strings.TrimPrefix(authHeader, "Bearer ")
	if jwtString == "" || jwtString == authHeader {
		return nil, "", "", fmt.Errorf("invalid Authorization header")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(jwtString, claims); err != nil {
		return nil, "", "", fmt.Errorf("invalid JWT format")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, "", "", fmt.Errorf("missing sub in token")
	}
	email, _ := claims["email"].(string)

	client, err := supabase.NewClient(apiURL, apiKey, &supabase.ClientOptions{
		Headers: map[string]string{
			"Authorization": "Bearer " + jwtString,
		},
	})
	return client, sub, email, err
}
