// Command dashboard-token signs a short-lived bearer token for the dashboard
// with DASHBOARD_JWT_SECRET.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"portfolio_backend/internal/dashboard/auth"

	"github.com/joho/godotenv"
)

func main() {
	subject := flag.String("subject", "owner", "token subject (sub claim)")
	ttl := flag.Duration("ttl", 12*time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()

	secret := os.Getenv("DASHBOARD_JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "DASHBOARD_JWT_SECRET is not set")
		os.Exit(1)
	}

	token, err := auth.SignDashboardToken(secret, *subject, *ttl, time.Now())
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to sign token:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
