// Command token mints an operator access token for the payroll API.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sdgtech/payroll-backend-go/internal/config"
	"github.com/sdgtech/payroll-backend-go/internal/pkg/jwt"
)

func main() {
	subject := flag.String("sub", "payroll-operator", "token subject")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).GenerateAccessToken(*subject)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error generating token:", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "expires %s\n", time.Unix(expiresAt, 0).Format(time.RFC3339))
	fmt.Println(token)
}
