package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go-interview-booking/pkg/auth"

	"github.com/google/uuid"
)

// Mints a local access token for trying the API by hand
func main() {
	secret := flag.String("secret", os.Getenv("JWT_SECRET"), "HS256 signing secret")
	issuer := flag.String("issuer", os.Getenv("JWT_ISSUER"), "token issuer")
	id := flag.String("id", uuid.NewString(), "user id (sub claim)")
	email := flag.String("email", "user@example.com", "user email")
	name := flag.String("name", "Local User", "user name")
	role := flag.String("role", "user", "admin or user")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	token, err := auth.GenerateToken(*secret, *issuer, *id, *email, *name, *role, *ttl)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	fmt.Printf("User: %s (%s)\nToken: %s\n", *email, *role, token)
}
