// Command token prints a signing secret or a bearer token for the customer service.
//
//	token -secret               print a new random JWT_SECRET
//	token -sub ops -hours 12    print a token signed with $JWT_SECRET
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"customer-service/config"
	"customer-service/utils"
)

func main() {
	newSecret := flag.Bool("secret", false, "print a new random signing secret and exit")
	subject := flag.String("sub", "operator", "token subject")
	hours := flag.Int("hours", 0, "token lifetime in hours (default JWT_EXPIRY_HOURS)")
	flag.Parse()

	if *newSecret {
		secret, err := utils.GenerateJWTSecret()
		if err != nil {
			fail(err)
		}
		fmt.Println(secret)
		return
	}

	cfg, _, err := config.Load()
	if err != nil {
		fail(err)
	}
	ttl := time.Duration(cfg.JWTExpiryHours) * time.Hour
	if *hours > 0 {
		ttl = time.Duration(*hours) * time.Hour
	}

	token, err := utils.GenerateToken(*subject, cfg.JWTSecret, ttl)
	if err != nil {
		fail(err)
	}
	fmt.Println(token)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "token:", err)
	os.Exit(1)
}
