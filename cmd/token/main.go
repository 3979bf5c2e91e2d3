// Command token issues a bearer token signed with JWT_SECRET for local testing.
package main

import (
	"flag"
	"fmt"
	"os"

	"prodroster/config"
	"prodroster/internal/adapters/auth"
	"prodroster/internal/domain"
)

func main() {
	accountID := flag.String("account", "", "account id (token subject)")
	email := flag.String("email", "", "email claim")
	roleName := flag.String("role", "", "optional role claim: PRO, STAFF or ATHLETE")
	proID := flag.String("pro", "", "optional proId claim")
	flag.Parse()

	logger := config.NewLogger()
	if *accountID == "" {
		fmt.Fprintln(os.Stderr, "usage: token -account <id> [-email e] [-role r] [-pro id]")
		os.Exit(2)
	}
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	claims := domain.Claims{ProID: *proID, Email: *email}
	if *roleName != "" {
		role, ok := domain.ParseRole(*roleName)
		if !ok {
			logger.Error("unknown role", "role", *roleName)
			os.Exit(2)
		}
		claims.Role = role
	}

	token, err := auth.NewJWTIssuer(cfg.JWTSecret).Issue(*accountID, *email, claims, cfg.JWTExpiry)
	if err != nil {
		logger.Error("failed to issue token", "err", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
