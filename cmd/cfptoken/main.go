// Command cfptoken prints an organizer bearer token for the review endpoints.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"conferencecfp/config"
	"conferencecfp/internal/adapters/auth"
	"conferencecfp/internal/domain"
)

func main() {
	var (
		subject string
		email   string
		ttl     time.Duration
	)
	flag.StringVar(&subject, "subject", "", "organizer id placed in the sub claim (required)")
	flag.StringVar(&email, "email", "", "organizer email claim")
	flag.DurationVar(&ttl, "ttl", 12*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := issue(os.Stdout, auth.NewJWTIssuer(cfg.JWTSecret), subject, email, ttl); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

func issue(w io.Writer, issuer domain.TokenIssuer, subject, email string, ttl time.Duration) error {
	if subject == "" {
		return fmt.Errorf("-subject is required")
	}
	if ttl <= 0 {
		return fmt.Errorf("-ttl must be positive")
	}
	token, err := issuer.Issue(subject, email, []string{domain.RoleOrganizer}, ttl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, token)
	return err
}
