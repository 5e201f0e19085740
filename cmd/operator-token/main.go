// operator-token mints an HS256 access token that unlocks the seat chart
// routes when the server runs with JWT_SECRET set.
//
//	operator-token --subject alice --ttl 8h
//
// The secret is read from JWT_SECRET unless --secret is given, and the
// lifetime defaults to ACCESS_TOKEN_TTL_MIN minutes.  A .env file in the
// working directory is honoured for both.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/iliyamo/train-ticket-booking/internal/config"
	"github.com/iliyamo/train-ticket-booking/internal/utils"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	config.LoadDotEnv()

	var (
		subject string
		secret  string
		ttl     time.Duration
		asJSON  bool
	)
	flagSet := pflag.NewFlagSet("operator-token", pflag.ContinueOnError)
	flagSet.StringVarP(&subject, "subject", "s", "", "operator identifier stored in the sub claim (required)")
	flagSet.StringVar(&secret, "secret", "", "signing secret (default: $JWT_SECRET)")
	flagSet.DurationVar(&ttl, "ttl", config.AccessTTL(), "token lifetime (ACCESS_TOKEN_TTL_MIN minutes when unset)")
	flagSet.BoolVar(&asJSON, "json", false, "print token and expiry as JSON")
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if subject == "" {
		return fmt.Errorf("--subject is required")
	}
	if secret == "" {
		secret = os.Getenv("JWT_SECRET")
	}

	tok, err := utils.NewAccessToken(secret, subject, utils.RoleOperator, ttl)
	if err != nil {
		return err
	}
	if asJSON {
		return json.NewEncoder(stdout).Encode(tok)
	}
	fmt.Fprintln(stdout, tok.Token)
	return nil
}
