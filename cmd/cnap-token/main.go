// Command cnap-token mints a staff bearer token for the facility API. The
// token can be sent as an Authorization header or appended to approval
// links as ?access_token=.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aussiebroadwan/cnap/pkg/jwtx"
	"github.com/caarlos0/env/v11"
)

type tokenEnv struct {
	Secret string `env:"CNAP_STAFF_TOKEN_SECRET,required"`
	Issuer string `env:"CNAP_STAFF_TOKEN_ISSUER" envDefault:"cnap"`
}

func main() {
	email := flag.String("email", "", "staff email recorded as the token subject")
	ttl := flag.Duration("ttl", jwtx.DefaultStaffTokenTTL, "token lifetime")
	flag.Parse()

	if *email == "" {
		flag.Usage()
		os.Exit(2)
	}

	var cfg tokenEnv
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse env: %v", err)
	}

	signer, err := jwtx.NewHS256([]byte(cfg.Secret), cfg.Issuer)
	if err != nil {
		log.Fatalf("invalid signing secret: %v", err)
	}
	token, err := signer.Sign(jwtx.NewStaffClaims(*email, cfg.Issuer, *ttl, time.Now()))
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}
	fmt.Println(token)
}
