package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"cryptoclient/internal/auth"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	pair, err := auth.GenerateKeyPair()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to generate key pair")
	}

	log.Info().
		Str("public_key", pair.PublicKey).
		Msg("Generated Ed25519 key pair; register the public key with the API")

	// The seed goes to stdout alone so it can be piped straight into
	// secret storage without touching logs.
	fmt.Println(pair.PrivateKey)
}
