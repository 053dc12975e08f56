package main

import (
	"log"

	"webhook-verifier/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		log.Fatalf("webhook verifier: %v", err)
	}
}
