package main

import (
	"log"

	"github.com/MrSnakeDoc/codex/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ codex failed: %v", err)
	}
}
