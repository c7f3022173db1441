package main

import (
	"log"

	"github.com/messierandromeda/xai-workshop/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		log.Fatalf("xai-workshop: %v", err)
	}
}
