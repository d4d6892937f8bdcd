// The busfabric command runs bus fabric simulations from the command line.
package main

import (
	"github.com/joho/godotenv"
	"github.com/tebeka/atexit"
)

func main() {
	// A missing .env file is fine; defaults apply.
	_ = godotenv.Load()

	Execute()

	atexit.Exit(0)
}
