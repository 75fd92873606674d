package main

import (
	"os"

	"github.com/GoSecretsApp/GoSecretsApp/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
