package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func setup() {
	err := godotenv.Load(".env")
	if err != nil {
		logrus.WithError(err).Debug("No .env file loaded")
	}
}

func main() {
	setup()

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		logrus.WithError(err).Error("gasctl failed")
		os.Exit(1)
	}
}
