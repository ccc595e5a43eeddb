package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/y-arjun-y/caish-website/internal/errortracking"
)

func fatal(err error, message string) {
	log.WithError(err).Fatal(message)
}

func capturingFatal(err error, fields ...errortracking.CaptureOption) {
	errortracking.CaptureErrWithStackTrace(err, fields...)
	fatal(err, "capturing fatal")
}
