package main

import (
	"os"

	logx "Coil/pkg/logger"
)

func main() {
	logx.Init()
	if err := NewRootCmd().Execute(); err != nil {
		logx.Error().Err(err).Msg("coilcalc")
		os.Exit(1)
	}
}
