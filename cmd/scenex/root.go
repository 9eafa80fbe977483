package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newRootCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:           "scenex",
		Short:         "Extract tester scenarios from captured referee logs",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(
		newExtractCmd(&debug),
		newShowCmd(),
		newCheckCmd(),
	)

	return cmd
}

func newLogger(debug bool) (*zap.Logger, error) {
	lc := zap.NewDevelopmentConfig()
	lc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	lc.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if debug {
		lc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return lc.Build()
}
