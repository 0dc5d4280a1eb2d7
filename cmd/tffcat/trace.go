package main

import (
	"io"
	"os"

	"github.com/saitoha/tff"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// traceContext is a tff.Context that logs every dispatch call via logrus
// instead of accumulating any state.
type traceContext struct {
	tff.BaseContext
	log *logrus.Logger
}

func (t *traceContext) DispatchChar(c rune) error {
	t.log.WithField("char", string(c)).Debug("print")
	return nil
}

func (t *traceContext) DispatchInvalid(seq []rune) error {
	t.log.WithField("bytes", string(seq)).Warn("invalid sequence")
	return nil
}

func (t *traceContext) DispatchEsc(intermediates []rune, final rune) error {
	t.log.WithFields(logrus.Fields{
		"intermediates": string(intermediates),
		"final":         string(final),
	}).Debug("esc")
	return nil
}

func (t *traceContext) DispatchCSI(params, intermediates []rune, final rune) error {
	t.log.WithFields(logrus.Fields{
		"params":        tff.FormatCSIParams(tff.ParseCSIParams(params)),
		"intermediates": string(intermediates),
		"final":         string(final),
	}).Debug("csi")
	return nil
}

func (t *traceContext) DispatchControlString(prefix rune, payload []rune) error {
	t.log.WithFields(logrus.Fields{
		"prefix":  string(prefix),
		"payload": string(payload),
	}).Debug("control string")
	return nil
}

func (t *traceContext) DispatchSS2(final rune) error {
	t.log.WithField("final", string(final)).Debug("ss2")
	return nil
}

func (t *traceContext) DispatchSS3(final rune) error {
	t.log.WithField("final", string(final)).Debug("ss3")
	return nil
}

func newTraceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "trace [file]",
		Short: "Parse a byte stream and log every dispatch call",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openInput(args)
			if err != nil {
				return err
			}
			defer r.Close()

			data, err := io.ReadAll(r)
			if err != nil {
				return err
			}

			p := tff.NewParser()
			ctx := &traceContext{log: log}
			p.Init(ctx)
			return p.Parse(data)
		},
	}
}

func openInput(args []string) (io.ReadCloser, error) {
	if len(args) == 0 {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(args[0])
}
