// Command cryptids converts integer ids to opaque tokens and back.
//
// Usage:
//
//	cryptids [flags] i2s <id>...
//	cryptids [flags] s2i <token>...
//	cryptids [flags] keygen [--format hex|keyset]
//
// The key is taken from --key (hex) or --keyset (cleartext JSON Tink keyset),
// or from CRYPTIDS_KEY / CRYPTIDS_KEYSET, or from a --config file. Negative
// ids must follow a "--" so they are not parsed as flags:
//
//	cryptids --key 000102030405060708090a0b0c0d0e0f i2s -- -1 42
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/pflag"
	"github.com/vdparikh/cryptids"
	"go.uber.org/zap"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one CLI invocation and returns the process exit code.
// Results go to stdout, logs to stderr.
func run(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet()
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: cryptids [flags] i2s <id>... | s2i <token>... | keygen")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := loadConfig(fs)
	if err != nil {
		bootstrapLogger(stderr).Error("configuration failed", zap.Error(err))
		return exitError
	}
	logger, err := newLogger(cfg, stderr)
	if err != nil {
		bootstrapLogger(stderr).Error("logger setup failed", zap.Error(err))
		return exitError
	}
	defer logger.Sync()

	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}
	command, operands := fs.Arg(0), fs.Args()[1:]

	switch command {
	case "i2s", "s2i":
		if len(operands) == 0 {
			logger.Error("missing operands", zap.String("command", command))
			return exitUsage
		}
	case "keygen":
	default:
		logger.Error("unknown command", zap.String("command", command))
		fs.Usage()
		return exitUsage
	}

	if err := dispatch(cfg, logger, command, operands, stdout); err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		return exitError
	}
	return exitOK
}

func dispatch(cfg *Config, logger *zap.Logger, command string, operands []string, stdout io.Writer) error {
	if command == "keygen" {
		logger.Debug("generating key", zap.String("format", cfg.Format))
		return writeKey(stdout, cfg.Format)
	}

	codec, err := loadCodec(cfg, logger)
	if err != nil {
		return err
	}
	if command == "i2s" {
		return encodeIDs(codec, operands, stdout, logger)
	}
	return decodeTokens(codec, operands, stdout, logger)
}

// encodeIDs prints one token per id, in order.
func encodeIDs(codec cryptids.IDCodec, ids []string, w io.Writer, logger *zap.Logger) error {
	for _, s := range ids {
		id, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", s, err)
		}
		token, err := codec.I2S(int32(id))
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, token); err != nil {
			return err
		}
	}
	logger.Debug("encoded ids", zap.Int("count", len(ids)))
	return nil
}

// decodeTokens prints one id per token, in order.
func decodeTokens(codec cryptids.IDCodec, tokens []string, w io.Writer, logger *zap.Logger) error {
	for _, token := range tokens {
		id, err := codec.S2I(token)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, id); err != nil {
			return err
		}
	}
	logger.Debug("decoded tokens", zap.Int("count", len(tokens)))
	return nil
}
