package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"github.com/hqsdk/hqvm"
	"github.com/hqsdk/hqvm/types"
)

// Small demo exercising the full call path: load the native module, connect
// with guest credentials, fetch k-lines for one security and print the
// payload.
func main() {
	configPath := flag.String("config", "", "path to a TOML session options file")
	libVersion := flag.String("lib-version", "", "native module version suffix")
	code := flag.String("code", "USHA600000", "security code to query")
	interval := flag.String("interval", hqvm.IntervalDay, "k-line interval")
	adjust := flag.String("adjust", hqvm.AdjustNone, "price adjustment mode")
	count := flag.Int("count", 30, "number of bars")
	verbose := flag.BoolP("verbose", "v", false, "enable debug logging")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Str("app", "hqdemo").Logger()
	if *verbose {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	opts := &types.SessionOptions{LibVersion: *libVersion}
	if *configPath != "" {
		loaded, err := hqvm.LoadSessionOptions(*configPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("loading session options")
		}
		opts = loaded
		if *libVersion != "" {
			opts.LibVersion = *libVersion
		}
	}

	session, err := hqvm.NewSession(opts)
	if err != nil {
		logger.Fatal().Err(err).Msg("creating session")
	}
	session.SetLogger(logger)
	defer session.Close()

	if err := session.Connect(); err != nil {
		logger.Fatal().Err(err).Msg("connecting to quote server")
	}

	resp, err := session.Klines(hqvm.KlineQuery{
		Code:     *code,
		Adjust:   *adjust,
		Interval: *interval,
		Count:    *count,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("fetching k-lines")
	}
	if resp.ErrInfo != "" {
		logger.Warn().Str("err_info", resp.ErrInfo).Msg("query reported an error")
	}

	out, err := json.MarshalIndent(resp.Payload, "", "  ")
	if err != nil {
		logger.Fatal().Err(err).Msg("encoding payload")
	}
	fmt.Println(string(out))
}
