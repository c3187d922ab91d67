// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava-labs/counterprogram/codec"
	"github.com/ava-labs/counterprogram/config"
	"github.com/ava-labs/counterprogram/counter"
	"github.com/ava-labs/counterprogram/host"
	"github.com/ava-labs/counterprogram/pebble"
	"github.com/ava-labs/counterprogram/state"
	"github.com/ava-labs/counterprogram/utils"

	countertrace "github.com/ava-labs/counterprogram/trace"
)

const (
	dbFolder   = "db"
	logsFolder = "logs"

	// rotating log file limits
	logMaxSize  = 8 // megabytes
	logMaxFiles = 5
	logMaxAge   = 7 // days
)

type simulator struct {
	configPath string
	logLevel   string
	cleanup    bool

	config     *config.Config
	dataDir    string
	logFactory *logFactory
	log        logging.Logger
	tracer     trace.Tracer
	db         state.Database
	gatherer   prometheus.Gatherers
	runtime    *host.Runtime
}

func NewRootCmd() *cobra.Command {
	s := &simulator{}
	cmd := &cobra.Command{
		Use:   "counter-simulator",
		Short: "Local host for the counter program",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(s.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel, err = logging.ToLevel(s.logLevel)
				if err != nil {
					return err
				}
			}
			return s.Init(cfg)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cobra.EnablePrefixMatching = true
	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.DisableAutoGenTag = true
	cmd.SilenceErrors = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.PersistentFlags().StringVar(&s.configPath, "config", "", "path to a JSON config file")
	cmd.PersistentFlags().StringVar(&s.logLevel, "log-level", "info", "log level")
	cmd.PersistentFlags().BoolVar(&s.cleanup, "cleanup", false, "remove simulator directory on exit")

	cmd.AddCommand(
		newAccountCmd(s),
		newInvokeCmd(s),
		newRunCmd(s),
	)

	// ensure databases and logs are closed on exit
	cobra.OnFinalize(func() {
		if err := s.Close(); err != nil {
			utils.Outf("{{red}}failed to close simulator:{{/}} %v\n", err)
		}
	})
	return cmd
}

// Init opens the database, logger, and tracer described by [cfg] and deploys
// the counter program.
func (s *simulator) Init(cfg *config.Config) error {
	s.config = cfg

	s.dataDir = cfg.DataDir
	if !filepath.IsAbs(s.dataDir) {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		s.dataDir = filepath.Join(homeDir, s.dataDir)
	}
	logDir, err := utils.InitSubDirectory(s.dataDir, logsFolder)
	if err != nil {
		return err
	}

	loggingConfig := logging.Config{}
	loggingConfig.Directory = logDir
	loggingConfig.MaxSize = logMaxSize
	loggingConfig.MaxFiles = logMaxFiles
	loggingConfig.MaxAge = logMaxAge
	loggingConfig.LogLevel = cfg.LogLevel
	loggingConfig.DisplayLevel = cfg.LogDisplayLevel
	loggingConfig.LogFormat = logging.JSON
	loggingConfig.DisableWriterDisplaying = cfg.LogDisplayLevel == logging.Off
	s.logFactory = newLogFactory(loggingConfig)
	s.log, err = s.logFactory.Make("simulator")
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	s.gatherer = prometheus.Gatherers{registry}
	if cfg.InMemory {
		s.db = state.NewMemDB()
	} else {
		dbDir, err := utils.InitSubDirectory(s.dataDir, dbFolder)
		if err != nil {
			return err
		}
		db, dbRegistry, err := pebble.New(dbDir, cfg.Pebble)
		if err != nil {
			return err
		}
		s.db = db
		s.gatherer = append(s.gatherer, dbRegistry)
	}

	s.tracer, err = countertrace.New(&cfg.Trace)
	if err != nil {
		return err
	}

	registerer := prometheus.WrapRegistererWithPrefix(cfg.MetricsNamespace+"_", registry)
	s.runtime, err = host.New(s.log, s.tracer, registerer, s.db)
	if err != nil {
		return err
	}
	if err := s.runtime.Deploy(counter.ProgramID, counter.Process); err != nil {
		return err
	}

	s.log.Info("simulator initialized",
		zap.String("dataDir", s.dataDir),
		zap.Bool("inMemory", cfg.InMemory),
		zap.Stringer("logLevel", cfg.LogLevel),
		zap.Stringer("programID", counter.ProgramID),
	)
	return nil
}

// Close releases everything Init opened. It is safe to call more than once.
func (s *simulator) Close() error {
	errs := wrappers.Errs{}
	if s.db != nil {
		errs.Add(s.db.Close())
		s.db = nil
	}
	if s.tracer != nil {
		errs.Add(s.tracer.Close())
		s.tracer = nil
	}
	if s.logFactory != nil {
		s.logFactory.Close()
		s.logFactory = nil
	}
	if s.cleanup && len(s.dataDir) > 0 {
		errs.Add(os.RemoveAll(s.dataDir))
		s.dataDir = ""
	}
	return errs.Err
}

func (s *simulator) createAccount(ctx context.Context, id ids.ID, owner ids.ID, size int) (*state.Account, error) {
	if s.runtime == nil {
		return nil, ErrNotInitialized
	}
	return s.runtime.CreateAccount(ctx, id, owner, size)
}

func (s *simulator) getAccount(ctx context.Context, id ids.ID) (*state.Account, error) {
	if s.runtime == nil {
		return nil, ErrNotInitialized
	}
	return s.runtime.GetAccount(ctx, id)
}

// invoke submits an invocation of the counter program over [accounts] in its
// wire form.
func (s *simulator) invoke(ctx context.Context, accounts []ids.ID, payload []byte, readonly bool) (*host.Result, error) {
	if s.runtime == nil {
		return nil, ErrNotInitialized
	}
	inv := &codec.Invocation{
		ProgramID: counter.ProgramID,
		Accounts:  make([]codec.AccountMeta, len(accounts)),
		Payload:   payload,
	}
	for i, id := range accounts {
		inv.Accounts[i] = codec.AccountMeta{ID: id, IsWritable: !readonly}
	}
	b, err := inv.Marshal()
	if err != nil {
		return nil, err
	}
	inv, err = codec.UnmarshalInvocation(b)
	if err != nil {
		return nil, err
	}
	s.log.Debug("submitting invocation",
		zap.Stringer("programID", inv.ProgramID),
		zap.Int("accounts", len(inv.Accounts)),
		zap.Int("size", len(b)),
	)
	return s.runtime.Execute(ctx, inv)
}
