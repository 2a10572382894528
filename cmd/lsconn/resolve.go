package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/lakesoul-connector/pkg/catalog"
	"github.com/ajitpratap0/lakesoul-connector/pkg/config"
	"github.com/ajitpratap0/lakesoul-connector/pkg/connector/core"
	"github.com/ajitpratap0/lakesoul-connector/pkg/connector/registry"
	"github.com/ajitpratap0/lakesoul-connector/pkg/json"
	"github.com/ajitpratap0/lakesoul-connector/pkg/logger"
	"github.com/ajitpratap0/lakesoul-connector/pkg/observability"
	"github.com/ajitpratap0/lakesoul-connector/pkg/storage"
)

// connectorKey selects the factory in a table file's options
const connectorKey = "connector"

// tableFile is the YAML document describing one table
type tableFile struct {
	Identifier catalog.ObjectIdentifier `yaml:"identifier"`
	Table      catalog.ResolvedTable    `yaml:"table"`
	Options    map[string]string        `yaml:"options"`
	Session    map[string]string        `yaml:"session"`
}

type resolveFlags struct {
	tableFile    string
	options      map[string]string
	session      map[string]string
	sessionFile  string
	confDir      string
	mode         string
	logLevel     string
	statementID  string
	trace        bool
	checkStorage bool
}

// sinkOutput is the printed form of a sink descriptor
type sinkOutput struct {
	*core.SinkDescriptor
	Options     map[string]string `json:"options"`
	Storage     map[string]string `json:"storage,omitempty"`
	ArrowSchema string            `json:"arrow_schema"`
}

// sourceOutput is the printed form of a source descriptor
type sourceOutput struct {
	*core.SourceDescriptor
	Options     map[string]string `json:"options"`
	Storage     map[string]string `json:"storage,omitempty"`
	Bounded     bool              `json:"bounded"`
	Filter      string            `json:"filter,omitempty"`
	ArrowSchema string            `json:"arrow_schema"`
}

func newResolveCmd() *cobra.Command {
	flags := &resolveFlags{}

	resolveCmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a sink or source descriptor",
		Long: `Resolve a descriptor from a YAML table definition.

Example:
  lsconn resolve source --table orders.yaml --session execution.runtime-mode=BATCH
  lsconn resolve sink --table orders.yaml --option format=parquet`,
	}

	sinkCmd := &cobra.Command{
		Use:   "sink",
		Short: "Resolve the descriptor a writer is built from",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, flags, "sink")
		},
	}
	sourceCmd := &cobra.Command{
		Use:   "source",
		Short: "Resolve the descriptor a reader is built from",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, flags, "source")
		},
	}

	pf := resolveCmd.PersistentFlags()
	pf.StringVarP(&flags.tableFile, "table", "t", "", "Path to the YAML table definition (required)")
	pf.StringToStringVar(&flags.options, "option", nil, "Statement option override, key=value (repeatable)")
	pf.StringToStringVar(&flags.session, "session", nil, "Session setting, key=value (repeatable)")
	pf.StringVar(&flags.sessionFile, "session-file", "", "Path to a YAML file of session settings")
	pf.StringVar(&flags.confDir, "conf-dir", "", "Directory holding lakesoul-conf.yaml (defaults to $"+config.ConfDirEnv+")")
	pf.StringVar(&flags.mode, "mode", "", "Runtime mode: BATCH, STREAMING or AUTOMATIC")
	pf.StringVar(&flags.logLevel, "log-level", "error", "Log level (debug, info, warn, error)")
	pf.StringVar(&flags.statementID, "statement-id", "", "Statement id attached to log lines (generated when empty)")
	pf.BoolVar(&flags.trace, "trace", false, "Print resolution spans to stderr")
	pf.BoolVar(&flags.checkStorage, "check-storage", false, "Build an S3 client from the resolved storage settings")
	_ = resolveCmd.MarkPersistentFlagRequired("table")

	resolveCmd.AddCommand(sinkCmd, sourceCmd)
	return resolveCmd
}

func runResolve(cmd *cobra.Command, flags *resolveFlags, direction string) error {
	l, err := logger.New(logger.Config{Level: flags.logLevel, Encoding: "console"})
	if err != nil {
		return err
	}
	restore := logger.Replace(l)
	defer func() {
		_ = l.Sync()
		restore()
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if flags.statementID == "" {
		flags.statementID = uuid.New().String()
	}
	ctx = context.WithValue(ctx, logger.StatementKey, flags.statementID)

	if flags.trace {
		cfg := observability.DefaultConfig()
		cfg.Writer = cmd.ErrOrStderr()
		shutdown, err := observability.InitTracing(cfg)
		if err != nil {
			return err
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(sctx)
		}()
	}

	defaults, err := config.LoadGlobal(flags.confDir)
	if err != nil {
		return err
	}

	hostCtx, connector, err := buildContext(flags)
	if err != nil {
		return err
	}
	log := logger.WithContext(ctx).With(zap.String("connector", connector))
	log.Debug("resolving descriptor", zap.String("direction", direction), zap.Int("defaults", len(defaults)))

	var out interface{}
	var s3 *storage.S3Settings
	switch direction {
	case "sink":
		factory, err := registry.DiscoverSink(connector, defaults)
		if err != nil {
			return err
		}
		desc, err := factory.CreateSink(ctx, hostCtx)
		if err != nil {
			return err
		}
		schema, err := desc.ArrowSchema()
		if err != nil {
			return err
		}
		out = sinkOutput{
			SinkDescriptor: desc,
			Options:        desc.Options.Redacted(),
			Storage:        redactedStorage(desc.Storage),
			ArrowSchema:    schema.String(),
		}
		s3 = desc.Storage
	default:
		factory, err := registry.DiscoverSource(connector, defaults)
		if err != nil {
			return err
		}
		desc, err := factory.CreateSource(ctx, hostCtx)
		if err != nil {
			return err
		}
		schema, err := desc.ArrowSchema()
		if err != nil {
			return err
		}
		out = sourceOutput{
			SourceDescriptor: desc,
			Options:          config.FromMap(desc.Options).Redacted(),
			Storage:          redactedStorage(desc.Storage),
			Bounded:          desc.Bounded(),
			Filter:           desc.FilterString(),
			ArrowSchema:      schema.String(),
		}
		s3 = desc.Storage
	}

	if flags.checkStorage {
		if err := checkStorage(ctx, s3, log); err != nil {
			return err
		}
	}

	return json.MarshalToWriter(cmd.OutOrStdout(), out, true)
}

// buildContext reads the table file and layers the command line overrides on
// top of its options and session settings.
func buildContext(flags *resolveFlags) (*core.StaticContext, string, error) {
	var tf tableFile
	if err := config.Load(flags.tableFile, &tf); err != nil {
		return nil, "", err
	}

	var sessionFile config.Options
	if flags.sessionFile != "" {
		var err error
		if sessionFile, err = config.LoadOptions(flags.sessionFile); err != nil {
			return nil, "", err
		}
	}

	statement := config.Merge(nil, config.FromMap(tf.Options), config.FromMap(flags.options))
	connector := statement.GetOrDefault(connectorKey, "lakesoul")
	delete(statement, connectorKey)

	session := config.Merge(config.FromMap(tf.Session), sessionFile, config.FromMap(flags.session))
	if flags.mode != "" {
		session[config.SessionRuntimeMode] = flags.mode
	}

	table := tf.Table
	return &core.StaticContext{
		Identifier: tf.Identifier,
		Table:      &table,
		Statement:  statement,
		Session:    session,
	}, connector, nil
}

func redactedStorage(s3 *storage.S3Settings) map[string]string {
	if s3 == nil {
		return nil
	}
	return s3.Redacted()
}

func checkStorage(ctx context.Context, s3 *storage.S3Settings, log *zap.Logger) error {
	if s3 == nil {
		log.Info("no storage settings resolved, readers use the default AWS chain")
		return nil
	}
	cfg, err := s3.LoadAWSConfig(ctx)
	if err != nil {
		return err
	}
	client := s3.NewClient(cfg)
	opts := client.Options()
	log.Info("storage client configured",
		zap.String("region", opts.Region),
		zap.Bool("path_style", opts.UsePathStyle),
		zap.Any("settings", s3.Redacted()),
	)
	return nil
}
