package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/denisenkom/go-mssqldb"
	"github.com/urfave/cli/v2"
	iconfig "github.com/viant/sqlmerge/io/config"
	"github.com/viant/sqlmerge/io/merge"
	"github.com/viant/sqlmerge/metadata"
	"github.com/viant/sqlmerge/metadata/info"
	"github.com/viant/sqlmerge/metadata/product/sqlserver"
	smerge "github.com/viant/sqlmerge/metadata/product/sqlserver/merge"
	"github.com/viant/sqlmerge/metadata/sink"
	"github.com/viant/sqlmerge/option"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "sqlmerge",
		Usage:   "Bulk insert or update JSON records into SQL Server table",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "merge.yaml",
				Usage:   "Path to merge configuration file",
			},
			&cli.StringFlag{
				Name:    "dsn",
				EnvVars: []string{"SQLMERGE_DSN"},
				Usage:   "SQL Server connection string, overrides config dsn",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "merge",
				Usage:  "Merge records from a JSON array file",
				Action: runMerge,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Required: true,
						Usage:    "Path to JSON array of records",
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "Path to write records with synchronized identities",
					},
					&cli.BoolFlag{
						Name:  "show-sql",
						Usage: "Log generated SQL",
					},
					&cli.BoolFlag{
						Name:  "async",
						Usage: "Run merge asynchronously, waiting for outcome or interruption",
					},
				},
			},
			{
				Name:   "validate",
				Usage:  "Validate merge configuration without connecting to database",
				Action: validateConfig,
			},
			{
				Name:   "probe",
				Usage:  "Show session and target table columns",
				Action: probeTable,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) (*Config, error) {
	cfg, err := LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if c.IsSet("dsn") {
		cfg.DSN = c.String("dsn")
	}
	return cfg, nil
}

func openDB(cfg *Config) (*sql.DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("dsn was empty")
	}
	return sql.Open("sqlserver", cfg.DSN)
}

func validateConfig(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	mConfig, err := cfg.MergeConfig()
	if err != nil {
		return err
	}
	fmt.Printf("columns: %v\nmatch: %v\nupdate: %v\ninsert: %v\n", mConfig.ColumnNames(), mConfig.MatchOn, mConfig.UpdateColumns(), mConfig.InsertColumns())
	return nil
}

func probeTable(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	ctx := context.Background()
	session, err := iconfig.Session(ctx, db, sqlserver.Dialect())
	if err != nil {
		return err
	}
	fmt.Printf("session: %v@%v.%v (pid: %v)\n", session.Username, session.Catalog, session.Schema, session.PID)
	schema := cfg.Schema
	if schema == "" {
		schema = session.Schema
	}
	var columns []sink.Column
	if err = metadata.New().Info(ctx, db, info.KindTable, &columns, sqlserver.Dialect(), option.NewArgs(session.Catalog, schema, cfg.Table)); err != nil {
		return err
	}
	for _, column := range columns {
		fmt.Printf("%v %v nullable: %v identity: %v\n", column.Name, column.DDLType(), column.IsNullable(), column.IsIdentity())
	}
	return nil
}

func runMerge(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	mConfig, err := cfg.MergeConfig()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(c.String("input"))
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	records, err := ReadRecords(data)
	if err != nil {
		return err
	}
	smerge.ShowSQL(c.Bool("show-sql"))
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted. Cancelling merge...")
		cancel()
	}()

	service, err := merge.New(ctx, db, cfg.Table)
	if err != nil {
		return err
	}
	options := cfg.Options()
	var result info.MergeResult
	if c.Bool("async") {
		var outcomes <-chan *merge.Outcome
		if outcomes, err = service.ExecAsync(ctx, records, mConfig, options...); err != nil {
			return err
		}
		outcome := <-outcomes
		result, err = outcome.Result, outcome.Err
	} else {
		result, err = service.Exec(ctx, records, mConfig, options...)
	}
	if result != nil {
		fmt.Print(result.Report())
	}
	if err != nil {
		return err
	}
	fmt.Printf("merged %v: affected %d, staged %d, identities %d in %s\n", result.MergedTable(), result.RowsAffected(), result.StagedRows(), result.IdentitiesSynced(), result.TotalTime())
	if output := c.String("output"); output != "" {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		return os.WriteFile(output, data, 0644)
	}
	return nil
}
