package cmd

import (
	"context"
	"fmt"
	"os"

	internalApp "github.com/zachlandes/2ml-crm/internal/app"

	"github.com/gookit/goutil/dump"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type importFlags struct {
	config string
	file   string
	force  bool
	dump   bool
}

func init() {
	flags := new(importFlags)

	importCommand := &cobra.Command{
		Use:   "import [-c config_file] [-f csv_file] [--force]",
		Short: "Import a LinkedIn connections export",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), flags)
		},
	}

	rootCmd.AddCommand(importCommand)
	fs := importCommand.Flags()
	fs.StringVarP(&flags.config, "config", "c", "", "config file")
	fs.StringVarP(&flags.file, "file", "f", "", "csv file, defaults to import.csvPath")
	fs.BoolVar(&flags.force, "force", false, "re-import even when the store already has connections")
	fs.BoolVar(&flags.dump, "dump", false, "dump imported connections")
}

func runImport(ctx context.Context, flags *importFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if flags.config == "" {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		flags.config = path
	}

	cfg, _, err := internalApp.LoadConfig(flags.config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := initStorageWithConfig(cfg); err != nil {
		return err
	}

	db, err := initDatabaseWithConfig(cfg, bootstrapLogger)
	if err != nil {
		return fmt.Errorf("initDatabase: %w", err)
	}
	a, err := internalApp.NewApp(cfg, bootstrapLogger, db)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Shutdown(context.Background()); err != nil {
			bootstrapLogger.Warn("shutdown err", zap.Error(err))
		}
	}()

	file := flags.file
	if file == "" {
		file = cfg.Import.CSVPath
	}
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("open %s: %w", file, err)
	}
	defer f.Close()

	list, err := a.ConnectionService.ImportConnections(ctx, f, flags.force)
	if err != nil {
		return err
	}
	bootstrapLogger.Info("import finished", zap.String("file", file), zap.Int("connections", len(list)))

	if flags.dump {
		dump.P(list)
	}
	return nil
}
