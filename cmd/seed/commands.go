package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/fastygo/peopledash/domain"
	"github.com/fastygo/peopledash/internal/config"
	"github.com/fastygo/peopledash/internal/export"
	"github.com/fastygo/peopledash/internal/generator"
	pgInfra "github.com/fastygo/peopledash/internal/infrastructure/postgres"
	"github.com/fastygo/peopledash/pkg/logger"
	"github.com/fastygo/peopledash/repository"
	"github.com/fastygo/peopledash/repository/postgres"
)

const defaultBatchSize = 100

// seedFlag is an optional uint64; Set marks it present so zero stays a valid seed.
type seedFlag struct {
	value uint64
	set   bool
}

func (s *seedFlag) String() string {
	if !s.set {
		return ""
	}
	return strconv.FormatUint(s.value, 10)
}

func (s *seedFlag) Set(raw string) error {
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("seed must be an unsigned integer: %w", err)
	}
	s.value, s.set = v, true
	return nil
}

func (s *seedFlag) Type() string { return "uint64" }

var _ pflag.Value = (*seedFlag)(nil)

type generateOptions struct {
	count     int
	batchSize int
	clean     bool
	seed      seedFlag
}

// app carries what the subcommands share once the root command has connected.
type app struct {
	logger    *zap.Logger
	pool      *pgxpool.Pool
	employees repository.EmployeeRepository
	users     repository.UserRepository
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(&app{}).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "seed",
		Short:         "Populate or dump the employee store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.employees != nil {
				return nil
			}
			return a.connect(cmd.Context())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.close()
		},
	}
	root.AddCommand(newGenerateCmd(a), newExportCmd(a), newUserCmd(a))
	return root
}

func newGenerateCmd(a *app) *cobra.Command {
	opts := generateOptions{batchSize: defaultBatchSize}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate synthetic employees and insert them in batches",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), a.employees, opts, cmd.OutOrStdout())
		},
	}
	flags := cmd.Flags()
	flags.IntVarP(&opts.count, "employees", "n", 1000, "number of employees to generate")
	flags.IntVar(&opts.batchSize, "batch-size", defaultBatchSize, "records per insert")
	flags.BoolVar(&opts.clean, "clean", false, "delete every employee first")
	flags.Var(&opts.seed, "seed", "generator seed, random when omitted")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every employee to a CSV file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if out == "-" {
				_, err := runExport(cmd.Context(), a.employees, cmd.OutOrStdout())
				return err
			}
			var buf bytes.Buffer
			n, err := runExport(cmd.Context(), a.employees, &buf)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "exported %d employees to %s\n", n, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", export.Filename, `destination file, "-" for stdout`)
	return cmd
}

func newUserCmd(a *app) *cobra.Command {
	user := domain.User{Status: "active"}
	cmd := &cobra.Command{
		Use:   "user <id>",
		Short: "Create or update a dashboard account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user.ID = args[0]
			if err := a.users.Upsert(cmd.Context(), &user); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %s saved (role %s, status %s)\n", user.ID, user.Role, user.Status)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&user.Email, "email", "", "contact address")
	flags.StringVar(&user.Role, "role", "analyst", "account role")
	flags.StringVar(&user.Status, "status", user.Status, `"active" accounts may sign in`)
	return cmd
}

func runGenerate(ctx context.Context, employees repository.EmployeeRepository, opts generateOptions, out io.Writer) error {
	if opts.count <= 0 {
		return fmt.Errorf("--employees must be positive, got %d", opts.count)
	}
	if opts.batchSize <= 0 {
		opts.batchSize = defaultBatchSize
	}

	if opts.clean {
		removed, err := employees.DeleteAll(ctx)
		if err != nil {
			return fmt.Errorf("clean: %w", err)
		}
		fmt.Fprintf(out, "removed %d employees\n", removed)
	}

	var genOpts []generator.Option
	if opts.seed.set {
		genOpts = append(genOpts, generator.WithSeed(opts.seed.value))
	}
	gen := generator.New(genOpts...)
	records, err := gen.Generate(opts.count)
	if err != nil {
		return err
	}

	inserted := 0
	for start := 0; start < len(records); start += opts.batchSize {
		end := min(start+opts.batchSize, len(records))
		n, err := employees.Insert(ctx, records[start:end])
		if err != nil {
			return fmt.Errorf("insert batch at %d: %w", start, err)
		}
		inserted += n
	}

	fmt.Fprintf(out, "inserted %d employees (seed %d)\n", inserted, gen.Seed())
	return nil
}

func runExport(ctx context.Context, employees repository.EmployeeRepository, w io.Writer) (int, error) {
	all, err := employees.All(ctx)
	if err != nil {
		return 0, err
	}
	if err := export.WriteCSV(w, all); err != nil {
		return 0, err
	}
	return len(all), nil
}

func (a *app) connect(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.logger, err = logger.New(logger.Config{Level: cfg.Logger.Level, Encoding: cfg.Logger.Encoding})
	if err != nil {
		return err
	}
	if err := pgInfra.RunMigrations(cfg, a.logger); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	a.pool, err = pgInfra.NewPool(ctx, cfg.Database, a.logger)
	if err != nil {
		return err
	}
	a.employees = postgres.NewEmployeeRepository(a.pool)
	a.users = postgres.NewUserRepository(a.pool)
	return nil
}

func (a *app) close() {
	if a.pool != nil {
		pgInfra.Close(a.pool, a.logger)
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}
