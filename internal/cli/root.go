package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/launchbynttdata/wych/internal/config"
	"github.com/launchbynttdata/wych/internal/domain/appversion"
	"github.com/launchbynttdata/wych/internal/domain/semvercheck"
	"github.com/launchbynttdata/wych/internal/hostinfo"
	"github.com/launchbynttdata/wych/internal/logging"
	"github.com/launchbynttdata/wych/internal/render"
	"github.com/launchbynttdata/wych/internal/services/generate"
	"github.com/launchbynttdata/wych/internal/templates"
	"github.com/launchbynttdata/wych/internal/version"
)

const (
	flagVersionString = "version-string"
	flagBuildNumber   = "build-number"
	flagCommit        = "commit"
	flagSource        = "source"
	flagRequireSemver = "require-semver"
	flagDryRun        = "dry-run"
	flagNoBanner      = "no-banner"
	flagLogLevel      = "log-level"

	requiredFlagFormat = "%s is required (set --%s or %s)"
)

var (
	envVersionString = []string{"APPVEYOR_BUILD_VERSION", "BUILD_BUILDNUMBER"}
	envBuildNumber   = []string{"APPVEYOR_BUILD_NUMBER", "BUILD_BUILDID"}
	envCommit        = []string{"APPVEYOR_REPO_COMMIT", "BUILD_SOURCEVERSION"}
	envSource        = []string{"WYCH_SOURCE"}
	envRequireSemver = []string{"WYCH_REQUIRE_SEMVER"}
	envDryRun        = []string{"WYCH_DRY_RUN"}
	envNoBanner      = []string{"WYCH_NO_BANNER"}
	envLogLevel      = []string{"WYCH_LOG_LEVEL"}
)

// Swapped in tests.
var (
	now         = time.Now
	sourceProbe = hostinfo.Default
)

// Execute runs the CLI root command with the provided context.
func Execute(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return newRootCommand().ExecuteContext(ctx)
}

type generateFlagSet struct {
	version       *stringFlag
	buildNumber   *uint32Flag
	commit        *stringFlag
	source        *stringFlag
	requireSemver *boolFlag
	dryRun        *boolFlag
	noBanner      *boolFlag
	logLevel      *stringFlag
}

type runtimeConfig struct {
	resolver config.Resolver
	logger   *zap.Logger
	store    templates.Store
	engine   *render.Engine
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wych <path>",
		Short: "Generate an AppVersion.elm module from build metadata",
		Long: "Generate an AppVersion.elm Elm module before compiling your Elm app,\n" +
			"so the version, build number, commit and build source are available at runtime.\n" +
			"The file is written to <path>/AppVersion.elm.",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.Version = version.Version
	cmd.SetVersionTemplate("wych {{.Version}}\n")

	flags := bindGenerateFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, args[0], flags)
	}
	cmd.AddCommand(newVersionCommand())

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "wych %s\ncommit: %s\nbuild date: %s\n", version.Version, version.Commit, version.BuildDate); err != nil {
				return fmt.Errorf("writing version info: %w", err)
			}
			return nil
		},
	}
}

func bindGenerateFlags(cmd *cobra.Command) *generateFlagSet {
	fs := cmd.Flags()
	return &generateFlagSet{
		version:       bindStringFlag(fs, flagVersionString, flagVersionString, "v", envVersionString, "", "A string that represents this build's unique version"),
		buildNumber:   bindUint32Flag(fs, flagBuildNumber, flagBuildNumber, "b", envBuildNumber, 0, "The build number (counter)"),
		commit:        bindStringFlag(fs, flagCommit, flagCommit, "c", envCommit, "", "The commit hash / changeset reference of the build"),
		source:        bindStringFlag(fs, flagSource, flagSource, "s", envSource, "", "The process or environment that generated the file; detected from host and platform when omitted"),
		requireSemver: bindBoolFlag(fs, flagRequireSemver, flagRequireSemver, "", envRequireSemver, false, "Fail when the version string is not a semantic version"),
		dryRun:        bindBoolFlag(fs, flagDryRun, flagDryRun, "", envDryRun, false, "Print the rendered file to stdout instead of writing it"),
		noBanner:      bindBoolFlag(fs, flagNoBanner, flagNoBanner, "", envNoBanner, false, "Do not print the banner"),
		logLevel:      bindStringFlag(cmd.PersistentFlags(), flagLogLevel, flagLogLevel, "", envLogLevel, logging.LevelTerse, "Log verbosity (terse or verbose)"),
	}
}

func runGenerate(cmd *cobra.Command, outputDir string, flags *generateFlagSet) error {
	runtime, cleanup, err := buildRuntime(cmd, flags)
	if err != nil {
		return err
	}
	defer cleanup()

	noBanner, err := flags.noBanner.Value(runtime.resolver)
	if err != nil {
		return err
	}
	if !noBanner {
		printBanner(cmd.ErrOrStderr())
	}

	record, err := flags.resolveRecord(runtime.resolver, runtime.logger)
	if err != nil {
		return err
	}

	dryRun, err := flags.dryRun.Value(runtime.resolver)
	if err != nil {
		return err
	}

	service := generate.NewService(runtime.engine, generate.OSFileSystem{})
	result, err := service.Generate(cmd.Context(), generate.Config{
		OutputDir: outputDir,
		FileName:  runtime.store.Name(),
		Record:    record,
		DryRun:    dryRun,
	})
	if err != nil {
		return err
	}

	if dryRun {
		runtime.logger.Info("dry run, file not written", zap.String("path", result.Path))
		if _, err := fmt.Fprint(cmd.OutOrStdout(), result.Content); err != nil {
			return fmt.Errorf("writing rendered output: %w", err)
		}
		return nil
	}

	runtime.logger.Info("successfully written file", zap.String("path", result.Path))
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), result.Path); err != nil {
		return fmt.Errorf("writing result path: %w", err)
	}
	return nil
}

func (f *generateFlagSet) resolveRecord(resolver config.Resolver, logger *zap.Logger) (appversion.Record, error) {
	versionString := strings.TrimSpace(f.version.Value(resolver))
	if versionString == "" {
		return appversion.Record{}, fmt.Errorf(requiredFlagFormat, flagVersionString, flagVersionString, strings.Join(envVersionString, "/"))
	}

	buildNumber, found, err := f.buildNumber.Value(resolver)
	if err != nil {
		return appversion.Record{}, err
	}
	if !found {
		return appversion.Record{}, fmt.Errorf(requiredFlagFormat, flagBuildNumber, flagBuildNumber, strings.Join(envBuildNumber, "/"))
	}

	requireSemver, err := f.requireSemver.Value(resolver)
	if err != nil {
		return appversion.Record{}, err
	}
	check, err := semvercheck.Check(versionString, requireSemver)
	if err != nil {
		return appversion.Record{}, err
	}
	if check.Valid {
		logger.Debug("version parsed",
			zap.String("version", versionString),
			zap.Uint64("major", check.Version.Major),
			zap.Uint64("minor", check.Version.Minor),
			zap.Uint64("patch", check.Version.Patch),
		)
	} else {
		logger.Debug("version is not a semantic version", zap.String("version", versionString), zap.String("reason", check.Reason))
	}

	hash := strings.TrimSpace(f.commit.Value(resolver))
	if hash == "" {
		logger.Info("no commit info given")
	} else {
		logger.Info("commit", zap.String("commit", hash))
	}

	timestamp := appversion.TimestampMillis(now())
	logger.Info("timestamp", zap.Int64("timestampMs", timestamp))

	source := strings.TrimSpace(f.source.Value(resolver))
	if source == "" {
		source = sourceProbe().Source()
		logger.Info("no source given, using detected source", zap.String("source", source))
	} else {
		logger.Info("source", zap.String("source", source))
	}

	return appversion.Record{
		Version:     versionString,
		BuildNumber: buildNumber,
		Hash:        hash,
		Timestamp:   timestamp,
		Source:      source,
	}, nil
}

func buildRuntime(cmd *cobra.Command, flags *generateFlagSet) (runtimeConfig, func(), error) {
	nopResolver := config.NewResolver(zap.NewNop())
	logLevel := flags.logLevel.Value(nopResolver)

	logger, err := logging.NewWithWriter(logLevel, cmd.ErrOrStderr())
	if err != nil {
		return runtimeConfig{}, nil, fmt.Errorf("configuring logger: %w", err)
	}

	resolver := config.NewResolver(logger)
	_ = flags.logLevel.Value(resolver)

	store := templates.Load()
	engine, err := render.New(store)
	if err != nil {
		_ = logger.Sync()
		return runtimeConfig{}, nil, err
	}

	cleanup := func() {
		_ = logger.Sync()
	}

	return runtimeConfig{
		resolver: resolver,
		logger:   logger,
		store:    store,
		engine:   engine,
	}, cleanup, nil
}
