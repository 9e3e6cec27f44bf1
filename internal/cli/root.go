// Package cli contains the answerctl commands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/samvad-hq/answer-search/internal/config"
	"github.com/samvad-hq/answer-search/internal/logger"
	"github.com/samvad-hq/answer-search/pkg/search"
)

// version is stamped at build time via -ldflags.
var version = "dev"

// state is shared by every command of one root.
type state struct {
	v       *viper.Viper
	cfgFile string
	verbose bool
	noColor bool

	cfg *config.Config
	log logger.Logger
}

// NewRootCmd builds the answerctl command tree.
func NewRootCmd() *cobra.Command {
	root, _ := newRootCmd()
	return root
}

func newRootCmd() (*cobra.Command, *state) {
	st := &state{v: viper.New()}

	root := &cobra.Command{
		Use:   "answerctl",
		Short: "Query and probe answer search backends",
		Long: `answerctl talks to an answer search backend and its OCR companion.

Example usage:
  answerctl search "capital of France" --filter limit=3
  answerctl ping --base-url http://10.0.0.5:8080
  answerctl ocr screenshot.png
  answerctl import answers.csv --encoding gbk`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return st.init(cmd)
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(cmd, err)
	})

	flags := root.PersistentFlags()
	flags.StringVar(&st.cfgFile, "config", "", "config file (yaml, json or toml)")
	flags.String("base-url", search.DefaultBaseURL, "search backend base URL")
	flags.String("ocr-url", "", "OCR service base URL")
	flags.Int("timeout", 30, "request timeout in seconds")
	flags.BoolVarP(&st.verbose, "verbose", "v", false, "verbose logging")
	flags.BoolVar(&st.noColor, "no-color", false, "disable coloured output")

	_ = st.v.BindPFlag("search_base_url", flags.Lookup("base-url"))
	_ = st.v.BindPFlag("ocr_base_url", flags.Lookup("ocr-url"))
	_ = st.v.BindPFlag("request_timeout_seconds", flags.Lookup("timeout"))

	root.AddCommand(
		newSearchCmd(st),
		newPingCmd(st),
		newOCRCmd(st),
		newImportCmd(st),
	)
	return root, st
}

func (st *state) init(cmd *cobra.Command) error {
	if st.cfgFile != "" {
		st.v.SetConfigFile(st.cfgFile)
		if err := st.v.ReadInConfig(); err != nil {
			return &CLIError{
				Summary:    "cannot read config file",
				Detail:     err.Error(),
				Suggestion: "check the --config path",
				ExitCode:   ExitConfigError,
			}
		}
	}

	cfg, err := config.LoadWith(st.v)
	if err != nil {
		return &CLIError{Summary: "invalid configuration", Detail: err.Error(), ExitCode: ExitConfigError}
	}
	if st.verbose {
		cfg.LogLevel = "debug"
	}
	st.cfg = cfg
	st.log = logger.New(cfg, zapcore.AddSync(cmd.ErrOrStderr()))
	return nil
}

func (st *state) printer(cmd *cobra.Command) *Printer {
	return NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), !st.noColor)
}

// Execute runs the command tree and returns the process exit code.
func Execute(args []string) int {
	return run(args, os.Stdout, os.Stderr)
}

func run(args []string, out, errOut io.Writer) int {
	root, st := newRootCmd()
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs(args)

	cmd, err := root.ExecuteC()
	if err == nil {
		return ExitSuccess
	}

	var cliErr *CLIError
	switch {
	case errors.As(err, &cliErr):
	case strings.HasPrefix(err.Error(), "unknown command"):
		cliErr = usageError(cmd, err)
	default:
		cliErr = &CLIError{Summary: err.Error(), ExitCode: ExitGeneral}
	}
	st.printer(root).FormatError(cliErr)
	return cliErr.ExitCode
}

func usageError(cmd *cobra.Command, err error) *CLIError {
	return &CLIError{
		Summary:    err.Error(),
		Suggestion: fmt.Sprintf("run '%s --help'", cmd.CommandPath()),
		ExitCode:   ExitUsageError,
	}
}

func requireArg(name string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return &CLIError{
				Summary:    fmt.Sprintf("%s expects exactly one %s", cmd.Name(), name),
				Suggestion: fmt.Sprintf("run 'answerctl %s --help'", cmd.Name()),
				ExitCode:   ExitUsageError,
			}
		}
		return nil
	}
}
