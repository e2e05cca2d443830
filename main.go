// Command truss edits bridge trusses from Lisp scripts.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/chazu/truss/pkg/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgPath  string
	logLevel string
	jsonOut  bool
	outPath  string

	cfg    config.Config
	logger = zap.NewNop()

	rootCmd = &cobra.Command{
		Use:               "truss",
		Short:             "Build and check bridge trusses from Lisp scripts",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
	runCmd = &cobra.Command{
		Use:   "run [script]",
		Short: "Evaluate a script and report the truss it builds",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}
	watchCmd = &cobra.Command{
		Use:   "watch [script]",
		Short: "Re-evaluate a script every time it changes",
		Args:  cobra.ExactArgs(1),
		RunE:  watchScript,
	}
	checkCmd = &cobra.Command{
		Use:   "check [model.yaml]",
		Short: "Load a saved model onto the configured site and validate it",
		Args:  cobra.ExactArgs(1),
		RunE:  checkModel,
	}
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  printConfig,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultFile, "configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")
	for _, c := range []*cobra.Command{runCmd, watchCmd, checkCmd} {
		c.Flags().BoolVar(&jsonOut, "json", false, "print the result as JSON")
	}
	runCmd.Flags().StringVarP(&outPath, "out", "o", "", "save the resulting model as YAML")
	rootCmd.AddCommand(runCmd, watchCmd, checkCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfg, err = config.Load(cfgPath); err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logger, err = cfg.Log.Logger(); err != nil {
		return err
	}
	return nil
}

func newApp() (*App, error) {
	return NewApp(cfg, logger)
}

func runScript(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	source, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	if outPath == "" {
		return report(cmd.OutOrStdout(), app.Evaluate(string(source)))
	}
	data, result := app.Export(string(source))
	if data != nil {
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return err
		}
		logger.Info("model saved", zap.String("path", outPath))
	}
	return report(cmd.OutOrStdout(), result)
}

func checkModel(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	return report(cmd.OutOrStdout(), app.Check(data))
}

func watchScript(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	w, err := newScriptWatcher(args[0], logger)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	evaluate := func() {
		source, err := os.ReadFile(args[0])
		if err != nil {
			logger.Warn("read failed", zap.String("path", args[0]), zap.Error(err))
			return
		}
		_ = report(out, app.Evaluate(string(source)))
	}
	evaluate()
	return w.Run(ctx, evaluate)
}

func printConfig(cmd *cobra.Command, args []string) error {
	data, err := cfg.YAML()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// errFailed reports a script or model that did not evaluate cleanly. The
// details have already been printed.
var errFailed = errors.New("evaluation failed")

func report(w io.Writer, r EvalResult) error {
	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return err
		}
	} else {
		fmt.Fprint(w, r.String())
	}
	if len(r.Errors) > 0 {
		return errFailed
	}
	return nil
}
