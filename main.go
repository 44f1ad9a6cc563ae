package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pstuifzand/tui-treeview/internal/app"
	"github.com/pstuifzand/tui-treeview/internal/config"
	"github.com/pstuifzand/tui-treeview/internal/export"
	import_parser "github.com/pstuifzand/tui-treeview/internal/import"
	"github.com/pstuifzand/tui-treeview/internal/socket"
	"github.com/pstuifzand/tui-treeview/internal/storage"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logPath    string
	socketDir  string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		debug    bool
		single   bool
		remote   bool
		settings []string
	)

	cmd := &cobra.Command{
		Use:   "tuitree [file]",
		Short: "Organize items and groups in a drag-and-drop terminal tree",
		Long: `Open a JSON tree document in the terminal. Click to select nodes,
Ctrl-click to toggle and Shift-click to extend the selection, then drag the
selection to reorder it. Hold Shift while dropping to place nodes above the
row under the pointer, Ctrl to drop inside a group.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if single {
				off := false
				cfg.MultipleSelection = &off
			}
			if err := applySettings(cfg, settings); err != nil {
				return err
			}

			logger, closeLog, err := newLogger(logPath, cfg.LogLevel, debug)
			if err != nil {
				return err
			}
			defer closeLog()

			var filePath string
			if len(args) > 0 {
				filePath = args[0]
			}

			application, err := app.NewApp(app.Options{
				FilePath:  filePath,
				Config:    cfg,
				Logger:    logger,
				Remote:    remote,
				SocketDir: socketDir,
			})
			if err != nil {
				return err
			}
			application.SetDebugMode(debug)

			if err := application.Run(); err != nil {
				return fmt.Errorf("runtime error: %w", err)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config TOML (default ~/.config/tui-treeview/config.toml)")
	cmd.PersistentFlags().StringVar(&socketDir, "socket-dir", "", "Directory of the remote command sockets")
	cmd.Flags().StringVar(&logPath, "log-file", "tuitree.log", "Log file path")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug mode (shows input events and drag state in status)")
	cmd.Flags().BoolVar(&single, "single", false, "Disable multiple selection")
	cmd.Flags().BoolVar(&remote, "remote", true, "Accept add and select commands from other processes")
	cmd.Flags().StringArrayVar(&settings, "set", nil, "Override a setting for this session (key=value, repeatable)")

	cmd.AddCommand(newAddCmd(), newSelectCmd(), newExportCmd(), newImportCmd(), newConfigCmd())
	return cmd
}

func newAddCmd() *cobra.Command {
	var (
		group  bool
		target string
	)

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a node to a running tuitree instance",
		Example: `  tuitree add "Buy milk" --to Inbox
  tuitree add --group Later --to Projects/Work`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return fmt.Errorf("node text cannot be empty")
			}
			return sendRemote(cmd, func(c *socket.Client) (*socket.Response, error) {
				return c.SendAdd(text, target, group)
			})
		},
	}
	cmd.Flags().BoolVarP(&group, "group", "g", false, "Add a group instead of an item")
	cmd.Flags().StringVarP(&target, "to", "t", "", "Slash separated path of the parent group (default: top level)")
	return cmd
}

func newSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <query>",
		Short: "Select the best fuzzy match in a running tuitree instance",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return sendRemote(cmd, func(c *socket.Client) (*socket.Response, error) {
				return c.SendSelect(query)
			})
		},
	}
}

func newExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write a tree document as a markdown bullet list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outline, err := storage.NewJSONStore(args[0]).Load()
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				return export.WriteMarkdown(cmd.OutOrStdout(), outline)
			}
			return export.ExportToMarkdown(outline, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}

func newImportCmd() *cobra.Command {
	var (
		format string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "import <source> <file>",
		Short: "Create a tree document from a markdown or indented text outline",
		Long: `Read an outline and save it as a tree document. Lines ending in a slash
become groups, as do lines that have nested lines below them. In markdown,
the first top-level heading is the document title.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, target := args[0], args[1]

			store := storage.NewJSONStore(target)
			if store.FileExists() && !force {
				return fmt.Errorf("%s exists, use --force to overwrite", target)
			}

			content, err := os.ReadFile(source)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", source, err)
			}

			f := import_parser.ImportFormat(format)
			if f == import_parser.FormatAuto {
				f = import_parser.DetectFormat(source)
			}
			outline, err := import_parser.ImportFile(string(content), f)
			if err != nil {
				return err
			}
			if outline.Title == "" {
				outline.Title = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
			}

			if err := store.Save(outline); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d top-level nodes into %s\n", len(outline.Items), target)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(import_parser.FormatAuto), "Input format: auto, markdown or indented")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing document")
	return cmd
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "List the settings from the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			for _, k := range cfg.Keys() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", k, cfg.Get(k))
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "set <key=value>...",
		Short:   "Store settings in the config file",
		Example: `  tuitree config set autosave=off "time_format=%Y-%m-%d %H:%M"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			for _, arg := range args {
				key, value, err := config.ParseSetting(arg)
				if err != nil {
					return err
				}
				if err := cfg.Persist(key, value); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d setting(s)\n", len(args))
			return nil
		},
	})
	return cmd
}

// applySettings installs --set overrides as session settings
func applySettings(cfg *config.Config, settings []string) error {
	for _, s := range settings {
		key, value, err := config.ParseSetting(s)
		if err != nil {
			return err
		}
		cfg.Set(key, value)
	}
	return nil
}

// sendRemote delivers one command to the newest running instance
func sendRemote(cmd *cobra.Command, send func(*socket.Client) (*socket.Response, error)) error {
	dir := socketDir
	if dir == "" {
		dir = socket.DefaultDir()
	}
	socketPath, pid, err := socket.FindRunningInstance(dir)
	if err != nil {
		return fmt.Errorf("no running tuitree instance found: %w", err)
	}

	client, err := socket.NewClient(socketPath)
	if err != nil {
		return fmt.Errorf("failed to connect to PID %d: %w", pid, err)
	}

	response, err := send(client)
	if err != nil {
		return fmt.Errorf("failed to send command: %w", err)
	}
	if !response.Success {
		return fmt.Errorf("server error: %s", response.Message)
	}

	fmt.Fprintln(cmd.OutOrStdout(), response.Message)
	return nil
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

// newLogger writes logfmt records to path; the terminal belongs to the UI
func newLogger(path, level string, debug bool) (*log.Logger, func(), error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	if debug {
		lvl = log.DebugLevel
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := log.NewWithOptions(logFile, log.Options{
		Level:           lvl,
		Prefix:          "tuitree",
		ReportTimestamp: true,
		ReportCaller:    debug,
		TimeFormat:      time.RFC3339,
		Formatter:       log.LogfmtFormatter,
	})
	return logger, func() { logFile.Close() }, nil
}
