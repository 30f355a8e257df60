package filerenamer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// RunCmdOptions contains options for customizing RunCmd behavior
type RunCmdOptions struct {
	// MCPTransport allows providing a custom transport for MCP server (used for testing)
	MCPTransport *mcp.InMemoryTransport
	// Stdout writer for normal output (defaults to os.Stdout)
	Stdout io.Writer
	// Stderr writer for logs and errors (defaults to os.Stderr)
	Stderr io.Writer
	// Fs is the filesystem renamed files live on (defaults to the OS filesystem)
	Fs afero.Fs
}

// ruleFlags mirrors RawRules. A flag only overrides the config file when it
// was given on the command line.
type ruleFlags struct {
	find     string
	replace  string
	renumber bool
	start    string
	padding  string
	ext      string
}

// commandContext holds runtime context for command execution
type commandContext struct {
	stdout io.Writer
	stderr io.Writer
	fs     afero.Fs
	log    zerolog.Logger
	config *Config

	configFile string
	verbose    bool
	jsonOutput bool
	mcpServer  bool
	excludes   []string
	rules      ruleFlags
}

func RunCmd(args []string, options *RunCmdOptions) error {
	cmdCtx := &commandContext{
		stdout: io.Writer(os.Stdout),
		stderr: io.Writer(os.Stderr),
	}

	var transport *mcp.InMemoryTransport
	if options != nil {
		if options.Stdout != nil {
			cmdCtx.stdout = options.Stdout
		}
		if options.Stderr != nil {
			cmdCtx.stderr = options.Stderr
		}
		cmdCtx.fs = options.Fs
		transport = options.MCPTransport
	}
	if cmdCtx.fs == nil {
		cmdCtx.fs = afero.NewOsFs()
	}

	root := newRootCmd(cmdCtx, transport)
	if len(args) > 1 {
		root.SetArgs(args[1:])
	} else {
		root.SetArgs([]string{})
	}

	return root.ExecuteContext(context.Background())
}

func newRootCmd(cmdCtx *commandContext, transport *mcp.InMemoryTransport) *cobra.Command {
	root := &cobra.Command{
		Use:   "file-renamer",
		Short: "Batch rename file sequences",
		Long: `file-renamer applies a pipeline of filename rules to every file in a directory:
text replacement, sequence renumbering, zero padding and extension change.
Files are renamed in place, or copied under their new names when an output
directory is given.`,
		Example: `  file-renamer name --renumber --start=1001 shot_0007.png
  file-renamer preview --find=old --replace=new /path/to/plates
  file-renamer rename --renumber --padding=4 --ext=exr --output=/path/to/out /path/to/plates
  file-renamer rename --config=rules.yaml --dry-run /path/to/plates
  file-renamer --mcp --config=rules.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cmdCtx.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmdCtx.mcpServer {
				return RunMCPServer(cmd.Context(), cmdCtx.config, cmdCtx.fs, transport)
			}
			return cmd.Help()
		},
	}

	root.SetOut(cmdCtx.stdout)
	root.SetErr(cmdCtx.stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&cmdCtx.configFile, "config", "", "Path to configuration file")
	flags.BoolVarP(&cmdCtx.verbose, "verbose", "v", false, "Verbose output")
	flags.BoolVar(&cmdCtx.jsonOutput, "json", false, "Output as JSON")
	flags.StringSliceVar(&cmdCtx.excludes, "exclude", nil, "Glob patterns of file names to leave alone")
	flags.StringVar(&cmdCtx.rules.find, "find", "", "Text to replace in file names (enables replacement)")
	flags.StringVar(&cmdCtx.rules.replace, "replace", "", "Replacement text")
	flags.BoolVar(&cmdCtx.rules.renumber, "renumber", false, "Renumber files as a sequence")
	flags.StringVar(&cmdCtx.rules.start, "start", "", "First sequence number")
	flags.StringVar(&cmdCtx.rules.padding, "padding", "", "Minimum digit count (enables padding)")
	flags.StringVar(&cmdCtx.rules.ext, "ext", "", "New extension without the dot (enables extension change)")
	root.Flags().BoolVar(&cmdCtx.mcpServer, "mcp", false, "Run as MCP server")

	root.AddCommand(
		newNameCmd(cmdCtx),
		newPreviewCmd(cmdCtx),
		newRenameCmd(cmdCtx),
	)

	return root
}

func (c *commandContext) setup(cmd *cobra.Command) error {
	level := zerolog.WarnLevel
	if c.verbose {
		level = zerolog.DebugLevel
	}
	c.log = zerolog.New(zerolog.ConsoleWriter{Out: c.stderr}).With().Timestamp().Logger().Level(level)
	cmd.SetContext(c.log.WithContext(cmd.Context()))

	config, err := LoadConfig(c.configFile)
	if err != nil {
		return errors.Errorf("failed to load config: %w", err)
	}
	config.ExcludePatterns = append(config.ExcludePatterns, c.excludes...)
	c.config = config

	return nil
}

func (c *commandContext) resolveRules(cmd *cobra.Command) (Rules, error) {
	raw := c.config.Rules
	flags := cmd.Flags()

	if flags.Changed("find") {
		raw.ReplaceEnabled = true
		raw.FindText = c.rules.find
	}
	if flags.Changed("replace") {
		raw.ReplaceText = c.rules.replace
	}
	if flags.Changed("renumber") {
		raw.RenumberEnabled = c.rules.renumber
	}
	if flags.Changed("start") {
		raw.StartNumber = c.rules.start
	}
	if flags.Changed("padding") {
		raw.PaddingEnabled = true
		raw.PaddingWidth = c.rules.padding
	}
	if flags.Changed("ext") {
		raw.ExtensionEnabled = true
		raw.NewExtension = c.rules.ext
	}

	return raw.Parse()
}

func (c *commandContext) newExecutor() (*Executor, error) {
	return NewExecutor(ExecutorOptions{
		Fs:              c.fs,
		ExcludePatterns: c.config.ExcludePatterns,
		Logger:          &c.log,
	})
}

func newNameCmd(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "name FILENAME...",
		Short: "Show the new name of each filename without touching the filesystem",
		Long: `name computes new names for the given filenames in argument order.
With --renumber the first filename gets the start number, the next one the
start number plus one, and so on.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := cmdCtx.resolveRules(cmd)
			if err != nil {
				return err
			}

			mappings := make([]Mapping, 0, len(args))
			counter := 0
			for _, name := range args {
				mappings = append(mappings, Mapping{
					OriginalName: name,
					NewName:      ComputeNewName(name, counter, rules),
				})
				if rules.RenumberEnabled {
					counter++
				}
			}

			if cmdCtx.jsonOutput {
				return json.NewEncoder(cmdCtx.stdout).Encode(mappings)
			}

			for _, m := range mappings {
				_, _ = fmt.Fprintf(cmdCtx.stdout, "%s → %s\n", m.OriginalName, m.NewName)
			}
			return nil
		},
	}
}

func newPreviewCmd(cmdCtx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "preview DIR",
		Short: "Show what rename would do without making changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, cmdCtx, args[0], output, ModePreview)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Copy renamed files into this directory instead of renaming in place")
	return cmd
}

func newRenameCmd(cmdCtx *commandContext) *cobra.Command {
	var (
		output string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "rename DIR",
		Short: "Rename the files of DIR in place, or copy them to --output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := ModeExecute
			if dryRun {
				mode = ModePreview
			}
			return runBatch(cmd, cmdCtx, args[0], output, mode)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Copy renamed files into this directory instead of renaming in place")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be changed without making changes")
	return cmd
}

func runBatch(cmd *cobra.Command, cmdCtx *commandContext, inputDir, output string, mode Mode) error {
	rules, err := cmdCtx.resolveRules(cmd)
	if err != nil {
		return err
	}

	if output == "" {
		output = cmdCtx.config.OutputDir
	}

	executor, err := cmdCtx.newExecutor()
	if err != nil {
		return errors.Errorf("failed to create executor: %w", err)
	}

	report, err := executor.Run(cmd.Context(), inputDir, output, rules, mode)
	if err != nil {
		return err
	}

	if cmdCtx.jsonOutput {
		if err := WriteReportJSON(cmdCtx.stdout, report); err != nil {
			return err
		}
	} else {
		WriteReport(cmdCtx.stdout, report, cmdCtx.verbose)
	}

	if failures := len(report.Failures()); failures > 0 && mode == ModeExecute {
		return errors.Errorf("completed with %d failed files", failures)
	}

	return nil
}
