package filerenamer

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// Parameter structures for MCP tools. Rules default to the server's config
// file when omitted.
type ComputeNewNameParams struct {
	Filenames []string  `json:"filenames"`
	Rules     *RawRules `json:"rules,omitempty"`
}

type PreviewRenamesParams struct {
	InputDir        string    `json:"input_dir"`
	OutputDir       string    `json:"output_dir,omitempty"`
	Rules           *RawRules `json:"rules,omitempty"`
	ExcludePatterns []string  `json:"exclude_patterns,omitempty"`
}

type RenameFilesParams struct {
	InputDir        string    `json:"input_dir"`
	OutputDir       string    `json:"output_dir,omitempty"`
	Rules           *RawRules `json:"rules,omitempty"`
	ExcludePatterns []string  `json:"exclude_patterns,omitempty"`
	DryRun          bool      `json:"dry_run,omitempty"`
}

type ComputeNewNameResult struct {
	Mappings []Mapping `json:"mappings"`
}

type mcpServer struct {
	config *Config
	fs     afero.Fs
}

func (s *mcpServer) rules(raw *RawRules) (Rules, error) {
	if raw == nil {
		return s.config.Rules.Parse()
	}
	return raw.Parse()
}

func (s *mcpServer) executor(excludes []string) (*Executor, error) {
	patterns := append(append([]string{}, s.config.ExcludePatterns...), excludes...)
	return NewExecutor(ExecutorOptions{
		Fs:              s.fs,
		ExcludePatterns: patterns,
	})
}

func (s *mcpServer) run(ctx context.Context, inputDir, outputDir string, raw *RawRules, excludes []string, mode Mode) (*Report, error) {
	rules, err := s.rules(raw)
	if err != nil {
		return nil, err
	}

	executor, err := s.executor(excludes)
	if err != nil {
		return nil, err
	}

	if outputDir == "" {
		outputDir = s.config.OutputDir
	}

	return executor.Run(ctx, inputDir, outputDir, rules, mode)
}

// Tool handler functions
func (s *mcpServer) ComputeNewNameTool(ctx context.Context, req *mcp.CallToolRequest, args ComputeNewNameParams) (*mcp.CallToolResult, any, error) {
	rules, err := s.rules(args.Rules)
	if err != nil {
		return nil, nil, errors.Errorf("failed to parse rules: %w", err)
	}

	result := ComputeNewNameResult{Mappings: make([]Mapping, 0, len(args.Filenames))}
	counter := 0
	for _, name := range args.Filenames {
		result.Mappings = append(result.Mappings, Mapping{
			OriginalName: name,
			NewName:      ComputeNewName(name, counter, rules),
		})
		if rules.RenumberEnabled {
			counter++
		}
	}

	return nil, result, nil
}

func (s *mcpServer) PreviewRenamesTool(ctx context.Context, req *mcp.CallToolRequest, args PreviewRenamesParams) (*mcp.CallToolResult, any, error) {
	report, err := s.run(ctx, args.InputDir, args.OutputDir, args.Rules, args.ExcludePatterns, ModePreview)
	if err != nil {
		return nil, nil, errors.Errorf("failed to preview renames: %w", err)
	}
	return nil, report, nil
}

func (s *mcpServer) RenameFilesTool(ctx context.Context, req *mcp.CallToolRequest, args RenameFilesParams) (*mcp.CallToolResult, any, error) {
	mode := ModeExecute
	if args.DryRun {
		mode = ModePreview
	}

	report, err := s.run(ctx, args.InputDir, args.OutputDir, args.Rules, args.ExcludePatterns, mode)
	if err != nil {
		return nil, nil, errors.Errorf("failed to rename files: %w", err)
	}
	return nil, report, nil
}

// RunMCPServer serves the renaming tools until the context is cancelled or
// the process is interrupted. A nil transport means stdio.
func RunMCPServer(ctx context.Context, config *Config, fs afero.Fs, transport *mcp.InMemoryTransport) error {
	if config == nil {
		config = DefaultConfig()
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}

	handlers := &mcpServer{
		config: config,
		fs:     fs,
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "file-renamer",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "compute_new_name",
		Description: "Compute new names for filenames without touching the filesystem",
	}, handlers.ComputeNewNameTool)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "preview_renames",
		Description: "Preview how the files of a directory would be renamed",
	}, handlers.PreviewRenamesTool)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "rename_files",
		Description: "Rename the files of a directory in place or copy them to an output directory",
	}, handlers.RenameFilesTool)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	if transport != nil {
		return server.Run(ctx, transport)
	}
	return server.Run(ctx, &mcp.StdioTransport{})
}
