// Package mcp exposes machines to MCP clients (LLM hosts) as tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DefaultMaxSteps bounds runs requested through MCP; a host cannot wait on
// a machine that never halts.
const DefaultMaxSteps = 100_000

// RunArgs are the arguments of run_machine.
type RunArgs struct {
	Machine  string `json:"machine"`
	Input    string `json:"input"`
	MaxSteps int    `json:"max_steps,omitempty"`
	Trace    bool   `json:"trace,omitempty"`
}

// ValidateArgs are the arguments of validate_machine.
type ValidateArgs struct {
	Definition string `json:"definition"`
	Format     string `json:"format,omitempty"`
}

// MachineEntry is one row of list_machines.
type MachineEntry struct {
	Name  string       `json:"name" jsonschema_description:"Machine name"`
	Info  *turing.Info `json:"info,omitempty" jsonschema_description:"Summary, absent when the definition is invalid"`
	Error string       `json:"error,omitempty" jsonschema_description:"Why the definition failed to load"`
}

// MachineList is the output of list_machines.
type MachineList struct {
	Machines []MachineEntry `json:"machines"`
}

// ValidationReport is the output of validate_machine.
type ValidationReport struct {
	Valid bool             `json:"valid" jsonschema_description:"Whether the definition is well formed"`
	Name  string           `json:"name,omitempty"`
	Kind  domain.ErrorKind `json:"kind,omitempty" jsonschema_description:"Violated invariant"`
	Value string           `json:"value,omitempty" jsonschema_description:"Offending state, symbol or direction"`
	Error string           `json:"error,omitempty"`
}

// Server exposes a MachineProvider as an MCP server.
type Server struct {
	machines  ports.MachineProvider
	maxSteps  int
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures a logger for the Server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMaxSteps overrides DefaultMaxSteps.
func WithMaxSteps(n int) Option {
	return func(s *Server) {
		s.maxSteps = n
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(machines ports.MachineProvider, opts ...Option) *Server {
	s := &Server{
		machines:  machines,
		maxSteps:  DefaultMaxSteps,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("turing-mcp", turing.Version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	listTool := mcp.NewTool("list_machines",
		mcp.WithDescription("List the available Turing machines with their alphabets and states."),
		mcp.WithOutputSchema[MachineList](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleList))

	runTool := mcp.NewTool("run_machine",
		mcp.WithDescription("Run a machine on an input and report whether it is accepted."),
		mcp.WithString("machine", mcp.Required(), mcp.Description("Machine name")),
		mcp.WithString("input", mcp.Description("Input word; every character is one symbol")),
		mcp.WithNumber("max_steps", mcp.Description("Give up after this many transitions")),
		mcp.WithBoolean("trace", mcp.Description("Include every configuration in the result")),
		mcp.WithOutputSchema[turing.Result](),
	)
	s.mcpServer.AddTool(runTool, mcp.NewStructuredToolHandler(s.handleRun))

	validateTool := mcp.NewTool("validate_machine",
		mcp.WithDescription("Check a machine definition (YAML or JSON) for structural errors."),
		mcp.WithString("definition", mcp.Required(), mcp.Description("The definition document")),
		mcp.WithString("format", mcp.Description("yaml (default) or json"), mcp.Enum("yaml", "json")),
		mcp.WithOutputSchema[ValidationReport](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))

	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Render a machine as a Mermaid state diagram."),
		mcp.WithString("machine", mcp.Required(), mcp.Description("Machine name")),
	), s.handleGraph)
}

func (s *Server) handleList(ctx context.Context, _ mcp.CallToolRequest, _ struct{}) (MachineList, error) {
	names, err := s.machines.Names(ctx)
	if err != nil {
		return MachineList{}, fmt.Errorf("list failed: %w", err)
	}
	out := MachineList{Machines: make([]MachineEntry, 0, len(names))}
	for _, name := range names {
		entry := MachineEntry{Name: name}
		if m, err := s.machines.Machine(ctx, name); err != nil {
			entry.Error = err.Error()
		} else {
			info := m.Inspect()
			entry.Info = &info
		}
		out.Machines = append(out.Machines, entry)
	}
	return out, nil
}

func (s *Server) handleRun(ctx context.Context, _ mcp.CallToolRequest, args RunArgs) (turing.Result, error) {
	m, err := s.machines.Machine(ctx, args.Machine)
	if err != nil {
		return turing.Result{}, err
	}
	input, err := runner.SanitizeInput(args.Input)
	if err != nil {
		s.logger.Warn("MCP run: input rejected", "err", err, "size", len(args.Input))
		return turing.Result{}, fmt.Errorf("input rejected: %w", err)
	}

	limit := s.maxSteps
	if args.MaxSteps > 0 && (limit <= 0 || args.MaxSteps < limit) {
		limit = args.MaxSteps
	}

	var res *turing.Result
	if args.Trace {
		res, err = m.Trace(ctx, input, limit)
	} else {
		res, err = m.Walk(ctx, input, limit, nil)
	}
	if err != nil {
		return turing.Result{}, fmt.Errorf("run failed: %w", err)
	}
	return *res, nil
}

func (s *Server) handleValidate(_ context.Context, _ mcp.CallToolRequest, args ValidateArgs) (ValidationReport, error) {
	format := compiler.FormatYAML
	if args.Format != "" {
		format = compiler.Format(args.Format)
	}

	def, err := compiler.Parse([]byte(args.Definition), format)
	if err != nil {
		return ValidationReport{Error: err.Error()}, nil
	}
	if _, err := turing.New(def); err != nil {
		report := ValidationReport{Name: def.Name, Error: err.Error()}
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			report.Kind = verr.Kind
			report.Value = verr.Value
		}
		return report, nil
	}
	return ValidationReport{Valid: true, Name: def.Name}, nil
}

func (s *Server) handleGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("machine")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	m, err := s.machines.Machine(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("graph failed: %v", err)), nil
	}
	return mcp.NewToolResultText(m.Graph()), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("turing://machines", "Available machines",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		list, err := s.handleList(ctx, mcp.CallToolRequest{}, struct{}{})
		if err != nil {
			return nil, err
		}
		jsonBytes, err := json.Marshal(list)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "turing://machines",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
