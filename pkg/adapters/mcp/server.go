package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/typeguard"
	"github.com/aretw0/typeguard/internal/changes"
	"github.com/aretw0/typeguard/internal/logging"
	"github.com/aretw0/typeguard/pkg/ports"
	"github.com/aretw0/typeguard/pkg/schema"
	"github.com/aretw0/typeguard/pkg/validate"
)

// SchemasURI is the resource listing the stored contract names.
const SchemasURI = "typeguard://schemas"

// ValidationResult is the structured output of the validation tools.
type ValidationResult struct {
	Valid   bool             `json:"valid" jsonschema_description:"Whether the value satisfies the contract"`
	Value   any              `json:"value,omitempty" jsonschema_description:"The validated (and possibly coerced) value"`
	Changes json.RawMessage  `json:"changes,omitempty" jsonschema_description:"JSON merge patch from the input to the validated value"`
	Errors  []validate.Issue `json:"errors,omitempty" jsonschema_description:"One entry per failing field"`
}

// SchemaList is the structured output of list_schemas.
type SchemaList struct {
	Schemas []string `json:"schemas" jsonschema_description:"Names of the stored contracts"`
}

// Server exposes validation as MCP tools.
type Server struct {
	store     ports.SchemaStore
	logger    *slog.Logger
	hooks     validate.Hooks
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithHooks sets validation hooks, e.g. metrics.
func WithHooks(hooks validate.Hooks) Option {
	return func(s *Server) {
		s.hooks = hooks
	}
}

// NewServer creates a new MCP Server backed by store.
func NewServer(store ports.SchemaStore, opts ...Option) *Server {
	s := &Server{
		store:     store,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("typeguard-mcp", typeguard.Version),
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

// ServeSSE serves on the given port using SSE until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: validate_value
	s.mcpServer.AddTool(mcp.NewTool("validate_value",
		mcp.WithDescription("Validate a JSON value against an inline contract. The contract is a type name "+
			"(string, number, boolean) or a mapping of field name to {type, required}, in JSON or YAML."),
		mcp.WithString("schema", mcp.Required(), mcp.Description("The contract definition (JSON or YAML)")),
		mcp.WithString("value", mcp.Required(), mcp.Description("The value to validate, as JSON")),
		mcp.WithBoolean("coerce", mcp.Description("Convert values into the declared types when possible")),
		mcp.WithBoolean("base", mcp.Description("Replace values that cannot be converted with the type's default")),
		mcp.WithOutputSchema[ValidationResult](),
	), mcp.NewStructuredToolHandler(s.handleValidateValue))

	// TOOL: validate_with_schema
	s.mcpServer.AddTool(mcp.NewTool("validate_with_schema",
		mcp.WithDescription("Validate a JSON value against a stored contract."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name of the stored contract")),
		mcp.WithString("value", mcp.Required(), mcp.Description("The value to validate, as JSON")),
		mcp.WithBoolean("coerce", mcp.Description("Convert values into the declared types when possible")),
		mcp.WithBoolean("base", mcp.Description("Replace values that cannot be converted with the type's default")),
		mcp.WithOutputSchema[ValidationResult](),
	), mcp.NewStructuredToolHandler(s.handleValidateWithSchema))

	// TOOL: list_schemas
	s.mcpServer.AddTool(mcp.NewTool("list_schemas",
		mcp.WithDescription("List the names of the stored contracts."),
		mcp.WithOutputSchema[SchemaList](),
	), mcp.NewStructuredToolHandler(s.handleListSchemas))

	// TOOL: describe_schema
	s.mcpServer.AddTool(mcp.NewTool("describe_schema",
		mcp.WithDescription("Describe a stored contract as a markdown table."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name of the stored contract")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := decodeArgs(request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		def, err := s.store.Load(ctx, args.Name)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
		}
		return mcp.NewToolResultText(schema.Describe(def)), nil
	})
}

// toolArgs are the arguments shared by the tools.
type toolArgs struct {
	Schema string `mapstructure:"schema"`
	Name   string `mapstructure:"name"`
	Value  string `mapstructure:"value"`
	Coerce bool   `mapstructure:"coerce"`
	Base   bool   `mapstructure:"base"`
}

func decodeArgs(raw map[string]interface{}) (toolArgs, error) {
	var args toolArgs
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &args,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return args, err
	}
	if err := decoder.Decode(raw); err != nil {
		return args, fmt.Errorf("invalid arguments: %w", err)
	}
	return args, nil
}

func (s *Server) handleValidateValue(ctx context.Context, request mcp.CallToolRequest, raw map[string]interface{}) (ValidationResult, error) {
	args, err := decodeArgs(raw)
	if err != nil {
		return ValidationResult{}, err
	}
	if args.Schema == "" {
		return ValidationResult{}, errors.New("schema is required")
	}
	def, err := schema.ParseYAML([]byte(args.Schema))
	if err != nil {
		return ValidationResult{}, fmt.Errorf("invalid schema: %w", err)
	}
	return s.run(def, args)
}

func (s *Server) handleValidateWithSchema(ctx context.Context, request mcp.CallToolRequest, raw map[string]interface{}) (ValidationResult, error) {
	args, err := decodeArgs(raw)
	if err != nil {
		return ValidationResult{}, err
	}
	def, err := s.store.Load(ctx, args.Name)
	if err != nil {
		return ValidationResult{}, fmt.Errorf("load failed: %w", err)
	}
	return s.run(def, args)
}

func (s *Server) handleListSchemas(ctx context.Context, request mcp.CallToolRequest, raw map[string]interface{}) (SchemaList, error) {
	names, err := s.store.List(ctx)
	if err != nil {
		return SchemaList{}, fmt.Errorf("list failed: %w", err)
	}
	return SchemaList{Schemas: names}, nil
}

func (s *Server) run(def schema.Definition, args toolArgs) (ValidationResult, error) {
	var value any
	if args.Value != "" {
		if err := json.Unmarshal([]byte(args.Value), &value); err != nil {
			return ValidationResult{}, fmt.Errorf("invalid value: %w", err)
		}
	}

	opts := []validate.Option{validate.WithLogger(s.logger), validate.WithHooks(s.hooks)}
	if args.Coerce {
		opts = append(opts, validate.WithCoercion())
	}
	if args.Base {
		opts = append(opts, validate.WithBase())
	}

	out, err := validate.Validate(def, value, opts...)
	if err != nil {
		issues := validate.Issues(err)
		if issues == nil {
			return ValidationResult{}, err
		}
		s.logger.Debug("MCP validation failed", "errors", len(issues))
		return ValidationResult{Valid: false, Errors: issues}, nil
	}

	result := ValidationResult{Valid: true, Value: out}
	if patch, err := changes.Diff(value, out); err != nil {
		s.logger.Warn("failed to compute changes", "error", err)
	} else {
		result.Changes = patch
	}
	return result, nil
}

func (s *Server) registerResources() {
	// EXPOSE: typeguard://schemas
	s.mcpServer.AddResource(mcp.NewResource(SchemasURI, "Stored Contracts",
		mcp.WithMIMEType("application/json"),
	), s.readSchemas)
}

func (s *Server) readSchemas(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	names, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}

	contracts := make(map[string]json.RawMessage, len(names))
	for _, name := range names {
		def, err := s.store.Load(ctx, name)
		if errors.Is(err, ports.ErrSchemaNotFound) {
			// Deleted after List.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load schema %s: %w", name, err)
		}
		data, err := schema.Marshal(def)
		if err != nil {
			return nil, err
		}
		contracts[name] = data
	}
	jsonBytes, err := json.Marshal(contracts)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      SchemasURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
