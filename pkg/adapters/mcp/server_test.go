package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/turing/internal/testutils"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/registry"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	bad := testutils.Looper()
	bad.Name = "broken"
	bad.BlankSymbol = "#"

	loader, err := memory.NewLoader(testutils.ZerosOnes(), testutils.Looper(), bad)
	require.NoError(t, err)
	return NewServer(registry.New(loader), WithMaxSteps(20))
}

func TestServer_ListMachines(t *testing.T) {
	s := newTestServer(t)

	list, err := s.handleList(context.Background(), mcp.CallToolRequest{}, struct{}{})
	require.NoError(t, err)
	require.Len(t, list.Machines, 3)

	assert.Equal(t, "broken", list.Machines[0].Name)
	assert.Nil(t, list.Machines[0].Info)
	assert.Contains(t, list.Machines[0].Error, "invalid-symbol")

	assert.Equal(t, "zeros-ones", list.Machines[2].Name)
	require.NotNil(t, list.Machines[2].Info)
	assert.Equal(t, domain.Symbol("."), list.Machines[2].Info.BlankSymbol)
}

func TestServer_RunMachine(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleRun(ctx, mcp.CallToolRequest{}, RunArgs{Machine: "zeros-ones", Input: "0011", Trace: true})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAccepted, res.Outcome)
	assert.Equal(t, 13, res.Steps)
	assert.Len(t, res.Configurations, 14)

	res, err = s.handleRun(ctx, mcp.CallToolRequest{}, RunArgs{Machine: "looper", Input: "a"})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeStepLimit, res.Outcome)
	assert.Equal(t, 20, res.Steps)

	res, err = s.handleRun(ctx, mcp.CallToolRequest{}, RunArgs{Machine: "looper", Input: "a", MaxSteps: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Steps)

	_, err = s.handleRun(ctx, mcp.CallToolRequest{}, RunArgs{Machine: "zeros-ones", Input: "0x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = s.handleRun(ctx, mcp.CallToolRequest{}, RunArgs{Machine: "nope"})
	assert.ErrorIs(t, err, domain.ErrMachineNotFound)
}

func TestServer_ValidateMachine(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	valid := `{"name":"one","states":["s","f"],"input_symbols":["1"],"tape_symbols":["1","_"],` +
		`"initial_state":"s","blank_symbol":"_","final_states":["f"],"transitions":{"s":{"1":["f","1","R"]}}}`
	report, err := s.handleValidate(ctx, mcp.CallToolRequest{}, ValidateArgs{Definition: valid, Format: "json"})
	require.NoError(t, err)
	assert.True(t, report.Valid)
	assert.Equal(t, "one", report.Name)

	invalid := `{"name":"one","states":["s","f"],"input_symbols":["1"],"tape_symbols":["1","_"],` +
		`"initial_state":"s","blank_symbol":"_","final_states":["f"],"transitions":{"s":{"1":["f","1","U"]}}}`
	report, err = s.handleValidate(ctx, mcp.CallToolRequest{}, ValidateArgs{Definition: invalid, Format: "json"})
	require.NoError(t, err)
	assert.False(t, report.Valid)
	assert.Equal(t, domain.KindInvalidDirection, report.Kind)
	assert.Equal(t, "U", report.Value)

	report, err = s.handleValidate(ctx, mcp.CallToolRequest{}, ValidateArgs{Definition: "states: [", Format: "yaml"})
	require.NoError(t, err)
	assert.False(t, report.Valid)
	assert.NotEmpty(t, report.Error)
}

func TestServer_ToolsRegistered(t *testing.T) {
	s := newTestServer(t)

	msg := s.mcpServer.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	for _, name := range []string{"list_machines", "run_machine", "validate_machine", "get_graph"} {
		assert.Contains(t, string(raw), `"name":"`+name+`"`)
	}
}
