package starknet_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"lendboard/internal/config"
	"lendboard/internal/infrastructure/starknet"

	"go.uber.org/zap"
)

type rpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

type fakeNode struct {
	mu     sync.Mutex
	calls  []starknet.FunctionCall
	blocks []string
	result map[string][]string // selector -> result felts
}

func (n *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var call starknet.FunctionCall
	if len(req.Params) != 2 || json.Unmarshal(req.Params[0], &call) != nil {
		http.Error(w, "bad params", http.StatusBadRequest)
		return
	}

	n.mu.Lock()
	n.calls = append(n.calls, call)
	n.blocks = append(n.blocks, string(req.Params[1]))
	result, ok := n.result[call.EntryPointSelector]
	n.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
	if ok {
		resp["result"] = result
	} else {
		resp["error"] = map[string]any{"code": 40, "message": "Contract error"}
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func newNodeServer(t *testing.T, node *fakeNode) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(node)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(url, protocol string) config.StarknetConfig {
	return config.StarknetConfig{
		RPCURL:          url,
		ProtocolAddress: protocol,
		BlockID:         "latest",
		RPCTimeoutMs:    2000,
		RateLimit:       100,
		BurstLimit:      10,
	}
}

func TestClientGetUserDeposits(t *testing.T) {
	node := &fakeNode{result: map[string][]string{
		starknet.Selector(starknet.EntryPointUserDeposits): {"0x1", "0x49d3", "0x5", "0x0"},
	}}
	srv := newNodeServer(t, node)

	client, err := starknet.NewClient(context.Background(), testConfig(srv.URL, "0x0042"), zap.NewNop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	rows, err := client.GetUserDeposits(context.Background(), "0x00000abc")
	if err != nil {
		t.Fatalf("GetUserDeposits: %v", err)
	}
	if len(rows) != 1 || rows[0].Amount.Int64() != 5 {
		t.Fatalf("unexpected rows %#v", rows)
	}

	node.mu.Lock()
	defer node.mu.Unlock()
	if len(node.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(node.calls))
	}
	call := node.calls[0]
	if call.ContractAddress != "0x42" {
		t.Errorf("contract address = %s", call.ContractAddress)
	}
	if len(call.Calldata) != 1 || call.Calldata[0] != "0xabc" {
		t.Errorf("calldata = %v", call.Calldata)
	}
	if node.blocks[0] != `"latest"` {
		t.Errorf("block id = %s", node.blocks[0])
	}
}

func TestClientGetTransactionHistoryCalldata(t *testing.T) {
	node := &fakeNode{result: map[string][]string{
		starknet.Selector(starknet.EntryPointTransactionHistory): {"0x0"},
	}}
	srv := newNodeServer(t, node)

	client, err := starknet.NewClient(context.Background(), testConfig(srv.URL, "0x42"), zap.NewNop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	rows, err := client.GetTransactionHistory(context.Background(), "0xabc", 1, 5)
	if err != nil {
		t.Fatalf("GetTransactionHistory: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty non-nil rows, got %#v", rows)
	}

	node.mu.Lock()
	defer node.mu.Unlock()
	want := []string{"0xabc", "0x1", "0x5"}
	got := node.calls[0].Calldata
	if len(got) != len(want) {
		t.Fatalf("calldata = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("calldata[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestClientNoWalletDoesNoIO(t *testing.T) {
	node := &fakeNode{}
	srv := newNodeServer(t, node)

	client, err := starknet.NewClient(context.Background(), testConfig(srv.URL, "0x42"), zap.NewNop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	ctx := context.Background()
	deposits, err := client.GetUserDeposits(ctx, "")
	if err != nil || deposits != nil {
		t.Errorf("deposits = %v, %v", deposits, err)
	}
	history, err := client.GetTransactionHistory(ctx, "", 1, 5)
	if err != nil || history != nil {
		t.Errorf("history = %v, %v", history, err)
	}
	borrowed, err := client.GetBorrowedTokens(ctx, "")
	if err != nil || borrowed != nil {
		t.Errorf("borrowed = %v, %v", borrowed, err)
	}

	node.mu.Lock()
	defer node.mu.Unlock()
	if len(node.calls) != 0 {
		t.Fatalf("expected no RPC calls, got %d", len(node.calls))
	}
}

func TestClientRPCError(t *testing.T) {
	node := &fakeNode{result: map[string][]string{}}
	srv := newNodeServer(t, node)

	client, err := starknet.NewClient(context.Background(), testConfig(srv.URL, "0x42"), zap.NewNop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := client.GetBorrowedTokens(context.Background(), "0xabc"); err == nil {
		t.Fatal("expected an error from a failing contract call")
	}
}

func TestClientRequiresProtocolAddress(t *testing.T) {
	node := &fakeNode{}
	srv := newNodeServer(t, node)

	client, err := starknet.NewClient(context.Background(), testConfig(srv.URL, ""), zap.NewNop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := client.GetUserDeposits(context.Background(), "0xabc"); err == nil {
		t.Fatal("expected an error without a protocol address")
	}
}
