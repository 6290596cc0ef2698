package starknet

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"lendboard/internal/app/port"
	"lendboard/internal/config"
	"lendboard/internal/domain/entity"
	"lendboard/internal/pkg/metrics"

	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var errProtocolUnset = errors.New("starknet.protocolAddress is not configured")

// FunctionCall is the request object of starknet_call.
type FunctionCall struct {
	ContractAddress    string   `json:"contract_address"`
	EntryPointSelector string   `json:"entry_point_selector"`
	Calldata           []string `json:"calldata"`
}

// starknetClientImpl implements port.OnChainDataSource over Starknet JSON-RPC.
type starknetClientImpl struct {
	rpc      *rpc.Client
	protocol string
	blockID  any
	timeout  time.Duration
	limiter  *rate.Limiter
	logger   *zap.Logger

	selectors map[string]string
}

// NewClient dials the configured node. The connection is lazy for HTTP endpoints.
func NewClient(ctx context.Context, cfg config.StarknetConfig, logger *zap.Logger) (port.OnChainDataSource, error) {
	rc, err := rpc.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Starknet RPC %s: %w", cfg.RPCURL, err)
	}
	return newClient(rc, cfg, logger)
}

func newClient(rc *rpc.Client, cfg config.StarknetConfig, logger *zap.Logger) (*starknetClientImpl, error) {
	c := &starknetClientImpl{
		rpc:     rc,
		blockID: blockID(cfg.BlockID),
		timeout: time.Duration(cfg.RPCTimeoutMs) * time.Millisecond,
		logger:  logger.Named("StarknetClient"),
		selectors: map[string]string{
			EntryPointUserDeposits:       Selector(EntryPointUserDeposits),
			EntryPointTransactionHistory: Selector(EntryPointTransactionHistory),
			EntryPointBorrowedTokens:     Selector(EntryPointBorrowedTokens),
		},
	}
	if cfg.ProtocolAddress != "" {
		addr, err := feltHex(cfg.ProtocolAddress)
		if err != nil {
			return nil, fmt.Errorf("invalid starknet.protocolAddress: %w", err)
		}
		c.protocol = addr
	}
	if c.timeout <= 0 {
		c.timeout = 10 * time.Second
	}
	limit, burst := rate.Limit(cfg.RateLimit), cfg.BurstLimit
	if limit <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}
	c.limiter = rate.NewLimiter(limit, burst)
	return c, nil
}

// blockID maps the configured tag to a JSON-RPC block_id. Numbers select a block by height.
func blockID(tag string) any {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if n, err := strconv.ParseUint(tag, 10, 64); err == nil {
		return map[string]uint64{"block_number": n}
	}
	if strings.HasPrefix(tag, "0x") {
		return map[string]string{"block_hash": tag}
	}
	if tag == "" {
		return "latest"
	}
	return tag
}

func (c *starknetClientImpl) GetUserDeposits(ctx context.Context, wallet string) ([]entity.RawDepositRow, error) {
	if wallet == "" {
		return nil, nil
	}
	felts, err := c.call(ctx, EntryPointUserDeposits, wallet)
	if err != nil {
		return nil, err
	}
	return DecodeDeposits(felts)
}

func (c *starknetClientImpl) GetTransactionHistory(ctx context.Context, wallet string, page, pageSize uint32) ([]entity.RawTransactionRow, error) {
	if wallet == "" {
		return nil, nil
	}
	felts, err := c.call(ctx, EntryPointTransactionHistory, wallet,
		strconv.FormatUint(uint64(page), 10), strconv.FormatUint(uint64(pageSize), 10))
	if err != nil {
		return nil, err
	}
	return DecodeTransactions(felts)
}

func (c *starknetClientImpl) GetBorrowedTokens(ctx context.Context, wallet string) ([]entity.RawBorrowRow, error) {
	if wallet == "" {
		return nil, nil
	}
	felts, err := c.call(ctx, EntryPointBorrowedTokens, wallet)
	if err != nil {
		return nil, err
	}
	return DecodeBorrowed(felts)
}

func (c *starknetClientImpl) call(ctx context.Context, entryPoint string, args ...string) ([]string, error) {
	if c.protocol == "" {
		return nil, errProtocolUnset
	}
	data, err := calldata(args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", entryPoint, err)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: rate limiter: %w", entryPoint, err)
	}

	req := FunctionCall{
		ContractAddress:    c.protocol,
		EntryPointSelector: c.selectors[entryPoint],
		Calldata:           data,
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	var result []string
	err = c.rpc.CallContext(callCtx, &result, "starknet_call", req, c.blockID)
	metrics.RPCDuration.WithLabelValues(entryPoint).Observe(time.Since(start).Seconds())
	if err != nil {
		c.logger.Error("starknet_call failed",
			zap.String("entryPoint", entryPoint),
			zap.Strings("calldata", data),
			zap.Error(err))
		return nil, fmt.Errorf("starknet_call %s failed: %w", entryPoint, err)
	}

	c.logger.Debug("starknet_call completed",
		zap.String("entryPoint", entryPoint),
		zap.Int("resultFelts", len(result)),
		zap.Duration("latency", time.Since(start)))
	return result, nil
}
