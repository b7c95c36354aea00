package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/youtube138-mcp/internal/common"
	"github.com/bobmcallan/youtube138-mcp/internal/config"
)

// Dispatcher executes tool invocations against the upstream API.
// It holds no mutable state and is safe for concurrent use.
type Dispatcher struct {
	client *Client
	logger *common.Logger
}

// NewDispatcher creates a dispatcher for the given API configuration.
// The credential is taken from cfg.Key and never re-read from the environment.
func NewDispatcher(cfg config.APIConfig, logger *common.Logger) *Dispatcher {
	return &Dispatcher{
		client: NewClient(cfg, logger),
		logger: logger,
	}
}

// HasCredential reports whether the dispatcher can reach the upstream API.
func (d *Dispatcher) HasCredential() bool {
	return d.client.HasCredential()
}

// Invoke runs the named tool. Validation failures and a missing credential
// are returned as errors before any request is made. Upstream failures are
// returned inside the Result with a nil error.
func (d *Dispatcher) Invoke(ctx context.Context, name string, args map[string]any) (*Result, error) {
	if args == nil {
		return nil, ErrMissingArguments
	}

	tool, ok := LookupTool(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	query, err := buildQuery(tool, args)
	if err != nil {
		return nil, err
	}

	logger := d.logger.WithCorrelationId(uuid.New().String())
	start := time.Now()

	result, err := d.client.Get(ctx, tool.Path, query)
	if err != nil {
		logger.Warn().Str("tool", name).Str("error", err.Error()).Msg("tool invocation rejected")
		return nil, err
	}

	if result.OK() {
		logger.Info().Str("tool", name).Int64("duration_ms", time.Since(start).Milliseconds()).Msg("tool invocation completed")
	} else {
		logger.Warn().Str("tool", name).Int64("duration_ms", time.Since(start).Milliseconds()).Str("error", result.Err.Message).Msg("tool invocation returned upstream error")
	}
	return result, nil
}

// buildQuery validates required parameters and fills defaults for optional ones.
// Empty values (null, "", false, 0) count as absent.
func buildQuery(tool ToolDescriptor, args map[string]any) (url.Values, error) {
	for _, p := range tool.Params {
		if p.Required && !present(args[p.Name]) {
			return nil, &MissingParamError{Param: p.Name}
		}
	}

	query := url.Values{}
	for _, p := range tool.Params {
		v, ok := args[p.Name]
		switch {
		case ok && present(v):
			query.Set(p.Name, stringValue(v))
		case p.Default != "":
			query.Set(p.Name, p.Default)
		}
	}
	return query, nil
}

func present(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case float64:
		return val != 0
	case int:
		return val != 0
	}
	return true
}

func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return formatNumber(val)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// formatNumber renders a JSON number the way query strings expect it: plain
// decimals in [1e-6, 1e21) and exponent form such as 1e+21 or 1.5e-7 outside.
func formatNumber(f float64) string {
	abs := math.Abs(f)
	if abs == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + digits
}
