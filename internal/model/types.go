package model

import "time"

const EnvelopeVersion = "v1"

// Envelope is the stable JSON wrapper emitted by every command. Validation
// failures travel inside Data with Success=true; Error is reserved for
// process-level failures.
type Envelope struct {
	Version  string       `json:"version"`
	Success  bool         `json:"success"`
	Data     any          `json:"data,omitempty"`
	Error    *ErrorBody   `json:"error"`
	Warnings []string     `json:"warnings,omitempty"`
	Meta     EnvelopeMeta `json:"meta"`
}

type ErrorBody struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

type EnvelopeMeta struct {
	RequestID string        `json:"request_id"`
	Timestamp time.Time     `json:"timestamp"`
	Command   string        `json:"command"`
	Chains    []ChainStatus `json:"chains,omitempty"`
	Cache     CacheStatus   `json:"cache"`
	Partial   bool          `json:"partial"`
}

// ChainStatus records one node round trip made while serving the command.
type ChainStatus struct {
	Chain     string `json:"chain"`
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
}

type CacheStatus struct {
	Status string `json:"status"`
	AgeMS  int64  `json:"age_ms"`
	Stale  bool   `json:"stale"`
}

type AmountInfo struct {
	AmountBaseUnits string `json:"amount_base_units"`
	AmountDecimal   string `json:"amount_decimal"`
	Decimals        int    `json:"decimals"`
}

// PoolSummary is the pools-command row.
type PoolSummary struct {
	Slug          string   `json:"slug"`
	Name          string   `json:"name"`
	Chain         string   `json:"chain"`
	Type          string   `json:"type"`
	InputAssets   []string `json:"input_assets"`
	FeeAssets     []string `json:"fee_assets"`
	TotalAPR      float64  `json:"total_apr"`
	TVL           string   `json:"tvl,omitempty"`
	MinJoinPool   string   `json:"min_join_pool,omitempty"`
}

// RewardProjection is the rewards-command payload.
type RewardProjection struct {
	Pool              string  `json:"pool"`
	APR               float64 `json:"apr"`
	CompoundingPeriod string  `json:"compounding_period"`
	APY               float64 `json:"apy"`
	Amount            float64 `json:"amount"`
	RewardInToken     float64 `json:"reward_in_token"`
}

// HistoryItem is one indexed extrinsic or transfer row.
type HistoryItem struct {
	Kind        string `json:"kind"`
	Hash        string `json:"hash"`
	BlockNumber int64  `json:"block_number"`
	Timestamp   int64  `json:"timestamp"`
	Module      string `json:"module,omitempty"`
	Call        string `json:"call,omitempty"`
	From        string `json:"from,omitempty"`
	To          string `json:"to,omitempty"`
	Amount      string `json:"amount,omitempty"`
	Success     bool   `json:"success"`
}

// HistoryPage is the history-command payload.
type HistoryPage struct {
	Chain   string        `json:"chain"`
	Address string        `json:"address"`
	Page    int           `json:"page"`
	Count   int64         `json:"count"`
	Items   []HistoryItem `json:"items"`
}
