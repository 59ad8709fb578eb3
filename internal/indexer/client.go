package indexer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	clierrors "github.com/ggonzalez94/yield-cli/internal/errors"
	"github.com/ggonzalez94/yield-cli/internal/httpx"
	"github.com/ggonzalez94/yield-cli/internal/model"
)

// Client talks to a subscan-compatible block indexer. It is display-only
// infrastructure: nothing in path planning or validation consults it.
type Client struct {
	http     *httpx.Client
	endpoint string // URL template, "{chain}" replaced per request
	pageSize int
}

func NewClient(http *httpx.Client, endpoint string, pageSize int) *Client {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &Client{http: http, endpoint: endpoint, pageSize: pageSize}
}

// envelope is the indexer's uniform response wrapper. A non-zero code is an
// application-level failure even under HTTP 200.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type listRequest struct {
	Address string `json:"address"`
	Page    int    `json:"page"`
	Row     int    `json:"row"`
}

type extrinsicRow struct {
	Hash           string `json:"extrinsic_hash"`
	BlockNumber    int64  `json:"block_num"`
	BlockTimestamp int64  `json:"block_timestamp"`
	CallModule     string `json:"call_module"`
	CallFunction   string `json:"call_module_function"`
	Success        bool   `json:"success"`
}

type extrinsicsData struct {
	Count      int64          `json:"count"`
	Extrinsics []extrinsicRow `json:"extrinsics"`
}

type transferRow struct {
	Hash           string `json:"hash"`
	BlockNumber    int64  `json:"block_num"`
	BlockTimestamp int64  `json:"block_timestamp"`
	From           string `json:"from"`
	To             string `json:"to"`
	Amount         string `json:"amount"`
	Module         string `json:"module"`
	Success        bool   `json:"success"`
}

type transfersData struct {
	Count     int64         `json:"count"`
	Transfers []transferRow `json:"transfers"`
}

func (c *Client) baseURL(chain string) string {
	return strings.ReplaceAll(c.endpoint, "{chain}", chain)
}

func (c *Client) post(ctx context.Context, url string, req listRequest, out any) error {
	body, err := json.Marshal(req)
	if err != nil {
		return clierrors.Wrap(clierrors.CodeInternal, "encode indexer request", err)
	}
	var env envelope
	if _, err := httpx.DoBodyJSON(ctx, c.http, http.MethodPost, url, body, nil, &env); err != nil {
		return err
	}
	if env.Code != 0 {
		return clierrors.New(clierrors.CodeUnavailable,
			fmt.Sprintf("indexer error %d: %s", env.Code, env.Message))
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return clierrors.Wrap(clierrors.CodeUnavailable, "decode indexer data", err)
	}
	return nil
}

// ExtrinsicsList fetches one page of extrinsics submitted by address.
func (c *Client) ExtrinsicsList(ctx context.Context, chain, address string, page int) (model.HistoryPage, error) {
	var data extrinsicsData
	url := c.baseURL(chain) + "/api/scan/extrinsics"
	if err := c.post(ctx, url, listRequest{Address: address, Page: page, Row: c.pageSize}, &data); err != nil {
		return model.HistoryPage{}, err
	}
	out := model.HistoryPage{Chain: chain, Address: address, Page: page, Count: data.Count}
	for _, row := range data.Extrinsics {
		out.Items = append(out.Items, model.HistoryItem{
			Kind:        "extrinsic",
			Hash:        row.Hash,
			BlockNumber: row.BlockNumber,
			Timestamp:   row.BlockTimestamp,
			Module:      row.CallModule,
			Call:        row.CallFunction,
			Success:     row.Success,
		})
	}
	return out, nil
}

// TransfersList fetches one page of balance transfers touching address.
func (c *Client) TransfersList(ctx context.Context, chain, address string, page int) (model.HistoryPage, error) {
	var data transfersData
	url := c.baseURL(chain) + "/api/scan/transfers"
	if err := c.post(ctx, url, listRequest{Address: address, Page: page, Row: c.pageSize}, &data); err != nil {
		return model.HistoryPage{}, err
	}
	out := model.HistoryPage{Chain: chain, Address: address, Page: page, Count: data.Count}
	for _, row := range data.Transfers {
		out.Items = append(out.Items, model.HistoryItem{
			Kind:        "transfer",
			Hash:        row.Hash,
			BlockNumber: row.BlockNumber,
			Timestamp:   row.BlockTimestamp,
			Module:      row.Module,
			From:        row.From,
			To:          row.To,
			Amount:      row.Amount,
			Success:     row.Success,
		})
	}
	return out, nil
}
