package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/goalux/goalux/internal/config"
	"github.com/goalux/goalux/internal/dto"
	"github.com/goalux/goalux/pkg/clients"
)

// Transaction statuses reported by the gateway, in callbacks and in the
// status API alike.
const (
	TxnSuccess = "TXN_SUCCESS"
	TxnFailure = "TXN_FAILURE"
	TxnPending = "PENDING"
)

type StatusResponse struct {
	Status  string `json:"STATUS"`
	TxnID   string `json:"TXNID"`
	OrderID string `json:"ORDERID"`
}

// Client talks to the payment gateway: it builds signed redirect payloads,
// verifies callback signatures and queries transaction status.
type Client struct {
	mid         string
	key         string
	website     string
	callbackURL string
	statusURL   string
	client      clients.HTTPClientI
}

func New(cfg *config.Config, client clients.HTTPClientI) *Client {
	return &Client{
		mid:         cfg.PaytmMID,
		key:         cfg.PaytmKey,
		website:     cfg.PaytmWebsite,
		callbackURL: cfg.CallbackURL,
		statusURL:   cfg.PaytmAddress,
		client:      client,
	}
}

func (c *Client) BuildPaymentParams(orderID, custID, amount string) (*dto.PayResponseDTO, error) {
	params := &dto.PayResponseDTO{
		RequestType:    "Payment",
		MID:            c.mid,
		Website:        c.website,
		OrderID:        orderID,
		CustID:         custID,
		TxnAmount:      amount,
		CallbackURL:    c.callbackURL,
		IndustryTypeID: "Retail",
		ChannelID:      "WEB",
	}

	checksum, err := GenerateSignature(paymentBody(params), c.key)
	if err != nil {
		return nil, fmt.Errorf("can't sign payment params: %w", err)
	}
	params.ChecksumHash = checksum

	return params, nil
}

func (c *Client) VerifyCallback(cb *dto.CallbackRequestDTO) bool {
	if cb.ChecksumHash == "" {
		return false
	}
	return VerifySignature(CallbackBody(cb), c.key, cb.ChecksumHash)
}

// TransactionStatus queries the gateway's status API for an order.
func (c *Client) TransactionStatus(orderID string) (*StatusResponse, error) {
	reqBody := struct {
		MID          string `json:"MID"`
		OrderID      string `json:"ORDERID"`
		ChecksumHash string `json:"CHECKSUMHASH"`
	}{MID: c.mid, OrderID: orderID}

	checksum, err := GenerateSignature(strings.Join([]string{reqBody.MID, reqBody.OrderID}, "|"), c.key)
	if err != nil {
		return nil, fmt.Errorf("can't sign status request: %w", err)
	}
	reqBody.ChecksumHash = checksum

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	statusCode, respBody, _, err := c.client.Post(c.statusURL+"/order/status", headers, body)
	if err != nil {
		return nil, err
	}
	if statusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code from gateway: %d", statusCode)
	}

	var status StatusResponse
	if err := json.Unmarshal(respBody, &status); err != nil {
		return nil, fmt.Errorf("can't decode status response: %w", err)
	}
	return &status, nil
}

func paymentBody(p *dto.PayResponseDTO) string {
	return strings.Join([]string{
		p.RequestType, p.MID, p.Website, p.OrderID, p.CustID,
		p.TxnAmount, p.CallbackURL, p.IndustryTypeID, p.ChannelID,
	}, "|")
}

// CallbackBody is the canonical string the gateway signs in callbacks.
func CallbackBody(cb *dto.CallbackRequestDTO) string {
	return strings.Join([]string{cb.Status, cb.TxnID, cb.OrderID, cb.CustID}, "|")
}
