package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// NetopiaConfig Netopia 网关配置
type NetopiaConfig struct {
	BaseURL   string
	APIKey    string
	Signature string
	TimeoutMS int
}

// NetopiaProvider Netopia 支付网关客户端
type NetopiaProvider struct {
	config NetopiaConfig
	client *http.Client
}

// NewNetopiaProvider 创建 Netopia 客户端
func NewNetopiaProvider(config NetopiaConfig) (*NetopiaProvider, error) {
	if err := validateNetopiaConfig(config); err != nil {
		return nil, err
	}

	timeout := time.Duration(config.TimeoutMS) * time.Millisecond
	if config.TimeoutMS <= 0 {
		timeout = 10 * time.Second
	}

	return &NetopiaProvider{
		config: config,
		client: &http.Client{Timeout: timeout},
	}, nil
}

func validateNetopiaConfig(config NetopiaConfig) error {
	if strings.TrimSpace(config.BaseURL) == "" {
		return fmt.Errorf("%w: base_url is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(config.APIKey) == "" {
		return fmt.Errorf("%w: api_key is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(config.Signature) == "" {
		return fmt.Errorf("%w: signature is required", ErrConfigInvalid)
	}
	return nil
}

// Name 提供方名称
func (p *NetopiaProvider) Name() string {
	return "netopia"
}

// Charge 发起扣款
func (p *NetopiaProvider) Charge(ctx context.Context, input ChargeInput) (*ChargeResult, error) {
	payload := map[string]interface{}{
		"signature": p.config.Signature,
		"order": map[string]interface{}{
			"orderID":     input.EscrowID,
			"amount":      input.Amount.String(),
			"currency":    input.Currency,
			"description": input.Description,
		},
		"clientIP": input.ClientIP,
	}

	body, err := p.post(ctx, "/payment/card/start", payload)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Payment struct {
			NtpID  string `json:"ntpID"`
			Status int    `json:"status"`
		} `json:"payment"`
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if resp.Error.Code != "" && resp.Error.Code != "00" {
		return nil, fmt.Errorf("%w: %s %s", ErrDeclined, resp.Error.Code, resp.Error.Message)
	}
	if resp.Payment.NtpID == "" {
		return nil, fmt.Errorf("%w: missing ntpID", ErrResponseInvalid)
	}

	return &ChargeResult{
		Reference: resp.Payment.NtpID,
		Raw: map[string]interface{}{
			"status": resp.Payment.Status,
		},
	}, nil
}

// Refund 发起退款
func (p *NetopiaProvider) Refund(ctx context.Context, input RefundInput) (*RefundResult, error) {
	payload := map[string]interface{}{
		"signature": p.config.Signature,
		"ntpID":     input.Reference,
		"amount":    input.Amount.String(),
		"currency":  input.Currency,
		"reason":    input.Reason,
	}

	body, err := p.post(ctx, "/operation/refund", payload)
	if err != nil {
		return nil, err
	}

	var resp struct {
		NtpID string `json:"ntpID"`
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if resp.Error.Code != "" && resp.Error.Code != "00" {
		return nil, fmt.Errorf("%w: %s %s", ErrDeclined, resp.Error.Code, resp.Error.Message)
	}

	reference := resp.NtpID
	if reference == "" {
		reference = input.Reference
	}
	return &RefundResult{Reference: reference}, nil
}

func (p *NetopiaProvider) post(ctx context.Context, path string, payload map[string]interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	endpoint := strings.TrimRight(p.config.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", p.config.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: http %d", ErrRequestFailed, resp.StatusCode)
	}
	return body, nil
}
