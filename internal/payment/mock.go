package payment

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// MockProvider 开发与测试用的支付提供方，直接成功
type MockProvider struct {
	FailCharge bool
	FailRefund bool
}

// NewMockProvider 创建 mock 提供方
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// Name 提供方名称
func (p *MockProvider) Name() string {
	return "mock"
}

// Charge 模拟扣款
func (p *MockProvider) Charge(_ context.Context, input ChargeInput) (*ChargeResult, error) {
	if p.FailCharge {
		return nil, ErrDeclined
	}
	return &ChargeResult{
		Reference: "mock_pay_" + shortToken(),
		Raw: map[string]interface{}{
			"escrow_id": input.EscrowID,
			"amount":    input.Amount.String(),
		},
	}, nil
}

// Refund 模拟退款
func (p *MockProvider) Refund(_ context.Context, input RefundInput) (*RefundResult, error) {
	if p.FailRefund {
		return nil, ErrDeclined
	}
	return &RefundResult{
		Reference: "mock_refund_" + shortToken(),
		Raw: map[string]interface{}{
			"escrow_id": input.EscrowID,
			"amount":    input.Amount.String(),
		},
	}, nil
}

func shortToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}
