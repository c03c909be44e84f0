package payment

import (
	"context"
	"errors"

	"github.com/colaboreaza/backend/internal/models"
)

var (
	ErrConfigInvalid   = errors.New("payment config invalid")
	ErrRequestFailed   = errors.New("payment request failed")
	ErrResponseInvalid = errors.New("payment response invalid")
	ErrDeclined        = errors.New("payment declined")
)

// ChargeInput 托管扣款输入
type ChargeInput struct {
	EscrowID    string
	CollabID    string
	Amount      models.Money
	Currency    string
	Description string
	ClientIP    string
}

// ChargeResult 托管扣款结果
type ChargeResult struct {
	Reference string
	Raw       map[string]interface{}
}

// RefundInput 退款输入
type RefundInput struct {
	EscrowID  string
	Reference string
	Amount    models.Money
	Currency  string
	Reason    string
}

// RefundResult 退款结果
type RefundResult struct {
	Reference string
	Raw       map[string]interface{}
}

// Provider 支付提供方接口
// 托管资金的扣款与退款都经由该接口，失败时返回包装后的哨兵错误
type Provider interface {
	Name() string
	Charge(ctx context.Context, input ChargeInput) (*ChargeResult, error)
	Refund(ctx context.Context, input RefundInput) (*RefundResult, error)
}
