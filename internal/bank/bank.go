// internal/bank/bank.go

// Package bank 定義核心商業邏輯：帳戶建立、存款、提款、查詢與列出。
// Bank 為唯一擁有所有 Account 的聚合根；外部只會拿到值拷貝，
// 餘額只能透過 Deposit / Withdraw 變更，藉此集中維護「餘額非負」不變量。
// 以單一互斥鎖序列化所有讀寫，建立帳戶時的「取號 + 寫入」亦在同一臨界區內。
package bank

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultStartingMinimum 為預設的最低開戶金額。
var DefaultStartingMinimum = decimal.NewFromInt(1000)

// DefaultFirstID 為預設遞增 ID 的起始值，沿用五位數帳號的外觀。
const DefaultFirstID int64 = 10000

// Bank 為聚合根 (Aggregate Root)：管理全系統帳戶。
// - mu：序列化所有讀寫。
// - order：依建立順序保存 ID，供列出時維持插入順序。
// - accts：帳戶索引表（ID → *Account），內部指標只在臨界區內修改。
type Bank struct {
	mu      sync.Mutex
	minimum decimal.Decimal
	ids     IDGenerator
	log     *zap.Logger
	order   []int64
	accts   map[int64]*Account
}

// Option 調整 Bank 的建構參數。
type Option func(*Bank)

// WithStartingMinimum 設定最低開戶金額。
func WithStartingMinimum(amt decimal.Decimal) Option {
	return func(b *Bank) { b.minimum = amt }
}

// WithIDGenerator 注入帳戶 ID 產生策略。
func WithIDGenerator(g IDGenerator) Option {
	return func(b *Bank) { b.ids = g }
}

// WithLogger 注入結構化日誌。
func WithLogger(l *zap.Logger) Option {
	return func(b *Bank) { b.log = l }
}

// New 建立空白銀行實例（僅就緒的 in-memory 狀態，無外部依賴）。
func New(opts ...Option) *Bank {
	b := &Bank{
		minimum: DefaultStartingMinimum,
		log:     zap.NewNop(),
		accts:   make(map[int64]*Account),
	}
	for _, o := range opts {
		o(b)
	}
	if b.ids == nil {
		b.ids = NewSequence(DefaultFirstID)
	}
	return b
}

// StartingMinimum 回傳最低開戶金額。
func (b *Bank) StartingMinimum() decimal.Decimal {
	return b.minimum
}

// Create 以名稱與開戶金額建立帳戶。
// 名稱去除前後空白後不得為空；開戶金額不得低於 StartingMinimum。
// 任一檢核失敗皆不改變帳戶集合。回傳值拷貝。
func (b *Bank) Create(name string, opening decimal.Decimal) (*Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "holder name must not be empty")
	}
	if opening.LessThan(b.minimum) {
		return nil, invalid("opening_amount", "initial deposit must be at least "+b.minimum.String())
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	id, err := b.ids.Next(func(id int64) bool {
		_, ok := b.accts[id]
		return ok
	})
	if err != nil {
		return nil, err
	}
	a := &Account{ID: id, HolderName: name, Balance: opening}
	b.accts[id] = a
	b.order = append(b.order, id)

	b.log.Debug("account created",
		zap.Int64("account_id", id),
		zap.String("balance", opening.String()))
	cp := *a
	return &cp, nil
}

// Get 依 ID 取得帳戶目前狀態的拷貝；若不存在回傳 ErrNotFound。
func (b *Bank) Get(id int64) (*Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.accts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

// List 依建立順序回傳所有帳戶的拷貝；無帳戶時回傳空切片。
func (b *Bank) List() []Account {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Account, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, *b.accts[id])
	}
	return out
}

// Len 回傳目前帳戶數量。
func (b *Bank) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.order)
}

// Deposit 存款：金額需 > 0；若帳戶不存在回傳 ErrNotFound。
func (b *Bank) Deposit(id int64, amt decimal.Decimal) (*Account, error) {
	if !amt.IsPositive() {
		return nil, invalid("amount", "deposit must be positive")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.accts[id]
	if !ok {
		return nil, ErrNotFound
	}
	a.credit(amt)

	b.log.Debug("deposit applied",
		zap.Int64("account_id", id),
		zap.String("amount", amt.String()),
		zap.String("balance", a.Balance.String()))
	cp := *a
	return &cp, nil
}

// Withdraw 提款：金額需 > 0 且不得超過餘額（維持非負）；不存在則 ErrNotFound。
// 所有檢核通過後才扣款，失敗時餘額不變。
func (b *Bank) Withdraw(id int64, amt decimal.Decimal) (*Account, error) {
	if !amt.IsPositive() {
		return nil, invalid("amount", "withdrawal must be positive")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.accts[id]
	if !ok {
		return nil, ErrNotFound
	}
	if amt.GreaterThan(a.Balance) {
		return nil, ErrInsufficientFunds
	}
	a.debit(amt)

	b.log.Debug("withdrawal applied",
		zap.Int64("account_id", id),
		zap.String("amount", amt.String()),
		zap.String("balance", a.Balance.String()))
	cp := *a
	return &cp, nil
}
