// Package bank 定義核心領域模型與業務規則。
// 本檔定義 Account 結構與其餘額轉換，不含任何輸入輸出細節。

package bank

import "github.com/shopspring/decimal"

// Account represents a bank account.
type Account struct {
	ID         int64           `json:"id"`
	HolderName string          `json:"holder_name"`
	Balance    decimal.Decimal `json:"balance"`
}

// credit 增加餘額；呼叫端須已完成金額檢核並持有 Bank.mu。
func (a *Account) credit(amt decimal.Decimal) {
	a.Balance = a.Balance.Add(amt)
}

// debit 扣減餘額；呼叫端須確保 0 < amt <= Balance。
func (a *Account) debit(amt decimal.Decimal) {
	a.Balance = a.Balance.Sub(amt)
}
