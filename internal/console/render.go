// internal/console/render.go
//
// 統一帳戶與錯誤的輸出格式。
package console

import (
	"fmt"

	"github.com/Carol-YiYun/console-bank/internal/bank"
)

// formatAccount 輸出單行帳戶資訊，餘額固定兩位小數。
func formatAccount(a bank.Account) string {
	return fmt.Sprintf("Account ID: %d | Owner: %-12s | Balance: $%s",
		a.ID, a.HolderName, a.Balance.StringFixed(2))
}

func (s *Shell) writeAccount(a bank.Account) {
	s.println(formatAccount(a))
}

// writeErr 以「前綴: 錯誤訊息」格式輸出失敗原因。
func (s *Shell) writeErr(prefix string, err error) {
	s.printf("%s: %s\n", prefix, err.Error())
}
