// internal/console/menu.go
//
// 本檔負責選單項目的註冊與分派。
// 與 handler.go 分離：handler 定義「如何處理一個操作」，menu 定義「哪個選項導向哪個操作」。
package console

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type command struct {
	key   string
	label string
	run   func(ctx context.Context, log *zap.Logger) error
}

// commands 依顯示順序回傳所有選項。
func (s *Shell) commands() []command {
	return []command{
		{key: "1", label: "Display all accounts", run: s.listAccounts},
		{key: "2", label: "Open new account", run: s.openAccount},
		{key: "3", label: "Deposit funds", run: s.deposit},
		{key: "4", label: "Withdraw funds", run: s.withdraw},
		{key: "5", label: "Quit", run: s.quit},
	}
}

func (s *Shell) menu(cmds []command) {
	s.println()
	s.println("--- Banking Menu ---")
	for _, c := range cmds {
		s.printf("%s. %s\n", c.key, c.label)
	}
	s.printf("Choose an option (1-%d): ", len(cmds))
}

// dispatch 執行對應選項；每次操作帶一個 op_id 方便在日誌中串接。
func (s *Shell) dispatch(ctx context.Context, cmds []command, choice string) error {
	choice = strings.TrimSpace(choice)
	for _, c := range cmds {
		if c.key != choice {
			continue
		}
		log := s.log.With(
			zap.String("op_id", uuid.NewString()),
			zap.String("op", c.label),
		)
		log.Debug("operation started")
		return c.run(ctx, log)
	}
	s.printf("Invalid selection. Choose between 1 and %d.\n", len(cmds))
	return nil
}
