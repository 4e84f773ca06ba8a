// internal/console/handler.go
//
// 各選單操作的實作。輸入格式錯誤時於本層重新提示；
// 業務規則（最低開戶金額、非正金額、餘額不足）由 bank 層判定。
package console

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Carol-YiYun/console-bank/internal/bank"
)

// minAmount 為存提款提示時接受的最小金額。
var minAmount = decimal.RequireFromString("0.01")

// listAccounts 處理「1. Display all accounts」。
func (s *Shell) listAccounts(_ context.Context, _ *zap.Logger) error {
	accts := s.Bank.List()
	if len(accts) == 0 {
		s.println("There are currently no active accounts.")
		return nil
	}
	for _, a := range accts {
		s.writeAccount(a)
	}
	return nil
}

// openAccount 處理「2. Open new account」。
// 名稱空白時重新提示；開戶金額低於下限時重新提示。
func (s *Shell) openAccount(ctx context.Context, log *zap.Logger) error {
	name, err := s.prompt(ctx, "Enter customer name: ")
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	for name == "" {
		if name, err = s.prompt(ctx, "Name can't be empty. Please enter a valid name: "); err != nil {
			return err
		}
		name = strings.TrimSpace(name)
	}

	floor := s.Bank.StartingMinimum()
	opening, err := s.readAmount(ctx, "Enter starting balance (minimum "+floor.String()+"): ", floor)
	if err != nil {
		return err
	}

	a, err := s.Bank.Create(name, opening)
	if err != nil {
		s.logFailure(log, err)
		s.writeErr("Failed to create account", err)
		return nil
	}
	log.Info("account opened", zap.Int64("account_id", a.ID))
	s.println("Account successfully created.")
	s.writeAccount(*a)
	return nil
}

// deposit 處理「3. Deposit funds」。
func (s *Shell) deposit(ctx context.Context, log *zap.Logger) error {
	id, ok, err := s.locateAccount(ctx)
	if err != nil || !ok {
		return err
	}
	amt, err := s.readAmount(ctx, "Enter amount to deposit: ", minAmount)
	if err != nil {
		return err
	}

	a, err := s.Bank.Deposit(id, amt)
	if err != nil {
		s.logFailure(log, err)
		s.writeErr("Transaction failed", err)
		return nil
	}
	log.Info("deposit complete", zap.Int64("account_id", id), zap.String("amount", amt.String()))
	s.println("Deposit complete.")
	s.writeAccount(*a)
	return nil
}

// withdraw 處理「4. Withdraw funds」。
func (s *Shell) withdraw(ctx context.Context, log *zap.Logger) error {
	id, ok, err := s.locateAccount(ctx)
	if err != nil || !ok {
		return err
	}
	amt, err := s.readAmount(ctx, "Enter amount to withdraw: ", minAmount)
	if err != nil {
		return err
	}

	a, err := s.Bank.Withdraw(id, amt)
	if err != nil {
		s.logFailure(log, err)
		s.writeErr("Transaction failed", err)
		return nil
	}
	log.Info("withdrawal complete", zap.Int64("account_id", id), zap.String("amount", amt.String()))
	s.println("Withdrawal complete.")
	s.writeAccount(*a)
	return nil
}

func (s *Shell) quit(_ context.Context, _ *zap.Logger) error {
	s.println("Exiting the system. Thank you.")
	return errQuit
}

// locateAccount 讀取帳號並確認帳戶存在。
// 格式錯誤或查無帳戶時輸出訊息並回傳 ok=false，不重新提示。
func (s *Shell) locateAccount(ctx context.Context) (int64, bool, error) {
	raw, err := s.prompt(ctx, "Enter account ID: ")
	if err != nil {
		return 0, false, err
	}
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		s.println("Invalid account ID format.")
		return 0, false, nil
	}
	if _, err := s.Bank.Get(id); err != nil {
		s.println("No account matches that ID.")
		return 0, false, nil
	}
	return id, true, nil
}

// readAmount 重複提示直到輸入可解析且不小於 floor 的金額。
func (s *Shell) readAmount(ctx context.Context, text string, floor decimal.Decimal) (decimal.Decimal, error) {
	for {
		raw, err := s.prompt(ctx, text)
		if err != nil {
			return decimal.Zero, err
		}
		amt, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err == nil && amt.GreaterThanOrEqual(floor) {
			return amt, nil
		}
		s.printf("Enter a value of at least %s.\n", floor.String())
	}
}

// logFailure 業務規則拒絕記為 info，其他錯誤記為 error。
func (s *Shell) logFailure(log *zap.Logger, err error) {
	if errors.Is(err, bank.ErrInvalidInput) ||
		errors.Is(err, bank.ErrNotFound) ||
		errors.Is(err, bank.ErrInsufficientFunds) {
		log.Info("operation rejected", zap.Error(err))
		return
	}
	log.Error("operation failed", zap.Error(err))
}
