// internal/bank/bank_test.go
//
// 本檔為 Bank 模組的單元測試。
// 覆蓋帳戶建立、存提款、查詢、列出與並發下的一致性。
// 所有測試皆為 in-memory 執行，不依賴外部服務。

package bank

import (
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// get 為小工具：安全取出帳戶狀態。
func get(t *testing.T, b *Bank, id int64) *Account {
	t.Helper()
	a, err := b.Get(id)
	require.NoError(t, err, "Get(%d)", id)
	return a
}

// TestCreateAndListGet 驗證帳戶建立、查詢與列出功能。
func TestCreateAndListGet(t *testing.T) {
	b := New()
	a1, err := b.Create("Alice", d("1000"))
	require.NoError(t, err)
	a2, err := b.Create("  Bob  ", d("2500.50"))
	require.NoError(t, err)

	assert.NotEqual(t, a1.ID, a2.ID)
	assert.Equal(t, "Bob", a2.HolderName, "name should be trimmed")
	assert.True(t, a1.Balance.Equal(d("1000")))

	all := b.List()
	require.Len(t, all, 2)
	// 依建立順序列出
	assert.Equal(t, a1.ID, all[0].ID)
	assert.Equal(t, a2.ID, all[1].ID)

	g1 := get(t, b, a1.ID)
	assert.Equal(t, "Alice", g1.HolderName)
	assert.True(t, g1.Balance.Equal(d("1000")))
}

func TestListEmptyAndRepeatable(t *testing.T) {
	b := New()
	assert.Empty(t, b.List())
	assert.NotNil(t, b.List())

	_, err := b.Create("A", d("1000"))
	require.NoError(t, err)
	assert.Equal(t, b.List(), b.List())
	assert.Equal(t, 1, b.Len())
}

// TestListReturnsCopies 確保外部修改列出的帳戶不影響內部狀態。
func TestListReturnsCopies(t *testing.T) {
	b := New()
	a, _ := b.Create("A", d("1000"))

	all := b.List()
	all[0].Balance = d("0")
	all[0].HolderName = "Mallory"

	g := get(t, b, a.ID)
	assert.True(t, g.Balance.Equal(d("1000")))
	assert.Equal(t, "A", g.HolderName)
}

// TestCreateBelowMinimum 驗證開戶金額低於下限時失敗且集合不變。
func TestCreateBelowMinimum(t *testing.T) {
	b := New()
	_, err := b.Create("Bob", d("500"))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "want ValidationError, got %v", err)
	assert.Equal(t, "opening_amount", verr.Field)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, b.Len())

	_, err = b.Create("Bob", d("999.99"))
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, b.Len())
}

func TestCreateEmptyName(t *testing.T) {
	b := New()
	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := b.Create(name, d("1000"))
		var verr *ValidationError
		require.True(t, errors.As(err, &verr), "name=%q got %v", name, err)
		assert.Equal(t, "name", verr.Field)
	}
	assert.Equal(t, 0, b.Len())
}

func TestCustomStartingMinimum(t *testing.T) {
	b := New(WithStartingMinimum(d("50")))
	assert.True(t, b.StartingMinimum().Equal(d("50")))

	_, err := b.Create("A", d("50"))
	require.NoError(t, err)
	_, err = b.Create("B", d("49.99"))
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 1, b.Len())
}

// TestDepositWithdraw 涵蓋正常路徑與錯誤條件（非法金額、餘額不足）。
func TestDepositWithdraw(t *testing.T) {
	b := New()
	a, _ := b.Create("A", d("1000"))

	got, err := b.Deposit(a.ID, d("50.25"))
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(d("1050.25")))

	got, err = b.Withdraw(a.ID, d("30.25"))
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(d("1020")))

	for _, amt := range []string{"0", "-1", "-0.01"} {
		_, err := b.Deposit(a.ID, d(amt))
		assert.ErrorIs(t, err, ErrInvalidInput, "deposit %s", amt)
		_, err = b.Withdraw(a.ID, d(amt))
		assert.ErrorIs(t, err, ErrInvalidInput, "withdraw %s", amt)
	}
	assert.True(t, get(t, b, a.ID).Balance.Equal(d("1020")))

	_, err = b.Withdraw(a.ID, d("1020.01"))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.True(t, get(t, b, a.ID).Balance.Equal(d("1020")))
}

// TestWithdrawBelowOpeningMinimum 開戶後允許餘額低於開戶下限，但不得為負。
func TestWithdrawBelowOpeningMinimum(t *testing.T) {
	b := New()
	a, _ := b.Create("A", d("1000"))

	got, err := b.Withdraw(a.ID, d("999"))
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(d("1")))

	got, err = b.Withdraw(a.ID, d("1"))
	require.NoError(t, err)
	assert.True(t, got.Balance.IsZero())

	_, err = b.Withdraw(a.ID, d("0.01"))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestUnknownAccount(t *testing.T) {
	b := New()
	a, _ := b.Create("A", d("1000"))

	_, err := b.Get(a.ID + 1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = b.Deposit(a.ID+1, d("10"))
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = b.Withdraw(a.ID+1, d("10"))
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestValidationBeforeLookup 非法金額優先於帳戶存在性檢查。
func TestValidationBeforeLookup(t *testing.T) {
	b := New()
	_, err := b.Deposit(42, d("0"))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = b.Withdraw(42, d("-5"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// TestWorkedExample 對應 Alice 的完整流程。
func TestWorkedExample(t *testing.T) {
	b := New()
	a, err := b.Create("Alice", d("1000"))
	require.NoError(t, err)
	assert.True(t, a.Balance.Equal(d("1000")))

	a, err = b.Deposit(a.ID, d("500"))
	require.NoError(t, err)
	assert.True(t, a.Balance.Equal(d("1500")))

	_, err = b.Withdraw(a.ID, d("2000"))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.True(t, get(t, b, a.ID).Balance.Equal(d("1500")))

	a, err = b.Withdraw(a.ID, d("1500"))
	require.NoError(t, err)
	assert.True(t, a.Balance.IsZero())
}

// TestRandomIDsUnique 以極小的 ID 區間驗證碰撞檢查。
func TestRandomIDsUnique(t *testing.T) {
	g, err := NewRandom(1, 5, nil)
	require.NoError(t, err)
	b := New(WithIDGenerator(g))

	seen := map[int64]bool{}
	for i := 0; i < 5; i++ {
		a, err := b.Create("A", d("1000"))
		require.NoError(t, err)
		assert.False(t, seen[a.ID], "duplicate id %d", a.ID)
		assert.True(t, a.ID >= 1 && a.ID <= 5)
		seen[a.ID] = true
	}

	// 區間用盡後建立失敗，集合不變
	_, err = b.Create("A", d("1000"))
	assert.ErrorIs(t, err, ErrIDSpaceExhausted)
	assert.Equal(t, 5, b.Len())
}

// TestConcurrentDepositsRaceSafety 驗證多執行緒同時存款仍具資料一致性。
func TestConcurrentDepositsRaceSafety(t *testing.T) {
	b := New()
	a, _ := b.Create("A", d("1000"))

	const workers = 100
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := b.Deposit(a.ID, d("1")); err != nil {
				t.Errorf("deposit err: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.True(t, get(t, b, a.ID).Balance.Equal(d("1100")))
}

// TestConcurrentWithdrawNeverNegative 並行提款總額超過餘額時，餘額仍不會為負。
func TestConcurrentWithdrawNeverNegative(t *testing.T) {
	b := New()
	a, _ := b.Create("A", d("1000"))

	const workers = 150
	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := b.Withdraw(a.ID, d("10")); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, ok)
	assert.True(t, get(t, b, a.ID).Balance.IsZero())
}
