// internal/bank/id.go
//
// 帳戶 ID 產生策略。由 Bank 持有並注入，不使用全域亂數來源；
// 每次產生 ID 時都會對照目前帳戶集合，保證 ID 在 Bank 內唯一。

package bank

import (
	"fmt"
	"math/rand/v2"
)

// IDGenerator 產生新的帳戶 ID。
// taken 回報某個 ID 是否已被使用；實作必須回傳 taken 為 false 的 ID。
type IDGenerator interface {
	Next(taken func(int64) bool) (int64, error)
}

// Sequence 為單調遞增的 ID 產生器，從 first 開始。
type Sequence struct {
	next int64
}

// NewSequence 建立從 first 開始遞增的產生器。
func NewSequence(first int64) *Sequence {
	return &Sequence{next: first}
}

func (s *Sequence) Next(taken func(int64) bool) (int64, error) {
	// 遞增產生的 ID 理論上不會碰撞；仍略過已佔用的值以防外部混用其他策略。
	for taken(s.next) {
		s.next++
	}
	id := s.next
	s.next++
	return id, nil
}

// maxRandomAttempts 為 Random 改用循序搜尋前的最大抽樣次數。
const maxRandomAttempts = 1000

// Random 在 [lo, hi] 區間內均勻抽樣，遇到已使用的 ID 則重抽；
// 抽樣次數用盡後循序掃描整個區間，只有區間全滿才回傳 ErrIDSpaceExhausted。
type Random struct {
	lo, hi int64
	rng    *rand.Rand
}

// NewRandom 建立區間亂數產生器。rng 為 nil 時使用自動播種的 PCG。
func NewRandom(lo, hi int64, rng *rand.Rand) (*Random, error) {
	if lo <= 0 || hi < lo {
		return nil, fmt.Errorf("invalid id range [%d, %d]", lo, hi)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Random{lo: lo, hi: hi, rng: rng}, nil
}

func (r *Random) Next(taken func(int64) bool) (int64, error) {
	span := r.hi - r.lo + 1
	for i := 0; i < maxRandomAttempts; i++ {
		id := r.lo + r.rng.Int64N(span)
		if !taken(id) {
			return id, nil
		}
	}
	for id := r.lo; ; id++ {
		if !taken(id) {
			return id, nil
		}
		if id == r.hi {
			break
		}
	}
	return 0, ErrIDSpaceExhausted
}
