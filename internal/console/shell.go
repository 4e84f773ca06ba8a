// internal/console/shell.go
//
// Package console
// ─────────────────────────────────────────────
// 提供互動式文字選單，作為 bank 模組的應用層 (Application Layer)。
// 每個 handler 僅負責：
//  1. 提示並讀取使用者輸入（必要時重新提示）
//  2. 將輸入解析為 bank 層所需的值（名稱、金額、帳號）
//  3. 呼叫 bank 層執行商業邏輯並輸出結果
//
// bank 不依賴任何輸入輸出；console 依賴 bank。
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Carol-YiYun/console-bank/internal/bank"
)

// errQuit 由「離開」選項回傳，讓 Run 正常結束。
var errQuit = errors.New("quit")

type line struct {
	text string
	err  error
}

// Shell 為互動層核心結構：
// - Bank：注入商業邏輯層（銀行核心）。
// - in / out：輸入來源與輸出目標，測試時可替換為記憶體緩衝。
// - sc / lines：整個 Shell 共用同一個 Scanner 與結果通道，多次 Run 之間不會遺失已緩衝的輸入。
//
// Run 不可並行呼叫；依序多次呼叫則會接續讀取同一個輸入來源。
type Shell struct {
	Bank *bank.Bank

	in  io.Reader
	out io.Writer
	log *zap.Logger

	sc      *bufio.Scanner
	reqs    chan struct{}
	lines   chan line
	pending bool // 已送出讀取請求但尚未取得結果
}

// New 建立新的互動式選單。log 可為 nil。
func New(b *bank.Bank, in io.Reader, out io.Writer, log *zap.Logger) *Shell {
	if log == nil {
		log = zap.NewNop()
	}
	return &Shell{
		Bank:  b,
		in:    in,
		out:   out,
		log:   log,
		sc:    bufio.NewScanner(in),
		lines: make(chan line, 1),
	}
}

// Run 執行選單迴圈，直到使用者選擇離開、輸入結束或 ctx 被取消。
// 選擇離開或輸入結束時回傳 nil；ctx 取消時回傳 ctx.Err()。
// Run 返回時背景讀取 goroutine 隨之結束（若正阻塞於讀取，則在該次讀取完成後結束）。
func (s *Shell) Run(ctx context.Context) error {
	reqs := make(chan struct{})
	defer close(reqs)
	s.reqs = reqs
	go s.readLines(reqs)

	cmds := s.commands()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.menu(cmds)

		choice, err := s.readLine(ctx)
		if err != nil {
			return endOfSession(err)
		}
		err = s.dispatch(ctx, cmds, choice)
		switch {
		case errors.Is(err, errQuit):
			return nil
		case err != nil:
			return endOfSession(err)
		}
	}
}

// endOfSession 將輸入結束視為正常離開。
func endOfSession(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// readLines 每收到一個請求才讀取一行，結果放入容量為 1 的 lines，因此送出永不阻塞。
// reqs 關閉後結束。
func (s *Shell) readLines(reqs <-chan struct{}) {
	for range reqs {
		if s.sc.Scan() {
			s.lines <- line{text: s.sc.Text()}
			continue
		}
		err := s.sc.Err()
		if err == nil {
			err = io.EOF
		}
		s.lines <- line{err: err}
	}
}

// readLine 讀取一行，同時等待 ctx 取消。
// 取消時未完成的讀取結果保留在 lines，由下一次 readLine 取得。
func (s *Shell) readLine(ctx context.Context) (string, error) {
	if !s.pending {
		select {
		case s.reqs <- struct{}{}:
			s.pending = true
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l := <-s.lines:
		s.pending = false
		return l.text, l.err
	}
}

// prompt 輸出提示文字後讀取一行。
func (s *Shell) prompt(ctx context.Context, text string) (string, error) {
	s.print(text)
	return s.readLine(ctx)
}

func (s *Shell) print(a ...any) {
	_, _ = fmt.Fprint(s.out, a...)
}

func (s *Shell) println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Shell) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}
