// Package terminal は行単位のコンソール入出力を提供します
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Terminal は入力を1行ずつ読み、出力へ書き込みます
// メニューとサービスで同じ Terminal を共有し、入力の読み飛ばしを防ぎます
type Terminal struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// ReadLine はプロンプトを表示して1行読み込み、前後の空白を除いて返します
// 入力が終端に達した場合は io.EOF を返します
func (t *Terminal) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		t.Print(prompt)
	}
	if !t.scanner.Scan() {
		if err := t.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(t.scanner.Text()), nil
}

func (t *Terminal) Print(a ...any) {
	fmt.Fprint(t.out, a...)
}

func (t *Terminal) Println(a ...any) {
	fmt.Fprintln(t.out, a...)
}

func (t *Terminal) Printf(format string, a ...any) {
	fmt.Fprintf(t.out, format, a...)
}
