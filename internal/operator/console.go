// Package operator implements the synchronous human-interaction channel used
// at chain-walk checkpoints: a line-oriented console by default, optionally
// with spoken announcements.
package operator

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Console asks and answers over stdio. Reads run in a goroutine so a
// cancelled context abandons the wait without corrupting prior artifacts.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

func NewConsole() *Console {
	return &Console{in: bufio.NewReader(os.Stdin), out: os.Stdout}
}

func (c *Console) Say(msg string) {
	fmt.Fprintln(c.out, msg)
}

func (c *Console) Ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)

	type lineResult struct {
		text string
		err  error
	}
	ch := make(chan lineResult, 1)
	go func() {
		line, err := c.in.ReadString('\n')
		ch <- lineResult{text: strings.TrimSpace(line), err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.err != nil && res.text == "" && res.err != io.EOF {
			return "", res.err
		}
		return res.text, nil
	}
}
