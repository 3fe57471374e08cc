package alarm

import (
	"context"
	"io"
	"os"
)

// BellPlayer writes the terminal bell character. It ignores the sound name.
type BellPlayer struct {
	out io.Writer
}

// NewBellPlayer writes to out, or stderr when out is nil.
func NewBellPlayer(out io.Writer) *BellPlayer {
	if out == nil {
		out = os.Stderr
	}
	return &BellPlayer{out: out}
}

func (player *BellPlayer) Play(ctx context.Context, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := io.WriteString(player.out, "\a")
	return err
}
