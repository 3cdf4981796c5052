package logger

import (
	"strings"

	"github.com/nulzo/prompt-router/internal/cli"
	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const coloredConsoleEncoding = "colored-console"

var bufferPool = buffer.NewPool()

func init() {
	if err := zap.RegisterEncoder(coloredConsoleEncoding, func(cfg zapcore.EncoderConfig) (zapcore.Encoder, error) {
		return NewColoredConsoleEncoder(cfg), nil
	}); err != nil {
		panic(err)
	}
}

// coloredConsoleEncoder is zap's console encoder with the trailing field blob highlighted.
type coloredConsoleEncoder struct {
	zapcore.Encoder
}

func NewColoredConsoleEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return &coloredConsoleEncoder{
		Encoder: zapcore.NewConsoleEncoder(cfg),
	}
}

func (c *coloredConsoleEncoder) Clone() zapcore.Encoder {
	return &coloredConsoleEncoder{
		Encoder: c.Encoder.Clone(),
	}
}

func (c *coloredConsoleEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	buf, err := c.Encoder.EncodeEntry(ent, fields)
	if err != nil {
		return nil, err
	}

	// the console encoder separates the header from the JSON fields with a tab
	line := buf.String()
	idx := strings.Index(line, "\t{")
	if idx == -1 {
		return buf, nil
	}

	out := bufferPool.Get()
	out.AppendString(line[:idx+1])
	out.AppendString(cli.HighlightJSON(line[idx+1:]))
	buf.Free()

	return out, nil
}
