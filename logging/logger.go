/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger emits lifecycle events. A Logger never buffers across calls: a
// line is complete when Log returns.
type Logger interface {
	Log(e Event)
}

// Nop returns a Logger that discards every event. Used when logging is
// configured off.
func Nop() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Log(Event) {}

// New wraps a *zap.Logger as a Logger, formatting each Event via Format
// and emitting it as a single Info-level message.
func New(z *zap.Logger) Logger {
	return &zapLogger{z: z}
}

type zapLogger struct {
	z *zap.Logger
}

func (l *zapLogger) Log(e Event) {
	l.z.Info(Format(e))
}

// NewPlainZap builds a *zap.Logger whose output is exactly the message
// text on its own line, with no injected timestamp, level, or caller
// fields. This is what New should be given so that the emitted lines
// match the grammar Format produces verbatim.
func NewPlainZap(w io.Writer) *zap.Logger {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey: "M",
		LineEnding: zapcore.DefaultLineEnding,
	})
	core := zapcore.NewCore(enc, zapcore.AddSync(w), zapcore.InfoLevel)
	return zap.New(core)
}
