// Copyright 2026 The mp Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bufio"
	"fmt"
	"io"
)

// defaultBufferSize is the sink buffer capacity when no override is
// given. One flush per render pass keeps syscall count low even for
// large documents.
const defaultBufferSize = 8192

// Output is the buffered text sink the renderer writes into. Any
// write error is fatal to the render pass that caused it; Output does
// no recovery of its own.
type Output struct {
	writer *bufio.Writer
}

// NewOutput wraps writer with the default buffer capacity.
func NewOutput(writer io.Writer) *Output {
	return NewOutputSize(writer, defaultBufferSize)
}

// NewOutputSize wraps writer with an explicit buffer capacity.
// Non-positive sizes fall back to the default.
func NewOutputSize(writer io.Writer, size int) *Output {
	if size <= 0 {
		size = defaultBufferSize
	}
	return &Output{writer: bufio.NewWriterSize(writer, size)}
}

// Write appends text to the buffer.
func (output *Output) Write(text string) error {
	if _, err := output.writer.WriteString(text); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// Writeln appends text followed by a newline.
func (output *Output) Writeln(text string) error {
	if err := output.Write(text); err != nil {
		return err
	}
	return output.Newline()
}

// Newline appends a single newline.
func (output *Output) Newline() error {
	if err := output.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// Flush empties the buffer into the underlying writer.
func (output *Output) Flush() error {
	if err := output.writer.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	return nil
}
