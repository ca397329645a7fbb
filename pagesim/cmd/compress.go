package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/pagesim/mem/trace"
	"github.com/spf13/cobra"
)

func newCompressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compress <trace-file> <output>",
		Short: "Compress a trace file",
		Long: `Compress a plain text trace. The encoding follows the extension of the
output: .lz4 for an LZ4 frame, .sz for a snappy framed stream.`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return compressTrace(args[0], args[1])
		},
	}
}

func compressTrace(in, out string) error {
	c := trace.CompressionOf(out)
	if c == trace.CompressionNone {
		return fmt.Errorf("output %s must end in .lz4 or .sz", out)
	}

	src, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("compress: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("compress: %w", err)
	}
	defer dst.Close()

	w := trace.NewCompressedWriter(dst, c)

	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("compress: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("compress: %w", err)
	}

	return dst.Close()
}
