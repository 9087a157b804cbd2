// Command triecodec packs newline-separated strings into the trie encoding
// and unpacks them again.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	trie "github.com/sarthakjha889/go-trie-codec"
	"github.com/urfave/cli/v3"
)

const maxLineSize = 1 << 20

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	app := &cli.Command{
		Name:      "triecodec",
		Usage:     "packs strings sharing prefixes into a compact trie encoding",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log debug output to stderr",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("verbose") {
				level.Set(slog.LevelDebug)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			encodeCommand(stdin, stdout, logger),
			decodeCommand(stdin, stdout, logger),
		},
	}
	// errors are reported below; the default handler would exit the process
	app.ExitErrHandler = func(_ context.Context, _ *cli.Command, _ error) {}

	err := app.Run(context.Background(), args)
	if err == nil {
		return 0
	}
	logger.Error(err.Error())
	switch {
	case errors.Is(err, trie.ErrAlphabetViolation),
		errors.Is(err, trie.ErrMalformedEncoding),
		errors.Is(err, trie.ErrCountOverflow):
		return 1
	default:
		return 127
	}
}

func encodeCommand(stdin io.Reader, stdout io.Writer, logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "encode",
		Usage:     "reads one string per line and prints their encoding",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "nfc",
				Usage: "normalise strings to Unicode NFC before encoding",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			in, closeInput, err := openInput(cmd, stdin)
			if err != nil {
				return err
			}
			defer closeInput()

			lines, err := readLines(in)
			if err != nil {
				return err
			}
			codec := trie.NewCodec().WithLogger(logger)
			if cmd.Bool("nfc") {
				codec.WithNormalisation()
			}
			encoded, err := codec.Encode(lines)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(stdout, encoded)
			return err
		},
	}
}

func decodeCommand(stdin io.Reader, stdout io.Writer, logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "reads an encoding and prints one string per line",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "max-strings",
				Usage: "refuse encodings that expand to more strings than this, 0 for no limit",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			in, closeInput, err := openInput(cmd, stdin)
			if err != nil {
				return err
			}
			defer closeInput()

			data, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			encoded := strings.TrimSuffix(strings.TrimSuffix(string(data), "\n"), "\r")
			codec := trie.NewCodec().
				WithLogger(logger).
				WithMaxStrings(cmd.Int("max-strings"))
			words, err := codec.Decode(encoded)
			if err != nil {
				return err
			}
			w := bufio.NewWriter(stdout)
			for _, word := range words {
				if _, err := fmt.Fprintln(w, word); err != nil {
					return err
				}
			}
			return w.Flush()
		},
	}
}

// openInput returns the file named by the first argument, or stdin when
// there is none.
func openInput(cmd *cli.Command, stdin io.Reader) (io.Reader, func(), error) {
	switch cmd.Args().Len() {
	case 0:
		return stdin, func() {}, nil
	case 1:
		f, err := os.Open(cmd.Args().First())
		if err != nil {
			return nil, nil, err
		}
		return f, func() { f.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("expected at most one file, got %d", cmd.Args().Len())
	}
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return lines, nil
}
