package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rpggio/voicenotes/internal/app"
	"github.com/rpggio/voicenotes/internal/domain/editor"
	"github.com/rpggio/voicenotes/internal/speech"
	"github.com/spf13/cobra"
)

var dictateScript string

var dictateCmd = &cobra.Command{
	Use:   "dictate",
	Short: "Dictate a new note",
	Long: `Starts recording right away and prints the transcript as it grows.
Press Enter to stop recording, then Enter again to save. Typing a line
before the second Enter replaces the transcript.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var opts []app.Option
		if dictateScript != "" {
			rec, err := loadScript(dictateScript)
			if err != nil {
				return err
			}
			opts = append(opts, app.WithRecognizer(rec))
		}

		a, closeApp, err := openApp(cmd, opts...)
		if err != nil {
			return err
		}
		defer closeApp()

		out := &syncWriter{w: cmd.OutOrStdout()}
		return runDictation(cmd.Context(), a, cmd.InOrStdin(), out)
	},
}

func init() {
	dictateCmd.Flags().StringVar(&dictateScript, "script", "", "Replay recognizer output from a JSON-lines file instead of the configured command")
	rootCmd.AddCommand(dictateCmd)
}

func loadScript(path string) (*speech.ScriptedRecognizer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	steps, err := speech.ParseScript(f)
	if err != nil {
		return nil, err
	}
	return speech.NewScriptedRecognizer(steps...), nil
}

// transcriptPrinter echoes each new transcript while recording.
type transcriptPrinter struct {
	mu   sync.Mutex
	out  io.Writer
	last string
}

func (p *transcriptPrinter) observe(s editor.State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !s.Recording || s.Content == p.last {
		return
	}
	p.last = s.Content
	fmt.Fprintf(p.out, "» %s\n", s.Content)
}

func runDictation(ctx context.Context, a *app.App, in io.Reader, out io.Writer) error {
	printer := &transcriptPrinter{out: out}
	ed := editor.New(a.Notes, a.Dictation, terminalNotifier{out: out, err: out}, a.Logger,
		editor.WithObserver(printer.observe))

	lines := readLines(in)

	ed.StartEditor()
	if err := ed.StartRecording(ctx); err != nil {
		return err
	}
	fmt.Fprintln(out, "Gravando... pressione Enter para parar.")

	if _, err := nextLine(ctx, lines); err != nil {
		ed.StopRecording()
		return err
	}
	ed.StopRecording()

	fmt.Fprintf(out, "Nota: %s\nEnter salva; digite um texto para substituí-la.\n", ed.State().Content)
	line, err := nextLine(ctx, lines)
	if err != nil {
		return err
	}
	if line != "" {
		ed.ContentChanged(line)
	}

	created, err := ed.Save(ctx)
	if err != nil {
		return err
	}
	if created == nil {
		fmt.Fprintln(out, "Nada para salvar.")
		return nil
	}
	fmt.Fprintln(out, created.ID)
	return nil
}

// readLines feeds input lines to a channel that closes at EOF.
func readLines(in io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			ch <- strings.TrimRight(scanner.Text(), "\r")
		}
	}()
	return ch
}

// nextLine waits for one line. End of input counts as an empty line.
func nextLine(ctx context.Context, lines <-chan string) (string, error) {
	select {
	case line := <-lines:
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
