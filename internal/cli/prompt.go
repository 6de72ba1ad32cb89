package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	apperr "github.com/matzehuels/modalroute/pkg/errors"
	pkgio "github.com/matzehuels/modalroute/pkg/io"
	"github.com/matzehuels/modalroute/pkg/pipeline"
	"github.com/matzehuels/modalroute/pkg/resultlog"
)

// errPromptAborted is returned when the user leaves the prompt early.
var errPromptAborted = errors.New("prompt aborted")

// promptCommand creates the interactive front end.
func (c *CLI) promptCommand() *cobra.Command {
	var plain, details bool

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Ask for a graph file and two locations interactively",
		Long: `Ask for a graph file and two locations interactively.

The file name is asked again until an existing file is given. The graph is
printed, then the origin and destination are read and both routes are printed
and appended to the result log.

--plain reads answers line by line from standard input without a terminal UI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPrompt(cmd.Context(), cmd.OutOrStdout(), plain, details)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "read answers line by line, without a terminal UI")
	cmd.Flags().BoolVar(&details, "details", false, "show every candidate pair evaluated")

	return cmd
}

func (c *CLI) runPrompt(ctx context.Context, w io.Writer, plain, details bool) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	m := newPromptModel(func(path string) (*pipeline.Graph, error) {
		return c.loadGraph(ctx, runner, path, c.cfg.Uppercase)
	})

	if plain {
		m, err = runPlainPrompt(m, c.In, w)
	} else {
		m, err = runTUIPrompt(ctx, m, c.In, w)
	}
	if err != nil {
		return err
	}

	res, err := runner.Query(ctx, m.graph, pipeline.Query{From: m.origin, To: m.destination, Uppercase: c.cfg.Uppercase})
	if err != nil {
		return err
	}
	return c.report(w, runner, res, resultlog.StylePrompt, details)
}

// =============================================================================
// promptModel - the question sequence shared by both front ends
// =============================================================================

type promptStep int

const (
	stepFile promptStep = iota
	stepOrigin
	stepDestination
	stepDone
)

var promptQuestions = map[promptStep]string{
	stepFile:        "Digite o nome do arquivo com as configurações: ",
	stepOrigin:      "Escolha um vértice de origem: ",
	stepDestination: "Escolha um vértice de destino: ",
}

// promptModel is the bubbletea model for the interactive prompt.
type promptModel struct {
	load func(path string) (*pipeline.Graph, error)

	step    promptStep
	input   []rune
	errMsg  string
	aborted bool

	graph       *pipeline.Graph
	origin      string
	destination string
}

func newPromptModel(load func(string) (*pipeline.Graph, error)) promptModel {
	return promptModel{load: load}
}

func (m promptModel) question() string { return promptQuestions[m.step] }

// submit records an answer for the current step and advances. A file that
// does not exist or does not parse keeps the model on the file step.
func (m promptModel) submit(answer string) promptModel {
	m.errMsg = ""
	switch m.step {
	case stepFile:
		path := strings.TrimSpace(answer)
		if !pkgio.Exists(path) {
			m.errMsg = fmt.Sprintf("Erro: Arquivo \"%s\" não encontrado.", path)
			return m
		}
		g, err := m.load(path)
		if err != nil {
			m.errMsg = "Erro: " + apperr.UserMessage(err)
			return m
		}
		m.graph = g
		m.step = stepOrigin
	case stepOrigin:
		m.origin = answer
		m.step = stepDestination
	case stepDestination:
		m.destination = answer
		m.step = stepDone
	}
	return m
}

func (m promptModel) Init() tea.Cmd {
	return nil
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.aborted = true
		return m, tea.Quit
	case tea.KeyEnter:
		m = m.submit(string(m.input))
		m.input = nil
		if m.step == stepDone {
			return m, tea.Quit
		}
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, key.Runes...)
	}
	return m, nil
}

func (m promptModel) View() string {
	if m.step == stepDone {
		return ""
	}

	var b strings.Builder
	if m.graph != nil {
		b.WriteString(StyleTitle.Render(m.graph.Source))
		b.WriteString("\n")
		b.WriteString(m.graph.Render())
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString(StyleError.Render(m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString(m.question())
	b.WriteString(StyleValue.Render(string(m.input)))
	b.WriteString(StyleDim.Render("█"))
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render("enter: confirm  esc: quit"))
	return b.String()
}

// =============================================================================
// Front ends
// =============================================================================

func runTUIPrompt(ctx context.Context, m promptModel, in io.Reader, out io.Writer) (promptModel, error) {
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if ctx.Err() != nil {
		return m, ctx.Err()
	}
	if err != nil {
		return m, fmt.Errorf("prompt: %w", err)
	}

	m = final.(promptModel)
	if m.aborted || m.step != stepDone {
		return m, errPromptAborted
	}
	// The TUI clears its view on exit; print the graph once more so it
	// stays in the scrollback like the plain prompt.
	fmt.Fprint(out, m.graph.Render())
	return m, nil
}

// runPlainPrompt asks each question on out and reads one line per answer
// from in. The graph is printed as soon as it is loaded.
func runPlainPrompt(m promptModel, in io.Reader, out io.Writer) (promptModel, error) {
	sc := bufio.NewScanner(in)
	for m.step != stepDone {
		fmt.Fprint(out, m.question())
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return m, fmt.Errorf("read answer: %w", err)
			}
			return m, errPromptAborted
		}

		before := m.step
		m = m.submit(sc.Text())
		if m.errMsg != "" {
			fmt.Fprintln(out, m.errMsg)
		}
		if before == stepFile && m.step == stepOrigin {
			fmt.Fprint(out, m.graph.Render())
		}
	}
	return m, nil
}
