package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/cwbudde/algo-synth/dsp/note"
	"github.com/cwbudde/algo-synth/playback"
	"github.com/cwbudde/algo-synth/synth"
)

// keyRow is the computer-keyboard row in pitch order.
const keyRow = "awsedftgyhuj"

type renderFunc func(hz float64) ([]float64, error)

// playedMsg reports the end of one key press.
type playedMsg struct {
	pitch note.Pitch
	err   error
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	keyStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Align(lipgloss.Center)
	sharpKeyStyle  = keyStyle.Reverse(true)
	activeKeyStyle = keyStyle.BorderForeground(lipgloss.Color("205")).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle      = lipgloss.NewStyle().Faint(true)
)

// keyboardModel is the interactive piano. Each key press renders and plays
// its note in its own command, so notes overlap freely.
type keyboardModel struct {
	timbres  []synth.Timbre
	current  int
	render   renderFunc
	voiceFor func(synth.Timbre) (renderFunc, error)
	play     func([]float64) error

	last    note.Pitch
	pressed bool
	err     error
}

func newKeyboardModel(timbres []synth.Timbre, current int, render renderFunc,
	voiceFor func(synth.Timbre) (renderFunc, error), play func([]float64) error,
) keyboardModel {
	return keyboardModel{
		timbres:  timbres,
		current:  current,
		render:   render,
		voiceFor: voiceFor,
		play:     play,
	}
}

func (m keyboardModel) Init() tea.Cmd {
	return nil
}

func (m keyboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case playedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("%s: %w", msg.pitch.Name, msg.err)
		}
	}
	return m, nil
}

func (m keyboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc", "q":
		return m, tea.Quit
	case "tab":
		return m.switchTimbre(1), nil
	case "shift+tab":
		return m.switchTimbre(-1), nil
	}

	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return m, nil
	}
	p, ok := note.ForKey(msg.Runes[0])
	if !ok {
		return m, nil
	}
	m.last, m.pressed, m.err = p, true, nil
	render, play := m.render, m.play
	return m, func() tea.Msg {
		buf, err := render(p.Hz)
		if err == nil {
			err = play(buf)
		}
		return playedMsg{pitch: p, err: err}
	}
}

// switchTimbre moves by step through the timbre list. A timbre that fails to
// load leaves the current one selected.
func (m keyboardModel) switchTimbre(step int) keyboardModel {
	if len(m.timbres) == 0 {
		return m
	}
	next := (m.current + step + len(m.timbres)) % len(m.timbres)
	render, err := m.voiceFor(m.timbres[next])
	if err != nil {
		m.err = err
		return m
	}
	m.current, m.render, m.err = next, render, nil
	return m
}

func (m keyboardModel) View() string {
	var b strings.Builder

	timbre := "-"
	if m.current < len(m.timbres) {
		timbre = m.timbres[m.current].String()
	}
	b.WriteString(titleStyle.Render("synth · " + timbre))
	b.WriteString("\n\n")

	keys := make([]string, 0, len(keyRow))
	for _, r := range keyRow {
		p, _ := note.ForKey(r)
		label := fmt.Sprintf("%s\n%c", p.Name, r)
		style := keyStyle
		switch {
		case m.pressed && p.Name == m.last.Name:
			style = activeKeyStyle
		case strings.HasSuffix(p.Name, "#"):
			style = sharpKeyStyle
		}
		keys = append(keys, style.Render(label))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, keys...))
	b.WriteString("\n")

	if m.pressed {
		fmt.Fprintf(&b, "\n%s  %.2f Hz\n", m.last.Name, m.last.Hz)
	}
	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("keys: play  tab: next timbre  q: quit") + "\n")
	return b.String()
}

func runKeys(o options, eng *engine, v *voice, logger *slog.Logger) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("-keys needs an interactive terminal")
	}

	out, err := playback.New(o.rate(), playback.WithLogger(logger))
	if err != nil {
		return err
	}
	defer out.Close()

	timbres := make([]synth.Timbre, 0, len(synth.Names()))
	current := 0
	for _, name := range synth.Names() {
		t, _ := synth.ParseTimbre(name)
		if t == o.timbre {
			current = len(timbres)
		}
		timbres = append(timbres, t)
	}

	voiceFor := func(t synth.Timbre) (renderFunc, error) {
		tv, err := eng.voice(t)
		if err != nil {
			return nil, err
		}
		if err := tv.pregenerate(); err != nil {
			return nil, err
		}
		return tv.render, nil
	}

	m := newKeyboardModel(timbres, current, v.render, voiceFor, out.Play)
	_, err = tea.NewProgram(m).Run()
	return err
}
