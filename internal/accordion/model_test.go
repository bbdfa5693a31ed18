package accordion

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/comalice/presencex"
	"github.com/comalice/presencex/internal/logging"
)

func testSections() []SectionConfig {
	return []SectionConfig{
		{Title: "Install", Open: true, Body: "install line one\ninstall line two\n"},
		{Title: "Usage", Body: "usage line one\nusage line two\nusage line three\n"},
		{Title: "Locked", Disabled: true, Body: "locked body\n"},
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	var buf bytes.Buffer
	logger, err := logging.New(&buf, logging.LevelDebug)
	if err != nil {
		t.Fatal(err)
	}
	m := New(Options{Sections: testSections(), Logger: logger})
	t.Cleanup(m.Close)
	return m
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}
	keyUp    = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// settle runs frames until nothing animates.
func settle(t *testing.T, m Model) {
	t.Helper()
	m.Frame()
	for i := 0; i < 600; i++ {
		if !m.Animating() {
			return
		}
		m.Frame()
	}
	t.Fatal("accordion still animating after 600 frames")
}

func TestInitialRenderSkipsMountAnimation(t *testing.T) {
	m := newTestModel(t)

	install := m.sections[0]
	if install.panel.Animating() {
		t.Error("initially open section should not animate on mount")
	}
	if h := install.panel.Height(); h != 2 {
		t.Errorf("install height = %d, want 2", h)
	}
	if got := install.content.Dimensions().Height; got != 2 {
		t.Errorf("measured height = %v, want 2", got)
	}

	v := m.View()
	if !strings.Contains(v, "install line two") {
		t.Error("open section body should be shown")
	}
	if strings.Contains(v, "usage line one") {
		t.Error("closed section body should not be shown")
	}
}

func TestCloseKeepsBodyUntilCollapseEnds(t *testing.T) {
	m := newTestModel(t)
	m.Frame()

	m = press(t, m, keyEnter)
	install := m.sections[0]
	if install.root.Open() {
		t.Fatal("enter should close the selected section")
	}
	if got := install.content.Tracker().State(); got != presencex.StateUnmountSuspended {
		t.Fatalf("state = %s, want %s", got, presencex.StateUnmountSuspended)
	}
	if !strings.Contains(m.View(), "install line one") {
		t.Error("body should stay rendered while collapsing")
	}

	settle(t, m)
	if got := install.content.Tracker().State(); got != presencex.StateUnmounted {
		t.Errorf("state = %s, want %s", got, presencex.StateUnmounted)
	}
	if _, hidden := install.node.Attr("hidden"); !hidden {
		t.Error("content should be hidden once the collapse ends")
	}
	if strings.Contains(m.View(), "install line one") {
		t.Error("body should be gone once the collapse ends")
	}
}

func TestOpenExpandsFromZero(t *testing.T) {
	m := newTestModel(t)
	m.Frame()

	m = press(t, m, keyDown, keyEnter)
	usage := m.sections[1]
	if got := usage.content.Tracker().State(); got != presencex.StateMounted {
		t.Fatalf("state = %s, want mounted", got)
	}
	if got := usage.content.Dimensions().Height; got != 3 {
		t.Errorf("measured height = %v, want 3", got)
	}

	m.Frame()
	if !usage.panel.Animating() {
		t.Fatal("opening should start the expand animation")
	}
	if h := usage.panel.Height(); h >= 3 {
		t.Errorf("height after one frame = %d, want below 3", h)
	}

	settle(t, m)
	if h := usage.panel.Height(); h != 3 {
		t.Errorf("settled height = %d, want 3", h)
	}
	if !strings.Contains(m.View(), "usage line three") {
		t.Error("expanded body should be shown")
	}
}

func TestReopenWhileCollapsing(t *testing.T) {
	m := newTestModel(t)
	m.Frame()

	m = press(t, m, keyEnter)
	for i := 0; i < 5; i++ {
		m.Frame()
	}
	install := m.sections[0]
	if !install.panel.Animating() {
		t.Fatal("collapse should still be running")
	}

	m = press(t, m, keyEnter)
	if got := install.content.Tracker().State(); got != presencex.StateMounted {
		t.Fatalf("state after reopen = %s, want mounted", got)
	}

	settle(t, m)
	if got := install.content.Tracker().State(); got != presencex.StateMounted {
		t.Errorf("cancelled collapse should not unmount, state = %s", got)
	}
	if h := install.panel.Height(); h != 2 {
		t.Errorf("height = %d, want 2", h)
	}
}

func TestDisabledSectionIgnoresToggle(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, keyDown, keyDown, keyEnter)

	if m.selected != 2 {
		t.Fatalf("selected = %d, want 2", m.selected)
	}
	if m.sections[2].root.Open() {
		t.Error("disabled section should stay closed")
	}

	m = press(t, m, runes("d"), keyEnter)
	if !m.sections[2].root.Open() {
		t.Error("re-enabled section should open")
	}
}

func TestExpandAndCollapseAll(t *testing.T) {
	m := newTestModel(t)
	m.Frame()

	m = press(t, m, runes("e"))
	settle(t, m)
	for _, sec := range m.sections[:2] {
		if !sec.root.Open() || sec.panel.Height() != len(sec.body) {
			t.Errorf("%s: open=%v height=%d, want fully open", sec.title, sec.root.Open(), sec.panel.Height())
		}
	}
	if m.sections[2].root.Open() {
		t.Error("expand all should skip disabled sections")
	}

	m = press(t, m, runes("c"))
	settle(t, m)
	for _, sec := range m.sections {
		if got := sec.content.Tracker().State(); got != presencex.StateUnmounted {
			t.Errorf("%s: state = %s, want unmounted", sec.title, got)
		}
	}
}

func TestNavigationClamps(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, keyUp)
	if m.selected != 0 {
		t.Errorf("selected = %d, want 0", m.selected)
	}
	m = press(t, m, keyDown, keyDown, keyDown, keyDown)
	if m.selected != 2 {
		t.Errorf("selected = %d, want 2", m.selected)
	}
}

func TestUpdateMessages(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.Update(frameMsg{})
	if cmd == nil {
		t.Error("frame should schedule the next frame")
	}
	m = next.(Model)

	next, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)
	if m.width != 100 || m.help.Width != 100 {
		t.Errorf("width = %d/%d, want 100", m.width, m.help.Width)
	}

	m = press(t, m, runes("?"))
	if !m.help.ShowAll {
		t.Error("? should expand help")
	}

	_, cmd = m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
}

func TestViewShowsStatus(t *testing.T) {
	m := newTestModel(t)
	v := m.View()
	for _, want := range []string{"▾ Install", "▸ Usage", "section-0", "mounted", "2/2 lines"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q:\n%s", want, v)
		}
	}
}
