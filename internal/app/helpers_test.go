package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-treeview/internal/config"
	"github.com/pstuifzand/tui-treeview/internal/model"
	"github.com/pstuifzand/tui-treeview/internal/storage"
	"github.com/pstuifzand/tui-treeview/internal/treeview"
	"github.com/stretchr/testify/require"
)

type manualScheduler struct {
	pending []func()
}

func (s *manualScheduler) AfterFunc(d time.Duration, fn func()) {
	s.pending = append(s.pending, fn)
}

func (s *manualScheduler) run() {
	pending := s.pending
	s.pending = nil
	for _, fn := range pending {
		fn()
	}
}

// writeDocument stores:
//
//	Projects/      row 1
//	  alpha        row 2
//	  beta         row 3
//	Inbox/         row 4
//	notes          row 5
func writeDocument(t *testing.T, dir string) string {
	t.Helper()
	projects := model.NewGroup("Projects")
	projects.AddChild(model.NewItem("alpha"))
	projects.AddChild(model.NewItem("beta"))
	outline := model.NewOutline("Test")
	outline.Items = []*model.Item{projects, model.NewGroup("Inbox"), model.NewItem("notes")}

	path := filepath.Join(dir, "doc.json")
	require.NoError(t, storage.NewJSONStore(path).Save(outline))
	return path
}

func newTestApp(t *testing.T) (*App, *manualScheduler) {
	t.Helper()
	dir := t.TempDir()
	cfg, err := config.LoadFromFile(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)

	sched := &manualScheduler{}
	a, err := NewApp(Options{
		FilePath:   writeDocument(t, dir),
		Config:     cfg,
		Screen:     tcell.NewSimulationScreen("UTF-8"),
		Scheduler:  sched,
		HistoryDir: filepath.Join(dir, "history"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a, sched
}

func press(a *App, x, y int, mods tcell.ModMask) {
	a.handleEvent(tcell.NewEventMouse(x, y, tcell.Button1, mods))
}

func release(a *App, x, y int, mods tcell.ModMask) {
	a.handleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, mods))
}

func click(a *App, x, y int, mods tcell.ModMask) {
	press(a, x, y, mods)
	release(a, x, y, mods)
}

func typeKey(a *App, k tcell.Key) {
	a.handleEvent(tcell.NewEventKey(k, 0, tcell.ModNone))
}

func typeRunes(a *App, s string) {
	for _, r := range s {
		a.handleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

// shape renders the tree as labels with children in brackets
func shape(tree *treeview.Tree) string {
	var render func(nodes []*treeview.Node) string
	render = func(nodes []*treeview.Node) string {
		out := ""
		for i, n := range nodes {
			if i > 0 {
				out += " "
			}
			out += n.Label
			if n.IsGroup() {
				out += "[" + render(tree.Children(n)) + "]"
			}
		}
		return out
	}
	return render(tree.Roots())
}

func selectedLabels(tree *treeview.Tree) []string {
	var labels []string
	for _, n := range tree.Selected() {
		labels = append(labels, n.Label)
	}
	return labels
}

func dump(v any) string {
	return spew.Sdump(v)
}
