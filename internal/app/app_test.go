package app

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-treeview/internal/config"
	"github.com/pstuifzand/tui-treeview/internal/socket"
	"github.com/pstuifzand/tui-treeview/internal/storage"
	"github.com/pstuifzand/tui-treeview/internal/treeview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBuildsTree(t *testing.T) {
	a, _ := newTestApp(t)
	assert.Equal(t, "Projects[alpha beta] Inbox[] notes", shape(a.tree))
	assert.Equal(t, "Test", a.title)
	assert.False(t, a.dirty)
}

func TestClickSelection(t *testing.T) {
	a, _ := newTestApp(t)

	click(a, 6, 2, tcell.ModNone)
	assert.Equal(t, []string{"alpha"}, selectedLabels(a.tree))

	click(a, 6, 3, tcell.ModShift)
	assert.Equal(t, []string{"alpha", "beta"}, selectedLabels(a.tree))

	click(a, 6, 2, tcell.ModCtrl)
	assert.Equal(t, []string{"beta"}, selectedLabels(a.tree))

	// A different level is ignored while extending
	click(a, 6, 5, tcell.ModCtrl)
	assert.Equal(t, []string{"beta"}, selectedLabels(a.tree))

	// Empty space below the rows clears the selection
	click(a, 6, 12, tcell.ModNone)
	assert.Empty(t, a.tree.Selected())
}

func TestToggleClickCollapses(t *testing.T) {
	a, _ := newTestApp(t)
	projects := a.tree.Roots()[0]

	click(a, 0, 1, tcell.ModNone)
	assert.True(t, projects.Collapsed())
	assert.Empty(t, a.tree.Selected())

	// Inbox moved up to row 2
	click(a, 6, 2, tcell.ModNone)
	assert.Equal(t, []string{"Inbox"}, selectedLabels(a.tree))
}

func TestDoubleClickActivates(t *testing.T) {
	a, _ := newTestApp(t)
	var activated []string
	a.tree.Events().On(treeview.EventActivate, func(ev treeview.Event) {
		activated = append(activated, ev.(treeview.Activated).Node.Label)
	})

	click(a, 6, 5, tcell.ModNone)
	click(a, 6, 5, tcell.ModNone)
	assert.Equal(t, []string{"notes"}, activated)
	assert.Equal(t, "Activated: notes", a.statusMsg)

	// Activating a group toggles it
	click(a, 6, 1, tcell.ModNone)
	click(a, 6, 1, tcell.ModNone)
	assert.True(t, a.tree.Roots()[0].Collapsed())
}

func TestDragMovesSelection(t *testing.T) {
	a, _ := newTestApp(t)

	click(a, 6, 2, tcell.ModNone)
	press(a, 6, 2, tcell.ModNone)
	press(a, 6, 5, tcell.ModNone)
	assert.Equal(t, treeview.StateDragOver, a.tree.DragState())

	marker, ok := a.tree.DropMarker()
	require.True(t, ok)
	assert.Equal(t, "notes", marker.Target.Label)
	assert.Equal(t, treeview.WhereBelow, marker.Where)

	release(a, 6, 5, tcell.ModNone)
	assert.Equal(t, "Projects[beta] Inbox[] notes alpha", shape(a.tree), dump(a.tree.Roots()))
	assert.Equal(t, treeview.StateIdle, a.tree.DragState())
	assert.True(t, a.dirty)
	assert.Contains(t, a.statusMsg, "Moved 1 node(s)")
}

func TestDragUnselectedNodeIntoGroup(t *testing.T) {
	a, _ := newTestApp(t)

	// Dragging notes without selecting it first; the middle of a group row
	// drops inside
	press(a, 6, 5, tcell.ModNone)
	press(a, 6, 4, tcell.ModNone)
	release(a, 6, 4, tcell.ModNone)

	assert.Equal(t, "Projects[alpha beta] Inbox[notes]", shape(a.tree))
	assert.Equal(t, []string{"notes"}, selectedLabels(a.tree))
}

func TestDragWithShiftDropsAbove(t *testing.T) {
	a, _ := newTestApp(t)

	press(a, 6, 5, tcell.ModNone)
	press(a, 6, 1, tcell.ModShift)
	release(a, 6, 1, tcell.ModShift)

	assert.Equal(t, "notes Projects[alpha beta] Inbox[]", shape(a.tree))
}

func TestDropOnOwnSubtreeIsRejected(t *testing.T) {
	a, _ := newTestApp(t)

	press(a, 6, 1, tcell.ModNone)
	press(a, 6, 2, tcell.ModNone)
	_, ok := a.tree.DropMarker()
	assert.False(t, ok)
	release(a, 6, 2, tcell.ModNone)

	assert.Equal(t, "Projects[alpha beta] Inbox[] notes", shape(a.tree))
	assert.False(t, a.dirty)
}

func TestDragLeaveKeepsMarkerWhileHovering(t *testing.T) {
	a, sched := newTestApp(t)

	press(a, 6, 5, tcell.ModNone)
	press(a, 6, 4, tcell.ModNone)
	press(a, 6, 1, tcell.ModNone)
	require.Len(t, sched.pending, 1)
	assert.Equal(t, treeview.StateDragOver, a.tree.DragState())

	sched.run()
	marker, ok := a.tree.DropMarker()
	require.True(t, ok)
	assert.Equal(t, "Projects", marker.Target.Label)

	typeKey(a, tcell.KeyEscape)
	_, ok = a.tree.DropMarker()
	assert.False(t, ok)
	assert.Equal(t, treeview.StateIdle, a.tree.DragState())

	// The rest of the cancelled press is ignored
	release(a, 6, 1, tcell.ModNone)
	assert.Equal(t, "Projects[alpha beta] Inbox[] notes", shape(a.tree))
}

func TestKeyboardNavigation(t *testing.T) {
	a, _ := newTestApp(t)

	typeKey(a, tcell.KeyDown)
	assert.Equal(t, []string{"Projects"}, selectedLabels(a.tree))
	typeRunes(a, "jj")
	assert.Equal(t, []string{"beta"}, selectedLabels(a.tree))
	typeKey(a, tcell.KeyLeft)
	assert.Equal(t, []string{"Projects"}, selectedLabels(a.tree))
	typeKey(a, tcell.KeyLeft)
	assert.True(t, a.tree.Roots()[0].Collapsed())
	typeKey(a, tcell.KeyDown)
	assert.Equal(t, []string{"Inbox"}, selectedLabels(a.tree))
}

func TestNewNodePrompt(t *testing.T) {
	a, _ := newTestApp(t)

	click(a, 6, 4, tcell.ModNone)
	typeRunes(a, "n")
	require.True(t, a.prompt.IsActive())
	typeRunes(a, "write tests")
	typeKey(a, tcell.KeyEnter)

	assert.False(t, a.prompt.IsActive())
	assert.Equal(t, "Projects[alpha beta] Inbox[write tests] notes", shape(a.tree))
	assert.Equal(t, []string{"write tests"}, selectedLabels(a.tree))
	assert.True(t, a.dirty)

	// With an item selected the new group goes next to it
	typeRunes(a, "gLater")
	typeKey(a, tcell.KeyEnter)
	assert.Equal(t, "Projects[alpha beta] Inbox[write tests Later[]] notes", shape(a.tree))

	// Escape discards the input
	typeRunes(a, "nnope")
	typeKey(a, tcell.KeyEscape)
	assert.Equal(t, "Projects[alpha beta] Inbox[write tests Later[]] notes", shape(a.tree))
}

func TestSetPromptOverridesSession(t *testing.T) {
	a, _ := newTestApp(t)

	typeRunes(a, ":autosave=off")
	typeKey(a, tcell.KeyEnter)
	assert.Equal(t, "off", a.cfg.Get("autosave"))
	assert.Equal(t, "Set autosave=off", a.statusMsg)

	a.dirty = true
	a.autoSaveTime = time.Now().Add(-time.Minute)
	a.autoSave()
	assert.True(t, a.dirty, "autosave is off for this session")

	typeRunes(a, ":autosave")
	typeKey(a, tcell.KeyEnter)
	assert.Equal(t, "autosave=off", a.statusMsg)

	typeRunes(a, ":time_format=%H")
	typeKey(a, tcell.KeyEnter)
	typeRunes(a, ":")
	typeKey(a, tcell.KeyEnter)
	assert.Equal(t, "autosave=off time_format=%H", a.statusMsg)

	typeRunes(a, ":=x")
	typeKey(a, tcell.KeyEnter)
	assert.Contains(t, a.statusMsg, "invalid setting")

	// Session settings never reach the config file
	reloaded, err := config.LoadFromFile(a.cfg.Path())
	require.NoError(t, err)
	assert.Empty(t, reloaded.Get("autosave"))
}

func TestFindPrompt(t *testing.T) {
	a, _ := newTestApp(t)
	a.tree.SetCollapsed(a.tree.Roots()[0], true)

	typeRunes(a, "/bet")
	assert.Equal(t, "bet", a.prompt.Text())
	typeKey(a, tcell.KeyEnter)

	assert.Equal(t, []string{"beta"}, selectedLabels(a.tree))
	assert.False(t, a.tree.Roots()[0].Collapsed(), "found node is scrolled into view")

	typeRunes(a, "/zzz")
	typeKey(a, tcell.KeyEnter)
	assert.Equal(t, "No match for zzz", a.statusMsg)

	// Up recalls earlier queries
	typeRunes(a, "/")
	typeKey(a, tcell.KeyUp)
	assert.Equal(t, "zzz", a.prompt.Text())
	typeKey(a, tcell.KeyUp)
	assert.Equal(t, "bet", a.prompt.Text())
	typeKey(a, tcell.KeyEscape)
	assert.Equal(t, []string{"bet", "zzz"}, a.queries)
}

func TestRemoveSelected(t *testing.T) {
	a, _ := newTestApp(t)

	click(a, 6, 2, tcell.ModNone)
	click(a, 6, 3, tcell.ModShift)
	typeRunes(a, "x")
	assert.Equal(t, "Projects[] Inbox[] notes", shape(a.tree))
	assert.Empty(t, a.tree.Selected())

	typeRunes(a, "x")
	assert.Equal(t, "Nothing selected", a.statusMsg)
}

func TestQuitRequiresSave(t *testing.T) {
	a, _ := newTestApp(t)
	a.dirty = true
	typeRunes(a, "q")
	assert.False(t, a.quit)
	typeKey(a, tcell.KeyCtrlS)
	assert.False(t, a.dirty)
	assert.Contains(t, a.statusMsg, "Saved at ")
	typeRunes(a, "q")
	assert.True(t, a.quit)
}

func TestRemoteCommands(t *testing.T) {
	a, _ := newTestApp(t)

	send := func(msg socket.Message) socket.Response {
		msg.Reply = make(chan socket.Response, 1)
		a.handleSocketMessage(msg)
		select {
		case r := <-msg.Reply:
			return r
		case <-time.After(time.Second):
			t.Fatal("no reply")
			return socket.Response{}
		}
	}

	r := send(socket.Message{Command: socket.CommandAddItem, Text: "gamma", Target: "projects"})
	assert.True(t, r.Success, r.Message)
	r = send(socket.Message{Command: socket.CommandAddGroup, Text: "Later", Target: ""})
	assert.True(t, r.Success, r.Message)
	assert.Equal(t, "Projects[alpha beta gamma] Inbox[] notes Later[]", shape(a.tree))

	r = send(socket.Message{Command: socket.CommandAddItem, Text: "x", Target: "Projects/alpha"})
	assert.False(t, r.Success)

	r = send(socket.Message{Command: socket.CommandSelect, Text: "gam"})
	assert.True(t, r.Success)
	assert.Equal(t, []string{"gamma"}, selectedLabels(a.tree))

	r = send(socket.Message{Command: socket.CommandSelect})
	assert.Equal(t, "Missing text", r.Message)
}

func TestDeferredEventRunsOnLoop(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, sim.Init())
	defer sim.Fini()

	ran := make(chan struct{})
	eventScheduler{post: sim.PostEvent}.AfterFunc(time.Millisecond, func() { close(ran) })

	deadline := time.After(2 * time.Second)
	events := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := sim.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()
	for {
		select {
		case ev := <-events:
			if d, ok := ev.(*deferredEvent); ok {
				d.fn()
				<-ran
				return
			}
		case <-deadline:
			t.Fatal("deferred event not delivered")
		}
	}
}

func TestSaveWritesTreeOrder(t *testing.T) {
	a, _ := newTestApp(t)
	alpha := a.tree.Children(a.tree.Roots()[0])[0]

	press(a, 6, 2, tcell.ModNone)
	press(a, 6, 5, tcell.ModNone)
	release(a, 6, 5, tcell.ModNone)
	a.tree.SetCollapsed(a.tree.Roots()[0], true)
	require.NoError(t, a.Save())

	outline, err := storage.NewJSONStore(a.store.FilePath).Load()
	require.NoError(t, err)
	require.Len(t, outline.Items, 4)
	assert.Equal(t, "alpha", outline.Items[3].Text)
	assert.Equal(t, itemFor(alpha).ID, outline.Items[3].ID)
	assert.True(t, outline.Items[0].Collapsed)
	assert.Equal(t, "group", outline.Items[1].Type)
	assert.Len(t, outline.Items[0].Children, 1)
}
