// Package app hosts the tree in a terminal: it owns the event loop, turns
// mouse and key input into tree operations and persists the document.
package app

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/ncruces/go-strftime"
	"github.com/pstuifzand/tui-treeview/internal/config"
	"github.com/pstuifzand/tui-treeview/internal/history"
	"github.com/pstuifzand/tui-treeview/internal/model"
	"github.com/pstuifzand/tui-treeview/internal/search"
	"github.com/pstuifzand/tui-treeview/internal/socket"
	"github.com/pstuifzand/tui-treeview/internal/storage"
	"github.com/pstuifzand/tui-treeview/internal/theme"
	"github.com/pstuifzand/tui-treeview/internal/treeview"
	"github.com/pstuifzand/tui-treeview/internal/ui"
)

const (
	statusTimeout    = 3 * time.Second
	autoSaveInterval = 5 * time.Second
	findHistoryFile  = "find.toml"
)

type promptMode int

const (
	promptFind promptMode = iota
	promptNewItem
	promptNewGroup
	promptSet
)

// Options configures an App
type Options struct {
	FilePath string
	Config   *config.Config
	Logger   *log.Logger

	// Screen defaults to the terminal
	Screen tcell.Screen
	// Scheduler defaults to deferred events posted to Screen
	Scheduler treeview.Scheduler

	// Remote starts a socket server in SocketDir (socket.DefaultDir() when
	// empty) so other processes can add and select nodes
	Remote    bool
	SocketDir string

	// HistoryDir holds the find prompt history; empty means the user's
	// data directory
	HistoryDir string
}

// App is the main application controller
type App struct {
	screen   *ui.Screen
	cfg      *config.Config
	logger   *log.Logger
	store    *storage.JSONStore
	title    string
	tree     *treeview.Tree
	view     *ui.TreeView
	prompt   *ui.Prompt
	mode     promptMode
	finder   search.Cursor
	history  *history.Manager
	queries  []string
	help     *ui.HelpScreen
	messages *ui.MessageLogger
	mouse    *mouseTracker
	server   *socket.Server

	keybindings []KeyBinding

	statusMsg    string
	statusTime   time.Time
	dirty        bool
	autoSaveTime time.Time
	quit         bool
	debugMode    bool
}

// NewApp loads the document at opts.FilePath and prepares the screen
func NewApp(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		var err error
		if cfg, err = config.Load(); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	store := storage.NewJSONStore(opts.FilePath)
	outline, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load outline: %w", err)
	}
	if len(outline.Items) == 0 && !store.FileExists() {
		outline.Items = sampleItems()
	}

	tcellScreen := opts.Screen
	if tcellScreen == nil {
		if tcellScreen, err = tcell.NewScreen(); err != nil {
			return nil, fmt.Errorf("failed to create screen: %w", err)
		}
	}
	screen, err := ui.NewScreenFrom(tcellScreen, theme.LoadThemeOrDefault(cfg.Theme))
	if err != nil {
		return nil, err
	}
	screen.EnableMouse()

	a := &App{
		screen:       screen,
		cfg:          cfg,
		logger:       logger,
		store:        store,
		title:        outline.Title,
		prompt:       ui.NewPrompt(),
		messages:     ui.NewMessageLogger(20),
		mouse:        newMouseTracker(),
		statusTime:   time.Now(),
		autoSaveTime: time.Now(),
	}

	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = eventScheduler{post: screen.PostEvent}
	}
	a.tree = treeview.New(treeview.Options{
		DropCallback:      a.onDrop,
		MultipleSelection: cfg.MultipleSelectionEnabled(),
		DragLeaveDelay:    cfg.DragLeaveDelay(),
		Scheduler:         scheduler,
		Logger:            logger.WithPrefix("tree"),
	})
	if err := buildTree(a.tree, outline); err != nil {
		screen.Close()
		return nil, fmt.Errorf("failed to build tree: %w", err)
	}
	a.tree.SetFocused(true)
	a.tree.Events().On(treeview.EventSelectionChange, a.onSelectionChange)
	a.tree.Events().On(treeview.EventActivate, a.onActivate)

	a.view = ui.NewTreeView(a.tree)
	a.layout()

	a.openHistory(opts.HistoryDir)
	a.keybindings = a.InitializeKeybindings()
	a.help = ui.NewHelpScreen(a.helpEntries(), a.messages)

	if opts.Remote {
		dir := opts.SocketDir
		if dir == "" {
			dir = socket.DefaultDir()
		}
		server, err := socket.NewServer(dir, os.Getpid(), logger.WithPrefix("socket"))
		if err != nil {
			logger.Warn("remote commands disabled", "err", err)
		} else {
			a.server = server
			server.Start()
		}
	}

	logger.Info("document loaded", "file", opts.FilePath, "nodes", a.tree.Len())
	a.SetStatus("Ready")
	return a, nil
}

// openHistory loads earlier find queries. Failures only disable history.
func (a *App) openHistory(dir string) {
	var err error
	if dir == "" {
		a.history, err = history.NewManager()
	} else {
		a.history, err = history.NewManagerIn(dir)
	}
	if err != nil {
		a.logger.Warn("find history disabled", "err", err)
		a.history = nil
		return
	}
	if a.queries, err = a.history.Load(findHistoryFile); err != nil {
		a.logger.Warn("failed to load find history", "err", err)
	}
}

func (a *App) rememberQuery(query string) {
	if a.history == nil {
		return
	}
	queries, err := a.history.Add(findHistoryFile, a.queries, query)
	if err != nil {
		a.logger.Warn("failed to save find history", "err", err)
	}
	a.queries = queries
}

func sampleItems() []*model.Item {
	welcome := model.NewGroup("Welcome to tui-treeview")
	welcome.AddChild(model.NewItem("Click to select, Ctrl-click to toggle, Shift-click for a range"))
	welcome.AddChild(model.NewItem("Drag selected nodes to move them"))
	welcome.AddChild(model.NewItem("Press ? for help"))
	return []*model.Item{welcome, model.NewGroup("Inbox")}
}

// Run starts the main event loop
func (a *App) Run() error {
	defer a.Close()

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			event := a.screen.PollEvent()
			eventChan <- event
			if event == nil {
				break
			}
		}
	}()

	var remote <-chan socket.Message
	if a.server != nil {
		remote = a.server.Messages()
	}

	// Create a ticker for rendering and auto-save checks
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for !a.quit {
		select {
		case ev := <-eventChan:
			if ev == nil {
				return nil
			}
			a.handleEvent(ev)
		case msg := <-remote:
			a.handleSocketMessage(msg)
		case <-ticker.C:
			a.render()
			a.autoSave()
		}
	}
	return nil
}

// Close releases the screen and the socket
func (a *App) Close() error {
	if a.server != nil {
		a.server.Stop()
		a.server = nil
	}
	if a.screen != nil {
		return a.screen.Close()
	}
	return nil
}

func (a *App) autoSave() {
	if !a.dirty || a.store.FilePath == "" || a.cfg.Get("autosave") == "off" {
		return
	}
	if time.Since(a.autoSaveTime) > autoSaveInterval {
		a.saveWithStatus()
	}
}

// layout places the tree between the header and the status line
func (a *App) layout() {
	width, height := a.screen.Size()
	a.view.SetViewport(1, width, height-2)
}

func (a *App) pageSize() int {
	_, height := a.screen.Size()
	return max(height-3, 1)
}

// handleEvent dispatches one event from the screen
func (a *App) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *deferredEvent:
		ev.fn()
	case *tcell.EventResize:
		a.screen.Sync()
		a.layout()
	case *tcell.EventMouse:
		if a.prompt.IsActive() || a.help.IsVisible() {
			return
		}
		for _, action := range a.mouse.handle(ev) {
			a.handleMouseAction(action)
		}
	case *tcell.EventKey:
		a.handleKeyEvent(ev)
	}
	// Keep hit testing in step with structural changes made by the event
	a.view.Rebuild()
}

func (a *App) handleKeyEvent(ev *tcell.EventKey) {
	if a.prompt.IsActive() {
		a.handlePromptKey(ev)
		return
	}
	if a.help.IsVisible() {
		if ev.Key() == tcell.KeyEscape || ev.Rune() == '?' {
			a.help.Toggle()
		}
		return
	}
	a.handleKeypress(ev)
}

// pointer converts a screen cell into a tree pointer event. Shift aims at
// the top of the row and Ctrl at the bottom, which picks the above and
// inside/below bands while dragging.
func (a *App) pointer(x, y int, mods tcell.ModMask) treeview.PointerEvent {
	within := ui.PointerMiddle
	var tm treeview.Modifiers
	if mods&tcell.ModShift != 0 {
		tm |= treeview.ModShift
		within = ui.PointerTop
	}
	if mods&tcell.ModCtrl != 0 {
		tm |= treeview.ModCtrl
		within = ui.PointerBottom
	}
	if mods&tcell.ModAlt != 0 {
		tm |= treeview.ModAlt
	}
	return treeview.PointerEvent{
		Target: a.view.HitTest(x, y),
		X:      x,
		Y:      a.view.PointerY(y, within),
		Mods:   tm,
	}
}

func (a *App) handleMouseAction(action mouseAction) {
	ev := a.pointer(action.x, action.y, action.mods)
	if a.debugMode {
		a.SetStatus(fmt.Sprintf("Mouse: %s at %d,%d", action.kind, action.x, action.y))
	}

	switch action.kind {
	case gestureClick:
		if ev.Target.Area != treeview.AreaNone {
			a.tree.Click(ev)
		}
	case gestureDoubleClick:
		a.tree.DoubleClick(ev)
	case gestureDragStart:
		if !a.tree.DragStart(ev) {
			a.mouse.cancel()
		}
	case gestureDragOver:
		a.tree.DragOver(ev)
	case gestureDragLeave:
		a.tree.DragLeave(ev)
	case gestureDrop:
		if ev.Target.Area == treeview.AreaNone {
			a.tree.DragEnd()
			return
		}
		a.tree.Drop(ev)
	case gestureScrollUp:
		a.view.Scroll(-1)
	case gestureScrollDown:
		a.view.Scroll(1)
	}
}

// cancelDrag abandons the drag in progress, if any
func (a *App) cancelDrag() {
	if a.tree.DragState() != treeview.StateIdle {
		a.mouse.cancel()
		a.tree.DragEnd()
		a.SetStatus("Drag cancelled")
	}
}

// onDrop approves drops of this tree's own nodes and records the move
func (a *App) onDrop(ev treeview.PointerEvent, loc treeview.DropLocation, ordered []*treeview.Node) bool {
	if ordered == nil {
		return false
	}
	target := "root"
	if loc.Target != nil {
		target = loc.Target.Label
	}
	a.logger.Info("moving nodes", "count", len(ordered), "where", loc.Where, "target", target)
	a.dirty = true
	a.SetStatus(fmt.Sprintf("Moved %d node(s) %s %s", len(ordered), loc.Where, target))
	return true
}

func (a *App) onSelectionChange(ev treeview.Event) {
	sel := ev.(treeview.SelectionChanged)
	a.logger.Debug("selection changed", "count", len(sel.Selected))
}

func (a *App) onActivate(ev treeview.Event) {
	n := ev.(treeview.Activated).Node
	a.logger.Info("activated", "node", n.Label)
	if n.IsGroup() {
		a.tree.ToggleCollapsed(n)
	}
	a.SetStatus("Activated: " + n.Label)
}

// selectNode makes n the only selected node and brings it into view
func (a *App) selectNode(n *treeview.Node) {
	a.tree.ClearSelection()
	a.tree.AddToSelection(n)
	a.tree.ScrollIntoView(n)
	a.tree.Events().Emit(treeview.SelectionChanged{Selected: a.tree.Selected()})
}

// targetGroup is the group new nodes go into: the selected group, the
// group containing a selected item, or the root
func (a *App) targetGroup() *treeview.Node {
	n := a.tree.Anchor()
	if n == nil {
		return nil
	}
	if n.IsGroup() {
		return n
	}
	return a.tree.Parent(n)
}

func (a *App) addNode(label string, kind treeview.Kind, parent *treeview.Node) (*treeview.Node, error) {
	n := treeview.NewNode(label)
	if err := a.tree.Append(n, kind, parent); err != nil {
		return nil, err
	}
	itemFor(n)
	a.dirty = true
	return n, nil
}

func (a *App) removeSelected() {
	selected := a.tree.Selected()
	if len(selected) == 0 {
		a.SetStatus("Nothing selected")
		return
	}
	for _, n := range selected {
		if err := a.tree.Remove(n); err != nil {
			a.logger.Error("remove failed", "node", n.Label, "err", err)
		}
	}
	a.dirty = true
	a.tree.Events().Emit(treeview.SelectionChanged{Selected: a.tree.Selected()})
	a.SetStatus(fmt.Sprintf("Removed %d node(s)", len(selected)))
}

func (a *App) startPrompt(mode promptMode) {
	a.mode = mode
	a.prompt.SetHistory(nil)
	switch mode {
	case promptFind:
		a.prompt.SetHistory(a.queries)
		a.prompt.Start("Find: ")
	case promptNewItem:
		a.prompt.Start("New item: ")
	case promptNewGroup:
		a.prompt.Start("New group: ")
	case promptSet:
		a.prompt.Start("Set: ")
	}
}

func (a *App) handlePromptKey(ev *tcell.EventKey) {
	switch a.prompt.HandleKey(ev) {
	case ui.PromptChanged:
		if a.mode == promptFind {
			count := a.finder.Reset(a.tree, a.prompt.Text())
			a.prompt.SetInfo(fmt.Sprintf("%d matches", count))
		}
	case ui.PromptSubmit:
		a.submitPrompt(a.prompt.Text())
	}
}

func (a *App) submitPrompt(text string) {
	switch a.mode {
	case promptFind:
		a.rememberQuery(text)
		if a.finder.Reset(a.tree, text) == 0 {
			a.SetStatus("No match for " + text)
			return
		}
		a.nextMatch()
	case promptNewItem, promptNewGroup:
		if text == "" {
			return
		}
		kind := treeview.KindItem
		if a.mode == promptNewGroup {
			kind = treeview.KindGroup
		}
		n, err := a.addNode(text, kind, a.targetGroup())
		if err != nil {
			a.SetStatus("Failed to add: " + err.Error())
			return
		}
		a.selectNode(n)
		a.SetStatus("Added " + kind.String() + " " + text)
	case promptSet:
		a.applySetting(text)
	}
}

// applySetting handles "key=value" as a session override, a bare key as a
// lookup and an empty line as a listing of all settings
func (a *App) applySetting(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		var parts []string
		for _, k := range a.cfg.Keys() {
			parts = append(parts, k+"="+a.cfg.Get(k))
		}
		if len(parts) == 0 {
			a.SetStatus("No settings")
			return
		}
		a.SetStatus(strings.Join(parts, " "))
		return
	}
	if !strings.Contains(text, "=") {
		a.SetStatus(text + "=" + a.cfg.Get(text))
		return
	}
	key, value, err := config.ParseSetting(text)
	if err != nil {
		a.SetStatus(err.Error())
		return
	}
	a.cfg.Set(key, value)
	a.logger.Debug("session setting", "key", key, "value", value)
	a.SetStatus("Set " + key + "=" + value)
}

func (a *App) nextMatch() {
	n := a.finder.Next(a.tree)
	if n == nil {
		a.SetStatus("No matches")
		return
	}
	a.selectNode(n)
}

// Save writes the tree back to the document file
func (a *App) Save() error {
	if err := a.store.Save(outlineFromTree(a.tree, a.title)); err != nil {
		return err
	}
	a.dirty = false
	a.autoSaveTime = time.Now()
	return nil
}

func (a *App) saveWithStatus() {
	if err := a.Save(); err != nil {
		a.logger.Error("save failed", "err", err)
		a.SetStatus("Failed to save: " + err.Error())
		return
	}
	format := a.cfg.Get("time_format")
	if format == "" {
		format = "%H:%M:%S"
	}
	a.SetStatus("Saved at " + strftime.Format(format, time.Now()))
}

// SetStatus sets the status message
func (a *App) SetStatus(msg string) {
	a.statusMsg = msg
	a.statusTime = time.Now()
	a.messages.AddMessage(msg)
}

// SetDebugMode enables or disables debug mode
func (a *App) SetDebugMode(debug bool) {
	a.debugMode = debug
}

// render renders the current state to the screen
func (a *App) render() {
	a.screen.Clear()
	width, height := a.screen.Size()

	header := " " + a.title + " "
	x := a.screen.DrawStringLimited(0, 0, header, width, a.screen.HeaderStyle())
	if a.dirty {
		a.screen.DrawString(x, 0, "[+]", a.screen.StatusDirtyStyle())
	}

	a.view.Render(a.screen)

	statusY := height - 1
	if a.prompt.IsActive() {
		a.prompt.Render(a.screen, statusY)
	} else {
		status := ""
		if time.Since(a.statusTime) <= statusTimeout {
			status = a.statusMsg
		}
		if n := len(a.tree.Selected()); n > 1 {
			status = fmt.Sprintf("%d selected  %s", n, status)
		}
		if a.debugMode {
			status = fmt.Sprintf("[%s] %s", a.tree.DragState(), status)
		}
		a.screen.DrawStringLimited(0, statusY, status, width, a.screen.StatusMessageStyle())
	}

	a.help.Render(a.screen)
	a.screen.Show()
}
