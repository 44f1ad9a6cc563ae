package app

import (
	"github.com/pstuifzand/tui-treeview/internal/search"
	"github.com/pstuifzand/tui-treeview/internal/socket"
	"github.com/pstuifzand/tui-treeview/internal/treeview"
)

// handleSocketMessage runs a command received on the socket and answers it
func (a *App) handleSocketMessage(msg socket.Message) {
	a.logger.Info("socket command", "command", msg.Command, "text", msg.Text, "target", msg.Target)
	msg.Respond(a.runRemote(msg))
}

func (a *App) runRemote(msg socket.Message) socket.Response {
	if msg.Text == "" {
		return socket.Response{Message: "Missing text"}
	}

	switch msg.Command {
	case socket.CommandAddItem, socket.CommandAddGroup:
		parent, err := findGroup(a.tree, msg.Target)
		if err != nil {
			return socket.Response{Message: err.Error()}
		}
		kind := treeview.KindItem
		if msg.Command == socket.CommandAddGroup {
			kind = treeview.KindGroup
		}
		if _, err := a.addNode(msg.Text, kind, parent); err != nil {
			return socket.Response{Message: err.Error()}
		}
		a.SetStatus("Added " + kind.String() + " " + msg.Text + " remotely")
		return socket.Response{Success: true, Message: "Added " + kind.String()}

	case socket.CommandSelect:
		matches := search.Find(a.tree, msg.Text)
		if len(matches) == 0 {
			return socket.Response{Message: "No match for " + msg.Text}
		}
		a.selectNode(matches[0].Node)
		return socket.Response{Success: true, Message: "Selected " + matches[0].Node.Label}
	}

	return socket.Response{Message: "Unknown command: " + msg.Command}
}
