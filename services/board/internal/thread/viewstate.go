package thread

import (
	"errors"
	"strings"
)

// Mode is what the viewer is currently doing in the thread.
type Mode string

const (
	ModeIdle     Mode = "idle"
	ModeEditing  Mode = "editing"
	ModeReplying Mode = "replying"
)

var ErrUnknownMode = errors.New("unknown view mode")

func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ModeIdle:
		return ModeIdle, nil
	case ModeEditing:
		return ModeEditing, nil
	case ModeReplying:
		return ModeReplying, nil
	default:
		return ModeIdle, ErrUnknownMode
	}
}

// ViewState is held by the presentation layer and passed into Decorate.
type ViewState struct {
	Mode     Mode
	TargetID *int64
}

func Idle() ViewState { return ViewState{Mode: ModeIdle} }

func Editing(id int64) ViewState { return ViewState{Mode: ModeEditing, TargetID: &id} }

func Replying(id int64) ViewState { return ViewState{Mode: ModeReplying, TargetID: &id} }

func (s ViewState) targets(id int64) bool {
	return s.TargetID != nil && *s.TargetID == id
}

// View is an Entry with the controls the viewer gets for it.
type View struct {
	Entry
	CanModify bool
	CanReply  bool
	Editing   bool
	Replying  bool
}

// Decorate attaches ownership and view state to a render sequence. An editing
// state aimed at a comment the viewer cannot modify is ignored.
func Decorate(seq []Entry, currentUserID *int64, state ViewState) []View {
	out := make([]View, len(seq))
	for i, e := range seq {
		v := View{
			Entry:     e,
			CanModify: CanModify(e.Comment, currentUserID),
			CanReply:  CanReply(e.Comment),
		}
		if state.targets(e.Comment.ID) {
			switch state.Mode {
			case ModeEditing:
				v.Editing = v.CanModify
			case ModeReplying:
				v.Replying = v.CanReply
			}
		}
		out[i] = v
	}
	return out
}
