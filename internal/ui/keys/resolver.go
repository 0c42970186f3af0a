package keys

import "github.com/killallgit/podcast-tui/internal/ui/actions"

// Resolver maps KeyChords to Actions via a flat table populated at init.
// Unknown chords resolve to actions.None{}.
type Resolver struct {
	bindings map[KeyChord]actions.Action
}

// NewResolver builds a Resolver with the default binding set: arrow keys,
// vim-style movement, emacs-style C-n/C-p, and a handful of single-letter
// commands, matching the teacher's flat route-table-at-init shape.
func NewResolver() *Resolver {
	r := &Resolver{bindings: make(map[KeyChord]actions.Action)}
	r.bind("Up", actions.MoveUp{})
	r.bind("Down", actions.MoveDown{})
	r.bind("Left", actions.MoveLeft{})
	r.bind("Right", actions.MoveRight{})
	r.bind("k", actions.MoveUp{})
	r.bind("j", actions.MoveDown{})
	r.bind("h", actions.MoveLeft{})
	r.bind("l", actions.MoveRight{})
	r.bindCtrl("n", actions.MoveDown{})
	r.bindCtrl("p", actions.MoveUp{})
	r.bind("PageUp", actions.PageUp{})
	r.bind("PageDown", actions.PageDown{})
	r.bind("g", actions.MoveToTop{})
	r.bind("G", actions.MoveToBottom{})
	r.bind("Enter", actions.SelectItem{})
	r.bind("Tab", actions.NextBuffer{})
	r.bindShift("Tab", actions.PreviousBuffer{})
	r.bind("q", actions.CloseCurrentBuffer{})
	r.bindCtrl("q", actions.Quit{})
	r.bind("a", actions.PromptInput{Purpose: "add_podcast"})
	r.bind("d", actions.DownloadEpisode{})
	r.bind("r", actions.RefreshPodcast{})
	r.bind("R", actions.RefreshAll{})
	r.bind("m", actions.ToggleMarkPlayed{})
	r.bind("f", actions.ToggleFavorite{})
	r.bind("/", actions.PromptInput{Purpose: "search"})
	r.bind("C", actions.ClearFilters{})
	r.bind("?", actions.SwitchBuffer{BufferID: "help"})
	r.bindAlt("x", actions.PromptInput{Purpose: "command"})
	r.bind("Esc", actions.ClearMinibuffer{})
	r.bind("p", actions.RequestPlay{})
	r.bind("Space", actions.TogglePlayPause{})
	r.bindCtrl("Space", actions.StopPlayback{})
	r.bind("]", actions.SeekForward{})
	r.bind("[", actions.SeekBackward{})
	r.bind("+", actions.VolumeUp{})
	r.bind("-", actions.VolumeDown{})
	return r
}

func (r *Resolver) bind(key string, a actions.Action) {
	r.bindings[mustChord(key, false, false, false)] = a
}
func (r *Resolver) bindCtrl(key string, a actions.Action) {
	r.bindings[mustChord(key, true, false, false)] = a
}
func (r *Resolver) bindShift(key string, a actions.Action) {
	r.bindings[mustChord(key, false, true, false)] = a
}
func (r *Resolver) bindAlt(key string, a actions.Action) {
	r.bindings[mustChord(key, false, false, true)] = a
}

func mustChord(key string, ctrl, shift, alt bool) KeyChord {
	chord, err := Parse(key)
	if err != nil {
		panic(err)
	}
	chord.Ctrl, chord.Shift, chord.Alt = ctrl, shift, alt
	return chord
}

// Bind installs or overrides a single binding. Nothing in the config
// feeds bindings into it.
func (r *Resolver) Bind(chord KeyChord, a actions.Action) {
	r.bindings[chord] = a
}

// Resolve looks up chord, returning actions.None{} for anything unbound.
func (r *Resolver) Resolve(chord KeyChord) actions.Action {
	if a, ok := r.bindings[chord]; ok {
		return a
	}
	return actions.None{}
}
