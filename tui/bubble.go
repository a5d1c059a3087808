package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/mpvremote/mpvremote/client"
	"github.com/mpvremote/mpvremote/poll"
	"github.com/mpvremote/mpvremote/style"
	"github.com/mpvremote/mpvremote/urls"
	"github.com/mpvremote/mpvremote/util"
	"github.com/samber/mo"
)

// statefulBubble is the whole remote: the poller's display plus the lists the user picks from.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]
	busy          bool

	keymap *statefulKeymap

	// components
	spinnerC  spinner.Model
	inputC    textinput.Model
	libraryC  list.Model
	urlsC     list.Model
	draftC    list.Model
	playlistC list.Model
	progressC progress.Model
	helpC     help.Model

	ctx      context.Context
	client   *client.Client
	poller   *poll.Poller
	scrub    *scrubber
	urls     *urls.List
	displays chan poll.Display

	display  poll.Display
	scrubPos float64

	lastError error

	width, height int
	notifier      *notifier

	options *Options
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState moves to s, remembering where we came from.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if b.state != errorState {
		b.statesHistory.Push(b.state)
	}
	b.setState(s)
}

func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		b.setState(b.statesHistory.Pop())
		return
	}
	b.setState(playerState)
}

// nextTab cycles through the main views without growing the history.
func (b *statefulBubble) nextTab() {
	for i, s := range tabs {
		if s == b.state {
			b.setState(tabs[(i+1)%len(tabs)])
			return
		}
	}
	b.setState(playerState)
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	for _, l := range []*list.Model{&b.libraryC, &b.urlsC, &b.draftC} {
		l.SetSize(listWidth, listHeight)
		l.Help.Width = listWidth
	}

	// the playlist shares the screen with the now playing header
	b.playlistC.SetSize(listWidth, util.Max(listHeight-playerHeaderHeight, 3))

	b.progressC.Width = util.Min(listWidth, 80)
	b.inputC.Width = listWidth

	b.width = width - x
	b.height = height - y
	b.helpC.Width = listWidth
}

// publish hands a display to the UI goroutine, replacing one that was not consumed yet.
func (b *statefulBubble) publish(d poll.Display) {
	for {
		select {
		case b.displays <- d:
			return
		default:
		}

		select {
		case <-b.displays:
		default:
		}
	}
}

func newBubble(ctx context.Context, options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,
		ctx:           ctx,
		client:        options.Client,
		urls:          options.URLs,
		scrub:         &scrubber{},
		displays:      make(chan poll.Display, 1),
		display:       poll.Idle(),
		notifier:      &notifier{},
		options:       options,
	}

	bubble.poller = poll.New(
		options.Client,
		poll.WithInterval(options.Interval),
		poll.WithScrubber(bubble.scrub),
		poll.WithHandler(bubble.publish),
	)

	type listOptions struct {
		TitleStyle mo.Option[lipgloss.Style]
	}

	makeList := func(title string, description bool, options *listOptions) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.ShowDescription = description
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.NoItems = paddingStyle
		if titleStyle, ok := options.TitleStyle.Get(); ok {
			listC.Styles.Title = titleStyle
		}
		listC.StatusMessageLifetime = time.Hour * 999
		listC.SetShowPagination(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = "https://..."
	bubble.inputC.CharLimit = 2048
	bubble.inputC.Prompt = "URL: "

	bubble.progressC = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())

	bubble.libraryC = makeList("Library", true, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Peach).Padding(0, 1),
		),
	})
	bubble.libraryC.SetStatusBarItemName("file", "files")

	bubble.urlsC = makeList("Saved URLs", false, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Blue).Padding(0, 1),
		),
	})
	bubble.urlsC.SetStatusBarItemName("url", "urls")

	bubble.draftC = makeList("Playlist Draft", true, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Lavender).Padding(0, 1),
		),
	})
	bubble.draftC.SetStatusBarItemName("entry", "entries")

	bubble.playlistC = makeList("Playlist", false, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Mauve).Padding(0, 1),
		),
	})
	bubble.playlistC.SetShowHelp(false)
	bubble.playlistC.SetShowStatusBar(false)
	bubble.playlistC.SetFilteringEnabled(false)

	if options.URLs != nil {
		bubble.urlsC.SetItems(urlItems(options.URLs.Items()))
	}

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.setState(playerState)
	return &bubble
}

func (b *statefulBubble) serverTitle() string {
	return fmt.Sprintf("%s %s", b.state, style.Faint(b.client.Server()))
}
