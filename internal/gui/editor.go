package gui

import (
	"context"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/wrenlowe/storyreel/internal/clip"
	"github.com/wrenlowe/storyreel/internal/config"
	"github.com/wrenlowe/storyreel/internal/logging"
	"github.com/wrenlowe/storyreel/internal/media"
	"github.com/wrenlowe/storyreel/internal/player"
	"github.com/wrenlowe/storyreel/internal/render"
	"github.com/wrenlowe/storyreel/internal/script"
	"github.com/wrenlowe/storyreel/internal/timeline"
	"github.com/wrenlowe/storyreel/pkg/util"
)

var mediaExtensions = []string{
	".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp",
	".mp3", ".wav", ".ogg", ".m4a", ".aac", ".flac",
}

// RunEditor opens the timeline editor window. Blocks until the window
// is closed.
func RunEditor(cfg *config.Config, sections []script.Section, startAt float64) error {
	logger := logging.WithComponent("gui")

	surface := render.NewCanvas(cfg.Editor.CanvasWidth, cfg.Editor.CanvasHeight)

	prober, err := media.NewProber(logger, cfg.Media.FFprobePath)
	if err != nil {
		return err
	}

	audio, err := media.NewFFplayPlayer(logger, cfg.Media.FFplayPath)
	if err != nil {
		return err
	}

	a := app.NewWithID("com.wrenlowe.storyreel")
	w := a.NewWindow("storyreel editor")
	w.Resize(fyne.NewSize(960, 640))

	host := &fullscreenHost{window: w}
	notifier := player.NotifierFunc(func(title, message string) {
		fyne.Do(func() {
			dialog.ShowInformation(title, message, w)
		})
	})

	session, err := player.NewSession(player.Deps{
		Logger:        logger,
		Timeline:      timeline.New(logger, cfg.Editor.DefaultClipDuration),
		Surface:       surface,
		Player:        audio,
		Prober:        prober,
		Fullscreen:    host,
		Notifier:      notifier,
		TickRate:      cfg.Editor.TickRate,
		AudioDebounce: cfg.Editor.AudioDebounce(),
		Volume:        cfg.Editor.Volume,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	go session.Run(ctx)

	ui := buildEditor(w, session, surface)
	w.SetContent(ui.root)
	w.SetOnClosed(func() {
		cancel()
		ui.stop()
	})

	if len(sections) > 0 {
		session.ImportSections(sections)
	}
	if startAt > 0 {
		// The composition has no length until audio metadata resolves;
		// apply the initial position once it does
		go func() {
			for i := 0; i < 100; i++ {
				if session.TotalDuration() > 0 {
					session.Seek(startAt)
					return
				}
				select {
				case <-ctx.Done():
					return
				case <-time.After(100 * time.Millisecond):
				}
			}
		}()
	}

	w.ShowAndRun()
	return nil
}

type editorUI struct {
	root fyne.CanvasObject
	stop func()
}

func buildEditor(w fyne.Window, session *player.Session, surface *render.Canvas) *editorUI {
	preview := canvas.NewImageFromImage(surface.Frame())
	preview.FillMode = canvas.ImageFillContain
	preview.SetMinSize(fyne.NewSize(640, 360))

	timeLabel := widget.NewLabel("0:00 / 0:00")

	var scrubbing bool
	playhead := widget.NewSlider(0, 1)
	playhead.Step = 0.1
	playhead.OnChanged = func(v float64) {
		if scrubbing {
			return
		}
		session.Seek(v)
	}

	playBtn := widget.NewButtonWithIcon("", theme.MediaPlayIcon(), nil)
	playBtn.OnTapped = func() {
		if err := session.TogglePlay(); err != nil {
			dialog.ShowInformation("Audio Not Ready", "Please wait for all audio to load before playing.", w)
		}
	}

	skipBack := widget.NewButtonWithIcon("", theme.MediaSkipPreviousIcon(), session.SkipToStart)
	skipFwd := widget.NewButtonWithIcon("", theme.MediaSkipNextIcon(), session.SkipToEnd)
	fullBtn := widget.NewButtonWithIcon("", theme.ViewFullScreenIcon(), session.ToggleFullscreen)

	volume := widget.NewSlider(0, 1)
	volume.Step = 0.01
	volume.SetValue(session.Volume())
	volume.OnChanged = session.SetVolume

	var listed []*clip.Clip
	selected := -1

	clipList := widget.NewList(
		func() int { return len(listed) },
		func() fyne.CanvasObject { return widget.NewLabel("clip") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i >= len(listed) {
				return
			}
			c := listed[i]
			o.(*widget.Label).SetText(fmt.Sprintf("[%s] %s  %s – %s",
				c.Kind, c.Title,
				util.FormatClock(c.StartTime), util.FormatClock(c.End())))
		},
	)
	clipList.OnSelected = func(i widget.ListItemID) { selected = i }
	clipList.OnUnselected = func(widget.ListItemID) { selected = -1 }

	addBtn := widget.NewButtonWithIcon("Add Media", theme.ContentAddIcon(), func() {
		fd := dialog.NewFileOpen(func(ur fyne.URIReadCloser, err error) {
			if err != nil || ur == nil {
				return
			}
			path := ur.URI().Path()
			name := ur.URI().Name()
			ur.Close()
			if err := session.AddMedia(path, name); err != nil {
				dialog.ShowInformation("Unsupported Media", err.Error(), w)
			}
		}, w)
		fd.SetFilter(storage.NewExtensionFileFilter(mediaExtensions))
		fd.Show()
	})

	deleteBtn := widget.NewButtonWithIcon("Delete Clip", theme.DeleteIcon(), func() {
		if selected < 0 || selected >= len(listed) {
			return
		}
		session.DeleteClip(listed[selected].ID)
		clipList.UnselectAll()
	})

	transport := container.NewHBox(
		skipBack, playBtn, skipFwd,
		timeLabel,
		widget.NewIcon(theme.VolumeUpIcon()),
		container.NewGridWrap(fyne.NewSize(120, 36), volume),
		fullBtn,
	)

	root := container.NewBorder(
		nil,
		container.NewVBox(playhead, container.NewCenter(transport), container.NewHBox(addBtn, deleteBtn)),
		nil, nil,
		container.NewVSplit(preview, clipList),
	)

	// UI refresh loop: mirror playhead, clock, and preview frame into
	// the widgets at a modest rate
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				frame := surface.Frame()
				current := session.CurrentTime()
				total := session.TotalDuration()
				playing := session.IsPlaying()
				clips := append(session.ImageClips(), session.AudioClips()...)

				fyne.Do(func() {
					preview.Image = frame
					preview.Refresh()

					scrubbing = true
					if total > 0 {
						playhead.Max = total
					}
					playhead.SetValue(current)
					scrubbing = false

					timeLabel.SetText(util.FormatClock(current) + " / " + util.FormatClock(total))

					if playing {
						playBtn.SetIcon(theme.MediaPauseIcon())
					} else {
						playBtn.SetIcon(theme.MediaPlayIcon())
					}

					listed = clips
					clipList.Refresh()
				})
			}
		}
	}()

	return &editorUI{
		root: root,
		stop: func() { close(done) },
	}
}

// fullscreenHost presents the editor window fullscreen. The session
// observes state through the change callback rather than assuming the
// request succeeded.
type fullscreenHost struct {
	window   fyne.Window
	onChange func(active bool)
}

func (h *fullscreenHost) Request() error {
	h.window.SetFullScreen(true)
	h.notifyState()
	return nil
}

func (h *fullscreenHost) Exit() {
	h.window.SetFullScreen(false)
	h.notifyState()
}

func (h *fullscreenHost) Notify(fn func(active bool)) {
	h.onChange = fn
}

func (h *fullscreenHost) notifyState() {
	if h.onChange != nil {
		h.onChange(h.window.FullScreen())
	}
}
