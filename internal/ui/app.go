package ui

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/dastanaron/bookmarks-flatten/internal/models"
	"github.com/dastanaron/bookmarks-flatten/internal/service"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	ModeNormal = 1
	ModeSearch = 2
)

// labelItem is one row of the label pane
type labelItem struct {
	Name  *string // nil for "All Bookmarks"
	Count int
}

// App is a read-only browser over a converted bookmark set
type App struct {
	app           *tview.Application
	labelList     *tview.List
	list          *tview.List
	detail        *tview.TextView
	search        *tview.InputField
	pages         *tview.Pages
	status        *tview.TextView
	mode          uint8
	catalog       *service.Catalog
	labelItems    []labelItem
	selectedLabel *string
	items         []models.Bookmark
	current       *models.Bookmark
	focusOnLabels bool
	openURL       func(string) error
}

// NewApp creates a new application instance
func NewApp(catalog *service.Catalog) *App {
	return &App{
		app:       tview.NewApplication(),
		labelList: tview.NewList().ShowSecondaryText(false),
		list:      tview.NewList(),
		detail:    tview.NewTextView().SetDynamicColors(true).SetWrap(true),
		search:    tview.NewInputField().SetLabel("Search: "),
		pages:     tview.NewPages(),
		status:    tview.NewTextView().SetDynamicColors(true),
		mode:      ModeNormal,
		catalog:   catalog,
		openURL:   openURL,
	}
}

// Run starts the application
func (a *App) Run() error {
	a.labelList.SetBorder(true).SetTitle("Labels")
	a.list.SetBorder(true).SetTitle("Bookmarks")
	a.detail.SetBorder(true).SetTitle("Details")

	cols := tview.NewFlex().
		AddItem(a.labelList, 0, 1, false).
		AddItem(a.list, 0, 3, true).
		AddItem(a.detail, 0, 2, false)

	main := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.search, 1, 0, false).
		AddItem(cols, 0, 1, true).
		AddItem(a.status, 1, 0, false)

	a.pages.AddPage("main", main, true, true)

	a.fillLabelList()
	a.applyFilter("")

	a.search.SetChangedFunc(a.applyFilter)
	a.search.SetDoneFunc(a.onSearchDone)
	a.list.SetChangedFunc(a.onSelect)

	a.app.SetRoot(a.pages, true)
	a.app.SetInputCapture(a.globalInput)
	a.app.SetFocus(a.list)
	return a.app.Run()
}

func (a *App) updateStatus() {
	countText := fmt.Sprintf(" [::b]%d[::-] bookmarks", len(a.items))
	if a.focusOnLabels {
		a.status.SetText("[::b]Tab[::-] switch  [::b]Enter[::-] select label  [::b]/[::-] search  [::b]q[::-] quit" + countText)
		return
	}
	a.status.SetText("[::b]Tab[::-] switch  [::b]/[::-] search  [::b]Enter[::-] open  [::b]q[::-] quit" + countText)
}

// fillLabelList lists "All Bookmarks" followed by every label with its count
func (a *App) fillLabelList() {
	a.labelList.Clear()
	a.labelItems = []labelItem{{Name: nil, Count: len(a.catalog.ListAll())}}
	for _, label := range a.catalog.Labels() {
		name := label
		a.labelItems = append(a.labelItems, labelItem{Name: &name, Count: a.catalog.Count(label)})
	}
	for _, item := range a.labelItems {
		a.labelList.AddItem(item.title(), "", 0, nil)
	}
}

func (i labelItem) title() string {
	if i.Name == nil {
		return fmt.Sprintf("All Bookmarks (%d)", i.Count)
	}
	return fmt.Sprintf("%s (%d)", *i.Name, i.Count)
}

// selectLabel switches the bookmark pane to the label at index
func (a *App) selectLabel(index int) {
	if index < 0 || index >= len(a.labelItems) {
		return
	}
	a.selectedLabel = a.labelItems[index].Name
	if a.selectedLabel == nil {
		a.list.SetTitle("Bookmarks (All)")
	} else {
		a.list.SetTitle(fmt.Sprintf("Bookmarks (%s)", *a.selectedLabel))
	}
	a.applyFilter(a.search.GetText())
}

func (a *App) applyFilter(text string) {
	a.items = a.catalog.Search(text, a.selectedLabel)
	a.fillList()
	a.updateStatus()
}

func (a *App) fillList() {
	a.list.Clear()
	for _, b := range a.items {
		a.list.AddItem(b.Title, b.URL, 0, nil)
	}
	if len(a.items) > 0 {
		a.current = &a.items[0]
	} else {
		a.current = nil
	}
	a.showDetails()
}

func (a *App) showDetails() {
	a.detail.SetText(detailText(a.current))
}

// detailText renders the detail pane for b
func detailText(b *models.Bookmark) string {
	if b == nil {
		return ""
	}
	labels := "-"
	if len(b.Labels) > 0 {
		labels = strings.Join(b.Labels, ", ")
	}
	return fmt.Sprintf(
		"[::b]Title:[::-]\n%s\n\n[::b]URL:[::-]\n%s\n\n[::b]Description:[::-]\n%s\n\n[::b]Labels:[::-]\n%s\n\n[::b]Seen:[::-]\n%d",
		tview.Escape(b.Title), tview.Escape(b.URL), tview.Escape(b.Description), tview.Escape(labels), b.Seen)
}

func (a *App) setMode(m uint8) {
	a.mode = m
	switch m {
	case ModeSearch:
		a.app.SetFocus(a.search)
	case ModeNormal:
		if a.focusOnLabels {
			a.app.SetFocus(a.labelList)
		} else {
			a.app.SetFocus(a.list)
		}
	}
}

func (a *App) toggleFocus() {
	a.focusOnLabels = !a.focusOnLabels
	a.setMode(ModeNormal)
	a.updateStatus()
}

func (a *App) onSearchDone(key tcell.Key) {
	switch key {
	case tcell.KeyEnter:
		a.setMode(ModeNormal)
	case tcell.KeyEscape:
		a.search.SetText("")
		a.applyFilter("")
		a.setMode(ModeNormal)
	}
}

func (a *App) onSelect(index int, mainText, secondaryText string, shortcut rune) {
	if index >= 0 && index < len(a.items) {
		a.current = &a.items[index]
		a.showDetails()
	}
}

func (a *App) globalInput(event *tcell.EventKey) *tcell.EventKey {
	if a.mode != ModeNormal {
		return event
	}

	switch event.Key() {
	case tcell.KeyTab:
		a.toggleFocus()
		return nil
	case tcell.KeyEnter:
		if a.focusOnLabels {
			a.selectLabel(a.labelList.GetCurrentItem())
			a.toggleFocus()
			return nil
		}
		if a.current != nil {
			_ = a.openURL(a.current.URL)
		}
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case '/':
			a.setMode(ModeSearch)
			return nil
		case 'q':
			a.app.Stop()
			return nil
		}
	}
	return event
}

func openURL(url string) error {
	var cmd string
	var args []string
	switch runtime.GOOS {
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start"}
	case "darwin":
		cmd = "open"
	default:
		cmd = "xdg-open"
	}
	args = append(args, url)
	return exec.Command(cmd, args...).Start()
}
