package ui

import (
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-autofix/internal/config"
	"github.com/ytget/yt-autofix/internal/i18n"
)

// SettingsDialog edits the stored preferences. Changes apply on the next start.
type SettingsDialog struct {
	settings *config.Settings
	texts    *i18n.Localization
	window   fyne.Window
	dialog   *dialog.ConfirmDialog

	outputRootEntry *widget.Entry
	ffmpegEntry     *widget.Entry
	autoUpdateCheck *widget.Check
	languageSelect  *widget.Select
	languageCodes   map[string]string // display name -> code
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, texts *i18n.Localization, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings: settings,
		texts:    texts,
		window:   window,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	sd.outputRootEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(sd.texts.GetText(i18n.KeyBrowse), sd.onBrowseDirectory)
	outputRootRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.outputRootEntry)

	sd.ffmpegEntry = widget.NewEntry()
	sd.autoUpdateCheck = widget.NewCheck(sd.texts.GetText(i18n.KeyAutoUpdate), nil)

	sd.languageCodes = make(map[string]string)
	names := make([]string, 0)
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		names = append(names, name)
	}
	sort.Strings(names)
	sd.languageSelect = widget.NewSelect(names, nil)

	form := container.NewVBox(
		widget.NewLabel(sd.texts.GetText(i18n.KeyOutputRoot)),
		outputRootRow,
		widget.NewLabel(sd.texts.GetText(i18n.KeyFFmpegBinary)),
		sd.ffmpegEntry,
		sd.autoUpdateCheck,
		widget.NewSeparator(),
		widget.NewLabel(sd.texts.GetText(i18n.KeyLanguage)),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		sd.texts.GetText(i18n.KeySettings),
		sd.texts.GetText(i18n.KeySave),
		sd.texts.GetText(i18n.KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)
	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

func (sd *SettingsDialog) loadCurrentSettings() {
	sd.outputRootEntry.SetText(sd.settings.GetOutputRoot())
	sd.ffmpegEntry.SetText(sd.settings.GetFFmpegBinary())
	sd.autoUpdateCheck.SetChecked(sd.settings.GetAutoUpdate())

	current := sd.settings.GetLanguage()
	for name, code := range sd.languageCodes {
		if code == current {
			sd.languageSelect.SetSelected(name)
		}
	}
}

func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.outputRootEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave stores the edited values
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.save()
	dialog.ShowInformation(sd.texts.GetText(i18n.KeySettings), sd.texts.GetText(i18n.KeySettingsSaved), sd.window)
}

func (sd *SettingsDialog) save() {
	if dir := sd.outputRootEntry.Text; dir != "" {
		sd.settings.SetOutputRoot(dir)
	}
	sd.settings.SetFFmpegBinary(sd.ffmpegEntry.Text)
	sd.settings.SetAutoUpdate(sd.autoUpdateCheck.Checked)
	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}
}
