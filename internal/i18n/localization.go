// Package i18n holds the user-facing texts of both shells.
package i18n

import (
	"fmt"
	"os"
	"strings"
)

// Language codes
const (
	LangPortuguese = "pt"
	LangEnglish    = "en"
	LangRussian    = "ru"
	LangSystem     = "system"

	DefaultLanguage = LangPortuguese
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys shared by the terminal menu and the window
const (
	KeyAppTitle       = "app_title"
	KeyHeader         = "header"
	KeyFFmpegFound    = "ffmpeg_found"
	KeyFFmpegMissing  = "ffmpeg_missing"
	KeyFFmpegHint     = "ffmpeg_install_hint"
	KeyUpdateOK       = "update_ok"
	KeyUpdateFailed   = "update_failed"
	KeyInvalidURL     = "invalid_url"
	KeyPleaseEnterURL = "please_enter_url"
	KeyDownloading    = "downloading"
	KeyDownloadDone   = "download_done"
	KeyFixing         = "fixing"
	KeyFixedSaved     = "fixed_saved"
	KeySavedTo        = "saved_to"
	KeyWarning        = "warning"
	KeyVideoError     = "video_error"
	KeyAudioError     = "audio_error"
	KeyPathError      = "path_error"
)

// Terminal menu keys
const (
	KeyMenuVideo     = "menu_video"
	KeyMenuAudio     = "menu_audio"
	KeyMenuCustom    = "menu_custom"
	KeyMenuExit      = "menu_exit"
	KeyChooseOption  = "choose_option"
	KeyPasteURL      = "paste_url"
	KeyAskFolder     = "ask_folder"
	KeyAskKind       = "ask_kind"
	KeyInvalidOption = "invalid_option"
	KeyStartVideo    = "start_video"
	KeyStartAudio    = "start_audio"
	KeyGoodbye       = "goodbye"
)

// Window keys
const (
	KeyURLPlaceholder      = "url_placeholder"
	KeyFilenamePlaceholder = "filename_placeholder"
	KeyModeVideo           = "mode_video"
	KeyModeAudio           = "mode_audio"
	KeyDownload            = "download"
	KeyOpenFolder          = "open_folder"
	KeyToggleTheme         = "toggle_theme"
	KeyGitHub              = "github"
	KeySettings            = "settings"
	KeyStatusReady         = "status_ready"
	KeyStatusPreparing     = "status_preparing"
	KeyStatusUpdating      = "status_updating"
	KeyStatusDone          = "status_done"
	KeyStatusDoneWarnings  = "status_done_warnings"
	KeyStatusFailed        = "status_failed"
	KeyBusy                = "busy"
	KeyErrorTitle          = "error_title"
	KeyWarningTitle        = "warning_title"
	KeyErrorOpeningFolder  = "error_opening_folder"
	KeyOutputRoot          = "output_root"
	KeyFFmpegBinary        = "ffmpeg_binary"
	KeyAutoUpdate          = "auto_update"
	KeyLanguage            = "language"
	KeyBrowse              = "browse"
	KeySave                = "save"
	KeyCancel              = "cancel"
	KeySettingsSaved       = "settings_saved"
)

// NewLocalization creates a new localization manager set to DefaultLanguage
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: DefaultLanguage,
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language; unknown codes are ignored
func (l *Localization) SetLanguage(lang string) {
	if lang == LangSystem {
		lang = SystemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// SystemLanguage derives a language code from LC_ALL/LANG, e.g. "pt_BR.UTF-8" -> "pt"
func SystemLanguage() string {
	for _, env := range []string{"LC_ALL", "LANG"} {
		value := os.Getenv(env)
		if len(value) >= 2 {
			return strings.ToLower(value[:2])
		}
	}
	return DefaultLanguage
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to Portuguese
	if texts, exists := l.texts[DefaultLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// Format returns the localized text for key formatted with args
func (l *Localization) Format(key string, args ...any) string {
	return fmt.Sprintf(l.GetText(key), args...)
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		LangPortuguese: "Português",
		LangEnglish:    "English",
		LangRussian:    "Русский",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts[LangPortuguese] = map[string]string{
		KeyAppTitle:       "YouTube Downloader",
		KeyHeader:         "🎬  YouTube Downloader  (yt-dlp + FFmpeg AutoFix)",
		KeyFFmpegFound:    "✅ FFmpeg detectado: %s",
		KeyFFmpegMissing:  "⚠️ FFmpeg não encontrado. O programa ainda funciona, mas pode gerar erros de reprodução ou falhar na conversão para MP3.",
		KeyFFmpegHint:     "➡️ Instale com:  %s",
		KeyUpdateOK:       "🔄 yt-dlp atualizado com sucesso (%s).",
		KeyUpdateFailed:   "⚠️ Falha ao atualizar yt-dlp (sem conexão ou permissão).",
		KeyInvalidURL:     "❌ URL inválida! Certifique-se de colar o link completo do YouTube.",
		KeyPleaseEnterURL: "Por favor, cole um link do YouTube",
		KeyDownloading:    "📥 Baixando",
		KeyDownloadDone:   "✅ Download concluído!",
		KeyFixing:         "🔧 Corrigindo vídeo com FFmpeg...",
		KeyFixedSaved:     "✅ Vídeo corrigido salvo em: %s",
		KeySavedTo:        "📂 Arquivo salvo em: %s",
		KeyWarning:        "⚠️ %s",
		KeyVideoError:     "❌ Erro ao baixar vídeo: %s",
		KeyAudioError:     "❌ Erro ao baixar áudio: %s",
		KeyPathError:      "❌ Não foi possível usar a pasta de saída: %s",

		KeyMenuVideo:     "1️⃣  Baixar vídeo completo (melhor qualidade)",
		KeyMenuAudio:     "2️⃣  Baixar apenas o áudio (MP3)",
		KeyMenuCustom:    "3️⃣  Escolher pasta de saída personalizada",
		KeyMenuExit:      "0️⃣  Sair",
		KeyChooseOption:  "Escolha uma opção (1/2/3, 0 para sair): ",
		KeyPasteURL:      "Cole o link do vídeo do YouTube: ",
		KeyAskFolder:     "Digite o caminho da pasta de saída (ex: ./meus_videos): ",
		KeyAskKind:       "Deseja baixar vídeo ou áudio? (v/a): ",
		KeyInvalidOption: "❌ Opção inválida!",
		KeyStartVideo:    "🎥 Iniciando download do vídeo: %s",
		KeyStartAudio:    "🎧 Iniciando download do áudio (MP3): %s",
		KeyGoodbye:       "👋 Até logo!",

		KeyURLPlaceholder:      "Cole o link do YouTube aqui",
		KeyFilenamePlaceholder: "Nome do arquivo (opcional)",
		KeyModeVideo:           "Vídeo (MP4)",
		KeyModeAudio:           "Áudio (MP3)",
		KeyDownload:            "Baixar",
		KeyOpenFolder:          "Abrir pasta",
		KeyToggleTheme:         "Alternar tema",
		KeyGitHub:              "GitHub",
		KeySettings:            "Configurações",
		KeyStatusReady:         "Pronto",
		KeyStatusPreparing:     "Preparando...",
		KeyStatusUpdating:      "Atualizando yt-dlp...",
		KeyStatusDone:          "Concluído: %s",
		KeyStatusDoneWarnings:  "Concluído com avisos: %s",
		KeyStatusFailed:        "Erro: %s",
		KeyBusy:                "Já existe um download em andamento",
		KeyErrorTitle:          "Erro",
		KeyWarningTitle:        "Aviso",
		KeyErrorOpeningFolder:  "Erro ao abrir a pasta",
		KeyOutputRoot:          "Pasta de saída",
		KeyFFmpegBinary:        "Executável do FFmpeg",
		KeyAutoUpdate:          "Atualizar yt-dlp ao iniciar",
		KeyLanguage:            "Idioma",
		KeyBrowse:              "Procurar",
		KeySave:                "Salvar",
		KeyCancel:              "Cancelar",
		KeySettingsSaved:       "Configurações salvas com sucesso!",
	}

	l.texts[LangEnglish] = map[string]string{
		KeyAppTitle:       "YouTube Downloader",
		KeyHeader:         "🎬  YouTube Downloader  (yt-dlp + FFmpeg AutoFix)",
		KeyFFmpegFound:    "✅ FFmpeg found: %s",
		KeyFFmpegMissing:  "⚠️ FFmpeg not found. The program still works, but videos may not play correctly and MP3 conversion is unavailable.",
		KeyFFmpegHint:     "➡️ Install with:  %s",
		KeyUpdateOK:       "🔄 yt-dlp updated successfully (%s).",
		KeyUpdateFailed:   "⚠️ Failed to update yt-dlp (no connection or permission).",
		KeyInvalidURL:     "❌ Invalid URL! Make sure you paste the full YouTube link.",
		KeyPleaseEnterURL: "Please paste a YouTube link",
		KeyDownloading:    "📥 Downloading",
		KeyDownloadDone:   "✅ Download complete!",
		KeyFixing:         "🔧 Fixing video with FFmpeg...",
		KeyFixedSaved:     "✅ Fixed video saved to: %s",
		KeySavedTo:        "📂 File saved to: %s",
		KeyWarning:        "⚠️ %s",
		KeyVideoError:     "❌ Error downloading video: %s",
		KeyAudioError:     "❌ Error downloading audio: %s",
		KeyPathError:      "❌ Cannot use output folder: %s",

		KeyMenuVideo:     "1️⃣  Download full video (best quality)",
		KeyMenuAudio:     "2️⃣  Download audio only (MP3)",
		KeyMenuCustom:    "3️⃣  Choose a custom output folder",
		KeyMenuExit:      "0️⃣  Exit",
		KeyChooseOption:  "Choose an option (1/2/3, 0 to exit): ",
		KeyPasteURL:      "Paste the YouTube video link: ",
		KeyAskFolder:     "Enter the output folder path (e.g. ./my_videos): ",
		KeyAskKind:       "Download video or audio? (v/a): ",
		KeyInvalidOption: "❌ Invalid option!",
		KeyStartVideo:    "🎥 Starting video download: %s",
		KeyStartAudio:    "🎧 Starting audio download (MP3): %s",
		KeyGoodbye:       "👋 Bye!",

		KeyURLPlaceholder:      "Paste the YouTube link here",
		KeyFilenamePlaceholder: "File name (optional)",
		KeyModeVideo:           "Video (MP4)",
		KeyModeAudio:           "Audio (MP3)",
		KeyDownload:            "Download",
		KeyOpenFolder:          "Open Folder",
		KeyToggleTheme:         "Toggle Theme",
		KeyGitHub:              "GitHub",
		KeySettings:            "Settings",
		KeyStatusReady:         "Ready",
		KeyStatusPreparing:     "Preparing...",
		KeyStatusUpdating:      "Updating yt-dlp...",
		KeyStatusDone:          "Done: %s",
		KeyStatusDoneWarnings:  "Done with warnings: %s",
		KeyStatusFailed:        "Error: %s",
		KeyBusy:                "A download is already in progress",
		KeyErrorTitle:          "Error",
		KeyWarningTitle:        "Warning",
		KeyErrorOpeningFolder:  "Error opening folder",
		KeyOutputRoot:          "Output folder",
		KeyFFmpegBinary:        "FFmpeg executable",
		KeyAutoUpdate:          "Update yt-dlp on start",
		KeyLanguage:            "Language",
		KeyBrowse:              "Browse",
		KeySave:                "Save",
		KeyCancel:              "Cancel",
		KeySettingsSaved:       "Settings saved successfully!",
	}

	// Russian covers the window only; the menu falls back to Portuguese
	l.texts[LangRussian] = map[string]string{
		KeyAppTitle:            "YouTube Загрузчик",
		KeyInvalidURL:          "❌ Неверный URL! Вставьте полную ссылку YouTube.",
		KeyPleaseEnterURL:      "Пожалуйста, вставьте ссылку YouTube",
		KeyURLPlaceholder:      "Вставьте ссылку YouTube",
		KeyFilenamePlaceholder: "Имя файла (необязательно)",
		KeyModeVideo:           "Видео (MP4)",
		KeyModeAudio:           "Аудио (MP3)",
		KeyDownload:            "Скачать",
		KeyOpenFolder:          "Открыть папку",
		KeyToggleTheme:         "Сменить тему",
		KeyGitHub:              "GitHub",
		KeySettings:            "Настройки",
		KeyStatusReady:         "Готово к загрузке",
		KeyStatusPreparing:     "Подготовка...",
		KeyStatusUpdating:      "Обновление yt-dlp...",
		KeyStatusDone:          "Завершено: %s",
		KeyStatusDoneWarnings:  "Завершено с предупреждениями: %s",
		KeyStatusFailed:        "Ошибка: %s",
		KeyBusy:                "Загрузка уже выполняется",
		KeyErrorTitle:          "Ошибка",
		KeyWarningTitle:        "Предупреждение",
		KeyErrorOpeningFolder:  "Ошибка открытия папки",
		KeyOutputRoot:          "Папка загрузки",
		KeyFFmpegBinary:        "Исполняемый файл FFmpeg",
		KeyAutoUpdate:          "Обновлять yt-dlp при запуске",
		KeyLanguage:            "Язык",
		KeyBrowse:              "Обзор",
		KeySave:                "Сохранить",
		KeyCancel:              "Отмена",
		KeySettingsSaved:       "Настройки успешно сохранены!",
		KeyDownloading:         "📥 Загрузка",
		KeyDownloadDone:        "✅ Загрузка завершена!",
		KeyFixing:              "🔧 Исправление видео через FFmpeg...",
	}
}
