package i18n

const (
	KeyWelcome         = "welcome"
	KeyHelp            = "help"
	KeyAnalyzing       = "analyzing"
	KeyVideoFound      = "video_found"
	KeyTitle           = "title"
	KeyDuration        = "duration"
	KeyChooseQuality   = "choose_quality"
	KeyCancel          = "cancel"
	KeyCancelled       = "cancelled"
	KeyDownloading     = "downloading"
	KeyFormat          = "format"
	KeyWait            = "wait"
	KeyUploading       = "uploading"
	KeyComplete        = "complete"
	KeyError           = "error"
	KeyErrorProcess    = "error_process"
	KeyErrorDownload   = "error_download"
	KeySessionExpired  = "session_expired"
	KeyFileTooLarge    = "file_too_large"
	KeyDownloadFailed  = "download_failed"
	KeySettings        = "settings"
	KeyLanguageChanged = "language_changed"
	KeyErrorSettings   = "error_settings"
	KeyUnknown         = "unknown"
)

// Templates use the HTML subset understood by the telegram sender.
var messages = map[string]map[string]string{
	English: {
		KeyWelcome: "🎥 <b>Video Downloader Bot</b> 🎥\n\n" +
			"Send me a video link and I'll help you download it!\n\n" +
			"✨ <b>Supported platforms:</b>\n" +
			"• YouTube\n• TikTok\n• Instagram\n• Twitter/X\n• Facebook\n• Vimeo\n• And more!\n\n" +
			"Just paste a link and choose your preferred quality! 🚀\n\n" +
			"Use /settings to change language",
		KeyHelp: "<b>How to use</b>\n\n" +
			"1. Send a link to a video.\n" +
			"2. Pick a quality from the buttons.\n" +
			"3. Wait for the file.\n\n" +
			"Files larger than %d MB cannot be sent.\n\n" +
			"/settings - change language",
		KeyAnalyzing:       "🔍 <b>Analyzing video...</b>\n\nPlease wait...",
		KeyVideoFound:      "✅ <b>Video Found!</b>",
		KeyTitle:           "📝 <b>Title:</b>",
		KeyDuration:        "⏱ <b>Duration:</b>",
		KeyChooseQuality:   "🎯 <b>Choose quality:</b>",
		KeyCancel:          "❌ Cancel",
		KeyCancelled:       "❌ Download cancelled.",
		KeyDownloading:     "⬇️ <b>Downloading...</b>",
		KeyFormat:          "🎯 Format:",
		KeyWait:            "Please wait, this may take a moment... ⏳",
		KeyUploading:       "📤 <b>Uploading...</b>",
		KeyComplete:        "✅ <b>Download complete!</b>",
		KeyError:           "❌ <b>Error:</b>",
		KeyErrorProcess:    "Could not process this video.\n\nPlease make sure the link is valid and accessible.",
		KeyErrorDownload:   "Error during download.\n\nPlease try again later.",
		KeySessionExpired:  "Session expired. Please send the link again.",
		KeyFileTooLarge:    "File too large to send via Telegram (>%d MB).",
		KeyDownloadFailed:  "Download failed. Please try again.",
		KeySettings:        "⚙️ <b>Settings</b>\n\nChoose your language:",
		KeyLanguageChanged: "✅ Language changed to English!",
		KeyErrorSettings:   "Could not save your settings. Please try again later.",
		KeyUnknown:         "Unknown",
	},
	Ukrainian: {
		KeyWelcome: "🎥 <b>Бот для завантаження відео</b> 🎥\n\n" +
			"Надішліть мені посилання на відео, і я допоможу вам його завантажити!\n\n" +
			"✨ <b>Підтримувані платформи:</b>\n" +
			"• YouTube\n• TikTok\n• Instagram\n• Twitter/X\n• Facebook\n• Vimeo\n• Та інші!\n\n" +
			"Просто вставте посилання та оберіть бажану якість! 🚀\n\n" +
			"Використовуйте /settings для зміни мови",
		KeyHelp: "<b>Як користуватися</b>\n\n" +
			"1. Надішліть посилання на відео.\n" +
			"2. Оберіть якість кнопкою.\n" +
			"3. Зачекайте на файл.\n\n" +
			"Файли більші за %d MB не можуть бути надіслані.\n\n" +
			"/settings - змінити мову",
		KeyAnalyzing:       "🔍 <b>Аналізую відео...</b>\n\nБудь ласка, зачекайте...",
		KeyVideoFound:      "✅ <b>Відео знайдено!</b>",
		KeyTitle:           "📝 <b>Назва:</b>",
		KeyDuration:        "⏱ <b>Тривалість:</b>",
		KeyChooseQuality:   "🎯 <b>Оберіть якість:</b>",
		KeyCancel:          "❌ Скасувати",
		KeyCancelled:       "❌ Завантаження скасовано.",
		KeyDownloading:     "⬇️ <b>Завантажую...</b>",
		KeyFormat:          "🎯 Формат:",
		KeyWait:            "Будь ласка, зачекайте, це може зайняти деякий час... ⏳",
		KeyUploading:       "📤 <b>Відправляю...</b>",
		KeyComplete:        "✅ <b>Завантаження завершено!</b>",
		KeyError:           "❌ <b>Помилка:</b>",
		KeyErrorProcess:    "Не вдалося обробити це відео.\n\nПереконайтеся, що посилання дійсне та доступне.",
		KeyErrorDownload:   "Помилка під час завантаження.\n\nБудь ласка, спробуйте пізніше.",
		KeySessionExpired:  "Сесія закінчилася. Будь ласка, надішліть посилання знову.",
		KeyFileTooLarge:    "Файл занадто великий для відправки через Telegram (>%d MB).",
		KeyDownloadFailed:  "Завантаження не вдалося. Спробуйте ще раз.",
		KeySettings:        "⚙️ <b>Налаштування</b>\n\nОберіть мову:",
		KeyLanguageChanged: "✅ Мову змінено на Українську!",
		KeyErrorSettings:   "Не вдалося зберегти налаштування. Спробуйте пізніше.",
		KeyUnknown:         "Невідомо",
	},
	Russian: {
		KeyWelcome: "🎥 <b>Бот для скачивания видео</b> 🎥\n\n" +
			"Отправьте мне ссылку на видео, и я помогу вам его скачать!\n\n" +
			"✨ <b>Поддерживаемые платформы:</b>\n" +
			"• YouTube\n• TikTok\n• Instagram\n• Twitter/X\n• Facebook\n• Vimeo\n• И другие!\n\n" +
			"Просто вставьте ссылку и выберите желаемое качество! 🚀\n\n" +
			"Используйте /settings для смены языка",
		KeyHelp: "<b>Как пользоваться</b>\n\n" +
			"1. Отправьте ссылку на видео.\n" +
			"2. Выберите качество кнопкой.\n" +
			"3. Дождитесь файла.\n\n" +
			"Файлы больше %d MB не могут быть отправлены.\n\n" +
			"/settings - сменить язык",
		KeyAnalyzing:       "🔍 <b>Анализирую видео...</b>\n\nПожалуйста, подождите...",
		KeyVideoFound:      "✅ <b>Видео найдено!</b>",
		KeyTitle:           "📝 <b>Название:</b>",
		KeyDuration:        "⏱ <b>Длительность:</b>",
		KeyChooseQuality:   "🎯 <b>Выберите качество:</b>",
		KeyCancel:          "❌ Отменить",
		KeyCancelled:       "❌ Загрузка отменена.",
		KeyDownloading:     "⬇️ <b>Скачиваю...</b>",
		KeyFormat:          "🎯 Формат:",
		KeyWait:            "Пожалуйста, подождите, это может занять некоторое время... ⏳",
		KeyUploading:       "📤 <b>Отправляю...</b>",
		KeyComplete:        "✅ <b>Загрузка завершена!</b>",
		KeyError:           "❌ <b>Ошибка:</b>",
		KeyErrorProcess:    "Не удалось обработать это видео.\n\nУбедитесь, что ссылка действительна и доступна.",
		KeyErrorDownload:   "Ошибка при загрузке.\n\nПожалуйста, попробуйте позже.",
		KeySessionExpired:  "Сессия истекла. Пожалуйста, отправьте ссылку снова.",
		KeyFileTooLarge:    "Файл слишком большой для отправки через Telegram (>%d MB).",
		KeyDownloadFailed:  "Загрузка не удалась. Попробуйте еще раз.",
		KeySettings:        "⚙️ <b>Настройки</b>\n\nВыберите язык:",
		KeyLanguageChanged: "✅ Язык изменен на Русский!",
		KeyErrorSettings:   "Не удалось сохранить настройки. Попробуйте позже.",
		KeyUnknown:         "Неизвестно",
	},
}
