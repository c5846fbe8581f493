package bot

// Кнопки главного меню.
const (
	LabelSearch     = "🔍 Поиск"
	LabelCategories = "📚 Категории"
	LabelFavorites  = "⭐ Избранное"
	LabelAddItem    = "📕 Добавить запись"
	LabelStatistics = "📊 Статистика"
	LabelUsers      = "👥 Пользователи"
	LabelAdmins     = "👤 Управление админами"
)

// Ответ «нет» на шаге комментария к оценке.
const noCommentAnswer = "нет"

const (
	textGreeting        = "Здравствуйте, %s! Добро пожаловать в каталог. Напишите название или автора, чтобы найти запись, или воспользуйтесь кнопками меню."
	textGenericError    = "Произошла ошибка. Пожалуйста, попробуйте позже."
	textUnknownCommand  = "Неизвестная команда. Отправьте /start, чтобы открыть меню."
	textCancelled       = "Действие отменено."
	textNothingToCancel = "Нечего отменять."

	textAdminsOnly     = "Эта функция доступна только администраторам."
	textSuperadminOnly = "Эта функция доступна только суперадмину."

	textSearchPrompt   = "Введите название или имя автора:"
	textSearchEmpty    = "Ничего не найдено. Попробуйте другой запрос."
	textSearchTooMany  = "Показаны первые %d из %d найденных записей. Уточните запрос."
	textNoCategories   = "Категорий пока нет."
	textPickCategory   = "Выберите категорию:"
	textCategoryHeader = "📚 Записи в категории <b>%s</b>:"
	textCategoryEmpty  = "В категории «%s» записей нет."
	textNoFavorites    = "В избранном пока ничего нет."

	textItemNotFound     = "Запись не найдена."
	textDocumentNotFound = "Файл документа не найден."
	textFavoriteAdded    = "Запись добавлена в избранное!"
	textFavoriteFailed   = "Ошибка или запись уже в избранном."
	textFavoriteRemoved  = "Запись удалена из избранного."
	textActionFailed     = "Произошла ошибка."

	textRatePrompt    = "Оцените запись (1-5):"
	textCommentPrompt = "Вы выбрали %d⭐. Оставьте комментарий (или напишите «нет»):"
	textRated         = "Спасибо! Ваша оценка принята."

	textAddTitle       = "Введите название:"
	textAddAuthor      = "Введите автора:"
	textAddDescription = "Введите описание:"
	textAddCategory    = "Введите категорию:"
	textAddImage       = "Отправьте обложку или напишите «пропустить»:"
	textAddDocument    = "Отправьте PDF-файл:"
	textNeedText       = "Нужно отправить текст. Попробуйте ещё раз."
	textNeedPDF        = "Нужно отправить PDF-файл. Попробуйте ещё раз."
	textNeedPhoto      = "Нужно отправить изображение. Попробуйте ещё раз."
	textUploadFailed   = "Не удалось получить файл. Отправьте его ещё раз."
	textItemAdded      = "Запись успешно добавлена! ID: %d"
	textItemAddFailed  = "Не удалось добавить запись."

	textEditMenu        = "Редактирование <b>%s</b>:"
	textEditCurrent     = "Текущее значение:\n<b>%s</b>\n\n%s"
	textEditNewTitle    = "Введите новое название:"
	textEditNewAuthor   = "Введите нового автора:"
	textEditNewDesc     = "Введите новое описание:"
	textEditNewCategory = "Введите новую категорию:"
	textEditNewImage    = "Отправьте новую обложку:"
	textEditNewDocument = "Отправьте новый PDF-файл:"
	textEdited          = "Данные записи <b>%s</b> изменены."
	textEditFailed      = "Не удалось сохранить изменения: запись не найдена или произошла ошибка."

	textDeleteConfirm   = "Удалить запись <b>%s</b>?"
	textDeleted         = "Запись удалена."
	textDeleteFailed    = "Не удалось удалить запись."
	textDeleteCancelled = "Удаление отменено."

	textAdminsMenu    = "Управление админами:"
	textPromotePrompt = "Введите ID пользователя, которого нужно сделать админом:"
	textPromoteNotInt = "ID должен быть числом. Попробуйте ещё раз."
	textUserNotFound  = "Пользователь не найден. Проверьте, что он запускал бота."
	textAlreadyAdmin  = "Пользователь (ID: %d) уже администратор."
	textPromoted      = "Пользователь (ID: %d) назначен админом."
	textNoAdmins      = "Админов нет."
	textPickAdmin     = "Выберите админа, которого нужно снять:"
	textDemoted       = "Пользователь (ID: %d) лишён прав админа."
	textCannotDemote  = "Этого пользователя нельзя снять."
)

// Подписи inline-кнопок.
const (
	btnDetails       = "Подробнее"
	btnDownload      = "📥 Скачать"
	btnRate          = "⭐ Оценить"
	btnFavorite      = "❤️ В избранное"
	btnUnfavorite    = "❌ Убрать из избранного"
	btnEdit          = "✏️ Редактировать"
	btnDelete        = "🗑️ Удалить"
	btnEditTitle     = "📝 Название"
	btnEditAuthor    = "👤 Автор"
	btnEditDesc      = "📖 Описание"
	btnEditCategory  = "🔖 Категория"
	btnEditImage     = "🖼️ Обложка"
	btnEditDocument  = "📄 PDF"
	btnBack          = "🔙 Назад"
	btnContinueEdit  = "✏️ Продолжить редактирование"
	btnBackToDetails = "🔙 К записи"
	btnYes           = "✅ Да"
	btnNo            = "❌ Нет"
	btnAddAdmin      = "➕ Добавить админа"
	btnRemoveAdmin   = "➖ Снять админа"
)
