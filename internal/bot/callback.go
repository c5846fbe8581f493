package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Action: тег callback-данных.
type Action string

const (
	ActItem       Action = "item"    // item_<id>: карточка записи
	ActDownload   Action = "dl"      // dl_<id>
	ActFavorite   Action = "fav"     // fav_<id>
	ActUnfavorite Action = "unfav"   // unfav_<id>
	ActRate       Action = "rate"    // rate_<id>: клавиатура оценок
	ActScore      Action = "score"   // score_<id>_<1..5>
	ActCategory   Action = "cat"     // cat_<label>
	ActEdit       Action = "edit"    // edit_<id>: меню редактирования
	ActEditField  Action = "editf"   // editf_<id>_<field>
	ActDelete     Action = "del"     // del_<id>: запрос подтверждения
	ActDeleteOK   Action = "delok"   // delok_<id>
	ActDeleteNo   Action = "delno"   // delno_<id>
	ActPromote    Action = "promote" // promote
	ActAdmins     Action = "admins"  // admins: список для снятия
	ActDemote     Action = "demote"  // demote_<user id>
)

// Поля, которые можно редактировать.
const (
	FieldTitle       = "title"
	FieldAuthor      = "author"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldImage       = "image"
	FieldDocument    = "document"
)

// MaxCallbackData: предел длины callback-данных у платформы.
const MaxCallbackData = 64

// ErrInvalidCallback: данные не разбираются в команду.
var ErrInvalidCallback = errors.New("invalid callback data")

// Command: разобранные callback-данные.
type Command struct {
	Action Action
	ID     int64 // запись или пользователь
	Score  int
	Field  string
	Label  string
}

// Encode собирает строку callback-данных.
func (c Command) Encode() string {
	switch c.Action {
	case ActPromote, ActAdmins:
		return string(c.Action)
	case ActCategory:
		return string(c.Action) + "_" + c.Label
	case ActScore:
		return fmt.Sprintf("%s_%d_%d", c.Action, c.ID, c.Score)
	case ActEditField:
		return fmt.Sprintf("%s_%d_%s", c.Action, c.ID, c.Field)
	default:
		return fmt.Sprintf("%s_%d", c.Action, c.ID)
	}
}

func validField(f string) bool {
	switch f {
	case FieldTitle, FieldAuthor, FieldDescription, FieldCategory, FieldImage, FieldDocument:
		return true
	}
	return false
}

// ParseCallback разбирает callback-данные. Категория берётся целиком после первого "_".
func ParseCallback(data string) (Command, error) {
	tag, rest, _ := strings.Cut(data, "_")
	cmd := Command{Action: Action(tag)}

	switch cmd.Action {
	case ActPromote, ActAdmins:
		if rest != "" {
			return Command{}, fmt.Errorf("%w: %q", ErrInvalidCallback, data)
		}
		return cmd, nil
	case ActCategory:
		if rest == "" {
			return Command{}, fmt.Errorf("%w: %q", ErrInvalidCallback, data)
		}
		cmd.Label = rest
		return cmd, nil
	case ActItem, ActDownload, ActFavorite, ActUnfavorite, ActRate, ActEdit,
		ActDelete, ActDeleteOK, ActDeleteNo, ActDemote:
		id, err := parseID(rest)
		if err != nil {
			return Command{}, fmt.Errorf("%w: %q", ErrInvalidCallback, data)
		}
		cmd.ID = id
		return cmd, nil
	case ActScore:
		idPart, scorePart, ok := strings.Cut(rest, "_")
		if !ok {
			return Command{}, fmt.Errorf("%w: %q", ErrInvalidCallback, data)
		}
		id, err := parseID(idPart)
		if err != nil {
			return Command{}, fmt.Errorf("%w: %q", ErrInvalidCallback, data)
		}
		score, err := strconv.Atoi(scorePart)
		if err != nil || score < 1 || score > 5 {
			return Command{}, fmt.Errorf("%w: %q", ErrInvalidCallback, data)
		}
		cmd.ID, cmd.Score = id, score
		return cmd, nil
	case ActEditField:
		idPart, field, ok := strings.Cut(rest, "_")
		if !ok || !validField(field) {
			return Command{}, fmt.Errorf("%w: %q", ErrInvalidCallback, data)
		}
		id, err := parseID(idPart)
		if err != nil {
			return Command{}, fmt.Errorf("%w: %q", ErrInvalidCallback, data)
		}
		cmd.ID, cmd.Field = id, field
		return cmd, nil
	}
	return Command{}, fmt.Errorf("%w: %q", ErrInvalidCallback, data)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, errors.New("id must be positive")
	}
	return id, nil
}
