package bodymap

import (
	"encoding/json"
	"strings"
)

// Value — размеченное объединение для Answer.Value вопроса типа body_map.
// Значение либо карта областей, либо обычный текст (легаси-данные,
// ответы "No" и т.п.). Разбор выполняется при чтении, без exceptions-style
// управления потоком: неудачный разбор — это текстовый вариант, не ошибка.
type Value struct {
	// Areas заполнено только для успешно разобранной карты {areaId: intensity}
	Areas map[string]int

	// Raw — исходная строка, как была сохранена
	Raw string
}

// IsMap сообщает, является ли значение картой областей
func (v Value) IsMap() bool {
	return v.Areas != nil
}

// Decode разбирает сохраненную строку ответа.
// Картой считается только значение, синтаксически похожее на JSON-объект
// (начинается с '{' и заканчивается '}') и разбирающееся в map[string]int.
// Все остальное возвращается текстовым вариантом.
func Decode(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") || !strings.HasSuffix(trimmed, "}") {
		return Value{Raw: raw}
	}

	var areas map[string]int
	if err := json.Unmarshal([]byte(trimmed), &areas); err != nil {
		return Value{Raw: raw}
	}
	return Value{Areas: areas, Raw: raw}
}
