package utils

import (
	"encoding/json"
	"io"

	"github.com/labstack/echo/v4"
)

// BindPatch декодирует тело запроса в dst и возвращает множество
// присланных полей верхнего уровня. Нужен частичным обновлениям,
// чтобы отличать "поле не прислано" от явного null.
func BindPatch(c echo.Context, dst interface{}) (map[string]json.RawMessage, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, err
	}

	if len(body) > 0 {
		if err := json.Unmarshal(body, dst); err != nil {
			return nil, err
		}
	}

	sent := map[string]json.RawMessage{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &sent); err != nil {
			return nil, err
		}
	}
	return sent, nil
}
