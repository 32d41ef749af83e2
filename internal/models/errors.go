package models

import "errors"

// ErrNotFound возвращается репозиториями, когда запись не найдена
var ErrNotFound = errors.New("not found")
