package entities

// Session представляет данные аутентифицированной сессии,
// хранящиеся по непрозрачному токену браузера.
type Session struct {
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
}
