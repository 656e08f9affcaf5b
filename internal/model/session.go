package model

// Durable storage keys for the persisted session.
const (
	KeyUserToken = "user_token"
	KeyUserID    = "user_id"
)

type Session struct {
	Token  string
	UserID int
}

func (s Session) HasToken() bool {
	return s.Token != ""
}

type View int

const (
	ViewLogin View = iota
	ViewShop
)

func (v View) String() string {
	switch v {
	case ViewShop:
		return "shop"
	default:
		return "login"
	}
}

type NoticeLevel string

const (
	NoticeInfo  NoticeLevel = "info"
	NoticeError NoticeLevel = "error"
)

// Notice is a user-visible message produced by a storefront action.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

func Info(msg string) *Notice {
	return &Notice{Level: NoticeInfo, Message: msg}
}

func Error(msg string) *Notice {
	return &Notice{Level: NoticeError, Message: msg}
}
