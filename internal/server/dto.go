package server

// ClientMessage is the single envelope for everything a client sends.
type ClientMessage struct {
	Type      string `json:"type"`
	RequestID string `json:"requestId,omitempty"`

	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`

	Room       string `json:"room,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	BotName    string `json:"botName,omitempty"`
	CardID     string `json:"cardId,omitempty"`
	Text       string `json:"text,omitempty"`
}

// ServerMessage is the single envelope for everything the server sends.
type ServerMessage struct {
	Type      string `json:"type"`
	RequestID string `json:"requestId,omitempty"`

	Room        string             `json:"room,omitempty"`
	State       *GameView          `json:"state,omitempty"`
	Events      []Event            `json:"events,omitempty"`
	Rooms       []string           `json:"rooms,omitempty"`
	Chat        []ChatMessage      `json:"chat,omitempty"`
	Leaderboard []LeaderboardEntry `json:"leaderboard,omitempty"`
	Error       *ErrorView         `json:"error,omitempty"`
}

type ErrorView struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}
