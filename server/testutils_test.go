package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/tray/deck"
	"github.com/minaorangina/tray/level"
	"github.com/minaorangina/tray/store"
)

type fakeLevels map[int]level.Layout

func (f fakeLevels) Level(id int) (level.Layout, error) {
	layout, ok := f[id]
	if !ok {
		return level.Layout{}, fmt.Errorf("%w: %d", level.ErrNotFound, id)
	}
	return layout, nil
}

// sixOnSeven deals a Six of Hearts with a Seven on the tray and a Two
// waiting in the stack
func sixOnSeven() level.Layout {
	return level.Layout{
		Playfield: []level.Entry{
			{Face: deck.Six, Suit: deck.Hearts, Position: deck.Position{X: 10, Y: 20}},
		},
		Stack: []level.Entry{
			{Face: deck.Two, Suit: deck.Clubs},
			{Face: deck.Seven, Suit: deck.Clubs},
		},
	}
}

func twoOnKing() level.Layout {
	return level.Layout{
		Playfield: []level.Entry{
			{Face: deck.Two, Suit: deck.Spades},
			{Face: deck.Queen, Suit: deck.Hearts},
		},
		Stack: []level.Entry{
			{Face: deck.King, Suit: deck.Clubs},
		},
	}
}

func newTestGameServer(opts ServerOpts) *GameServer {
	if opts.Store == nil {
		opts.Store = store.NewInMemoryGameStore()
	}
	if opts.Levels == nil {
		opts.Levels = fakeLevels{1: sixOnSeven(), 2: twoOnKing()}
	}
	if opts.DefaultLevel == 0 {
		opts.DefaultLevel = 1
	}
	return NewServer(opts)
}

func mustMakeJson(t *testing.T, input interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(input)
	if err != nil {
		t.Fatalf("Could not marshal json: %s", err.Error())
	}
	return data
}

func newCreateGameRequest(data []byte) *http.Request {
	request, _ := http.NewRequest(http.MethodPost, "/new", bytes.NewReader(data))
	return request
}

func newGetGameRequest(gameID string) *http.Request {
	request, _ := http.NewRequest(http.MethodGet, "/game/"+gameID, nil)
	return request
}

func newActionRequest(gameID, action string, data []byte) *http.Request {
	request, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/game/%s/%s", gameID, action), bytes.NewReader(data))
	return request
}

func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("did not get correct status, got %d, want %d", got, want)
	}
}

func decodeGameRes(t *testing.T, body *bytes.Buffer) GameRes {
	t.Helper()
	var got GameRes
	if err := json.Unmarshal(body.Bytes(), &got); err != nil {
		t.Fatalf("Could not unmarshal json: %s", err.Error())
	}
	return got
}

// mustCreateGame starts a game on the default level and returns its id
func mustCreateGame(t *testing.T, server http.Handler) string {
	t.Helper()
	response := httptest.NewRecorder()
	server.ServeHTTP(response, newCreateGameRequest(nil))
	if response.Code != http.StatusCreated {
		t.Fatalf("could not create game: status %d", response.Code)
	}
	return decodeGameRes(t, response.Body).GameID
}

func doAction(t *testing.T, server http.Handler, gameID, action string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	response := httptest.NewRecorder()
	server.ServeHTTP(response, newActionRequest(gameID, action, data))
	return response
}

func makeWSUrl(serverURL, gameID string) string {
	url := "ws" + strings.TrimPrefix(serverURL, "http")
	return fmt.Sprintf("%s/ws?game_id=%s", url, gameID)
}

func mustDialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("could not open a ws connection on %s %v", url, err)
	}
	return ws
}
