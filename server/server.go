package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	"github.com/minaorangina/tray"
	"github.com/minaorangina/tray/game"
	"github.com/minaorangina/tray/level"
	"github.com/minaorangina/tray/protocol"
	"github.com/minaorangina/tray/store"
	"github.com/minaorangina/tray/undo"
)

var ErrUnsupportedCommand = errors.New("unsupported command")

type NewGameReq struct {
	Level *int `json:"level,omitempty"`
}

type MoveReq struct {
	CardID *int `json:"card_id"`
}

type GameRes struct {
	GameID string            `json:"game_id"`
	State  protocol.Snapshot `json:"state"`
}

// ServerOpts configures a GameServer
type ServerOpts struct {
	Store          store.GameStore
	Levels         level.Provider
	DefaultLevel   int
	AwaitSettle    bool
	AllowedOrigins []string
	Logger         *log.Logger
}

// GameServer is a game server
type GameServer struct {
	opts     ServerOpts
	logger   *log.Logger
	upgrader websocket.Upgrader
	http.Server
}

// NewServer creates a new GameServer
func NewServer(opts ServerOpts) *GameServer {
	if opts.Store == nil {
		opts.Store = store.NewInMemoryGameStore()
	}
	if opts.Levels == nil {
		opts.Levels = level.NewFileProvider("levels")
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(ioutil.Discard, "", 0)
	}

	s := &GameServer{
		opts:   opts,
		logger: opts.Logger,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	router := http.NewServeMux()
	router.Handle("/new", http.HandlerFunc(s.HandleNewGame))
	router.Handle("/game/", http.HandlerFunc(s.HandleGame))
	router.Handle("/ws", http.HandlerFunc(s.HandleWS))

	cors := handlers.CORS(
		handlers.AllowedOrigins(opts.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	s.Handler = handlers.RecoveryHandler(
		handlers.RecoveryLogger(s.logger),
	)(handlers.LoggingHandler(s.logger.Writer(), cors(router)))

	return s
}

// ServeHTTP serves http
func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.Handler.ServeHTTP(w, r)
}

func (g *GameServer) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range g.opts.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// HandleNewGame deals a level and stores the new session
func (g *GameServer) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var data NewGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	// an empty body asks for the default level
	if err != nil && err != io.EOF {
		writeParseError(err, w, r)
		return
	}

	levelID := g.opts.DefaultLevel
	if data.Level != nil {
		levelID = *data.Level
	}

	layout, err := level.Load(g.opts.Levels, levelID)
	if err != nil {
		g.writeError(w, err)
		return
	}

	session, err := tray.NewSession(tray.SessionOpts{
		ID:          store.NewID(),
		LevelID:     levelID,
		Layout:      layout,
		AwaitSettle: g.opts.AwaitSettle,
		Logger:      g.logger,
	})
	if err != nil {
		g.writeError(w, err)
		return
	}

	if err := g.opts.Store.AddGame(session); err != nil {
		g.writeError(w, err)
		return
	}
	g.logger.Printf("game %s started on level %d", session.ID(), levelID)

	writeJSON(w, http.StatusCreated, GameRes{
		GameID: session.ID(),
		State:  session.Snapshot(),
	})
}

// HandleGame serves /game/{id} and /game/{id}/{action}
func (g *GameServer) HandleGame(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/game/"), "/"), "/")
	gameID := parts[0]
	if gameID == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("missing game ID"))
		return
	}
	if len(parts) > 2 {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	session, err := g.opts.Store.FindGame(gameID)
	if err != nil {
		g.writeError(w, err)
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, GameRes{GameID: gameID, State: session.Snapshot()})
		case http.MethodDelete:
			if err := g.opts.Store.RemoveGame(gameID); err != nil {
				g.writeError(w, err)
				return
			}
			g.logger.Printf("game %s removed", gameID)
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	msg, ok := actionToMessage[parts[1]]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if msg.Command == protocol.PlayCard {
		var data MoveReq
		err := json.NewDecoder(r.Body).Decode(&data)
		defer r.Body.Close()
		if err != nil {
			writeParseError(err, w, r)
			return
		}
		if data.CardID == nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("missing card ID"))
			return
		}
		msg.CardID = *data.CardID
	}

	if err := Apply(session, msg); err != nil {
		g.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, GameRes{GameID: gameID, State: session.Snapshot()})
}

var actionToMessage = map[string]protocol.InboundMessage{
	"move":    {Command: protocol.PlayCard},
	"draw":    {Command: protocol.Draw},
	"undo":    {Command: protocol.Undo},
	"settle":  {Command: protocol.Settle},
	"restart": {Command: protocol.Restart},
}

// HandleWS plays a game over a websocket. Every inbound message gets
// exactly one reply.
func (g *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	vals, ok := query["game_id"]
	if !ok || len(vals) != 1 {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("missing game ID"))
		return
	}
	gameID := vals[0]

	session, err := g.opts.Store.FindGame(gameID)
	if err != nil {
		g.writeError(w, err)
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied
		g.logger.Println(err)
		return
	}
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.logger.Printf("game %s: %v", gameID, err)
			}
			return
		}

		reply := protocol.OutboundMessage{
			GameID:  gameID,
			Command: protocol.Error,
			Error:   "malformed message",
		}
		var msg protocol.InboundMessage
		if err := json.Unmarshal(data, &msg); err == nil {
			reply = Reply(gameID, session, msg)
		}

		if err := conn.WriteJSON(reply); err != nil {
			g.logger.Printf("game %s: %v", gameID, err)
			return
		}
	}
}

// Apply carries out one command on a session
func Apply(s *tray.Session, msg protocol.InboundMessage) error {
	switch msg.Command {
	case protocol.State:
		return nil
	case protocol.PlayCard:
		return s.AttemptPlayfieldMove(msg.CardID)
	case protocol.Draw:
		return s.AttemptDraw()
	case protocol.Undo:
		return s.Undo()
	case protocol.Settle:
		s.Settle()
		return nil
	case protocol.Restart:
		return s.Restart()
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedCommand, msg.Command)
}

// Reply applies a command and describes the result
func Reply(gameID string, s *tray.Session, msg protocol.InboundMessage) protocol.OutboundMessage {
	err := Apply(s, msg)
	snap := s.Snapshot()

	out := protocol.OutboundMessage{
		GameID:  gameID,
		Command: msg.Command,
		State:   &snap,
	}
	switch {
	case err != nil:
		out.Command = protocol.Error
		out.Error = err.Error()
	case snap.Over:
		out.Command = protocol.GameOver
		out.Message = "Game over!"
		if snap.Won {
			out.Message = "You win!"
		}
	}
	return out
}

// StatusFor maps an error to the status code a client sees
func StatusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrUnknownGameID):
		return http.StatusNotFound
	case errors.Is(err, ErrUnsupportedCommand):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrIllegalMove),
		errors.Is(err, game.ErrUnknownCard),
		errors.Is(err, game.ErrEmptySource),
		errors.Is(err, game.ErrStateMismatch),
		errors.Is(err, undo.ErrBusy):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (g *GameServer) writeError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		g.logger.Println(err.Error())
	}
	w.Header().Add("Content-Type", "text/plain")
	w.WriteHeader(status)
	w.Write([]byte(err.Error()))
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		log.Println(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}

func writeParseError(err error, w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Content-Type", "text/plain")
	w.WriteHeader(http.StatusBadRequest)
	if err == io.EOF {
		w.Write([]byte("Missing body"))
		return
	}
	w.Write([]byte("Malformed body"))
}
