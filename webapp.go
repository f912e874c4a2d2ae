package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/walterschell/chess-notation/notation"
)

var log = slog.Default().With("package", "main")

const maxBodyBytes = 1 << 20

var errBadRequest = errors.New("bad request")

func stdoutLogger(next http.Handler) http.Handler {
	return handlers.LoggingHandler(os.Stdout, next)
}

type Client struct {
	id          uuid.UUID
	conn        *websocket.Conn
	application *Application
}

type Application struct {
	router      *mux.Router
	config      Config
	clients     map[*Client]interface{}
	clientsLock sync.RWMutex
	upgrader    websocket.Upgrader
}

// decodeRequest selects the notation for one move: short notation when Rank
// is set, otherwise full notation with Delimiter (or the configured default).
type decodeRequest struct {
	ID        string  `json:"id,omitempty"`
	Text      string  `json:"text"`
	Delimiter *string `json:"delimiter,omitempty"`
	Rank      string  `json:"rank,omitempty"`
}

type squareResponse struct {
	Square notation.Square `json:"square"`
	Rest   string          `json:"rest"`
}

type moveResponse struct {
	Move notation.Move `json:"move"`
	Rest string        `json:"rest"`
}

type movesResponse struct {
	Moves []notation.Move `json:"moves"`
}

type errorResponse struct {
	Error string  `json:"error"`
	Kind  string  `json:"kind,omitempty"`
	At    *string `json:"at,omitempty"`
	Line  int     `json:"line,omitempty"`
}

type wsReply struct {
	ID string `json:"id,omitempty"`
	*moveResponse
	*errorResponse
}

func NewApplication(cfg Config) *Application {
	result := Application{
		router:  mux.NewRouter(),
		config:  cfg,
		clients: make(map[*Client]interface{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	result.router.NotFoundHandler = stdoutLogger(http.HandlerFunc(notFoundHandler))
	result.router.Use(stdoutLogger)

	api := result.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/square", result.squareHandler).Methods(http.MethodGet)
	api.HandleFunc("/move", result.moveHandler).Methods(http.MethodGet)
	api.HandleFunc("/move/short", result.shortMoveHandler).Methods(http.MethodGet)
	api.HandleFunc("/moves", result.movesHandler).Methods(http.MethodPost)
	result.router.HandleFunc("/ws", result.wsHandler)
	return &result
}

func (app *Application) input(text string) string {
	if app.config.Normalize {
		return notation.Normalize(text)
	}
	return text
}

// decoderFor builds the decoder a request asks for.
func (app *Application) decoderFor(req decodeRequest) (*notation.Decoder, error) {
	if req.Rank != "" {
		rank, ok := notation.RankFromChar(rune(req.Rank[0]))
		if len(req.Rank) != 1 || !ok {
			return nil, fmt.Errorf("%w: rank must be a digit 1-8, got %q", errBadRequest, req.Rank)
		}
		return notation.NewDecoder(notation.WithShortNotation(rank), notation.WithLogger(log)), nil
	}
	delimiter := app.config.Delimiter
	if req.Delimiter != nil {
		delimiter = *req.Delimiter
	}
	return notation.NewDecoder(notation.WithDelimiter(delimiter), notation.WithLogger(log)), nil
}

func (app *Application) decodeMove(req decodeRequest) (*moveResponse, error) {
	decoder, err := app.decoderFor(req)
	if err != nil {
		return nil, err
	}
	move, rest, err := decoder.Parse(app.input(req.Text))
	if err != nil {
		return nil, err
	}
	return &moveResponse{Move: move, Rest: rest}, nil
}

func requestFromQuery(r *http.Request) decodeRequest {
	query := r.URL.Query()
	req := decodeRequest{
		Text: query.Get("text"),
		Rank: query.Get("rank"),
	}
	if query.Has("delimiter") {
		delimiter := query.Get("delimiter")
		req.Delimiter = &delimiter
	}
	return req
}

func (app *Application) squareHandler(w http.ResponseWriter, r *http.Request) {
	sq, rest, err := notation.ParseSquare(app.input(r.URL.Query().Get("text")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, squareResponse{Square: sq, Rest: rest})
}

func (app *Application) moveHandler(w http.ResponseWriter, r *http.Request) {
	req := requestFromQuery(r)
	req.Rank = ""
	response, err := app.decodeMove(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (app *Application) shortMoveHandler(w http.ResponseWriter, r *http.Request) {
	req := requestFromQuery(r)
	if req.Rank == "" {
		writeError(w, fmt.Errorf("%w: missing rank", errBadRequest))
		return
	}
	response, err := app.decodeMove(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// movesHandler decodes a request body holding one move per line.
func (app *Application) movesHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	decoder, err := app.decoderFor(requestFromQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}
	moves, err := decoder.Decode(r.Context(), app.input(string(body)))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, movesResponse{Moves: moves})
}

func (app *Application) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := app.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an error response.
		log.Error("websocket upgrade failed", "error", err)
		return
	}
	client := &Client{
		id:          uuid.New(),
		conn:        conn,
		application: app,
	}
	log.Info("new websocket connection", "client", client.id, "remote", conn.RemoteAddr().String())
	app.clientsLock.Lock()
	app.clients[client] = nil
	app.clientsLock.Unlock()
	go client.serve()
}

// serve answers decode requests until the connection fails or is closed.
func (c *Client) serve() {
	defer c.application.removeClient(c)
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error("error reading message", "client", c.id, "error", err)
			}
			return
		}

		var req decodeRequest
		var reply wsReply
		if err := json.Unmarshal(message, &req); err != nil {
			log.Info("malformed message", "client", c.id, "error", err)
			_, reply.errorResponse = errorBody(fmt.Errorf("%w: %v", errBadRequest, err))
		} else {
			reply.ID = req.ID
			response, err := c.application.decodeMove(req)
			if err != nil {
				_, reply.errorResponse = errorBody(err)
			} else {
				reply.moveResponse = response
			}
		}

		if err := c.conn.WriteJSON(reply); err != nil {
			log.Error("error writing reply", "client", c.id, "error", err)
			return
		}
	}
}

func (app *Application) removeClient(c *Client) {
	app.clientsLock.Lock()
	delete(app.clients, c)
	app.clientsLock.Unlock()
	c.conn.Close()
}

// Close ends every open websocket connection.
func (app *Application) Close() {
	app.clientsLock.RLock()
	defer app.clientsLock.RUnlock()
	deadline := time.Now().Add(time.Second)
	for client := range app.clients {
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
		client.conn.WriteControl(websocket.CloseMessage, msg, deadline)
	}
}

func (app *Application) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	app.router.ServeHTTP(w, r)
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "File Not Found", http.StatusNotFound)
}

// errorBody maps an error to its HTTP status and JSON body.
func errorBody(err error) (int, *errorResponse) {
	body := &errorResponse{Error: err.Error()}

	var lineErr *notation.LineError
	if errors.As(err, &lineErr) {
		body.Line = lineErr.Line
	}

	var parseErr *notation.ParseError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, body
	case errors.As(err, &parseErr):
		at := parseErr.Input
		body.Kind = parseErr.Kind.String()
		body.At = &at
		return http.StatusUnprocessableEntity, body
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, body
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, body
	}
	return http.StatusInternalServerError, body
}

func writeError(w http.ResponseWriter, err error) {
	status, body := errorBody(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "error", err)
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("error encoding response", "error", err)
	}
}

func main() {
	var (
		configPath string
		port       uint
		delimiter  string
		normalize  bool
	)
	defaults := DefaultConfig()
	flag.StringVar(&configPath, "config", "", "Path to a YAML config file")
	flag.UintVar(&port, "port", defaults.Port, "Port to listen on")
	flag.StringVar(&delimiter, "delimiter", defaults.Delimiter, "Default delimiter for full notation moves")
	flag.BoolVar(&normalize, "normalize", defaults.Normalize, "Fold full-width input to ASCII before decoding")
	flag.Parse()

	cfg := defaults
	if configPath != "" {
		var err error
		cfg, err = LoadConfig(configPath)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Port = port
		case "delimiter":
			cfg.Delimiter = delimiter
		case "normalize":
			cfg.Normalize = normalize
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	app := NewApplication(cfg)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: app,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		app.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	log.Info("starting server", "port", cfg.Port, "delimiter", cfg.Delimiter, "normalize", cfg.Normalize)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}
