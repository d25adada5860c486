package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerGameRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/puzzles/today", handler.GetPuzzleOfTheDay)
	mux.HandleFunc("GET /v1/puzzles/{date}", handler.GetPuzzleByDate)
	mux.HandleFunc("GET /v1/puzzles/{date}/answers", handler.GetAnswersByDate)
	mux.HandleFunc("GET /v1/team-pairs/{pairID}", handler.GetTeamPairPlayers)
	mux.HandleFunc("GET /v1/players", handler.ListAllPlayers)
	mux.HandleFunc("GET /v1/players/{person}", handler.GetPlayerByPerson)
	mux.HandleFunc("POST /v1/games/{date}", handler.NewGame)
	mux.HandleFunc("PUT /v1/games/{date}/guesses/{pairID}", handler.SubmitGuess)
	mux.HandleFunc("POST /v1/guesses/{date}/{pairID}", handler.RecordCrowdGuess)
	mux.HandleFunc("GET /v1/guesses/{date}", handler.GetGuessesByDate)
}
