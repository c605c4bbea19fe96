package route

import (
	"net/http"
	"time"

	"levelup/src-server/model"
	"levelup/src-server/utils"
)

func Games(muxer *http.ServeMux, as *utils.AppState) {
	// list games, optionally of one game type
	muxer.HandleFunc("GET /games", AuthMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		gameTypeID, ok := queryID(w, r, "type")
		if !ok {
			return
		}

		startTimer := time.Now()
		games, err := model.ListGames(r.Context(), as.BunDB, gameTypeID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		as.MetricChans.Observe(as.MetricChans.DatabaseRead, startTimer)

		resp := make([]GameView, 0, len(games))
		for i := range games {
			resp = append(resp, newGameView(&games[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}))

	muxer.HandleFunc("GET /games/{id}", AuthMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "Game")
		if !ok {
			return
		}

		startTimer := time.Now()
		game, err := model.GetGame(r.Context(), as.BunDB, id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		as.MetricChans.Observe(as.MetricChans.DatabaseRead, startTimer)

		writeJSON(w, http.StatusOK, newGameView(game))
	}))

	// the requesting gamer owns the new game
	muxer.HandleFunc("POST /games", AuthMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		gamer, ok := gamerFromContext(w, r)
		if !ok {
			return
		}
		var reqBody GameReqBody
		if err := decodeBody(r, &reqBody); err != nil {
			writeError(w, r, err)
			return
		}

		game := &model.Game{
			Title:           reqBody.Title,
			Maker:           reqBody.Maker,
			NumberOfPlayers: reqBody.NumberOfPlayers,
			SkillLevel:      reqBody.SkillLevel,
			GameTypeID:      reqBody.GameType,
			GamerID:         gamer.ID,
		}
		startTimer := time.Now()
		if err := game.Create(r.Context(), as.BunDB); err != nil {
			writeError(w, r, err)
			return
		}
		as.MetricChans.Observe(as.MetricChans.DatabaseWrite, startTimer)

		created, err := model.GetGame(r.Context(), as.BunDB, game.ID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, newGameView(created))
	}))

	muxer.HandleFunc("PUT /games/{id}", AuthMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "Game")
		if !ok {
			return
		}
		var reqBody GameReqBody
		if err := decodeBody(r, &reqBody); err != nil {
			writeError(w, r, err)
			return
		}

		game := &model.Game{
			ID:              id,
			Title:           reqBody.Title,
			Maker:           reqBody.Maker,
			NumberOfPlayers: reqBody.NumberOfPlayers,
			SkillLevel:      reqBody.SkillLevel,
			GameTypeID:      reqBody.GameType,
		}
		startTimer := time.Now()
		if err := game.Update(r.Context(), as.BunDB); err != nil {
			writeError(w, r, err)
			return
		}
		as.MetricChans.Observe(as.MetricChans.DatabaseWrite, startTimer)

		w.WriteHeader(http.StatusNoContent)
	}))

	muxer.HandleFunc("DELETE /games/{id}", AuthMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "Game")
		if !ok {
			return
		}

		startTimer := time.Now()
		if err := model.DeleteGame(r.Context(), as.BunDB, id); err != nil {
			writeError(w, r, err)
			return
		}
		as.MetricChans.Observe(as.MetricChans.DatabaseWrite, startTimer)

		w.WriteHeader(http.StatusNoContent)
	}))
}

func GameTypes(muxer *http.ServeMux, as *utils.AppState) {
	muxer.HandleFunc("GET /gametypes", AuthMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		startTimer := time.Now()
		gameTypes, err := model.ListGameTypes(r.Context(), as.BunDB)
		if err != nil {
			writeError(w, r, err)
			return
		}
		as.MetricChans.Observe(as.MetricChans.DatabaseRead, startTimer)

		resp := make([]GameTypeView, 0, len(gameTypes))
		for i := range gameTypes {
			resp = append(resp, *newGameTypeView(&gameTypes[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}))

	muxer.HandleFunc("GET /gametypes/{id}", AuthMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "GameType")
		if !ok {
			return
		}

		startTimer := time.Now()
		gameType, err := model.GetGameType(r.Context(), as.BunDB, id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		as.MetricChans.Observe(as.MetricChans.DatabaseRead, startTimer)

		writeJSON(w, http.StatusOK, newGameTypeView(gameType))
	}))
}
