package route

import (
	"net/http"
	"time"

	"levelup/src-server/model"
	"levelup/src-server/utils"
)

// Decode and validate an event body, then normalize its date and time.
func parseEventReqBody(as *utils.AppState, r *http.Request) (*EventReqBody, error) {
	reqBody := new(EventReqBody)
	if err := decodeBody(r, reqBody); err != nil {
		return nil, err
	}

	fieldErrors := model.FieldErrors{}
	now := time.Now()
	loc := as.Config.GetLocation()
	date, err := utils.ParseEventDate(as.DateParser, loc, reqBody.Date, now)
	if err != nil {
		fieldErrors.Add("date", "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
	}
	eventTime, err := utils.ParseEventTime(as.TimeParser, loc, reqBody.Time, now)
	if err != nil {
		fieldErrors.Add("time", "Time has wrong format. Use one of these formats instead: hh:mm[:ss].")
	}
	if err := fieldErrors.OrNil(); err != nil {
		return nil, err
	}
	reqBody.Date = date
	reqBody.Time = eventTime
	return reqBody, nil
}

func Events(muxer *http.ServeMux, as *utils.AppState) {
	// list events, optionally of one game, each flagged with the viewer's attendance
	muxer.HandleFunc("GET /events", AuthMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		gamer, ok := gamerFromContext(w, r)
		if !ok {
			return
		}
		gameID, ok := queryID(w, r, "game")
		if !ok {
			return
		}

		startTimer := time.Now()
		events, err := model.ListEvents(r.Context(), as.BunDB, gameID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		as.MetricChans.Observe(as.MetricChans.DatabaseRead, startTimer)

		resp := make([]EventView, 0, len(events))
		for i := range events {
			resp = append(resp, newEventView(&events[i], gamer))
		}
		writeJSON(w, http.StatusOK, resp)
	}))

	muxer.HandleFunc("GET /events/{id}", AuthMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		gamer, ok := gamerFromContext(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r, "Event")
		if !ok {
			return
		}

		startTimer := time.Now()
		event, err := model.GetEvent(r.Context(), as.BunDB, id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		as.MetricChans.Observe(as.MetricChans.DatabaseRead, startTimer)

		writeJSON(w, http.StatusOK, newEventView(event, gamer))
	}))

	// the requesting gamer organizes the new event
	muxer.HandleFunc("POST /events", AuthMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		gamer, ok := gamerFromContext(w, r)
		if !ok {
			return
		}
		reqBody, err := parseEventReqBody(as, r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		event := &model.Event{
			Description: reqBody.Description,
			Date:        reqBody.Date,
			Time:        reqBody.Time,
			GameID:      reqBody.Game,
			OrganizerID: gamer.ID,
		}
		startTimer := time.Now()
		if err := event.Create(r.Context(), as.BunDB); err != nil {
			writeError(w, r, err)
			return
		}
		as.MetricChans.Observe(as.MetricChans.DatabaseWrite, startTimer)

		created, err := model.GetEvent(r.Context(), as.BunDB, event.ID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, newEventView(created, gamer))
	}))

	// full replace; organizer is optional and kept when omitted
	muxer.HandleFunc("PUT /events/{id}", AuthMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "Event")
		if !ok {
			return
		}
		reqBody, err := parseEventReqBody(as, r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		event := &model.Event{
			ID:          id,
			Description: reqBody.Description,
			Date:        reqBody.Date,
			Time:        reqBody.Time,
			GameID:      reqBody.Game,
			OrganizerID: reqBody.Organizer,
		}
		startTimer := time.Now()
		if err := event.Update(r.Context(), as.BunDB); err != nil {
			writeError(w, r, err)
			return
		}
		as.MetricChans.Observe(as.MetricChans.DatabaseWrite, startTimer)

		w.WriteHeader(http.StatusNoContent)
	}))

	muxer.HandleFunc("DELETE /events/{id}", AuthMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "Event")
		if !ok {
			return
		}

		startTimer := time.Now()
		if err := model.DeleteEvent(r.Context(), as.BunDB, id); err != nil {
			writeError(w, r, err)
			return
		}
		as.MetricChans.Observe(as.MetricChans.DatabaseWrite, startTimer)

		w.WriteHeader(http.StatusNoContent)
	}))

	muxer.HandleFunc("POST /events/{id}/signup", AuthMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		gamer, ok := gamerFromContext(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r, "Event")
		if !ok {
			return
		}

		startTimer := time.Now()
		if err := model.Join(r.Context(), as.BunDB, id, gamer.ID); err != nil {
			writeError(w, r, err)
			return
		}
		as.MetricChans.Observe(as.MetricChans.DatabaseWrite, startTimer)

		writeMessage(w, http.StatusCreated, "Gamer added")
	}))

	// 204 with an empty body, also when the gamer wasn't attending
	muxer.HandleFunc("DELETE /events/{id}/leave", AuthMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		gamer, ok := gamerFromContext(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r, "Event")
		if !ok {
			return
		}

		startTimer := time.Now()
		if err := model.Leave(r.Context(), as.BunDB, id, gamer.ID); err != nil {
			writeError(w, r, err)
			return
		}
		as.MetricChans.Observe(as.MetricChans.DatabaseWrite, startTimer)

		w.WriteHeader(http.StatusNoContent)
	}))
}
