package handler

import (
	"encoding/json"
	"net/http"
	"time"
)

// postMessageRequest is the POST /trips/{tripID}/messages body.
type postMessageRequest struct {
	Message string `json:"message"`
}

// messageResponse is one history entry as returned by the API.
type messageResponse struct {
	Text      string    `json:"text"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// postMessage handles POST /trips/{tripID}/messages: one chat turn.
func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTripID(w, r)
	if !ok {
		return
	}

	var req postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "request body is required")
		return
	}

	reply, err := s.chat.Send(r.Context(), id, req.Message)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// listMessages handles GET /trips/{tripID}/messages: the full conversation in
// insertion order. An empty log gets an explicit "no messages yet" detail
// rather than a bare empty array.
func (s *Server) listMessages(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTripID(w, r)
	if !ok {
		return
	}

	msgs, err := s.chat.History(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]messageResponse, len(msgs))
	for i, m := range msgs {
		out[i] = messageResponse{
			Text:      m.Text,
			Role:      string(m.Role),
			CreatedAt: m.CreatedAt,
		}
	}

	body := map[string]any{"messages": out}
	if len(out) == 0 {
		body["detail"] = "no messages yet"
	}
	writeJSON(w, http.StatusOK, body)
}
