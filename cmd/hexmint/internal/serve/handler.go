package serve

import (
	"encoding/json"
	"net/http"

	"github.com/4b11b4/hexmint/pkg/metrics"
	"github.com/4b11b4/hexmint/pkg/mintstore"
	"go.uber.org/zap"
)

// minter is the part of the store the HTTP surface needs.
type minter interface {
	Mint() (string, error)
	Status() (mintstore.Status, error)
}

type mintHandler struct {
	s minter

	m *metrics.MintMetrics

	log *zap.Logger
}

func newMintHandler(s minter, m *metrics.MintMetrics, log *zap.Logger) http.Handler {
	return &mintHandler{
		s:   s,
		m:   m,
		log: log,
	}
}

type mintResponse struct {
	Code string `json:"code"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *mintHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "use POST"})

		return
	}

	code, err := h.s.Mint()
	if err != nil {
		h.m.IncFailures()

		h.log.Error("mint failed",
			zap.Error(err),
		)

		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})

		return
	}

	h.m.IncMinted()

	if st, err := h.s.Status(); err == nil {
		h.m.SetRemaining(st.Remaining)
	}

	writeJSON(w, http.StatusOK, mintResponse{Code: code})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}
