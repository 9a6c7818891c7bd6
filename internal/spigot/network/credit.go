package network

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/spigot/internal/spigot/types"
)

// handleCredit dispenses one credit amount of the requested token to
// the requested address, using the next distributor in rotation as the
// sender.
func (s *Server) handleCredit(w http.ResponseWriter, r *http.Request) {
	if err := s.creditTokens(w, r); err != nil {
		creditFailuresTotal.Inc()
		writeError(w, err)
		return
	}
	creditRequestsTotal.Inc()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) creditTokens(w http.ResponseWriter, r *http.Request) *HttpError {
	if r.Method != http.MethodPost {
		return NewHttpError(http.StatusMethodNotAllowed, "This endpoint requires a POST request")
	}
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return NewHttpError(http.StatusUnsupportedMediaType, "Content-type application/json expected")
	}

	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return NewHttpError(http.StatusBadRequest, "Request body is not valid JSON")
	}

	address, ticker, httpErr := parseCreditRequest(body)
	if httpErr != nil {
		return httpErr
	}

	if err := address.Validate(s.hrp); err != nil {
		netlogger().Debugf("Rejected address %q: %v", address, err)
		return NewHttpError(http.StatusBadRequest, "Address is not in the expected format for this chain.")
	}

	if !s.tokenAvailable(ticker) {
		available, _ := json.Marshal(s.availableTokens)
		return NewHttpError(http.StatusUnprocessableEntity,
			"Token is not available. Available tokens are: "+string(available))
	}

	sender := s.dispatcher.SelectSender(s.identities[1:])
	job := types.SendJob{
		Sender:    sender,
		Recipient: address,
		Ticker:    ticker,
		Amount:    s.policy.CreditAmount(ticker),
	}
	netlogger().Infof("Sending %s to %s from distributor %d", job.Amount.String(), address, sender.Index)
	if err := s.executor.Execute(r.Context(), job); err != nil {
		netlogger().Errorf("Sending tokens to %s failed: %v", address, err)
		return NewHttpError(http.StatusInternalServerError, "Sending tokens failed")
	}
	return nil
}

// parseCreditRequest pulls address and ticker out of the decoded JSON
// body. Both must be present, be strings and be non-empty.
func parseCreditRequest(body map[string]interface{}) (types.Address, types.TokenTicker, *HttpError) {
	rawAddress, ok := body["address"].(string)
	if !ok {
		return "", "", NewHttpError(http.StatusBadRequest, "Property 'address' must be a string.")
	}
	if rawAddress == "" {
		return "", "", NewHttpError(http.StatusBadRequest, "Property 'address' must not be empty.")
	}
	rawTicker, ok := body["ticker"].(string)
	if !ok {
		return "", "", NewHttpError(http.StatusBadRequest, "Property 'ticker' must be a string")
	}
	if rawTicker == "" {
		return "", "", NewHttpError(http.StatusBadRequest, "Property 'ticker' must not be empty.")
	}
	return types.Address(rawAddress), types.TokenTicker(rawTicker), nil
}

func (s *Server) tokenAvailable(ticker types.TokenTicker) bool {
	for _, t := range s.availableTokens {
		if t == ticker {
			return true
		}
	}
	return false
}
