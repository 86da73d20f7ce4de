package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/1F35C/signature-verifier/state"
)

type stateView struct {
	State             string     `json:"state"`
	Verified          bool       `json:"verified"`
	Reason            string     `json:"reason,omitempty"`
	KeyCreationTime   *time.Time `json:"key_creation_time,omitempty"`
	MessageSignedTime *time.Time `json:"message_signed_time,omitempty"`
}

func viewOf(s state.ResultState) stateView {
	switch s := s.(type) {
	case state.Idle:
		return stateView{State: "idle"}
	case state.Pending:
		return stateView{State: "pending"}
	case state.Succeeded:
		created := s.KeyCreationTime().UTC()
		view := stateView{
			State:           "succeeded",
			Verified:        true,
			KeyCreationTime: &created,
		}
		if s.Outcome().HasSignedTime() {
			signed := s.MessageSignedTime().UTC()
			view.MessageSignedTime = &signed
		}
		return view
	case state.Failed:
		return stateView{State: "failed", Reason: s.Reason}
	default:
		panic(fmt.Sprintf("sigverify: unknown result state %T", s))
	}
}

func renderState(w io.Writer, s state.ResultState, asJSON bool) error {
	if asJSON {
		return json.NewEncoder(w).Encode(viewOf(s))
	}

	var err error
	switch s := s.(type) {
	case state.Succeeded:
		signed := "unknown"
		if s.Outcome().HasSignedTime() {
			signed = s.MessageSignedTime().UTC().Format(time.RFC3339)
		}
		_, err = fmt.Fprintf(w, "Signature verified\n  signed:      %s\n  key created: %s\n",
			signed, s.KeyCreationTime().UTC().Format(time.RFC3339))
	case state.Failed:
		_, err = fmt.Fprintf(w, "Signature not verified: %s\n", s.Reason)
	default:
		_, err = fmt.Fprintln(w, s.String())
	}
	return err
}
