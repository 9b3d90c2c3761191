package models

import "fmt"

// ActionType classifies a turn. On the wire it only ever appears as its
// canonical token, see actionTokens.
type ActionType uint8

const (
	ActionCustomTask ActionType = iota
	ActionConnectionsResponse
	ActionSessionEnd
	ActionLaunch
	ActionNext
	ActionPrevious
	ActionStop
	ActionHelp
	ActionMore
	ActionFallBack
	ActionUnknown

	actionTypeCount
)

var actionTokens = [...]string{
	ActionCustomTask:          "CUSTOM_TASK",
	ActionConnectionsResponse: "CONNECTION_RESPONSE",
	ActionSessionEnd:          "SESSION_END",
	ActionLaunch:              "LAUNCH",
	ActionNext:                "NEXT",
	ActionPrevious:            "PREVIOUS",
	ActionStop:                "STOP",
	ActionHelp:                "HELP",
	ActionMore:                "MORE",
	ActionFallBack:            "FALLBACK",
	ActionUnknown:             "UNKNOWN",
}

// Fails to compile when a variant is added without a token.
func _() {
	var x [1]struct{}
	_ = x[len(actionTokens)-int(actionTypeCount)]
}

var actionsByToken = func() map[string]ActionType {
	m := make(map[string]ActionType, len(actionTokens))
	for i, token := range actionTokens {
		m[token] = ActionType(i)
	}
	return m
}()

// ActionTypes returns every variant in declaration order.
func ActionTypes() []ActionType {
	out := make([]ActionType, 0, actionTypeCount)
	for a := ActionType(0); a < actionTypeCount; a++ {
		out = append(out, a)
	}
	return out
}

// LookupActionType reports the variant for an exact, case-sensitive token.
func LookupActionType(token string) (ActionType, bool) {
	a, ok := actionsByToken[token]
	return a, ok
}

// ParseActionType never fails: unrecognized tokens resolve to ActionUnknown.
func ParseActionType(token string) ActionType {
	if a, ok := actionsByToken[token]; ok {
		return a
	}
	return ActionUnknown
}

func (a ActionType) Valid() bool {
	return a < actionTypeCount
}

// Token returns the canonical wire token.
func (a ActionType) Token() string {
	if !a.Valid() {
		return ""
	}
	return actionTokens[a]
}

func (a ActionType) String() string {
	if !a.Valid() {
		return fmt.Sprintf("ActionType(%d)", uint8(a))
	}
	return actionTokens[a]
}

func (a ActionType) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("models: invalid action type %d", uint8(a))
	}
	return []byte(actionTokens[a]), nil
}

func (a *ActionType) UnmarshalText(text []byte) error {
	*a = ParseActionType(string(text))
	return nil
}
